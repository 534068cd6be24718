package validator

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestValidatorCheck(t *testing.T) {
	v := New()
	v.Check(true, "ok", "never added")
	v.Check(false, "email", "first message")
	v.Check(false, "email", "second message")

	if v.IsValid() {
		t.Fatal("expected validator to be invalid")
	}
	if got := v.Errors["email"]; got != "first message" {
		t.Errorf("expected first message to be kept, got %q", got)
	}
	if _, ok := v.Errors["ok"]; ok {
		t.Error("passing check must not add an error")
	}
	if !v.Permitted("CC", "CC", "TI") {
		t.Error("expected CC to be permitted")
	}
	if v.Matches("abc", regexp.MustCompile(`^\d+$`)) {
		t.Error("expected abc not to match digits")
	}
}

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{" a ", true},
		{"Bogotá", true},
	}
	for _, tt := range tests {
		if got := NonEmpty(tt.in); got != tt.want {
			t.Errorf("NonEmpty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"pepito@gmail.com", true},
		{"", false},
		{"a@b", false},
		{"a b@c.com", false},
		{"a@@b.com", false},
		{"@b.com", false},
		{"a@b.", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.in); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	if IsValidPassword("12345") {
		t.Error("five characters must be rejected")
	}
	if !IsValidPassword("123456") {
		t.Error("six characters must be accepted")
	}
	if IsValidPassword("") {
		t.Error("empty password must be rejected")
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Pepito", true},
		{"Ñandú Pérez", true},
		{"ÁLVARO ÍÑIGO", true},
		{"Jo", true},
		{"J", false},
		{"", false},
		{"John3", false},
		{"O'Neil", false},
		{"Zoë", false},
	}
	for _, tt := range tests {
		if got := IsValidName(tt.in); got != tt.want {
			t.Errorf("IsValidName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidDocumentNumber(t *testing.T) {
	tests := []struct {
		doc     string
		docType string
		want    bool
	}{
		{"12345", DocumentCC, false},
		{"123456", DocumentCC, true},
		{"123456789012", DocumentCC, true},
		{"1234567890123", DocumentCC, false},
		{"1.234.567-89", DocumentCE, true},
		{"123456789012", DocumentPA, true},
		{"1234567890", DocumentTI, true},
		{"12345678901", DocumentTI, false},
		{"123456", "NIT", false},
		{"123456", "", false},
		{"", DocumentCC, false},
		{"abc", DocumentCC, false},
	}
	for _, tt := range tests {
		if got := IsValidDocumentNumber(tt.doc, tt.docType); got != tt.want {
			t.Errorf("IsValidDocumentNumber(%q, %q) = %v, want %v", tt.doc, tt.docType, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"300-587-687", false},
		{"3005876871", true},
		{"(300) 587-6871", true},
		{"30058768712", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidPhone(tt.in); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidBirthDateAt(t *testing.T) {
	now := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth string
		now   time.Time
		want  bool
	}{
		{"exactly eighteen today", "2008-10-16", now, true},
		{"one day short of eighteen", "2008-10-17", now, false},
		{"birthday later in the year", "2008-12-01", now, false},
		{"birthday earlier in the year", "2008-01-01", now, true},
		{"well over eighteen", "1985-12-16", now, true},
		{"leap day before birthday", "2008-02-29", time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), false},
		{"leap day after birthday", "2008-02-29", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", now, false},
		{"garbage", "16/10/2008", now, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidBirthDateAt(tt.birth, tt.now); got != tt.want {
				t.Errorf("IsValidBirthDateAt(%q) = %v, want %v", tt.birth, got, tt.want)
			}
		})
	}
}

func TestFilterInput(t *testing.T) {
	tests := []struct {
		value     string
		fieldType FieldType
		want      string
	}{
		{"Jo hn@Ex ample.com!", FieldEmail, "John@Example.com"},
		{"pässwörd!<>", FieldPassword, "psswrd!"},
		{"a_b+c-d=e", FieldPassword, "a_b+c-d=e"},
		{"1.234.567-8", FieldDocument, "12345678"},
		{strings.Repeat("1", 25), FieldDocument, strings.Repeat("1", 20)},
		{"José O'Neil 3rd", FieldName, "José ONeil rd"},
		{"+57 300 587 6871 ext 99999", FieldPhone, "573005876871999"},
		{"1,200.50", FieldNumber, "120050"},
		{"abc$", FieldType("text"), "abc$"},
		{"", FieldEmail, ""},
		{"", FieldType("text"), ""},
	}
	for _, tt := range tests {
		if got := FilterInput(tt.value, tt.fieldType); got != tt.want {
			t.Errorf("FilterInput(%q, %q) = %q, want %q", tt.value, tt.fieldType, got, tt.want)
		}
	}
}

func TestFilterInputIsIdempotentSubsequence(t *testing.T) {
	inputs := []string{
		"pepito@gmail.com",
		"  Ñandú Pérez-García 123 ",
		"300 587 6871 / 601 555 1234 / 999",
		"P@ss w0rd!<script>",
		"¿¡Qué tal!? ñÑ áé",
		strings.Repeat("9a", 30),
	}
	types := append([]FieldType{"unknown"}, FieldTypes...)

	for _, in := range inputs {
		for _, ft := range types {
			once := FilterInput(in, ft)
			twice := FilterInput(once, ft)
			if once != twice {
				t.Errorf("FilterInput not idempotent for %q/%s: %q then %q", in, ft, once, twice)
			}
			if !isSubsequence(once, in) {
				t.Errorf("FilterInput(%q, %s) = %q is not a subsequence of the input", in, ft, once)
			}
		}
	}
}

func isSubsequence(sub, s string) bool {
	rs := []rune(s)
	i := 0
	for _, r := range sub {
		for i < len(rs) && rs[i] != r {
			i++
		}
		if i == len(rs) {
			return false
		}
		i++
	}
	return true
}

func TestHasCompleteProfile(t *testing.T) {
	complete := &Profile{
		DocumentNumber: "84739728",
		Name:           "Pepito Gómez Alnurfio",
		Email:          "pepito@gmail.com",
		Phone:          "3005876871",
		BirthDate:      "1985-12-16",
	}

	if !HasCompleteProfile(complete, DefaultDocumentType) {
		t.Fatalf("expected complete profile, missing: %v", MissingProfileFields(complete, DefaultDocumentType))
	}
	if HasCompleteProfile(nil, DefaultDocumentType) {
		t.Error("nil profile must be incomplete")
	}

	shortPhone := *complete
	shortPhone.Phone = "300587687"
	if HasCompleteProfile(&shortPhone, DefaultDocumentType) {
		t.Error("nine digit phone must make the profile incomplete")
	}
	if got := MissingProfileFields(&shortPhone, DefaultDocumentType); len(got) != 1 || got[0] != "phone" {
		t.Errorf("expected only phone missing, got %v", got)
	}

	// An 11 digit number passes the CC default but not the holder's real TI
	// type, so callers must pass the stored type.
	minor := *complete
	minor.DocumentNumber = "12345678901"
	if !HasCompleteProfile(&minor, DefaultDocumentType) {
		t.Error("11 digits should pass the CC default")
	}
	if HasCompleteProfile(&minor, DocumentTI) {
		t.Error("11 digits must fail for TI")
	}

	empty := *complete
	empty.BirthDate = ""
	if HasCompleteProfile(&empty, DefaultDocumentType) {
		t.Error("missing birth date must make the profile incomplete")
	}
}
