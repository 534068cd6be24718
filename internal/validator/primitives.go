package validator

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Document types accepted by IsValidDocumentNumber.
const (
	DocumentCC = "CC" // cédula de ciudadanía
	DocumentCE = "CE" // cédula de extranjería
	DocumentPA = "PA" // pasaporte
	DocumentTI = "TI" // tarjeta de identidad
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// AdultAge is the minimum age for a passenger profile.
const AdultAge = 18

// NonEmpty reports whether v has at least one non-whitespace character.
func NonEmpty(v string) bool {
	return strings.TrimSpace(v) != ""
}

// NotSame reports whether a and b are both set and different.
func NotSame(a, b string) bool {
	return a != "" && b != "" && a != b
}

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return EmailRX.MatchString(email)
}

// IsValidPassword reports whether password has at least six characters.
func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= 6
}

// IsValidName accepts letters (including Spanish accented vowels and ñ) and
// whitespace, with a minimum of two characters.
func IsValidName(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	for _, r := range name {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

// IsValidDocumentNumber validates the digit count of doc for the given
// document type. Non-digit characters are ignored.
func IsValidDocumentNumber(doc, docType string) bool {
	n := len(digitsOnly(doc))
	if n == 0 {
		return false
	}

	switch docType {
	case DocumentCC, DocumentCE, DocumentPA:
		return n >= 6 && n <= 12
	case DocumentTI:
		return n >= 6 && n <= 10
	default:
		return false
	}
}

// IsValidPhone reports whether phone holds exactly ten digits once
// separators are removed.
func IsValidPhone(phone string) bool {
	return len(digitsOnly(phone)) == 10
}

// IsValidBirthDate reports whether dateString (YYYY-MM-DD) belongs to someone
// who is at least 18 years old today.
func IsValidBirthDate(dateString string) bool {
	return IsValidBirthDateAt(dateString, time.Now())
}

// IsValidBirthDateAt is IsValidBirthDate evaluated at now.
func IsValidBirthDateAt(dateString string, now time.Time) bool {
	if dateString == "" {
		return false
	}
	birth, err := time.Parse(DateLayout, dateString)
	if err != nil {
		return false
	}
	return Age(birth, now) >= AdultAge
}

// Age returns the whole number of years between birth and now.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case isSpace(r):
		return true
	}
	return strings.ContainsRune("áéíóúÁÉÍÓÚñÑ", r)
}

// isSpace matches the JavaScript \s class for the characters a form input
// can realistically carry.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x00a0, 0xfeff, 0x2028, 0x2029:
		return true
	}
	return false
}

// ClockLayout is the HH:MM format of departure and arrival times.
const ClockLayout = "15:04"

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsValidClock reports whether s is a 24-hour HH:MM time.
func IsValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}
