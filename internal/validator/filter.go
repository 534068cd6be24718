package validator

import "strings"

// FieldType selects the character class FilterInput keeps.
type FieldType string

const (
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldDocument FieldType = "document"
	FieldName     FieldType = "name"
	FieldPhone    FieldType = "phone"
	FieldNumber   FieldType = "number"
)

const (
	maxDocumentDigits = 20
	maxPhoneDigits    = 15
)

// FieldTypes lists every type FilterInput recognises.
var FieldTypes = []FieldType{FieldEmail, FieldPassword, FieldDocument, FieldName, FieldPhone, FieldNumber}

// FilterInput drops the characters that are not allowed for fieldType. It is
// a convenience for user input, not a security boundary. Unknown field types
// are returned unchanged.
func FilterInput(value string, fieldType FieldType) string {
	if value == "" {
		return ""
	}

	switch fieldType {
	case FieldEmail:
		return keep(value, func(r rune) bool {
			return isASCIIAlnum(r) || strings.ContainsRune("@._-", r)
		})
	case FieldPassword:
		return keep(value, func(r rune) bool {
			return isWordRune(r) || strings.ContainsRune("!@#$%^&*()_+-=", r)
		})
	case FieldDocument:
		return truncate(digitsOnly(value), maxDocumentDigits)
	case FieldName:
		return keep(value, isNameRune)
	case FieldPhone:
		return truncate(digitsOnly(value), maxPhoneDigits)
	case FieldNumber:
		return digitsOnly(value)
	default:
		return value
	}
}

func keep(s string, allowed func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, s)
}

// truncate assumes s is ASCII.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isWordRune(r rune) bool {
	return isASCIIAlnum(r) || r == '_'
}
