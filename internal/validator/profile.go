package validator

// DefaultDocumentType is the document type the booking flow historically
// assumed when checking a stored profile.
const DefaultDocumentType = DocumentCC

// Profile is the subset of passenger data required before a reservation can
// be confirmed.
type Profile struct {
	DocumentNumber string
	Name           string
	Email          string
	Phone          string
	BirthDate      string
}

// HasCompleteProfile reports whether every field of p is present and valid.
// The document number is checked against documentType.
func HasCompleteProfile(p *Profile, documentType string) bool {
	if p == nil {
		return false
	}
	if p.DocumentNumber == "" || p.Name == "" || p.Email == "" || p.Phone == "" || p.BirthDate == "" {
		return false
	}
	return IsValidDocumentNumber(p.DocumentNumber, documentType) &&
		IsValidName(p.Name) &&
		IsValidEmail(p.Email) &&
		IsValidPhone(p.Phone) &&
		IsValidBirthDate(p.BirthDate)
}

// MissingProfileFields returns the names of the fields that keep p from
// being complete, in a stable order.
func MissingProfileFields(p *Profile, documentType string) []string {
	if p == nil {
		return []string{"document_number", "name", "email", "phone", "birth_date"}
	}
	var missing []string
	if !IsValidDocumentNumber(p.DocumentNumber, documentType) {
		missing = append(missing, "document_number")
	}
	if !IsValidName(p.Name) {
		missing = append(missing, "name")
	}
	if !IsValidEmail(p.Email) {
		missing = append(missing, "email")
	}
	if !IsValidPhone(p.Phone) {
		missing = append(missing, "phone")
	}
	if !IsValidBirthDate(p.BirthDate) {
		missing = append(missing, "birth_date")
	}
	return missing
}
