package schemas

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

// FlightCodeRX matches codes such as AV-801 or LA-4020.
var FlightCodeRX = regexp.MustCompile(`^[A-Z0-9]{2}-\d{3,4}$`)

// MaxSeatsPerReservation caps how many seats a single reservation takes.
const MaxSeatsPerReservation = 9

// required returns msg when value is blank.
func required(value, msg string) (string, bool) {
	if !validator.NonEmpty(value) {
		return msg, false
	}
	return "", true
}

func emailRule(missing, invalid string) form.Rule {
	return func(value string, _ form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if !validator.IsValidEmail(value) {
			return invalid
		}
		return ""
	}
}

func passwordRule(missing, invalid string) form.Rule {
	return func(value string, _ form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if !validator.IsValidPassword(value) {
			return invalid
		}
		return ""
	}
}

// confirmRule requires value to equal the sibling field.
func confirmRule(sibling, missing, mismatch string) form.Rule {
	return func(value string, all form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if value != all[sibling] {
			return mismatch
		}
		return ""
	}
}

func nameRule(missing string) form.Rule {
	return func(value string, _ form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if !validator.IsValidName(value) {
			return msgOnlyLetters
		}
		return ""
	}
}

// optionalNameRule only validates non-empty values.
func optionalNameRule(value string, _ form.Values) string {
	if value == "" {
		return ""
	}
	if !validator.IsValidName(value) {
		return msgOnlyLetters
	}
	return ""
}

func requiredRule(missing string) form.Rule {
	return func(value string, _ form.Values) string {
		msg, _ := required(value, missing)
		return msg
	}
}

// differentFrom requires a value distinct from the sibling field.
func differentFrom(sibling, missing, same string) form.Rule {
	return func(value string, all form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(all[sibling])) {
			return same
		}
		return ""
	}
}

func dateRule(missing, invalid string) form.Rule {
	return func(value string, _ form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if !validator.IsValidDate(value) {
			return invalid
		}
		return ""
	}
}

func clockRule(missing string) form.Rule {
	return func(value string, _ form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		if !validator.IsValidClock(value) {
			return "Hora inválida, use el formato HH:MM"
		}
		return ""
	}
}

// intRange accepts base-10 integers in [lo, hi]. hi < 0 means unbounded.
func intRange(missing, invalid string, lo, hi int64) form.Rule {
	return func(value string, _ form.Values) string {
		if msg, ok := required(value, missing); !ok {
			return msg
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || n < lo || (hi >= 0 && n > hi) {
			return invalid
		}
		return ""
	}
}
