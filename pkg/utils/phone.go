package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers written without a country code.
const DefaultPhoneRegion = "ID"

// IsValidPhone reports whether s is a dialable phone number. Local numbers are read as Indonesian.
func IsValidPhone(s string) bool {
	num, err := phonenumbers.Parse(strings.TrimSpace(s), DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// NormalizePhone formats a valid number as E.164 and returns the input unchanged otherwise.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	num, err := phonenumbers.Parse(s, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return s
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
