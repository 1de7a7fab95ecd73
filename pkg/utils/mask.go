package utils

import "strings"

// MaskEmail hides the local part of an address for logging.
// Example: budi@dinas.go.id -> b***@dinas.go.id
func MaskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	switch {
	case email == "":
		return ""
	case at < 0:
		return "***"
	case at <= 1:
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}
