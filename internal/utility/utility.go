package utility

import (
	"strings"
)

// ValidateUserID checks that a caller-supplied identifier is usable.
// The API trusts identifiers issued by the external login system, so the only
// checks are presence and the sentinel strings mobile clients send for a
// missing value.
func ValidateUserID(userID string) bool {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" || trimmed == "null" || trimmed == "undefined" {
		return false
	}
	return true
}

// FirstNonEmpty returns the first string that is not empty after trimming.
// Handlers use it to accept both snake_case and camelCase field names.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
