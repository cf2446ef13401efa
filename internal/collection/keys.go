package collection

import "regexp"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeKey turns a human-entered display value into a storage-safe
// file key: every character outside [A-Za-z0-9_-] becomes an underscore,
// case is preserved. Two different display values can sanitize to the
// same key; callers decide whether that is a conflict (see Manager's
// GuardDuplicates option).
func SanitizeKey(s string) string {
	return unsafeKeyChars.ReplaceAllString(s, "_")
}
