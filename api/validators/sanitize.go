package validators

import "strings"

// SanitizeString trims surrounding whitespace and clamps the value to maxLen
// bytes. A maxLen of zero disables the length clamp.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return trimmed
}
