// Package shared holds small domain helpers used by more than one aggregate.
package shared

import "strings"

// NormalizeName is the single key used to compare ingredient, pantry and tag
// names: surrounding whitespace trimmed, lower-cased.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
