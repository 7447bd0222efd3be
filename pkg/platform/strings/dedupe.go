// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// Normalize lowercases a value and collapses runs of interior whitespace to a
// single space, trimming the ends. Location names arrive from several sources
// with inconsistent casing and spacing; comparing normalized forms joins them.
//
// Example:
//
//	Normalize("  Chiang   Mai ")
//	// Returns: "chiang mai"
func Normalize(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
