// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dedupe removes duplicates and empty values from a slice. Order is
// preserved and elements are otherwise left as-is: identifiers are opaque,
// so " 7" and "7" are different values. It works on any string kind so
// typed identifiers can be normalized without conversion loops.
//
// Example:
//
//	Dedupe([]ObjectID{"7", "3", "7", ""})
//	// Returns: []ObjectID{"7", "3"}
func Dedupe[S ~string](values []S) []S {
	if len(values) == 0 {
		return values
	}

	seen := make(map[S]struct{}, len(values))
	result := make([]S, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}

	return result
}

// Humanize turns an identifier such as "has_positive_total" into
// "Has positive total": underscores become spaces, the first letter is
// upper-cased and the rest lower-cased.
func Humanize(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Truncate cuts s to at most max runes without splitting a multi-byte rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
