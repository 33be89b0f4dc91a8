// fetcher/transform.go
package fetcher

import "strings"

// Field cleanup rules for government CSVs. Header-to-field renaming is handled
// by csv struct tags; these transforms fix the values themselves.

// CleanString is the default transform for string cells: trim whitespace.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// CleanMake normalises a vehicle make: trim, drop stray punctuation the source
// files carry ("toyota.", "B.M.W."), and upper-case. Slashes survive so values
// like "Hatchback/Convertible" stay intact when this is reused for other
// categorical columns.
func CleanMake(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(strings.TrimSpace(b.String()))
}

// CleanInt prepares a numeric cell for integer parsing: strip thousands
// separators and whitespace. Empty cells coerce to "0", not null, so aggregate
// sums over the column stay well-defined.
func CleanInt(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
