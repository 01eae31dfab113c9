package search

import "strings"

// Contains reports whether term occurs in content as an exact,
// case-sensitive substring. The empty term matches everything.
func Contains(content, term string) bool {
	return strings.Contains(content, term)
}
