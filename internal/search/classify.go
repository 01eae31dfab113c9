package search

import "os"

// isRegularFile follows symlinks and reports whether path is a regular file.
// Anything whose metadata cannot be read is treated as ineligible.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
