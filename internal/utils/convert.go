package utils

import "strconv"

// AtoiDefault parses s, falling back to def on empty or malformed input.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
