// Package utils provides shared utilities for logging, vector parsing and formatting.
package utils

import (
	"strconv"
	"strings"
)

// FormatVector renders v as "[a, b, ...]" using the shortest representation
// with at most precision significant digits (precision <= 0 means exact).
func FormatVector(v []float64, precision int) string {
	if precision <= 0 {
		precision = -1
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(x, 'g', precision, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
