package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVector parses a comma-separated list of floats, optionally wrapped in
// square brackets, e.g. "0.1,0.2" or "[0.1, 0.2]". An empty list yields an
// empty, non-nil vector.
func ParseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	out := make([]float64, 0)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for i, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
