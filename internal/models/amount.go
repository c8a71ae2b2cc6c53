package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a user-entered weight or rep count. Both "37.5" and
// "37,5" are accepted. Empty or unparsable text yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
