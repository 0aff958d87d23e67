package util

import (
	"math"
	"strconv"
)

// ParseIntDefault parses s, falling back to def when s is empty or malformed.
func ParseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Round2 rounds to two decimal places, half up (toward +Inf), so -0.125 gives
// -0.12. The epsilon nudges values like 12.345 whose binary form sits just
// below the half.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5+1e-9) / 100
}
