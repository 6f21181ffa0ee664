package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/benchy"
)

// FormatHex formats f as a C99 hexadecimal float ("0x1.8p+0", "-0x1p-3").
// Infinities and NaN are written as "inf", "-inf" and "nan".
func FormatHex(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'x', -1, 64)
	// Go pads the exponent to two digits.
	p := strings.IndexByte(s, 'p')
	exp := strings.TrimLeft(s[p+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:p+2] + exp
}

// ParseHex parses text written by FormatHex, or any decimal float, at the
// precision of kind.
func ParseHex(s string, kind ScalarKind) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), kind.BitSize())
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", benchy.ErrBadFormat, kind, s)
	}
	return f, nil
}
