package checkout

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Upper bound accepted by the card processor for a single charge.
const MaxAmountCents = 99_999_999

// Plain decimal dollars only: no sign, exponent, digit separators or hex.
var plainDecimal = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount converts a dollar amount typed by the donor ("7.50", "$20") to cents.
// Extra fraction digits are rounded to the nearest cent.
func ParseAmount(raw string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if !plainDecimal.MatchString(s) {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(v * 100)
	if cents <= 0 || cents > MaxAmountCents {
		return 0, ErrInvalidAmount
	}
	return int(cents), nil
}

func isPreset(dollars int) bool {
	for _, p := range PresetAmounts {
		if p == dollars {
			return true
		}
	}
	return false
}
