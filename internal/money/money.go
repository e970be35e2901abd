// Package money converts between user-entered rupee strings and the minor
// units (paise) stored on every record.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid amount")

var (
	hundred  = decimal.NewFromInt(100)
	maxPaise = decimal.NewFromInt(math.MaxInt64)
	minPaise = decimal.NewFromInt(math.MinInt64)
)

// Parse reads a rupee amount such as "1,23,456.78", "₹500" or "-42.5" and
// returns paise. Digit grouping commas are ignored; values are rounded to the
// nearest paisa. Amounts that do not fit in int64 paise are invalid.
func Parse(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "₹")
	clean = strings.TrimPrefix(clean, "INR")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return 0, ErrInvalid
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	paise := d.Mul(hundred).Round(0)
	if paise.GreaterThan(maxPaise) || paise.LessThan(minPaise) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalid, s)
	}

	return paise.IntPart(), nil
}

// Add returns a+b, or false when the sum does not fit in int64.
func Add(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}

	return sum, true
}

// ParsePositive is Parse restricted to amounts greater than zero.
func ParsePositive(s string) (int64, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}

	if v <= 0 {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalid)
	}

	return v, nil
}

// Format renders paise as rupees with Indian digit grouping, e.g. ₹1,23,456.78.
func Format(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	rupees := paise / 100
	frac := paise % 100

	return fmt.Sprintf("%s₹%s.%02d", sign, group(rupees), frac)
}

// group inserts commas after the last three digits and every two digits before that.
func group(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}

	if head != "" {
		parts = append([]string{head}, parts...)
	}

	return strings.Join(parts, ",") + "," + tail
}
