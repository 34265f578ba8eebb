// Package core holds the domain records shared across the service and the
// parsing helpers for user-entered amounts and dates.
//
// Amounts are whole New Taiwan dollars (no minor unit in circulation for
// household bookkeeping); parsing tolerates thousands separators and a
// fractional part, which is rounded half-up.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-entered amount string to whole NTD.
//
// It accepts thousands separators ("1,234,567") and an optional fractional
// part, which is rounded half-up on the first decimal digit. Zero is a valid
// amount (an unpaid item has paid amount "0"). Returns an error for empty
// strings, negative values, or non-numeric input.
//
// Examples:
//
//	ParseAmount("5000")      -> 5000, nil
//	ParseAmount("1,000,000") -> 1000000, nil
//	ParseAmount("33333.4")   -> 33333, nil (rounds down)
//	ParseAmount("33333.5")   -> 33334, nil (rounds up)
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only non-negative values allowed
		return 0, ErrInvalidAmount
	}
	// Thousands separators are display noise
	s = strings.ReplaceAll(s, ",", "")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	v, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Half-up on the first fractional digit
	if len(fracPart) > 0 && fracPart[0] >= '5' {
		v++
	}
	return v, nil
}

// AmountOrZero is the lenient variant used when reading free-text record
// fields: blank or malformed input counts as zero rather than failing.
func AmountOrZero(s string) int64 {
	v, err := ParseAmount(s)
	if err != nil {
		return 0
	}
	return v
}

// FormatNTD renders whole NTD with thousands separators, e.g. "NT$1,234,567".
func FormatNTD(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-NT$" + b.String()
	}
	return "NT$" + b.String()
}
