package validate

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"crmlite/internal/domain"
)

// MaxIDLen bounds user and product identifiers.
const MaxIDLen = 64

// ID validates a user/product identifier: trimmed, non-empty, bounded length.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= MaxIDLen
}

// Direction accepts "" (both directions), "C" and "V", case-insensitively.
func Direction(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "", domain.DirectionIn, domain.DirectionOut:
		return s, true
	}
	return "", false
}

// Quantity accepts a blank value or a non-negative whole number.
func Quantity(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return s, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

// Amount accepts a blank value or a decimal number.
func Amount(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return s, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", false
	}
	return d.String(), true
}

// Flag normalizes a role checkbox value to the stored marker or "".
func Flag(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case domain.Checked, "on", "1", "true", "yes":
		return domain.Checked
	}
	return ""
}

// Action maps a submit button value onto a write operation.
func Action(s string) (domain.Operation, bool) {
	return domain.ParseOperation(strings.ToLower(strings.TrimSpace(s)))
}
