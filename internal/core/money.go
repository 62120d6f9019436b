// Package core provides the ledger's domain types and input validation.
//
// This file contains the amount parsing used at the input boundary, before
// an entry reaches the ledger.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts user-entered text into a finite, non-zero amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional leading sign. The sign is preserved: the ledger stores the
// absolute value and carries direction in the transaction type.
//
// Examples:
//
//	ParseAmount("250")    -> 250, nil
//	ParseAmount("12,50")  -> 12.5, nil
//	ParseAmount("-40")    -> -40, nil
//	ParseAmount("0")      -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(digits, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	seen := false
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidAmount
			}
			seen = true
		}
	}
	if !seen {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v == 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// SafeAmount coerces a stored amount into something safe to sum:
// non-finite values count as zero.
func SafeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Entry is validated user input ready to be added to a ledger.
type Entry struct {
	Description string
	Amount      float64
	Type        TransactionType
}

// ValidateEntry checks raw form input the way the presentation layer must
// before calling the ledger: a non-empty trimmed description and a finite,
// non-zero amount.
func ValidateEntry(description, amount, typ string) (Entry, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Entry{}, ErrEmptyDescription
	}
	v, err := ParseAmount(amount)
	if err != nil {
		return Entry{}, err
	}
	t, err := ParseType(typ)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Description: desc, Amount: v, Type: t}, nil
}
