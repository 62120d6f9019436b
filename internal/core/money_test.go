package core

import (
	"errors"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"250", 250, true},
		{"1.23", 1.23, true},
		{"1,23", 1.23, true},
		{" 2.50 ", 2.5, true},
		{".5", 0.5, true},
		{"-40", -40, true},
		{"+7", 7, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"--1", 0, false},
		{"abc", 0, false},
		{"1e9", 0, false},
		{"1.2.3", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %v", tc.in, got)
		}
	}
}

func TestSafeAmount(t *testing.T) {
	if SafeAmount(math.NaN()) != 0 || SafeAmount(math.Inf(1)) != 0 {
		t.Fatalf("non-finite amounts must coerce to zero")
	}
	if SafeAmount(12.5) != 12.5 {
		t.Fatalf("finite amounts must pass through")
	}
}

func TestValidateEntry(t *testing.T) {
	e, err := ValidateEntry("  Lunch ", "250", "expense")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.Description != "Lunch" || e.Amount != 250 || e.Type != Expense {
		t.Fatalf("unexpected entry %+v", e)
	}

	if _, err := ValidateEntry("   ", "10", "income"); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := ValidateEntry("Taxi", "0", "expense"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := ValidateEntry("Taxi", "5", "loan"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}
