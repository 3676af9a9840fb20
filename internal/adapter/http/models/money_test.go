package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"150.00", 15000},
		{"0.01", 1},
		{"1000", 100000},
		{"99.9", 9990},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		got, err := ToMinorUnits(amount)
		if err != nil {
			t.Fatalf("ToMinorUnits(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ToMinorUnits(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestToMinorUnitsRejectsSubCentPrecision(t *testing.T) {
	amount, err := decimal.NewFromString("10.001")
	if err != nil {
		t.Fatalf("parse amount: %v", err)
	}
	if _, err := ToMinorUnits(amount); err == nil {
		t.Fatal("expected error for sub-cent precision")
	}
}

func TestFormatMinorUnits(t *testing.T) {
	if got := FormatMinorUnits(15000); got != "150.00" {
		t.Errorf("FormatMinorUnits(15000) = %q, want \"150.00\"", got)
	}
	if got := FormatMinorUnits(1); got != "0.01" {
		t.Errorf("FormatMinorUnits(1) = %q, want \"0.01\"", got)
	}
	if got := FormatMinorUnits(0); got != "0.00" {
		t.Errorf("FormatMinorUnits(0) = %q, want \"0.00\"", got)
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, minor := range []int64{0, 1, 99, 100, 123456789} {
		amount := FromMinorUnits(minor)
		got, err := ToMinorUnits(amount)
		if err != nil {
			t.Fatalf("round trip %d: %v", minor, err)
		}
		if got != minor {
			t.Errorf("round trip %d produced %d", minor, got)
		}
	}
}
