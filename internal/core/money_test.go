package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1500}
	b := Money{Cents: 2000}

	if a.Add(b).Cents != 3500 {
		t.Fatalf("add: got %d", a.Add(b).Cents)
	}
	if a.Sub(b).Cents != -500 {
		t.Fatalf("sub: got %d", a.Sub(b).Cents)
	}
	if b.Neg().Cents != -2000 {
		t.Fatalf("neg: got %d", b.Neg().Cents)
	}
	if a.Decimal().StringFixed(2) != "15.00" {
		t.Fatalf("decimal: got %s", a.Decimal().StringFixed(2))
	}
	if a.Float64() != 15.0 {
		t.Fatalf("float: got %v", a.Float64())
	}
}
