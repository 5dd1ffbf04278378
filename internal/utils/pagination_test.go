package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 20, 20},   // empty -> default
		{"3", 1, 3},    // plain int
		{"-2", 1, -2},  // negatives parse; callers clamp
		{"007", 1, 7},  // leading zeros fine
		{"two", 1, 1},  // junk -> default
		{" 3", 1, 1},   // no trimming
		{"99999999999999999999", 5, 5}, // overflow -> default
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	cases := []struct {
		n, lo, hi, want int
	}{
		{0, 1, 100, 1},    // below floor
		{50, 1, 100, 50},  // in range
		{500, 1, 100, 100}, // above ceiling
		{1, 1, 100, 1},    // floor boundary
		{100, 1, 100, 100}, // ceiling boundary
	}
	for _, tc := range cases {
		if got := ClampInt(tc.n, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("ClampInt(%d, %d, %d) = %d; want %d", tc.n, tc.lo, tc.hi, got, tc.want)
		}
	}
}
