package record

import "testing"

func TestFormatFixedOddTies(t *testing.T) {
	cases := []struct {
		value    float64
		decimals int
		want     string
	}{
		{2.5, 0, "3"}, // floor even, tie rounds up to odd
		{3.5, 0, "3"}, // floor odd, tie stays
		{4.5, 0, "5"},
		{-2.5, 0, "-3"},
		{-3.5, 0, "-3"},
		{0.125, 2, "0.13"},
		{0.135, 2, "0.13"},
		{2.4, 0, "2"},
		{2.6, 0, "3"},
		{22.5, 1, "22.5"},
		{-27.5, 1, "-27.5"},
		{512.0, 2, "512.00"},
		{341.33333333, 4, "341.3333"},
	}
	for _, tc := range cases {
		if got := FormatFixedOdd(tc.value, tc.decimals); got != tc.want {
			t.Errorf("FormatFixedOdd(%v, %d) = %q, want %q", tc.value, tc.decimals, got, tc.want)
		}
	}
}

func TestFormatFixedOddIdempotent(t *testing.T) {
	// Re-formatting an already formatted value must not move it again.
	if got := FormatFixedOdd(3.0, 0); got != "3" {
		t.Fatalf("FormatFixedOdd(3, 0) = %q", got)
	}
	if got := FormatFixedOdd(0.13, 2); got != "0.13" {
		t.Fatalf("FormatFixedOdd(0.13, 2) = %q", got)
	}
}
