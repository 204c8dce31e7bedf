package utils

import "testing"

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
		{-4500, "-4.500"},
	}
	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Fatalf("FormatCount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
