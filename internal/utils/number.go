package utils

import (
	"strconv"
	"strings"
)

// FormatCount renders an integer with Indonesian thousand separators,
// e.g. 1234567 -> "1.234.567".
func FormatCount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return sign + out.String()
}
