package handlers

import (
	"math"
	"strings"
	"unicode"
)

// parseLeadingInt reads an optionally signed base-10 integer prefix after
// leading whitespace, ignoring anything that follows it ("12abc" is 12).
// ok is false when no digits are found. Out-of-range values saturate.
func parseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var v int64
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if v <= (math.MaxInt32-9)/10 {
			v = v*10 + int64(s[digits]-'0')
		} else {
			v = math.MaxInt32
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}

	if negative {
		v = -v
	}
	return int(v), true
}
