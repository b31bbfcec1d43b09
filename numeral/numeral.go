// Package numeral converts between integers and the roman numeral and
// alphabetic ordinal forms used by fancy list markers.
package numeral

import "strings"

// MaxRoman is the largest value representable as a roman numeral.
const MaxRoman = 3999

var romanDigits = []struct {
	value int
	upper string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"},
	{1, "I"},
}

// ToRoman returns the canonical roman numeral for n, in upper or lower case.
// Returns the empty string if n is outside [1, MaxRoman].
func ToRoman(n int, upper bool) string {
	if n < 1 || n > MaxRoman {
		return ""
	}
	var sb strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			sb.WriteString(d.upper)
			n -= d.value
		}
	}
	if upper {
		return sb.String()
	}
	return strings.ToLower(sb.String())
}

// RomanValue returns the value of a single roman numeral character, in
// either case, or 0 if c is not one.
func RomanValue(c byte) int {
	switch c {
	case 'i', 'I':
		return 1
	case 'v', 'V':
		return 5
	case 'x', 'X':
		return 10
	case 'l', 'L':
		return 50
	case 'c', 'C':
		return 100
	case 'd', 'D':
		return 500
	case 'm', 'M':
		return 1000
	}
	return 0
}

// IsRoman returns true if s is non-empty and made only of roman numeral
// characters of a single case.
func IsRoman(s string) bool {
	if s == "" {
		return false
	}
	upper := s[0] >= 'A' && s[0] <= 'Z'
	for i := 0; i < len(s); i++ {
		c := s[i]
		if RomanValue(c) == 0 || (c >= 'A' && c <= 'Z') != upper {
			return false
		}
	}
	return true
}

// FromRoman parses a roman numeral in either case, using the subtractive
// rule: a character smaller than its successor is subtracted.
// Non-canonical forms (e.g. "IIII") are summed rather than rejected.
// Returns false if s contains any non-roman character.
func FromRoman(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	total := 0
	for i := 0; i < len(s); i++ {
		v := RomanValue(s[i])
		if v == 0 {
			return 0, false
		}
		if j := i + 1; j < len(s) && RomanValue(s[j]) > v {
			total -= v
		} else {
			total += v
		}
	}
	if total < 1 {
		return 0, false
	}
	return total, true
}

// ToLetters returns the bijective base-26 letter form of n: 1 is "a", 26 is
// "z", 27 is "aa", and so on. Returns the empty string if n < 1.
func ToLetters(n int, upper bool) string {
	if n < 1 {
		return ""
	}
	base := byte('a')
	if upper {
		base = 'A'
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = base + byte(n%26)
		n /= 26
	}
	return string(buf[i:])
}

// FromLetters parses a bijective base-26 letter form in a single case.
// Returns false if s is empty, mixes case, or contains a non-letter.
func FromLetters(s string) (int, bool) {
	if s == "" || len(s) > 12 {
		return 0, false
	}
	var base byte
	switch c := s[0]; {
	case c >= 'a' && c <= 'z':
		base = 'a'
	case c >= 'A' && c <= 'Z':
		base = 'A'
	default:
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		d := s[i] - base
		if s[i] < base || d >= 26 {
			return 0, false
		}
		n = n*26 + int(d) + 1
	}
	return n, true
}
