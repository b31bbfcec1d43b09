package textutil

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis terminates truncated text.
const Ellipsis = "…"

// Truncate shortens s to at most n runes, cutting back to the last space if
// there is one, and appending Ellipsis. Text within the limit is returned
// unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if n == 0 {
			cut = i
			break
		}
		n--
	}
	head := s[:cut]
	if s[cut] != ' ' {
		if i := strings.LastIndexByte(head, ' '); i > 0 {
			head = head[:i]
		}
	}
	return strings.TrimRight(head, " \t.,;:") + Ellipsis
}
