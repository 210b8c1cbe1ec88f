// Package receipt lays out orders as sequences of printer directives.
package receipt

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatRupiah renders a non-negative whole amount as "Rp1.000.000".
// Grouping is hardcoded to "." regardless of host locale.
func FormatRupiah(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	n := len(digits)
	if n <= 3 {
		return "Rp" + digits
	}
	// One separator per full group of three.
	out := make([]byte, 0, n+(n-1)/3)
	head := n % 3
	if head == 0 {
		head = 3
	}
	out = append(out, digits[:head]...)
	for i := head; i < n; i += 3 {
		out = append(out, '.')
		out = append(out, digits[i:i+3]...)
	}
	return "Rp" + string(out)
}

// Justify lays left and right out on one row of exactly width characters:
// left is padded with trailing spaces up to the room right leaves, or
// truncated (no ellipsis) when it does not fit. If right alone is wider
// than the row, the left side collapses to empty and right is truncated to
// width, so the result is always exactly width characters. Widths count
// runes, not bytes; one rune is assumed to occupy one printer column.
func Justify(left, right string, width int) string {
	if width < 0 {
		width = 0
	}
	budget := width - utf8.RuneCountInString(right)
	if budget < 0 {
		return truncateRunes(right, width)
	}
	if utf8.RuneCountInString(left) > budget {
		left = truncateRunes(left, budget)
	}
	return left + strings.Repeat(" ", budget-utf8.RuneCountInString(left)) + right
}

// truncateRunes cuts s to at most n runes, never splitting a codepoint.
func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
