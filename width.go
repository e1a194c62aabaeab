package vtengine

import "github.com/unilibs/uniwidth"

// isWideRune reports whether r occupies two grid columns (CJK ideographs,
// fullwidth forms, emoji) — spec's utf8_isdouble.
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// isCombiningRune reports whether r is a zero-width combining mark that
// attaches to the preceding base cell instead of occupying its own column.
func isCombiningRune(r rune) bool {
	return r >= 0x0300 && uniwidth.RuneWidth(r) == 0
}
