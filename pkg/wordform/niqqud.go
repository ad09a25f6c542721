package wordform

import "strings"

// Hebrew pointing and cantillation marks occupy U+0591..U+05C7. The few
// non-combining characters inside that range (maqaf, paseq, sof pasuq, nun
// hafukha) are spelling, not pointing, and survive the strip.
func isNiqqud(r rune) bool {
	if r < '֑' || r > 'ׇ' {
		return false
	}
	switch r {
	case '־', '׀', '׃', '׆':
		return false
	}
	return true
}

// StripNiqqud removes every Hebrew pointing and cantillation mark from s,
// turning a pointed spelling into the unpointed one.
func StripNiqqud(s string) string {
	return strings.Map(func(r rune) rune {
		if isNiqqud(r) {
			return -1
		}
		return r
	}, s)
}
