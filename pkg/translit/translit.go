// Package translit rewrites romanized transliterations while keeping the
// stress offset pointing at the same logical character.
package translit

import "strings"

// Options selects which substitution passes to run. Both default to off;
// a disabled pass leaves the transliteration and offset untouched.
type Options struct {
	// KhToCh replaces every "kh" with "ch". Same length, so the stress
	// offset never moves.
	KhToCh bool
	// TzToC replaces every "tz" with "c" and shifts the stress offset left
	// once for each occurrence that starts before it.
	TzToC bool
}

const (
	khSeq  = "kh"
	khRepl = "ch"
	tzSeq  = "tz"
	tzRepl = "c"
)

// Apply runs the enabled passes in a fixed order (kh→ch before tz→c) and
// returns the rewritten transliteration with the adjusted stress offset.
// Offsets are rune offsets.
func Apply(transliteration string, stress int, opts Options) (string, int) {
	if opts.KhToCh {
		transliteration = strings.ReplaceAll(transliteration, khSeq, khRepl)
	}
	if opts.TzToC {
		// Count shrinkage before substituting: the replacement is one rune
		// shorter, so the offset moves left once per occurrence ahead of it.
		stress -= occurrencesBefore(transliteration, tzSeq, stress)
		if stress < 0 {
			stress = 0
		}
		transliteration = strings.ReplaceAll(transliteration, tzSeq, tzRepl)
	}
	return transliteration, stress
}

// occurrencesBefore counts matches of seq starting at a rune index strictly
// below limit. The scan advances one rune at a time, so overlapping matches
// are all counted.
func occurrencesBefore(s, seq string, limit int) int {
	rs := []rune(s)
	pat := []rune(seq)
	if len(pat) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(pat) <= len(rs) && i < limit; i++ {
		if string(rs[i:i+len(pat)]) == seq {
			count++
		}
	}
	return count
}
