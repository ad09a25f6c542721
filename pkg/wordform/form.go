// Package wordform extracts single grammatical forms (pointed spelling,
// unpointed spelling, transliteration, stress offset) and their spelling
// variants from a conjugation-table subtree.
package wordform

import "github.com/etamarw/hebforms/pkg/translit"

// Variant is one rendering of a grammatical slot. StressOffset is a rune
// index into Transliteration; it is 0 and meaningless when no stress marker
// was present in the source.
type Variant struct {
	Pointed         string `json:"pointed"`
	Unpointed       string `json:"unpointed"`
	Transliteration string `json:"transliteration"`
	StressOffset    int    `json:"stress_offset"`
}

// IsZero reports whether the variant carries no spelling at all.
func (v Variant) IsZero() bool {
	return v.Pointed == "" && v.Unpointed == "" && v.Transliteration == ""
}

// Normalized returns the variant after the given substitution passes.
func (v Variant) Normalized(opts translit.Options) Variant {
	v.Transliteration, v.StressOffset = translit.Apply(v.Transliteration, v.StressOffset, opts)
	return v
}

// Form is the primary rendering of a slot plus any alternate renderings.
// A slot missing from the source is the zero Form, never an absent field.
type Form struct {
	Pointed         string    `json:"pointed"`
	Unpointed       string    `json:"unpointed"`
	Transliteration string    `json:"transliteration"`
	StressOffset    int       `json:"stress_offset"`
	Variations      []Variant `json:"variations,omitempty"`
}

// IsZero reports whether the form carries no spelling and no variants.
func (f Form) IsZero() bool {
	return f.Pointed == "" && f.Unpointed == "" && f.Transliteration == "" && len(f.Variations) == 0
}

// Normalized returns a copy of the form with the substitution passes applied
// to it and to every variant. The receiver is left untouched.
func (f Form) Normalized(opts translit.Options) Form {
	f.Transliteration, f.StressOffset = translit.Apply(f.Transliteration, f.StressOffset, opts)
	if len(f.Variations) > 0 {
		vs := make([]Variant, len(f.Variations))
		for i, v := range f.Variations {
			vs[i] = v.Normalized(opts)
		}
		f.Variations = vs
	}
	return f
}
