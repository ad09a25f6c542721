// Package paradigm walks a dictionary page once and assembles the full
// inflection record for the word it describes: a noun, adjective or verb
// paradigm of wordform.Form slots.
package paradigm

import (
	"github.com/etamarw/hebforms/pkg/translit"
	"github.com/etamarw/hebforms/pkg/wordform"
)

// Part-of-speech tags carried on a Result.
const (
	POSNoun      = "noun"
	POSAdjective = "adjective"
	POSVerb      = "verb"
)

// GenderNumber is the m/f × sg/pl grid one tense (or an adjective) fills.
type GenderNumber struct {
	MascSingular wordform.Form `json:"masculine_singular"`
	FemSingular  wordform.Form `json:"feminine_singular"`
	MascPlural   wordform.Form `json:"masculine_plural"`
	FemPlural    wordform.Form `json:"feminine_plural"`
}

// Normalized applies the substitution passes to every form in the grid.
func (g GenderNumber) Normalized(opts translit.Options) GenderNumber {
	g.MascSingular = g.MascSingular.Normalized(opts)
	g.FemSingular = g.FemSingular.Normalized(opts)
	g.MascPlural = g.MascPlural.Normalized(opts)
	g.FemPlural = g.FemPlural.Normalized(opts)
	return g
}

// PersonTable is a full person × gender × number grid for past and future
// tense. Slots the source shares across genders (1st person, past 3rd
// plural) hold the same form in both gender fields.
type PersonTable struct {
	First  GenderNumber `json:"first"`
	Second GenderNumber `json:"second"`
	Third  GenderNumber `json:"third"`
}

func (p PersonTable) Normalized(opts translit.Options) PersonTable {
	p.First = p.First.Normalized(opts)
	p.Second = p.Second.Normalized(opts)
	p.Third = p.Third.Normalized(opts)
	return p
}

// Noun is the paradigm of a noun page. Gender tags the whole record; the
// two forms are not yet routed into a four-cell display (that is the
// renderer's job).
type Noun struct {
	Gender   string        `json:"gender"`
	Pattern  string        `json:"pattern"`
	Meaning  string        `json:"meaning"`
	URL      string        `json:"url"`
	Root     string        `json:"root"`
	Singular wordform.Form `json:"singular"`
	Plural   wordform.Form `json:"plural"`
}

func (n Noun) Normalized(opts translit.Options) Noun {
	n.Singular = n.Singular.Normalized(opts)
	n.Plural = n.Plural.Normalized(opts)
	return n
}

// Adjective is the paradigm of an adjective page.
type Adjective struct {
	Pattern string       `json:"pattern"`
	Meaning string       `json:"meaning"`
	URL     string       `json:"url"`
	Root    string       `json:"root"`
	Forms   GenderNumber `json:"forms"`
}

func (a Adjective) Normalized(opts translit.Options) Adjective {
	a.Forms = a.Forms.Normalized(opts)
	return a
}

// Verb is the paradigm of a verb page. ImperativeMeaning and FutureMeaning
// are derived from Meaning by particle rewriting.
type Verb struct {
	Binyan            string        `json:"binyan"`
	Meaning           string        `json:"meaning"`
	URL               string        `json:"url"`
	Root              string        `json:"root"`
	Infinitive        wordform.Form `json:"infinitive"`
	Present           GenderNumber  `json:"present"`
	Imperative        GenderNumber  `json:"imperative"`
	ImperativeMeaning string        `json:"imperative_meaning"`
	Past              PersonTable   `json:"past"`
	Future            PersonTable   `json:"future"`
	FutureMeaning     string        `json:"future_meaning"`
}

func (v Verb) Normalized(opts translit.Options) Verb {
	v.Infinitive = v.Infinitive.Normalized(opts)
	v.Present = v.Present.Normalized(opts)
	v.Imperative = v.Imperative.Normalized(opts)
	v.Past = v.Past.Normalized(opts)
	v.Future = v.Future.Normalized(opts)
	return v
}

// Result is one extraction run's output: the part-of-speech tag plus exactly
// one populated paradigm.
type Result struct {
	POS       string     `json:"pos"`
	Noun      *Noun      `json:"noun,omitempty"`
	Adjective *Adjective `json:"adjective,omitempty"`
	Verb      *Verb      `json:"verb,omitempty"`
}

// Normalized returns a copy of the result with the substitution passes
// applied to every form and variant it holds.
func (r Result) Normalized(opts translit.Options) Result {
	if r.Noun != nil {
		n := r.Noun.Normalized(opts)
		r.Noun = &n
	}
	if r.Adjective != nil {
		a := r.Adjective.Normalized(opts)
		r.Adjective = &a
	}
	if r.Verb != nil {
		v := r.Verb.Normalized(opts)
		r.Verb = &v
	}
	return r
}

// Headword returns the page's dictionary form: the noun singular, adjective
// masculine singular, or verb infinitive.
func (r Result) Headword() wordform.Form {
	switch {
	case r.Noun != nil:
		return r.Noun.Singular
	case r.Adjective != nil:
		return r.Adjective.Forms.MascSingular
	case r.Verb != nil:
		return r.Verb.Infinitive
	}
	return wordform.Form{}
}
