package paradigm

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/etamarw/hebforms/pkg/htmlq"
	"github.com/etamarw/hebforms/pkg/wordform"
)

// Row labels gating the tense blocks of the conjugation table.
const (
	rowNounAbsolute = "Absolute state"
	rowPresent      = "Present tense"
	rowImperative   = "Imperative"
	rowFuture       = "Future tense"
	rowPast         = "Past tense"
)

var locConjTable = htmlq.MustLocator("table.conjugation-table")

// Extract walks the whole page and assembles the paradigm for its word.
// posHint overrides detection when non-empty; with an empty hint a page whose
// header matches no part-of-speech pattern fails with ErrPartOfSpeech and no
// partial record is returned.
func Extract(doc *html.Node, pageURL, posHint string) (Result, error) {
	info, err := Detect(doc)
	if err != nil {
		if posHint == "" {
			return Result{}, err
		}
		info = Info{POS: posHint, Gender: genderUnknown}
	}

	switch info.POS {
	case POSNoun:
		n := ExtractNoun(doc, pageURL, info)
		return Result{POS: POSNoun, Noun: &n}, nil
	case POSAdjective:
		a := ExtractAdjective(doc, pageURL, info)
		return Result{POS: POSAdjective, Adjective: &a}, nil
	case POSVerb:
		v := ExtractVerb(doc, pageURL, info)
		return Result{POS: POSVerb, Verb: &v}, nil
	}
	return Result{}, ErrPartOfSpeech
}

// ExtractNoun reads the singular/plural pair from the absolute-state row.
func ExtractNoun(doc *html.Node, pageURL string, info Info) Noun {
	table := locConjTable.First(doc)
	row := htmlq.FindRowByLabel(table, rowNounAbsolute)
	return Noun{
		Gender:   info.Gender,
		Pattern:  info.Pattern,
		Meaning:  meaningText(doc),
		URL:      pageURL,
		Root:     rootText(doc),
		Singular: slotForm(row, SlotNounSingular),
		Plural:   slotForm(row, SlotNounPlural),
	}
}

// ExtractAdjective reads the four adjective forms at table scope.
func ExtractAdjective(doc *html.Node, pageURL string, info Info) Adjective {
	table := locConjTable.First(doc)
	return Adjective{
		Pattern: info.Pattern,
		Meaning: meaningText(doc),
		URL:     pageURL,
		Root:    rootText(doc),
		Forms:   genderNumber(table, SlotAdjMascSingular, SlotAdjFemSingular, SlotAdjMascPlural, SlotAdjFemPlural),
	}
}

// ExtractVerb reads the infinitive and all four tense blocks. A tense whose
// labeled row is missing leaves the whole block as empty forms.
func ExtractVerb(doc *html.Node, pageURL string, info Info) Verb {
	table := locConjTable.First(doc)
	meaning := meaningText(doc)

	v := Verb{
		Binyan:            info.Binyan,
		Meaning:           meaning,
		URL:               pageURL,
		Root:              rootText(doc),
		Infinitive:        slotForm(table, SlotInfinitive),
		ImperativeMeaning: strings.ReplaceAll(meaning, "to ", ""),
		FutureMeaning:     strings.ReplaceAll(meaning, "to ", "will "),
	}

	if row := htmlq.FindRowByLabel(table, rowPresent); row != nil {
		v.Present = genderNumber(row, SlotPresentMascSingular, SlotPresentFemSingular, SlotPresentMascPlural, SlotPresentFemPlural)
	}
	if row := htmlq.FindRowByLabel(table, rowImperative); row != nil {
		imp := genderNumber(row, SlotImperativeMascSingular, SlotImperativeFemSingular, SlotImperativeMascPlural, SlotImperativeFemPlural)
		v.Imperative = GenderNumber{
			MascSingular: stripImperative(imp.MascSingular),
			FemSingular:  stripImperative(imp.FemSingular),
			MascPlural:   stripImperative(imp.MascPlural),
			FemPlural:    stripImperative(imp.FemPlural),
		}
	}
	if row := htmlq.FindRowByLabel(table, rowFuture); row != nil {
		f1s := slotForm(row, SlotFuture1Singular)
		f1p := slotForm(row, SlotFuture1Plural)
		v.Future = PersonTable{
			First:  duplicated(f1s, f1p),
			Second: genderNumber(row, SlotFuture2MascSingular, SlotFuture2FemSingular, SlotFuture2MascPlural, SlotFuture2FemPlural),
			Third:  genderNumber(row, SlotFuture3MascSingular, SlotFuture3FemSingular, SlotFuture3MascPlural, SlotFuture3FemPlural),
		}
	}
	if row := htmlq.FindRowByLabel(table, rowPast); row != nil {
		p1s := slotForm(row, SlotPast1Singular)
		p1p := slotForm(row, SlotPast1Plural)
		p3p := slotForm(row, SlotPast3Plural)
		v.Past = PersonTable{
			First:  duplicated(p1s, p1p),
			Second: genderNumber(row, SlotPast2MascSingular, SlotPast2FemSingular, SlotPast2MascPlural, SlotPast2FemPlural),
			Third: GenderNumber{
				MascSingular: slotForm(row, SlotPast3MascSingular),
				FemSingular:  slotForm(row, SlotPast3FemSingular),
				MascPlural:   p3p,
				FemPlural:    p3p,
			},
		}
	}
	return v
}

// slotForm resolves one slot inside scope and runs the form extractor plus
// both variant extractors on it. An unresolved slot is the zero Form.
func slotForm(scope *html.Node, s Slot) wordform.Form {
	el := htmlq.ByID(scope, s.id())
	if el == nil {
		return wordform.Form{}
	}
	f := wordform.Extract(el)

	vars := wordform.ContainedVariants(el)
	cell := htmlq.ClosestCell(el)
	if cell == nil {
		cell = el
	}
	dropUnstressed, dropModern := s.noteFilters()
	vars = append(vars, wordform.AuxVariants(cell, dropUnstressed, dropModern)...)
	if len(vars) > 0 {
		f.Variations = vars
	}
	return f
}

func genderNumber(scope *html.Node, ms, fs, mp, fp Slot) GenderNumber {
	return GenderNumber{
		MascSingular: slotForm(scope, ms),
		FemSingular:  slotForm(scope, fs),
		MascPlural:   slotForm(scope, mp),
		FemPlural:    slotForm(scope, fp),
	}
}

// duplicated spreads gender-shared singular/plural forms across the grid.
func duplicated(singular, plural wordform.Form) GenderNumber {
	return GenderNumber{
		MascSingular: singular,
		FemSingular:  singular,
		MascPlural:   plural,
		FemPlural:    plural,
	}
}

// stripImperative removes the exclamation marks the source prints on
// imperative forms, in each text field independently.
func stripImperative(f wordform.Form) wordform.Form {
	f.Pointed = stripBang(f.Pointed)
	f.Unpointed = stripBang(f.Unpointed)
	f.Transliteration = stripBang(f.Transliteration)
	if len(f.Variations) > 0 {
		vs := make([]wordform.Variant, len(f.Variations))
		for i, v := range f.Variations {
			v.Pointed = stripBang(v.Pointed)
			v.Unpointed = stripBang(v.Unpointed)
			v.Transliteration = stripBang(v.Transliteration)
			vs[i] = v
		}
		f.Variations = vs
	}
	return f
}

func stripBang(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "!", ""))
}
