// Package render turns an extracted paradigm into presentational tables,
// plain text for the terminal and HTML for the exported page. It implements
// no extraction logic; empty forms render as empty cells.
package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/etamarw/hebforms/pkg/paradigm"
	"github.com/etamarw/hebforms/pkg/wordform"
)

type section struct {
	title  string
	header table.Row
	rows   []table.Row
}

// Text renders the result as terminal tables.
func Text(r paradigm.Result) string {
	var b strings.Builder
	b.WriteString(heading(r))
	for _, s := range sections(r) {
		b.WriteString("\n" + s.title + "\n")
		b.WriteString(writerFor(s).Render())
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders the result as a standalone HTML page.
func HTML(r paradigm.Result) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", htmlEscape(strings.TrimSpace(heading(r))))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", htmlEscape(strings.TrimSpace(heading(r))))
	for _, s := range sections(r) {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", htmlEscape(s.title))
		b.WriteString(writerFor(s).RenderHTML())
		b.WriteString("\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writerFor(s section) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(s.header)
	t.AppendRows(s.rows)
	return t
}

func heading(r paradigm.Result) string {
	switch {
	case r.Noun != nil:
		return fmt.Sprintf("%s (%s, %s) %s", r.Noun.Singular.Unpointed, r.POS, r.Noun.Gender, r.Noun.Meaning)
	case r.Adjective != nil:
		return fmt.Sprintf("%s (%s) %s", r.Adjective.Forms.MascSingular.Unpointed, r.POS, r.Adjective.Meaning)
	case r.Verb != nil:
		return fmt.Sprintf("%s (%s, %s) %s", r.Verb.Infinitive.Unpointed, r.POS, r.Verb.Binyan, r.Verb.Meaning)
	}
	return r.POS
}

func sections(r paradigm.Result) []section {
	switch {
	case r.Noun != nil:
		return nounSections(*r.Noun)
	case r.Adjective != nil:
		return adjectiveSections(*r.Adjective)
	case r.Verb != nil:
		return verbSections(*r.Verb)
	}
	return nil
}

// nounSections routes the singular/plural pair into the column matching the
// record's gender; the other gender's cells stay empty. The mapper's output
// is gender-tagged but not yet split into display cells, so the split
// happens here.
func nounSections(n paradigm.Noun) []section {
	mascSg, femSg, mascPl, femPl := "", "", "", ""
	if n.Gender == "feminine" {
		femSg, femPl = cell(n.Singular), cell(n.Plural)
	} else {
		mascSg, mascPl = cell(n.Singular), cell(n.Plural)
	}
	return []section{{
		title:  "Declension",
		header: table.Row{"", "Masculine", "Feminine"},
		rows: []table.Row{
			{"Singular", mascSg, femSg},
			{"Plural", mascPl, femPl},
		},
	}}
}

func adjectiveSections(a paradigm.Adjective) []section {
	return []section{{
		title:  "Forms",
		header: table.Row{"", "Masculine", "Feminine"},
		rows: []table.Row{
			{"Singular", cell(a.Forms.MascSingular), cell(a.Forms.FemSingular)},
			{"Plural", cell(a.Forms.MascPlural), cell(a.Forms.FemPlural)},
		},
	}}
}

func verbSections(v paradigm.Verb) []section {
	gnHeader := table.Row{"", "Masc. singular", "Fem. singular", "Masc. plural", "Fem. plural"}
	gnRow := func(label string, g paradigm.GenderNumber) table.Row {
		return table.Row{label, cell(g.MascSingular), cell(g.FemSingular), cell(g.MascPlural), cell(g.FemPlural)}
	}
	return []section{
		{
			title:  "Infinitive",
			header: table.Row{"Form"},
			rows:   []table.Row{{cell(v.Infinitive)}},
		},
		{
			title:  "Present tense",
			header: gnHeader,
			rows:   []table.Row{gnRow("Present", v.Present)},
		},
		{
			title:  "Imperative (" + v.ImperativeMeaning + ")",
			header: gnHeader,
			rows:   []table.Row{gnRow("2nd person", v.Imperative)},
		},
		{
			title:  "Past tense",
			header: gnHeader,
			rows: []table.Row{
				gnRow("1st person", v.Past.First),
				gnRow("2nd person", v.Past.Second),
				gnRow("3rd person", v.Past.Third),
			},
		},
		{
			title:  "Future tense (" + v.FutureMeaning + ")",
			header: gnHeader,
			rows: []table.Row{
				gnRow("1st person", v.Future.First),
				gnRow("2nd person", v.Future.Second),
				gnRow("3rd person", v.Future.Third),
			},
		},
	}
}

// cell renders one form as a multi-line cell: pointed spelling,
// transliteration, then every variant.
func cell(f wordform.Form) string {
	if f.Pointed == "" && f.Unpointed == "" && f.Transliteration == "" {
		return ""
	}
	lines := []string{spelling(f.Pointed, f.Unpointed, f.Transliteration)}
	for _, v := range f.Variations {
		lines = append(lines, "also "+spelling(v.Pointed, v.Unpointed, v.Transliteration))
	}
	return strings.Join(lines, "\n")
}

func spelling(pointed, unpointed, transliteration string) string {
	s := pointed
	if s == "" {
		s = unpointed
	}
	if transliteration != "" {
		s += " (" + transliteration + ")"
	}
	return s
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string { return htmlEscaper.Replace(s) }
