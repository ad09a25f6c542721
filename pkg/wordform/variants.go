package wordform

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/etamarw/hebforms/pkg/htmlq"
)

// Boilerplate usage notes that some auxiliary panels open with. The note and
// the single variant block that follows it describe usage, not a spelling,
// and must not surface as variants.
const (
	NoteModernUsage      = "In modern language, the masculine form"
	NoteUnstressedEnding = "The ending is unstressed"
)

// ContainedVariants collects alternate forms that live as extra child
// elements of the same node as the primary form. The first child is the
// primary form itself; meaning blocks and auxiliary panels are handled
// elsewhere and skipped here.
func ContainedVariants(node *html.Node) []Variant {
	var out []Variant
	for i, ch := range htmlq.Children(node) {
		if i == 0 {
			continue
		}
		if htmlq.HasClass(ch, classMeaning) || htmlq.HasClass(ch, classAuxPanel) || htmlq.HasClass(ch, classPopover) {
			continue
		}
		men := locMenukad.First(ch)
		if men == nil {
			continue
		}
		out = append(out, variantFrom(men, ch))
	}
	return out
}

// AuxVariants collects alternate forms from the collapsed side panel attached
// to a table cell, whatever its visibility state. When one of the note
// filters is set, the matching boilerplate sentence and the variant block
// immediately after it are suppressed; scanning resumes at the next
// non-empty text node.
func AuxVariants(cell *html.Node, dropUnstressedNote, dropModernNote bool) []Variant {
	panel := auxPanel(cell)
	if panel == nil {
		return nil
	}

	if !dropUnstressedNote && !dropModernNote {
		var out []Variant
		for _, ch := range htmlq.Children(panel) {
			if v, ok := panelChildVariant(ch); ok {
				out = append(out, v)
			}
		}
		return out
	}

	var notes []string
	if dropUnstressedNote {
		notes = append(notes, NoteUnstressedEnding)
	}
	if dropModernNote {
		notes = append(notes, NoteModernUsage)
	}

	var out []Variant
	skipping := false
	for n := panel.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			txt := strings.TrimSpace(n.Data)
			if skipping {
				if txt != "" {
					skipping = false
				}
				continue
			}
			for _, note := range notes {
				if strings.Contains(txt, note) {
					skipping = true
					break
				}
			}
		case html.ElementNode:
			if skipping {
				continue
			}
			if v, ok := panelChildVariant(n); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// panelChildVariant extracts one variant from a direct child of the panel.
// Children carrying a form block go through the regular subtree lookup; a
// child that instead holds the pointed spelling directly is read in place.
func panelChildVariant(ch *html.Node) (Variant, bool) {
	if locFormBlock.First(ch) != nil {
		men := locMenukad.First(ch)
		if men == nil {
			return Variant{}, false
		}
		return variantFrom(men, ch), true
	}
	for _, c := range htmlq.Children(ch) {
		if htmlq.HasClass(c, classMenukad) {
			return variantFrom(c, ch), true
		}
	}
	return Variant{}, false
}

// auxPanel finds the variant panel attached to cell: either a direct child
// or nested one level inside a popover wrapper.
func auxPanel(cell *html.Node) *html.Node {
	if cell == nil {
		return nil
	}
	for _, ch := range htmlq.Children(cell) {
		if htmlq.HasClass(ch, classAuxPanel) {
			return ch
		}
	}
	for _, ch := range htmlq.Children(cell) {
		if !htmlq.HasClass(ch, classPopover) {
			continue
		}
		for _, inner := range htmlq.Children(ch) {
			if htmlq.HasClass(inner, classAuxPanel) {
				return inner
			}
		}
	}
	return nil
}
