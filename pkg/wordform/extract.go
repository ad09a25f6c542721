package wordform

import (
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"github.com/etamarw/hebforms/pkg/htmlq"
)

// Markup conventions of the source pages.
const (
	// Separator joins the pointed and unpointed spellings in one text run.
	Separator = "~"

	classMenukad  = "menukad"
	classMeaning  = "meaning"
	classAuxPanel = "alternative-forms"
	classPopover  = "popover"
)

var (
	locMenukad       = htmlq.MustLocator("span." + classMenukad)
	locTranscription = htmlq.MustLocator("div.transcription")
	locStressMark    = htmlq.MustLocator("b")
	locFormBlock     = htmlq.MustLocator("div.vf")
)

// Extract reads the single grammatical form held in node. Missing pieces
// come back as empty strings; a node with no pointed-spelling element yields
// the zero Form. The input tree is never modified.
func Extract(node *html.Node) Form {
	men := locMenukad.First(node)
	if men == nil {
		return Form{}
	}
	v := variantFrom(men, node)
	return Form{
		Pointed:         v.Pointed,
		Unpointed:       v.Unpointed,
		Transliteration: v.Transliteration,
		StressOffset:    v.StressOffset,
	}
}

// variantFrom builds the four fields given the pointed-spelling element and
// the subtree holding the transliteration.
func variantFrom(men, scope *html.Node) Variant {
	pointed := strings.TrimSpace(dom.TextContent(men))
	unpointed := ""

	parentText := ""
	if men.Parent != nil {
		parentText = dom.TextContent(men.Parent)
	}
	if i := strings.Index(parentText, Separator); i >= 0 {
		// Both spellings live in the parent text, joined by the separator.
		pointed = strings.TrimSpace(parentText[:i])
		unpointed = strings.TrimSpace(parentText[i+len(Separator):])
	} else {
		unpointed = StripNiqqud(pointed)
	}

	transliteration, stress := transcription(scope)
	return Variant{
		Pointed:         pointed,
		Unpointed:       unpointed,
		Transliteration: transliteration,
		StressOffset:    stress,
	}
}

// transcription returns the transliteration text of scope and the rune
// offset of the stressed vowel, 0 when the source marks no stress.
func transcription(scope *html.Node) (string, int) {
	tr := locTranscription.First(scope)
	if tr == nil {
		return "", 0
	}
	raw := dom.TextContent(tr)
	text := strings.TrimSpace(raw)

	mark := locStressMark.First(tr)
	if mark == nil {
		return text, 0
	}

	// The offset is the length of everything before the stress marker,
	// minus whatever leading whitespace the trim removed.
	before := utf8.RuneCountInString(textBefore(tr, mark))
	leading := utf8.RuneCountInString(raw) - utf8.RuneCountInString(strings.TrimLeft(raw, " \t\n\r"))
	stress := before - leading
	if stress < 0 {
		stress = 0
	}
	if max := utf8.RuneCountInString(text); stress >= max && max > 0 {
		stress = max - 1
	}
	return text, stress
}

// textBefore flattens the text of every node preceding marker inside root,
// in document order, stopping at (and excluding) marker.
func textBefore(root, marker *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n == marker {
			return true
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return b.String()
}
