package paradigm

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/etamarw/hebforms/pkg/htmlq"
)

// ErrPartOfSpeech is returned when no part-of-speech pattern matches the
// page header and the caller supplied none.
var ErrPartOfSpeech = errors.New("could not determine part of speech")

const genderUnknown = "unknown"

// Info is what the page header yields before any slot is read.
type Info struct {
	POS     string
	Binyan  string
	Gender  string
	Pattern string
}

var (
	locHeading      = htmlq.MustLocator("h2")
	locMeaningHeads = htmlq.MustLocator("h2, h3")

	// The header paragraph reads e.g. "Verb – PA'AL", "Noun – feminine,
	// pattern qittul" or "Adjective – pattern qatol". Plain hyphens are
	// accepted alongside the en-dash.
	reVerb = regexp.MustCompile(`^Verb\s*[–-]\s*(\S.*)$`)
	reNoun = regexp.MustCompile(`^Noun(?:\s*[–-]\s*(masculine|feminine))?(?:,\s*pattern\s+(\S.*))?$`)
	reAdj  = regexp.MustCompile(`^Adjective(?:\s*[–-]\s*pattern\s+(\S.*))?$`)

	reRootSep = regexp.MustCompile(`\s*-\s*`)
)

// Detect reads the part of speech and its labels from the paragraph next to
// the page's first heading.
func Detect(doc *html.Node) (Info, error) {
	text := htmlq.Text(headerParagraph(doc))

	if m := reVerb.FindStringSubmatch(text); m != nil {
		return Info{POS: POSVerb, Binyan: strings.TrimSpace(m[1])}, nil
	}
	if m := reNoun.FindStringSubmatch(text); m != nil {
		gender := m[1]
		if gender == "" {
			gender = genderUnknown
		}
		return Info{POS: POSNoun, Gender: gender, Pattern: strings.TrimSpace(m[2])}, nil
	}
	if m := reAdj.FindStringSubmatch(text); m != nil {
		return Info{POS: POSAdjective, Pattern: strings.TrimSpace(m[1])}, nil
	}
	return Info{}, ErrPartOfSpeech
}

// headerParagraph returns the paragraph immediately following the page's
// first heading, or nil.
func headerParagraph(doc *html.Node) *html.Node {
	h := locHeading.First(doc)
	if h == nil {
		return nil
	}
	next := htmlq.NextElement(h)
	if next == nil || next.Data != "p" {
		return nil
	}
	return next
}

// rootText reads the root letters from the paragraph after the header
// paragraph. Hyphen separators between the letters become an en-dash with
// spaces. Returns "" when the page carries no root line.
func rootText(doc *html.Node) string {
	p := headerParagraph(doc)
	if p == nil {
		return ""
	}
	rp := htmlq.NextElement(p)
	if rp == nil || rp.Data != "p" {
		return ""
	}
	text := htmlq.Text(rp)
	const prefix = "Root:"
	if !strings.HasPrefix(text, prefix) {
		return ""
	}
	root := strings.TrimSpace(strings.TrimPrefix(text, prefix))
	return reRootSep.ReplaceAllString(root, " – ")
}

// meaningText reads the first block following the heading whose exact text
// is "Meaning". Returns "" when the page has none.
func meaningText(doc *html.Node) string {
	for _, h := range locMeaningHeads.All(doc) {
		if htmlq.Text(h) != "Meaning" {
			continue
		}
		return htmlq.Text(htmlq.NextElement(h))
	}
	return ""
}
