package wordform

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/etamarw/hebforms/pkg/htmlq"
)

func parseFragment(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := htmlq.ParseString("<html><body>" + body + "</body></html>")
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return doc
}

func slotNode(t *testing.T, body, id string) *html.Node {
	t.Helper()
	n := htmlq.ByID(parseFragment(t, body), id)
	if n == nil {
		t.Fatalf("fragment has no element with id %q", id)
	}
	return n
}

func TestExtractBasic(t *testing.T) {
	node := slotNode(t, `<div id="x">
		<span class="menukad">פָּתוּר</span>
		<div class="transcription">pa<b>tu</b>r</div>
	</div>`, "x")

	f := Extract(node)
	if f.Pointed != "פָּתוּר" {
		t.Errorf("pointed: got %q", f.Pointed)
	}
	if f.Unpointed != "פתור" {
		t.Errorf("unpointed: got %q", f.Unpointed)
	}
	if f.Transliteration != "patur" {
		t.Errorf("transliteration: got %q", f.Transliteration)
	}
	if f.StressOffset != 2 {
		t.Errorf("stress offset: got %d, want 2", f.StressOffset)
	}
}

func TestExtractTildeSplit(t *testing.T) {
	// Both spellings live in the menukad parent's text, joined by a tilde.
	node := slotNode(t, `<div id="x">
		<div><span class="menukad">פָּתוּר</span> ~ פתור</div>
		<div class="transcription">patur</div>
	</div>`, "x")

	f := Extract(node)
	if f.Pointed != "פָּתוּר" {
		t.Errorf("pointed: got %q", f.Pointed)
	}
	if f.Unpointed != "פתור" {
		t.Errorf("unpointed: got %q", f.Unpointed)
	}
}

func TestExtractNoTildeStripsNiqqud(t *testing.T) {
	node := slotNode(t, `<div id="x">
		<span class="menukad">שָׁלוֹם</span>
		<div class="transcription">shalom</div>
	</div>`, "x")

	f := Extract(node)
	if f.Unpointed == "" {
		t.Fatal("unpointed must be non-empty when pointed is non-empty")
	}
	if f.Unpointed != StripNiqqud(f.Pointed) {
		t.Errorf("unpointed %q is not the stripped pointed %q", f.Unpointed, f.Pointed)
	}
}

func TestExtractNoStressMarker(t *testing.T) {
	node := slotNode(t, `<div id="x">
		<span class="menukad">פָּתוּר</span>
		<div class="transcription">patur</div>
	</div>`, "x")

	f := Extract(node)
	if f.StressOffset != 0 {
		t.Errorf("no marker: stress offset must default to 0, got %d", f.StressOffset)
	}
	if f.Transliteration != "patur" {
		t.Errorf("transliteration: got %q", f.Transliteration)
	}
}

func TestExtractStressAfterTaggedSibling(t *testing.T) {
	// Tagged sub-elements before the marker count via their flattened text.
	node := slotNode(t, `<div id="x">
		<span class="menukad">X</span>
		<div class="transcription"><span>mish</span>pa<b>tim</b></div>
	</div>`, "x")

	f := Extract(node)
	if f.Transliteration != "mishpatim" {
		t.Errorf("transliteration: got %q", f.Transliteration)
	}
	if f.StressOffset != 6 {
		t.Errorf("stress offset: got %d, want 6", f.StressOffset)
	}
}

func TestExtractMissingMenukad(t *testing.T) {
	node := slotNode(t, `<div id="x"><div class="transcription">patur</div></div>`, "x")
	f := Extract(node)
	if !f.IsZero() {
		t.Errorf("node without pointed spelling must yield the zero form, got %+v", f)
	}
}

func TestExtractStressOffsetInvariant(t *testing.T) {
	node := slotNode(t, `<div id="x">
		<span class="menukad">X</span>
		<div class="transcription">lish<b>mo</b>r</div>
	</div>`, "x")

	f := Extract(node)
	n := len([]rune(f.Transliteration))
	if n == 0 {
		t.Fatal("expected non-empty transliteration")
	}
	if f.StressOffset < 0 || f.StressOffset >= n {
		t.Errorf("stress offset %d out of bounds for %q", f.StressOffset, f.Transliteration)
	}
}

func TestStripNiqqud(t *testing.T) {
	cases := []struct{ in, want string }{
		{"פָּתוּר", "פתור"},
		{"שָׁלוֹם", "שלום"},
		{"בית", "בית"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripNiqqud(c.in); got != c.want {
			t.Errorf("StripNiqqud(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripNiqqudKeepsMaqaf(t *testing.T) {
	// Maqaf joins words; it is spelling, not pointing.
	if got := StripNiqqud("בֵּית־סֵפֶר"); got != "בית־ספר" {
		t.Errorf("maqaf must survive, got %q", got)
	}
}
