package htmlq

import (
	"testing"

	"golang.org/x/net/html"
)

const testDoc = `<html><body>
	<h2 id="title">Heading</h2>
	<p class="lead strong">First paragraph</p>
	<p>Second paragraph</p>
	<table class="conjugation-table">
		<tr><th>Absolute state</th><td id="s"><span class="x">one</span></td><td id="p">two</td></tr>
		<tr><td>Construct state</td><td id="cs">three</td></tr>
	</table>
</body></html>`

func parseDoc(t *testing.T) *html.Node {
	t.Helper()
	doc, err := ParseString(testDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestLocatorFirstAll(t *testing.T) {
	doc := parseDoc(t)
	para := MustLocator("p")

	first := para.First(doc)
	if first == nil || Text(first) != "First paragraph" {
		t.Fatalf("First: got %q", Text(first))
	}
	if got := len(para.All(doc)); got != 2 {
		t.Errorf("All: got %d paragraphs, want 2", got)
	}
	if !para.Matches(first) {
		t.Error("Matches must hold for a matched node")
	}
	if para.First(nil) != nil || para.All(nil) != nil || para.Matches(nil) {
		t.Error("nil node must match nothing")
	}
}

func TestText(t *testing.T) {
	doc := parseDoc(t)
	h := MustLocator("h2").First(doc)
	if got := Text(h); got != "Heading" {
		t.Errorf("Text: got %q", got)
	}
	if Text(nil) != "" || RawText(nil) != "" {
		t.Error("nil node must yield empty text")
	}
}

func TestHasClass(t *testing.T) {
	doc := parseDoc(t)
	p := MustLocator("p").First(doc)
	if !HasClass(p, "lead") || !HasClass(p, "strong") {
		t.Error("both classes must be found")
	}
	if HasClass(p, "str") {
		t.Error("class matching must be whole-token")
	}
	if HasClass(nil, "lead") {
		t.Error("nil node has no classes")
	}
}

func TestByID(t *testing.T) {
	doc := parseDoc(t)
	cell := ByID(doc, "s")
	if cell == nil || cell.Data != "td" {
		t.Fatalf("ByID(s): got %v", cell)
	}
	if Text(cell) != "one" {
		t.Errorf("cell text: got %q", Text(cell))
	}
	if ByID(doc, "missing") != nil {
		t.Error("unknown id must yield nil")
	}
	// Scope itself is eligible.
	if ByID(cell, "s") != cell {
		t.Error("ByID must consider the scope node itself")
	}
}

func TestChildrenAndNextElement(t *testing.T) {
	doc := parseDoc(t)
	body := MustLocator("body").First(doc)
	kids := Children(body)
	if len(kids) != 4 {
		t.Fatalf("got %d element children, want 4", len(kids))
	}
	if kids[0].Data != "h2" || kids[3].Data != "table" {
		t.Errorf("unexpected child order: %s .. %s", kids[0].Data, kids[3].Data)
	}
	next := NextElement(kids[0])
	if next == nil || Text(next) != "First paragraph" {
		t.Errorf("NextElement: got %q", Text(next))
	}
	if NextElement(kids[3]) != nil {
		t.Error("last child has no next element")
	}
}

func TestFindRowByLabel(t *testing.T) {
	doc := parseDoc(t)
	table := MustLocator("table").First(doc)

	row := FindRowByLabel(table, "Absolute state")
	if row == nil {
		t.Fatal("th-labelled row not found")
	}
	if ByID(row, "s") == nil {
		t.Error("wrong row matched for the th label")
	}

	// Rows without a th fall back to their first cell.
	row = FindRowByLabel(table, "Construct")
	if row == nil || ByID(row, "cs") == nil {
		t.Error("td-labelled row not found")
	}

	if FindRowByLabel(table, "Emphatic state") != nil {
		t.Error("unknown label must yield nil")
	}
}

func TestClosestCell(t *testing.T) {
	doc := parseDoc(t)
	span := MustLocator("span.x").First(doc)
	cell := ClosestCell(span)
	if cell == nil || cell.Data != "td" {
		t.Fatalf("ClosestCell: got %v", cell)
	}
	// A cell is its own closest cell.
	if ClosestCell(cell) != cell {
		t.Error("cell must resolve to itself")
	}
	if ClosestCell(MustLocator("h2").First(doc)) != nil {
		t.Error("node outside a table has no enclosing cell")
	}
}
