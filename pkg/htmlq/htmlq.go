// Package htmlq is the narrow tree-query surface the extractors use over a
// parsed HTML document: locator-based descendant lookup, text content,
// class/id matching and a few table helpers. It wraps golang.org/x/net/html
// nodes; callers never touch selectors directly.
package htmlq

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Locator identifies one kind of element (a CSS selector compiled once).
type Locator struct {
	sel cascadia.Selector
}

// MustLocator compiles css into a Locator and panics on a bad selector.
// Intended for package-level locator tables.
func MustLocator(css string) Locator {
	return Locator{sel: cascadia.MustCompile(css)}
}

// First returns the first matching descendant of n, or nil.
func (l Locator) First(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return l.sel.MatchFirst(n)
}

// All returns every matching descendant of n in document order.
func (l Locator) All(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	return l.sel.MatchAll(n)
}

// Matches reports whether n itself matches the locator.
func (l Locator) Matches(n *html.Node) bool {
	return n != nil && l.sel.Match(n)
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Text returns the trimmed text content of n's subtree.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(dom.TextContent(n))
}

// RawText returns the text content of n's subtree without trimming.
func RawText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return dom.TextContent(n)
}

// HasClass reports whether element n carries the given class.
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(dom.GetAttribute(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// ByID returns the descendant of scope whose id attribute equals id, or nil.
// The search includes scope itself.
func ByID(scope *html.Node, id string) *html.Node {
	if scope == nil {
		return nil
	}
	if scope.Type == html.ElementNode && dom.GetAttribute(scope, "id") == id {
		return scope
	}
	for c := scope.FirstChild; c != nil; c = c.NextSibling {
		if found := ByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Children returns the element children of n in document order.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	return dom.Children(n)
}

// NextElement returns the first element sibling following n, or nil.
func NextElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

var (
	locRow       = MustLocator("tr")
	locRowHeader = MustLocator("th")
	locAnyCell   = MustLocator("th, td")
)

// FindRowByLabel returns the first table row whose row-header text contains
// label, or nil. Rows without a th fall back to their first cell.
func FindRowByLabel(table *html.Node, label string) *html.Node {
	for _, row := range locRow.All(table) {
		header := locRowHeader.First(row)
		if header == nil {
			header = locAnyCell.First(row)
		}
		if header == nil {
			continue
		}
		if strings.Contains(Text(header), label) {
			return row
		}
	}
	return nil
}

// ClosestCell walks up from n to its enclosing td or th, or returns nil.
func ClosestCell(n *html.Node) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.Data == "td" || p.Data == "th") {
			return p
		}
	}
	return nil
}
