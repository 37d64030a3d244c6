// Package widget builds the floating back-to-menu button and inserts it
// into parsed HTML documents. Pages get consistent cross-page navigation
// without carrying any markup for it themselves: the site builder injects
// the button once each page's document has been fully parsed.
package widget

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBody is returned when a document has no body to insert into.
var ErrNoBody = errors.New("widget: document has no body element")

// HasHeaderOrNav reports whether the document contains an element with a
// header or navigation role. The first match decides; the probe runs once,
// before insertion, and the result is never re-evaluated.
func HasHeaderOrNav(doc *html.Node) bool {
	return findFirst(doc, isHeaderLike) != nil
}

func isHeaderLike(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom == atom.Header || n.DataAtom == atom.Nav {
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "role" && (a.Val == "banner" || a.Val == "navigation") {
			return true
		}
	}
	return false
}

// Build constructs the anchor element: fixed destination, visible label,
// accessible name, inline style, and the two pointer handlers that toggle
// the opacity between its resting and hover values.
func Build(style Style) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr: []html.Attribute{
			{Key: "href", Val: Href},
			{Key: "aria-label", Val: AriaLabel},
			{Key: "style", Val: style.Inline()},
			{Key: "onmouseover", Val: "this.style.opacity='" + HoverOpacity + "'"},
			{Key: "onmouseout", Val: "this.style.opacity='" + RestOpacity + "'"},
		},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: Label})
	return a
}

// Inject appends the back button as the last child of the document body.
// The header probe runs exactly once, here, and picks the larger top
// offset when a header-like element is present. Inject does not check for
// an existing button; callers run it once per document.
func Inject(doc *html.Node) error {
	body := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if body == nil {
		return ErrNoBody
	}

	style := DefaultStyle()
	if HasHeaderOrNav(doc) {
		style.Top = TopOffsetBelowHeader
	}

	body.AppendChild(Build(style))
	return nil
}

// InjectPage parses an HTML page, injects the back button, and returns the
// re-serialized document.
func InjectPage(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	if err := Inject(doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render serializes a document tree to w.
func Render(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}

// findFirst walks the tree in document order and returns the first node
// matching the predicate.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}
