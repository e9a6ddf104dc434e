package vdom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/glint-dev/glint/pkg/dom"
)

// Parse converts an HTML fragment into a snapshot tree.
//
// A fragment with exactly one top-level node returns that node directly; a
// multi-rooted fragment is wrapped in a Fragment node; an empty or
// whitespace-only string returns nil, which callers must treat as "no
// content". Malformed input never fails: anything the parser cannot
// tokenize degrades to a single text node holding the raw string.
func Parse(fragment string) *Node {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return TextNode(fragment)
	}

	var roots []*Node
	for _, n := range parsed {
		if snap := fromHTMLNode(n); snap != nil {
			roots = append(roots, snap)
		}
	}

	switch len(roots) {
	case 0:
		return TextNode(fragment)
	case 1:
		return roots[0]
	default:
		return &Node{Kind: KindFragment, Children: roots}
	}
}

// fromHTMLNode converts one parsed html.Node. Comments, doctypes, and
// whitespace-only text are dropped as incidental.
func fromHTMLNode(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return TextNode(n.Data)

	case html.ElementNode:
		snap := &Node{
			Kind: KindElement,
			Tag:  strings.ToLower(n.Data),
		}
		for _, a := range n.Attr {
			snap.Attrs = append(snap.Attrs, Attr{
				Name:  strings.ToLower(a.Key),
				Value: a.Val,
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTMLNode(c); child != nil {
				snap.Children = append(snap.Children, child)
			}
		}
		return snap

	default:
		return nil
	}
}

// FromLive builds the snapshot of a live subtree, structurally equivalent
// to what Parse would produce for the HTML that rendered it.
func FromLive(n dom.Node) *Node {
	switch v := n.(type) {
	case *dom.Text:
		return TextNode(v.Data())

	case *dom.Element:
		snap := &Node{
			Kind: KindElement,
			Tag:  v.TagName(),
		}
		for _, a := range v.Attrs() {
			snap.Attrs = append(snap.Attrs, Attr{Name: a.Name, Value: a.Value})
		}
		for _, c := range v.Children() {
			if child := liveChildSnapshot(c); child != nil {
				snap.Children = append(snap.Children, child)
			}
		}
		return snap

	default:
		return nil
	}
}

// liveChildSnapshot mirrors Parse's whitespace tolerance for live trees.
func liveChildSnapshot(n dom.Node) *Node {
	if t, ok := n.(*dom.Text); ok && strings.TrimSpace(t.Data()) == "" {
		return nil
	}
	return FromLive(n)
}
