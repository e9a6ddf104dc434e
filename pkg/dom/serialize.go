package dom

import (
	"html"
	"strings"
)

// voidElements are serialized without a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// OuterHTML serializes the element and its subtree.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		writeNode(&b, c)
	}
	return b.String()
}

// OuterHTML serializes the text node with escaping.
func (t *Text) OuterHTML() string {
	return html.EscapeString(t.data)
}

func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Element:
		v.writeHTML(b)
	case *Text:
		b.WriteString(html.EscapeString(v.data))
	}
}

func (e *Element) writeHTML(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if voidElements[e.tag] {
		return
	}

	for _, c := range e.children {
		writeNode(b, c)
	}

	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}
