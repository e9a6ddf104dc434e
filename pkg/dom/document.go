package dom

import "strings"

// Document owns a live tree, the focus state, and the mutation counters.
type Document struct {
	body   *Element
	active *Element
	ops    Ops
}

// NewDocument creates a document with an empty body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = &Element{doc: d, tag: "body"}
	return d
}

// Body returns the document's root container element.
func (d *Document) Body() *Element {
	return d.body
}

// ActiveElement returns the element that currently holds focus, or nil.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// Ops returns the document's mutation counters.
func (d *Document) Ops() *Ops {
	return &d.ops
}

// CreateElement creates a detached element with the given tag.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{doc: d, tag: strings.ToLower(tag)}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(data string) *Text {
	return &Text{doc: d, data: data}
}

// dropFocusWithin clears the active element if it lives inside the given
// detached subtree.
func (d *Document) dropFocusWithin(root *Element) {
	if d.active != nil && root.contains(d.active) {
		d.active = nil
	}
}
