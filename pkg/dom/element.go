package dom

import "strings"

// Element is a tag node with ordered attributes and a child list.
type Element struct {
	doc      *Document
	parent   *Element
	tag      string
	attrs    []Attr
	children []Node

	// Live properties, distinct from the attribute strings.
	value        string
	checked      bool
	valueDirty   bool
	checkedDirty bool
}

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string {
	return e.tag
}

// Parent implements Node.
func (e *Element) Parent() *Element {
	return e.parent
}

// Document implements Node.
func (e *Element) Document() *Document {
	return e.doc
}

func (e *Element) setParent(p *Element) {
	e.parent = p
}

// Attrs returns a copy of the attribute list in insertion order.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Attr returns the named attribute's value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr writes an attribute, preserving its position when it already
// exists. Setting "value" or "checked" also refreshes the corresponding
// live property unless the property has been written directly (the dirty
// rule live inputs follow).
func (e *Element) SetAttr(name, value string) {
	name = strings.ToLower(name)
	e.doc.ops.AttrWrites++

	found := false
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			found = true
			break
		}
	}
	if !found {
		e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	}

	switch name {
	case "value":
		if !e.valueDirty {
			e.value = value
		}
	case "checked":
		if !e.checkedDirty {
			e.checked = value == "true" || value == "checked" || value == ""
		}
	}
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	name = strings.ToLower(name)
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			e.doc.ops.AttrRemovals++
			return
		}
	}
}

// Value returns the live value property.
func (e *Element) Value() string {
	return e.value
}

// SetValue writes the live value property without touching the value
// attribute, the way user input does. The property is dirty afterwards and
// no longer tracks the attribute.
func (e *Element) SetValue(v string) {
	e.value = v
	e.valueDirty = true
}

// Checked returns the live checked property.
func (e *Element) Checked() bool {
	return e.checked
}

// SetChecked writes the live checked property.
func (e *Element) SetChecked(checked bool) {
	e.checked = checked
	e.checkedDirty = true
	e.doc.ops.PropWrites++
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// ChildAt returns the child at index i. It panics when i is out of range,
// matching slice semantics; the reconciler relies on this to detect
// out-of-band mutations.
func (e *Element) ChildAt(i int) Node {
	return e.children[i]
}

// AppendChild attaches n as the last child, detaching it from any previous
// parent first.
func (e *Element) AppendChild(n Node) {
	e.adopt(n)
	e.children = append(e.children, n)
	n.setParent(e)
	e.doc.ops.Inserts++
}

// InsertChildAt attaches n at index i, shifting later siblings right.
func (e *Element) InsertChildAt(i int, n Node) {
	if i < 0 || i > len(e.children) {
		i = len(e.children)
	}
	e.adopt(n)
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = n
	n.setParent(e)
	e.doc.ops.Inserts++
}

// RemoveChildAt detaches and returns the child at index i.
func (e *Element) RemoveChildAt(i int) Node {
	n := e.children[i]
	e.children = append(e.children[:i], e.children[i+1:]...)
	n.setParent(nil)
	e.doc.ops.Removals++
	if el, ok := n.(*Element); ok {
		e.doc.dropFocusWithin(el)
	}
	return n
}

// RemoveChild detaches the given child. It is a no-op when n is not a
// child of e.
func (e *Element) RemoveChild(n Node) {
	for i, c := range e.children {
		if c == n {
			e.RemoveChildAt(i)
			return
		}
	}
}

// ReplaceChild swaps old for n in place. It panics when old is not a
// child of e.
func (e *Element) ReplaceChild(old, n Node) {
	for i, c := range e.children {
		if c == old {
			e.adopt(n)
			e.children[i] = n
			n.setParent(e)
			old.setParent(nil)
			e.doc.ops.Replacements++
			if el, ok := old.(*Element); ok {
				e.doc.dropFocusWithin(el)
			}
			return
		}
	}
	panic("dom: ReplaceChild: node is not a child of this element")
}

// RemoveAllChildren detaches every child.
func (e *Element) RemoveAllChildren() {
	for len(e.children) > 0 {
		e.RemoveChildAt(len(e.children) - 1)
	}
}

// Focus makes this element the document's active element.
func (e *Element) Focus() {
	e.doc.active = e
}

// Blur clears focus if this element currently holds it.
func (e *Element) Blur() {
	if e.doc.active == e {
		e.doc.active = nil
	}
}

// Focused reports whether this element is the document's active element.
func (e *Element) Focused() bool {
	return e.doc.active == e
}

// adopt detaches n from its current parent without counting the removal;
// the subsequent insert is the observable mutation.
func (e *Element) adopt(n Node) {
	if p := n.Parent(); p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		n.setParent(nil)
	}
}

// contains reports whether target is e or a descendant of e.
func (e *Element) contains(target *Element) bool {
	if e == target {
		return true
	}
	for _, c := range e.children {
		if el, ok := c.(*Element); ok && el.contains(target) {
			return true
		}
	}
	return false
}
