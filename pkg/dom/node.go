package dom

// Node is implemented by the two concrete tree members, Element and Text.
type Node interface {
	// Parent returns the element this node is attached to, or nil for a
	// detached node and for the document root.
	Parent() *Element

	// Document returns the owning document.
	Document() *Document

	setParent(*Element)
}

// Text is a character-data node.
type Text struct {
	doc    *Document
	parent *Element
	data   string
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.data
}

// SetData overwrites the text content. Every call counts as a text write,
// whether or not the content changed; callers that want idempotence must
// compare first.
func (t *Text) SetData(data string) {
	t.data = data
	t.doc.ops.TextWrites++
}

// Parent implements Node.
func (t *Text) Parent() *Element {
	return t.parent
}

// Document implements Node.
func (t *Text) Document() *Document {
	return t.doc
}

func (t *Text) setParent(p *Element) {
	t.parent = p
}

// Attr is a single named attribute.
type Attr struct {
	Name  string
	Value string
}
