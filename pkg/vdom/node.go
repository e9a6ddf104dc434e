package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText     Kind = iota // Plain text node
	KindElement              // <div>, <input>, etc.
	KindFragment             // Synthetic root for multi-rooted HTML
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute in a snapshot.
type Attr struct {
	Name  string
	Value string
}

// Node is an immutable snapshot of one tree node. A Text node carries only
// Text; an Element carries Tag, Attrs, and Children; a Fragment exists only
// as the synthetic root when rendered HTML has multiple top-level siblings.
type Node struct {
	Kind     Kind
	Text     string
	Tag      string
	Attrs    []Attr
	Children []*Node
}

// Attr returns the named attribute's value and whether it is present.
// Attributes keep document order, so iteration over Attrs is deterministic.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// TextNode creates a text snapshot node.
func TextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Elem creates an element snapshot node. Useful for building expected
// trees in tests.
func Elem(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Attrs: attrs, Children: children}
}
