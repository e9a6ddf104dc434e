package vdom

import (
	"testing"

	"github.com/glint-dev/glint/pkg/dom"
)

func keyed(tag, key string) *Node {
	return Elem(tag, []Attr{{Name: "key", Value: key}})
}

func TestSameNode(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"both text", TextNode("a"), TextNode("b"), true},
		{"text vs element", TextNode("a"), Elem("p", nil), false},
		{"same tag", Elem("div", nil), Elem("div", nil), true},
		{"different tag", Elem("div", nil), Elem("span", nil), false},
		{"same tag different attrs", Elem("div", []Attr{{"class", "a"}}), Elem("div", []Attr{{"class", "b"}}), true},
		{"equal keys", keyed("li", "1"), keyed("li", "1"), true},
		{"different keys", keyed("li", "1"), keyed("li", "2"), false},
		{"keyed vs unkeyed", keyed("li", "1"), Elem("li", nil), false},
		{"unkeyed vs keyed", Elem("li", nil), keyed("li", "1"), false},
		{"key on different tags", keyed("li", "1"), keyed("div", "1"), false},
		{"nil sides", nil, Elem("div", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.sameNode(tt.a, tt.b); got != tt.want {
				t.Errorf("sameNode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameNodeCustomKeyAttr(t *testing.T) {
	r := New(WithKeyAttr("data-id"))

	a := Elem("li", []Attr{{"data-id", "1"}})
	b := Elem("li", []Attr{{"data-id", "2"}})
	if r.sameNode(a, b) {
		t.Error("mismatched custom identity attribute should not be same")
	}

	// The default "key" attribute is an ordinary attribute here.
	c := keyed("li", "1")
	d := keyed("li", "2")
	if !r.sameNode(c, d) {
		t.Error("'key' is not the identity attribute for this reconciler")
	}
}

// Mixed keyed and unkeyed siblings: the identity attribute only ever
// forces replacement, never positional matching across indexes.
func TestDiffMixedKeyedChildren(t *testing.T) {
	prev := `<ul><li key="a">a</li><li>plain</li><li key="b">b</li></ul>`
	next := `<ul><li key="b">b</li><li>plain</li><li key="a">a</li></ul>`

	doc, body, r := render(t, prev)
	r.Diff(body, prev, next)

	wantContent(t, body, next)
	// Keys swapped positionally: both keyed slots are rebuilt, the
	// unkeyed middle child is patched in place.
	if doc.Ops().Replacements != 2 {
		t.Errorf("Replacements = %d, want 2: %s", doc.Ops().Replacements, doc.Ops())
	}
}

func TestDiffKeyForcesRebuildOfStatefulNode(t *testing.T) {
	prev := `<ul><li key="1"><input type="text"></li></ul>`
	next := `<ul><li key="2"><input type="text"></input></li></ul>`

	_, body, r := render(t, prev)
	ul := body.ChildAt(0).(*dom.Element)
	input := ul.ChildAt(0).(*dom.Element).ChildAt(0).(*dom.Element)
	input.Focus()
	input.SetValue("draft")

	r.Diff(body, prev, next)

	// A new key means a new logical item: the old input and its live
	// state are gone.
	fresh := ul.ChildAt(0).(*dom.Element).ChildAt(0).(*dom.Element)
	if fresh == input {
		t.Error("key change should rebuild the subtree")
	}
	if fresh.Value() != "" {
		t.Errorf("fresh input should have empty value, got %q", fresh.Value())
	}
}

func TestDiffUnkeyedReorderPatchesInPlace(t *testing.T) {
	prev := `<ul><li>alpha</li><li>beta</li></ul>`
	next := `<ul><li>beta</li><li>alpha</li></ul>`

	doc, body, r := render(t, prev)
	ul := body.ChildAt(0).(*dom.Element)
	first := ul.ChildAt(0)

	r.Diff(body, prev, next)

	wantContent(t, body, next)
	// Positional diff: element N keeps its identity and is re-texted,
	// rather than being moved.
	if ul.ChildAt(0) != first {
		t.Error("unkeyed reorder should patch index 0 in place")
	}
	if doc.Ops().TextWrites != 2 || doc.Ops().Replacements != 0 {
		t.Errorf("unexpected ops for unkeyed reorder: %s", doc.Ops())
	}
}
