package dom

import (
	"testing"
)

func TestAttrOrderDeterministic(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetAttr("class", "a")
	el.SetAttr("id", "x")
	el.SetAttr("data-n", "1")
	el.SetAttr("class", "b") // overwrite keeps position

	attrs := el.Attrs()
	want := []Attr{{"class", "b"}, {"id", "x"}, {"data-n", "1"}}
	if len(attrs) != len(want) {
		t.Fatalf("len(attrs) = %d, want %d", len(attrs), len(want))
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Errorf("attrs[%d] = %v, want %v", i, attrs[i], want[i])
		}
	}
}

func TestAttrNameLowerCased(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttr("CLASS", "a")

	if v, ok := el.Attr("class"); !ok || v != "a" {
		t.Errorf("Attr(class) = %q, %v, want a, true", v, ok)
	}
}

func TestRemoveAttr(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttr("class", "a")
	el.SetAttr("id", "x")

	el.RemoveAttr("class")
	if el.HasAttr("class") {
		t.Error("class should be removed")
	}
	if !el.HasAttr("id") {
		t.Error("id should remain")
	}

	// Removing an absent attribute counts nothing.
	doc.Ops().Reset()
	el.RemoveAttr("missing")
	if doc.Ops().AttrRemovals != 0 {
		t.Errorf("AttrRemovals = %d, want 0", doc.Ops().AttrRemovals)
	}
}

func TestOpsCounting(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	el := doc.CreateElement("p")
	body.AppendChild(el)
	el.SetAttr("class", "a")
	el.SetAttr("class", "a") // same value still counts
	txt := doc.CreateText("hi")
	el.AppendChild(txt)
	txt.SetData("hi")

	ops := doc.Ops()
	if ops.Inserts != 2 {
		t.Errorf("Inserts = %d, want 2", ops.Inserts)
	}
	if ops.AttrWrites != 2 {
		t.Errorf("AttrWrites = %d, want 2", ops.AttrWrites)
	}
	if ops.TextWrites != 1 {
		t.Errorf("TextWrites = %d, want 1", ops.TextWrites)
	}

	ops.Reset()
	if ops.Total() != 0 {
		t.Errorf("Total after Reset = %d, want 0", ops.Total())
	}
}

func TestChildManipulation(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	c := doc.CreateElement("c")
	body.AppendChild(a)
	body.AppendChild(c)
	body.InsertChildAt(1, b)

	if got := body.ChildCount(); got != 3 {
		t.Fatalf("ChildCount = %d, want 3", got)
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := body.ChildAt(i).(*Element).TagName(); got != want {
			t.Errorf("child %d = %s, want %s", i, got, want)
		}
	}

	removed := body.RemoveChildAt(1)
	if removed.(*Element).TagName() != "b" {
		t.Error("RemoveChildAt(1) should return b")
	}
	if removed.Parent() != nil {
		t.Error("removed node should be detached")
	}

	d := doc.CreateElement("d")
	body.ReplaceChild(a, d)
	if body.ChildAt(0).(*Element).TagName() != "d" {
		t.Error("ReplaceChild should put d first")
	}
	if a.Parent() != nil {
		t.Error("replaced node should be detached")
	}
}

func TestAppendChildReparents(t *testing.T) {
	doc := NewDocument()
	p1 := doc.CreateElement("p")
	p2 := doc.CreateElement("p")
	doc.Body().AppendChild(p1)
	doc.Body().AppendChild(p2)

	txt := doc.CreateText("x")
	p1.AppendChild(txt)
	p2.AppendChild(txt)

	if p1.ChildCount() != 0 {
		t.Error("node should leave its old parent")
	}
	if p2.ChildCount() != 1 || txt.Parent() != p2 {
		t.Error("node should be attached to the new parent")
	}
}

func TestFocusTracking(t *testing.T) {
	doc := NewDocument()
	input := doc.CreateElement("input")
	doc.Body().AppendChild(input)

	if doc.ActiveElement() != nil {
		t.Error("no element should be focused initially")
	}

	input.Focus()
	if !input.Focused() || doc.ActiveElement() != input {
		t.Error("input should hold focus")
	}

	input.Blur()
	if doc.ActiveElement() != nil {
		t.Error("blur should clear focus")
	}
}

func TestFocusClearedOnDetach(t *testing.T) {
	doc := NewDocument()
	wrap := doc.CreateElement("div")
	input := doc.CreateElement("input")
	wrap.AppendChild(input)
	doc.Body().AppendChild(wrap)

	input.Focus()
	doc.Body().RemoveChild(wrap)

	if doc.ActiveElement() != nil {
		t.Error("removing the focused subtree should clear focus")
	}
}

func TestValueAndCheckedProperties(t *testing.T) {
	doc := NewDocument()
	input := doc.CreateElement("input")

	input.SetAttr("value", "initial")
	if input.Value() != "initial" {
		t.Errorf("Value = %q, want initial", input.Value())
	}

	// User input makes the property dirty; the attribute no longer drives it.
	input.SetValue("typed")
	input.SetAttr("value", "from-render")
	if input.Value() != "typed" {
		t.Errorf("Value = %q, want typed", input.Value())
	}
	if v, _ := input.Attr("value"); v != "from-render" {
		t.Errorf("value attribute = %q, want from-render", v)
	}

	cb := doc.CreateElement("input")
	cb.SetAttr("checked", "checked")
	if !cb.Checked() {
		t.Error("checked attribute should set the property")
	}
	cb.SetChecked(false)
	cb.SetAttr("checked", "true")
	if cb.Checked() {
		t.Error("dirty checked property should not track the attribute")
	}
}

func TestOuterHTML(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.SetAttr("class", `a"b`)
	p := doc.CreateElement("p")
	p.AppendChild(doc.CreateText("x < y"))
	div.AppendChild(p)
	div.AppendChild(doc.CreateElement("br"))

	got := div.OuterHTML()
	want := `<div class="a&#34;b"><p>x &lt; y</p><br></div>`
	if got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}
}
