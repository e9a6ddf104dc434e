package vdom

import (
	"log/slog"
	"strings"

	"github.com/glint-dev/glint/pkg/dom"
)

// DefaultKeyAttr is the reserved identity attribute used for
// list-reconciliation hints.
const DefaultKeyAttr = "key"

// Reconciler diffs rendered HTML against a live container and applies the
// minimal set of in-place mutations. Construct one per application; it
// holds no per-render state.
type Reconciler struct {
	keyAttr string
	logger  *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithKeyAttr overrides the identity attribute name.
func WithKeyAttr(name string) Option {
	return func(r *Reconciler) {
		r.keyAttr = strings.ToLower(name)
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		keyAttr: DefaultKeyAttr,
		logger:  slog.Default().With("component", "reconciler"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Diff leaves container showing newHTML with minimal disruption.
//
// On a first render (empty prevHTML or an empty container) the content is
// set directly; otherwise the current tree is snapshotted from the
// container's live children — not from prevHTML, so out-of-band mutations
// are seen — and patched in place where the same-node test allows it.
// A panic anywhere on the diff path is recovered and answered with a full
// content replacement, so Diff never fails outward.
func (r *Reconciler) Diff(container *dom.Element, prevHTML, newHTML string) {
	if container == nil {
		return
	}

	if prevHTML == "" || container.ChildCount() == 0 {
		r.SetContent(container, newHTML)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("diff failed, falling back to full replacement", "panic", rec)
			r.SetContent(container, newHTML)
		}
	}()

	next := Parse(newHTML)
	if next == nil {
		container.RemoveAllChildren()
		return
	}

	prev := r.snapshotContainer(container)
	if prev == nil {
		r.SetContent(container, newHTML)
		return
	}

	if prev.Kind == KindFragment || next.Kind == KindFragment {
		// Multi-rooted content on either side: splice children
		// individually against the container itself.
		r.patchChildren(container, fragmentChildren(prev), fragmentChildren(next))
		return
	}

	live := significantChildren(container)
	if len(live) == 0 {
		r.SetContent(container, newHTML)
		return
	}
	if r.sameNode(prev, next) {
		r.patch(live[0], prev, next)
	} else {
		container.ReplaceChild(live[0], r.materialize(container.Document(), next))
	}
}

// SetContent replaces the container's entire content with the parsed HTML.
// This is the non-diffing path used for first renders and for fallback.
func (r *Reconciler) SetContent(container *dom.Element, html string) {
	container.RemoveAllChildren()
	root := Parse(html)
	if root == nil {
		return
	}
	if root.Kind == KindFragment {
		for _, c := range root.Children {
			container.AppendChild(r.materialize(container.Document(), c))
		}
		return
	}
	container.AppendChild(r.materialize(container.Document(), root))
}

// sameNode decides whether an existing live node can be patched in place
// for the new node, or must be replaced wholesale.
//
// Two nodes are the same only if both are text, or both are elements with
// an identical tag. When either side carries the identity attribute, both
// must carry it with equal values. Attribute values other than the
// identity attribute and children are not consulted.
func (r *Reconciler) sameNode(a, b *Node) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindText {
		return true
	}
	if a.Kind == KindElement {
		if a.Tag != b.Tag {
			return false
		}
		ak, aok := a.Attr(r.keyAttr)
		bk, bok := b.Attr(r.keyAttr)
		if aok || bok {
			return aok && bok && ak == bk
		}
		return true
	}
	// Fragments only ever meet at the root, where Diff splices their
	// children directly.
	return true
}

// patch applies prev→next to the live node, already confirmed same-node.
func (r *Reconciler) patch(live dom.Node, prev, next *Node) {
	switch next.Kind {
	case KindText:
		if prev.Text != next.Text {
			live.(*dom.Text).SetData(next.Text)
		}
	case KindElement:
		el := live.(*dom.Element)
		r.patchAttrs(el, prev, next)
		r.patchChildren(el, prev.Children, next.Children)
	}
}

// patchAttrs reconciles the element's attributes against the new set.
// Names absent from the new set are removed; values are written only when
// they differ from the previous snapshot. The value attribute is left alone
// while the element holds focus, and the checked attribute is applied as
// a boolean property rather than a string.
func (r *Reconciler) patchAttrs(el *dom.Element, prev, next *Node) {
	for _, a := range prev.Attrs {
		if _, keep := next.Attr(a.Name); keep {
			continue
		}
		if a.Name == "checked" {
			if el.Checked() {
				el.SetChecked(false)
			}
			el.RemoveAttr(a.Name)
			continue
		}
		el.RemoveAttr(a.Name)
	}

	for _, a := range next.Attrs {
		prevVal, had := prev.Attr(a.Name)
		if had && prevVal == a.Value {
			continue
		}
		switch a.Name {
		case "value":
			if el.Focused() {
				// Never clobber in-progress typing or cursor position.
				continue
			}
			el.SetAttr(a.Name, a.Value)
		case "checked":
			checked := isCheckedValue(a.Value)
			if !had || isCheckedValue(prevVal) != checked {
				el.SetChecked(checked)
			}
			el.SetAttr(a.Name, a.Value)
		default:
			el.SetAttr(a.Name, a.Value)
		}
	}
}

// patchChildren walks previous and next child sequences by parallel index.
// Indexes present only in next are appended; present only in prev are
// removed; present in both are patched in place when same-node, replaced
// otherwise. The walk is positional: reordering without identity
// attributes patches content into place rather than moving nodes.
func (r *Reconciler) patchChildren(parent *dom.Element, prev, next []*Node) {
	live := significantChildren(parent)
	doc := parent.Document()

	common := len(prev)
	if len(next) < common {
		common = len(next)
	}

	for i := 0; i < common; i++ {
		if r.sameNode(prev[i], next[i]) {
			r.patch(live[i], prev[i], next[i])
		} else {
			parent.ReplaceChild(live[i], r.materialize(doc, next[i]))
		}
	}

	for i := common; i < len(next); i++ {
		parent.AppendChild(r.materialize(doc, next[i]))
	}

	for i := common; i < len(prev) && i < len(live); i++ {
		parent.RemoveChild(live[i])
	}
}

// materialize constructs a fresh live node from a snapshot.
func (r *Reconciler) materialize(doc *dom.Document, n *Node) dom.Node {
	if n.Kind == KindText {
		return doc.CreateText(n.Text)
	}

	el := doc.CreateElement(n.Tag)
	for _, a := range n.Attrs {
		el.SetAttr(a.Name, a.Value)
	}
	for _, c := range n.Children {
		el.AppendChild(r.materialize(doc, c))
	}
	return el
}

// snapshotContainer builds the "previous" tree from the container's live
// children: one child snapshots directly, several become a Fragment.
func (r *Reconciler) snapshotContainer(container *dom.Element) *Node {
	live := significantChildren(container)
	switch len(live) {
	case 0:
		return nil
	case 1:
		return FromLive(live[0])
	default:
		frag := &Node{Kind: KindFragment}
		for _, c := range live {
			frag.Children = append(frag.Children, FromLive(c))
		}
		return frag
	}
}

// fragmentChildren returns the splice list for a root snapshot: the
// fragment's children, or the node itself as a single-element list.
func fragmentChildren(n *Node) []*Node {
	if n.Kind == KindFragment {
		return n.Children
	}
	return []*Node{n}
}

// significantChildren returns the container's live children with
// incidental whitespace-only text nodes skipped, aligning live indexes
// with snapshot indexes.
func significantChildren(parent *dom.Element) []dom.Node {
	var out []dom.Node
	for _, c := range parent.Children() {
		if t, ok := c.(*dom.Text); ok && strings.TrimSpace(t.Data()) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// isCheckedValue interprets a checked-state attribute string as a boolean:
// "true", the attribute's own name, and the bare-attribute empty string
// all mean checked.
func isCheckedValue(v string) bool {
	return v == "true" || v == "checked" || v == ""
}
