// Package vdom implements Glint's reconciler.
//
// The reconciler turns two HTML-fragment-like trees — the previous render
// output and the next one — into a minimal set of in-place mutations
// against a live document tree (pkg/dom), preserving focus and unrelated
// subtree identity where possible.
//
// # Core Types
//
// Node is a lightweight, immutable snapshot of a tree, built either from
// an HTML string (Parse) or from a live subtree (FromLive) so the two
// sides can be compared with the same algorithm. A snapshot is built
// fresh per render cycle and discarded after one Diff call.
//
// # Diffing
//
// Reconciler.Diff is the entry point: given a container, the previously
// rendered HTML, and the new HTML, it leaves the container showing the
// new content. The diff is positional and non-keyed except for the
// reserved identity attribute ("key" by default), which forces a
// replacement when values differ across renders. Any panic on the diff
// path is recovered and the container's content is set directly from the
// new HTML, so Diff always converges and never fails outward.
package vdom
