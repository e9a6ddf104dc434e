// Package dom implements the live document tree that Glint renders into.
//
// The tree is the in-memory stand-in for a browser document: a Document
// owns a mutable root element, tracks which element currently holds focus,
// and counts every mutation issued against it. The reconciler in pkg/vdom
// patches this tree in place; the mutation counters make its minimality
// guarantees observable in tests.
//
// # Core Types
//
// Document is the owner of the tree. Element and Text are the two concrete
// node kinds, both implementing Node. Attributes on an Element keep their
// insertion order so that iteration is deterministic.
//
// # Properties vs. attributes
//
// Input-like elements carry a Value string property and a Checked boolean
// property that shadow the corresponding attributes, the way live DOM
// nodes do. Setting the attribute refreshes the property; setting the
// property alone (as user input would) leaves the attribute untouched.
package dom
