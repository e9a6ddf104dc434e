// Package router implements Glint's client-side path router.
//
// Patterns are registered as slash-separated segments. A segment is
// static ("users"), a parameter (":id"), or a catch-all ("*rest").
// Static segments win over parameters, parameters win over catch-alls,
// and a catch-all consumes the remainder of the path. The router has
// no HTTP coupling; the application layer drives it from navigation.
package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/glint-dev/glint/internal/errors"
)

// Params holds the parameters extracted from a matched path.
type Params map[string]string

// Get returns the named parameter, or "" when absent.
func (p Params) Get(name string) string {
	return p[name]
}

// RouteHandler produces HTML for a matched route.
type RouteHandler func(params Params) (string, error)

// Match is the result of a successful lookup.
type Match struct {
	// Pattern is the registered pattern that matched.
	Pattern string

	// Handler is the registered handler.
	Handler RouteHandler

	// Params are the decoded path parameters. For a catch-all the
	// value is the joined remainder, without a leading slash.
	Params Params
}

// node is a node in the segment tree.
type node struct {
	segment string

	isParam    bool
	isCatchAll bool
	paramName  string

	pattern string
	handler RouteHandler

	// children are static segment children
	children []*node

	// paramChild is the dynamic parameter child (:id)
	paramChild *node

	// catchAllChild is the catch-all child (*rest)
	catchAllChild *node
}

func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &node{segment: segment}
	n.children = append(n.children, child)
	return child
}

func (n *node) addParamChild(name string) *node {
	if n.paramChild == nil {
		n.paramChild = &node{isParam: true, paramName: name}
	}
	return n.paramChild
}

func (n *node) addCatchAllChild(name string) *node {
	if n.catchAllChild == nil {
		n.catchAllChild = &node{isCatchAll: true, paramName: name}
	}
	return n.catchAllChild
}

// Router matches canonicalized paths against registered patterns.
type Router struct {
	root     *node
	notFound RouteHandler
}

// New creates an empty router.
func New() *Router {
	return &Router{root: &node{}}
}

// NotFound sets the handler invoked when no pattern matches.
func (r *Router) NotFound(h RouteHandler) {
	r.notFound = h
}

// Handle registers a handler for the pattern. Registering the same
// pattern twice replaces the previous handler.
func (r *Router) Handle(pattern string, h RouteHandler) error {
	if h == nil {
		return errors.New("E302").WithDetail(fmt.Sprintf("handler is nil for pattern %q", pattern))
	}
	if !strings.HasPrefix(pattern, "/") {
		return errors.New("E302").WithDetail(fmt.Sprintf("pattern %q does not start with '/'", pattern))
	}

	segments := splitPath(pattern)
	current := r.root

	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			if i != len(segments)-1 {
				return errors.New("E302").
					WithDetail(fmt.Sprintf("catch-all segment %q in %q is not last", seg, pattern))
			}
			name := seg[1:]
			if name == "" {
				return errors.New("E302").WithDetail(fmt.Sprintf("catch-all in %q has no name", pattern))
			}
			current = current.addCatchAllChild(name)
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return errors.New("E302").WithDetail(fmt.Sprintf("parameter in %q has no name", pattern))
			}
			child := current.addParamChild(name)
			if child.paramName != name {
				return errors.New("E302").
					WithDetail(fmt.Sprintf("pattern %q conflicts with parameter :%s", pattern, child.paramName))
			}
			current = child
		case seg == "":
			return errors.New("E302").WithDetail(fmt.Sprintf("pattern %q has an empty segment", pattern))
		default:
			current = current.addChild(seg)
		}
	}

	current.pattern = pattern
	current.handler = h
	return nil
}

// MustHandle is Handle that panics on an invalid pattern.
func (r *Router) MustHandle(pattern string, h RouteHandler) {
	if err := r.Handle(pattern, h); err != nil {
		panic(err)
	}
}

// Match looks up the canonicalized path. When no pattern matches and a
// not-found handler is set, that handler is returned with the empty
// pattern; otherwise the error carries code E301. A path whose segments
// cannot be percent-decoded yields E303.
func (r *Router) Match(path string) (*Match, error) {
	res, err := CanonicalizePath(path)
	if err != nil {
		return nil, errors.New("E303").Wrap(err).WithDetail(fmt.Sprintf("path %q", path))
	}

	segments := splitPath(res.Path)
	decoded := make([]string, len(segments))
	for i, seg := range segments {
		d, err := url.PathUnescape(seg)
		if err != nil {
			return nil, errors.New("E303").Wrap(err).WithDetail(fmt.Sprintf("segment %q", seg))
		}
		decoded[i] = d
	}

	params := make(Params)
	if n, ok := r.root.match(decoded, params); ok {
		return &Match{Pattern: n.pattern, Handler: n.handler, Params: params}, nil
	}

	if r.notFound != nil {
		return &Match{Handler: r.notFound, Params: Params{}}, nil
	}
	return nil, errors.New("E301").WithDetail(fmt.Sprintf("path %q", res.Path))
}

// match walks the tree. Parameters are written into params and removed
// again when a branch fails, so backtracking leaves no stale entries.
func (n *node) match(segments []string, params Params) (*node, bool) {
	if len(segments) == 0 {
		if n.handler != nil {
			return n, true
		}
		return nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	// Try exact match first
	if child := n.findChild(segment); child != nil {
		if found, ok := child.match(remaining, params); ok {
			return found, true
		}
	}

	// Try parameter match
	if n.paramChild != nil {
		params[n.paramChild.paramName] = segment
		if found, ok := n.paramChild.match(remaining, params); ok {
			return found, true
		}
		// Backtrack on failure
		delete(params, n.paramChild.paramName)
	}

	// Try catch-all match
	if n.catchAllChild != nil && n.catchAllChild.handler != nil {
		params[n.catchAllChild.paramName] = strings.Join(segments, "/")
		return n.catchAllChild, true
	}

	return nil, false
}

// splitPath splits a canonical path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
