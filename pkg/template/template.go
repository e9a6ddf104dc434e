// Package template implements Glint's string template compiler.
//
// Templates are compiled in a single scan into a node list and rendered
// against a data bag. Because compilation tokenizes once and never
// re-examines emitted output, a directive's output can never be re-matched
// by a later directive.
//
// Syntax:
//
//	{{title}}            escaped interpolation (dotted paths allowed)
//	{{raw body}}         unescaped interpolation
//	{{name | upper}}     filter pipeline
//	{{if admin}}...{{else}}...{{end}}
//	{{each items}}...{{.}}...{{end}}
package template

import (
	"fmt"
	"html"
	"reflect"
	"strings"
)

// Filter transforms an interpolated value before output.
type Filter func(string) string

// Template is a compiled template. It is immutable and safe for
// concurrent rendering.
type Template struct {
	nodes   []node
	filters map[string]Filter
}

// Option configures compilation.
type Option func(*compileOptions)

type compileOptions struct {
	leftDelim  string
	rightDelim string
	filters    map[string]Filter
}

// WithDelims overrides the default "{{" and "}}" delimiters.
func WithDelims(left, right string) Option {
	return func(co *compileOptions) {
		co.leftDelim = left
		co.rightDelim = right
	}
}

// WithFilter registers a named filter, overriding any default of the
// same name.
func WithFilter(name string, fn Filter) Option {
	return func(co *compileOptions) {
		co.filters[name] = fn
	}
}

// DefaultFilters returns the built-in filter table.
func DefaultFilters() map[string]Filter {
	return map[string]Filter{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
	}
}

// node kinds of the compiled template.
type node interface{ isNode() }

type litNode struct {
	text string
}

type varNode struct {
	path    []string
	raw     bool
	filters []string
}

type ifNode struct {
	path []string
	then []node
	els  []node
}

type eachNode struct {
	path []string
	body []node
}

func (litNode) isNode()  {}
func (varNode) isNode()  {}
func (ifNode) isNode()   {}
func (eachNode) isNode() {}

// Compile tokenizes src in a single pass and returns the compiled
// template.
func Compile(src string, opts ...Option) (*Template, error) {
	co := compileOptions{
		leftDelim:  "{{",
		rightDelim: "}}",
		filters:    DefaultFilters(),
	}
	for _, o := range opts {
		o(&co)
	}

	p := parser{
		src:        src,
		leftDelim:  co.leftDelim,
		rightDelim: co.rightDelim,
		filters:    co.filters,
		line:       1,
	}
	nodes, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes, filters: co.filters}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts ...Option) *Template {
	t, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes the template against the data bag.
func (t *Template) Render(data map[string]any) (string, error) {
	var b strings.Builder
	if err := renderNodes(&b, t, t.nodes, data, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderNodes(b *strings.Builder, t *Template, nodes []node, root map[string]any, cur any) error {
	for _, n := range nodes {
		switch v := n.(type) {
		case litNode:
			b.WriteString(v.text)

		case varNode:
			val := lookup(root, cur, v.path)
			s := stringify(val)
			for _, name := range v.filters {
				s = t.filters[name](s)
			}
			if v.raw {
				b.WriteString(s)
			} else {
				b.WriteString(html.EscapeString(s))
			}

		case ifNode:
			branch := v.els
			if truthy(lookup(root, cur, v.path)) {
				branch = v.then
			}
			if err := renderNodes(b, t, branch, root, cur); err != nil {
				return err
			}

		case eachNode:
			items := lookup(root, cur, v.path)
			if items == nil {
				continue
			}
			rv := reflect.ValueOf(items)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				if err := renderNodes(b, t, v.body, root, rv.Index(i).Interface()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// lookup resolves a dotted path. The path {"."} refers to the current
// scope value (the element inside an each block); other paths resolve
// against the current scope first and fall back to the root data bag.
func lookup(root map[string]any, cur any, path []string) any {
	if len(path) == 1 && path[0] == "." {
		return cur
	}

	if v, ok := lookupIn(cur, path); ok {
		return v
	}
	if v, ok := lookupIn(root, path); ok {
		return v
	}
	return nil
}

func lookupIn(scope any, path []string) (any, bool) {
	cur := scope
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// truthy follows the usual template semantics: nil, false, empty string,
// numeric zero, and empty collections are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return fmt.Sprintf("%v", v)
}
