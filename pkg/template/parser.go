package template

import (
	"strings"

	"github.com/glint-dev/glint/internal/errors"
)

// parser performs the single-pass scan over the template source.
type parser struct {
	src        string
	leftDelim  string
	rightDelim string
	filters    map[string]Filter

	pos  int
	line int
}

// openBlock is a pending if/each waiting for its end.
type openBlock struct {
	kind   string // "if" or "each"
	path   []string
	line   int
	then   []node
	els    []node
	inElse bool
}

func (p *parser) parse() ([]node, error) {
	var out []node
	var stack []*openBlock

	emit := func(n node) {
		if len(stack) == 0 {
			out = append(out, n)
			return
		}
		top := stack[len(stack)-1]
		if top.inElse {
			top.els = append(top.els, n)
		} else {
			top.then = append(top.then, n)
		}
	}

	for p.pos < len(p.src) {
		idx := strings.Index(p.src[p.pos:], p.leftDelim)
		if idx < 0 {
			emit(litNode{text: p.src[p.pos:]})
			p.advance(len(p.src) - p.pos)
			break
		}
		if idx > 0 {
			emit(litNode{text: p.src[p.pos : p.pos+idx]})
			p.advance(idx)
		}

		actionLine := p.line
		p.advance(len(p.leftDelim))

		end := strings.Index(p.src[p.pos:], p.rightDelim)
		if end < 0 {
			return nil, errors.New("E101").WithLocation("", actionLine, 0)
		}
		action := strings.TrimSpace(p.src[p.pos : p.pos+end])
		p.advance(end + len(p.rightDelim))

		switch {
		case action == "":
			return nil, errors.New("E104").WithLocation("", actionLine, 0)

		case action == "else":
			if len(stack) == 0 || stack[len(stack)-1].kind != "if" || stack[len(stack)-1].inElse {
				return nil, errors.New("E103").
					WithLocation("", actionLine, 0).
					WithDetail("'{{else}}' without a matching '{{if}}'.")
			}
			stack[len(stack)-1].inElse = true

		case action == "end":
			if len(stack) == 0 {
				return nil, errors.New("E103").WithLocation("", actionLine, 0)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			var n node
			if top.kind == "if" {
				n = ifNode{path: top.path, then: top.then, els: top.els}
			} else {
				n = eachNode{path: top.path, body: top.then}
			}
			emit(n)

		case strings.HasPrefix(action, "if "):
			path := parsePath(action[3:])
			stack = append(stack, &openBlock{kind: "if", path: path, line: actionLine})

		case strings.HasPrefix(action, "each "):
			path := parsePath(action[5:])
			stack = append(stack, &openBlock{kind: "each", path: path, line: actionLine})

		case strings.HasPrefix(action, "raw "):
			v, err := p.parseVar(action[4:], actionLine)
			if err != nil {
				return nil, err
			}
			v.raw = true
			emit(v)

		default:
			v, err := p.parseVar(action, actionLine)
			if err != nil {
				return nil, err
			}
			emit(v)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, errors.New("E102").WithLocation("", top.line, 0)
	}

	return out, nil
}

// parseVar parses "path | filter | filter" into a varNode, checking that
// every named filter is registered.
func (p *parser) parseVar(expr string, line int) (varNode, error) {
	parts := strings.Split(expr, "|")
	path := parsePath(parts[0])
	if len(path) == 0 {
		return varNode{}, errors.New("E104").WithLocation("", line, 0)
	}

	var filters []string
	for _, part := range parts[1:] {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := p.filters[name]; !ok {
			return varNode{}, errors.New("E105").
				WithLocation("", line, 0).
				WithDetail("filter " + name + " is not registered")
		}
		filters = append(filters, name)
	}

	return varNode{path: path, filters: filters}, nil
}

// parsePath splits a dotted reference; "." stays a single segment.
func parsePath(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if s == "." {
		return []string{"."}
	}
	return strings.Split(s, ".")
}

// advance moves the scan position, keeping the line counter current.
func (p *parser) advance(n int) {
	p.line += strings.Count(p.src[p.pos:p.pos+n], "\n")
	p.pos += n
}
