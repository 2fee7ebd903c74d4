// Package prompt renders flow prompts from mustache-style templates.
//
// Supported syntax is {{name}} and {{{name}}} for scalar fields and a single
// {{#each field}}...{{/each}} block whose body may reference the current
// element as {{this}}. Nothing is HTML-escaped.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

const thisName = "this"

var (
	ErrUnterminatedTag = errors.New("unterminated tag")
	ErrEmptyTag        = errors.New("empty tag")
	ErrNestedEach      = errors.New("nested or repeated #each block")
	ErrUnbalancedEach  = errors.New("unbalanced #each block")
	ErrUnsupportedTag  = errors.New("unsupported tag")
)

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeVar
	nodeEach
)

type node struct {
	kind nodeKind
	text string // literal text, or the exact source of a tag
	name string // placeholder or each field name
	body []node
}

// Template is a parsed prompt. It is immutable and safe for concurrent use.
type Template struct {
	name  string
	nodes []node
	each  string
}

// Parse parses a template. Only one #each block is allowed and it may not nest.
func Parse(name, text string) (*Template, error) {
	t := &Template{name: name}
	var (
		stack    = &t.nodes
		inEach   bool
		eachNode node
		eachSrc  strings.Builder
	)

	rest := text
	for len(rest) > 0 {
		start := strings.Index(rest, "{{")
		if start < 0 {
			*stack = append(*stack, node{kind: nodeText, text: rest})
			if inEach {
				eachSrc.WriteString(rest)
			}
			break
		}
		if start > 0 {
			*stack = append(*stack, node{kind: nodeText, text: rest[:start]})
			if inEach {
				eachSrc.WriteString(rest[:start])
			}
		}
		rest = rest[start:]

		closer := "}}"
		open := 2
		if strings.HasPrefix(rest, "{{{") {
			closer = "}}}"
			open = 3
		}
		end := strings.Index(rest[open:], closer)
		if end < 0 {
			return nil, fmt.Errorf("template %s: %w at offset %d", name, ErrUnterminatedTag, len(text)-len(rest))
		}
		src := rest[:open+end+len(closer)]
		body := strings.TrimSpace(rest[open : open+end])
		rest = rest[len(src):]

		switch {
		case body == "":
			return nil, fmt.Errorf("template %s: %w", name, ErrEmptyTag)

		case strings.HasPrefix(body, "#each"):
			field := strings.TrimSpace(strings.TrimPrefix(body, "#each"))
			if inEach || t.each != "" {
				return nil, fmt.Errorf("template %s: %w", name, ErrNestedEach)
			}
			if field == "" || open == 3 {
				return nil, fmt.Errorf("template %s: %w %q", name, ErrUnsupportedTag, src)
			}
			inEach = true
			eachNode = node{kind: nodeEach, name: field}
			eachSrc.Reset()
			eachSrc.WriteString(src)
			stack = &eachNode.body

		case body == "/each":
			if !inEach {
				return nil, fmt.Errorf("template %s: %w", name, ErrUnbalancedEach)
			}
			eachSrc.WriteString(src)
			eachNode.text = eachSrc.String()
			t.nodes = append(t.nodes, eachNode)
			t.each = eachNode.name
			inEach = false
			stack = &t.nodes

		case strings.ContainsAny(body[:1], "#/^!>&"):
			return nil, fmt.Errorf("template %s: %w %q", name, ErrUnsupportedTag, src)

		default:
			*stack = append(*stack, node{kind: nodeVar, text: src, name: body})
			if inEach {
				eachSrc.WriteString(src)
			}
		}
	}

	if inEach {
		return nil, fmt.Errorf("template %s: %w", name, ErrUnbalancedEach)
	}
	return t, nil
}

// MustParse is like Parse but panics on error. For package-level templates.
func MustParse(name, text string) *Template {
	t, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Name() string { return t.name }

// EachField returns the field iterated by the #each block, or "".
func (t *Template) EachField() string { return t.each }

// Placeholders returns the distinct field names referenced by the template,
// in first-use order. The implicit element name is not included.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == thisName || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, n := range t.nodes {
		switch n.kind {
		case nodeVar:
			add(n.name)
		case nodeEach:
			add(n.name)
			for _, b := range n.body {
				if b.kind == nodeVar {
					add(b.name)
				}
			}
		}
	}
	return names
}
