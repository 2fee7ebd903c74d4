package prompt

import (
	"fmt"
	"strings"

	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

// Render substitutes values into the template.
//
// A placeholder naming a declared field that was not supplied renders as "".
// A placeholder that matches neither a value nor a declared field is left
// verbatim. The #each body is repeated once per element with no separator.
// Rendering is deterministic.
func (t *Template) Render(in schema.Schema, values schema.Values) string {
	var b strings.Builder
	for _, n := range t.nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodeVar:
			writeVar(&b, n, in, values, nil)
		case nodeEach:
			items, ok := values[n.name].([]string)
			if !ok {
				if _, declared := in.Field(n.name); !declared {
					b.WriteString(n.text)
				}
				continue
			}
			for i := range items {
				for _, child := range n.body {
					if child.kind == nodeText {
						b.WriteString(child.text)
						continue
					}
					writeVar(&b, child, in, values, &items[i])
				}
			}
		}
	}
	return b.String()
}

func writeVar(b *strings.Builder, n node, in schema.Schema, values schema.Values, current *string) {
	if n.name == thisName {
		if current == nil {
			b.WriteString(n.text)
			return
		}
		b.WriteString(*current)
		return
	}

	switch v := values[n.name].(type) {
	case string:
		b.WriteString(v)
	case []string:
		b.WriteString(strings.Join(v, ","))
	case nil:
		if _, declared := in.Field(n.name); !declared {
			b.WriteString(n.text)
		}
	default:
		fmt.Fprint(b, v)
	}
}

// CheckError lists the problems found by Check.
type CheckError struct {
	Template string
	Problems []string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("template %s: %s", e.Template, strings.Join(e.Problems, "; "))
}

// Check verifies that every placeholder names a field of in, that the #each
// block iterates a list field, and that list fields are only used inside it.
func (t *Template) Check(in schema.Schema) error {
	var problems []string
	for _, name := range t.Placeholders() {
		f, ok := in.Field(name)
		if !ok {
			problems = append(problems, fmt.Sprintf("placeholder %q is not a field of %s", name, in.Name))
			continue
		}
		if name == t.each {
			if f.Kind != schema.KindStringArray {
				problems = append(problems, fmt.Sprintf("#each field %q is not a list", name))
			}
			continue
		}
		if f.Kind == schema.KindStringArray {
			problems = append(problems, fmt.Sprintf("list field %q used outside #each", name))
		}
	}
	for _, n := range t.nodes {
		if n.kind == nodeVar && n.name == thisName {
			problems = append(problems, "{{this}} used outside #each")
			break
		}
	}
	if len(problems) > 0 {
		return &CheckError{Template: t.name, Problems: problems}
	}
	return nil
}

// MustCheck panics if Check fails.
func (t *Template) MustCheck(in schema.Schema) *Template {
	if err := t.Check(in); err != nil {
		panic(err)
	}
	return t
}
