// Package flow runs prompt flows: validate input, render the prompt, invoke
// the model, return the typed output.
package flow

import (
	"sort"

	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/internal/prompt"
	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

// Definition pairs a schema pair with its prompt template.
type Definition struct {
	Name        string
	Description string
	Input       schema.Schema
	Output      schema.Schema
	Template    *prompt.Template
	Safety      llm.SafetySettings
}

// NewDefinition parses the template and checks it against the input schema.
// It panics on a bad template, so definitions are built at init.
func NewDefinition(name, description string, in, out schema.Schema, text string, safety llm.SafetySettings) *Definition {
	tmpl := prompt.MustParse(name, text).MustCheck(in)
	return &Definition{
		Name:        name,
		Description: description,
		Input:       in,
		Output:      out,
		Template:    tmpl,
		Safety:      safety,
	}
}

// Registry looks definitions up by name.
type Registry struct {
	defs map[string]*Definition
}

func NewRegistry(defs ...*Definition) *Registry {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		r.defs[d.Name] = d
	}
	return r
}

// DefaultRegistry holds the four documentation flows.
func DefaultRegistry() *Registry {
	return NewRegistry(ArchitectureOverviewFlow, ModuleReadmeFlow, SemanticSearchFlow, PRDocumentationDeltaFlow)
}

func (r *Registry) Get(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// List returns definitions sorted by name.
func (r *Registry) List() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
