// Package schema declares the input and output contracts of prompt flows
// and checks loosely-typed payloads against them.
package schema

import (
	"github.com/invopop/jsonschema"
)

// Kind is the type of a schema field.
type Kind string

const (
	KindString      Kind = "string"
	KindStringArray Kind = "string_array"
)

type Field struct {
	Name        string
	Kind        Kind
	Required    bool
	Description string
}

// Text declares a required string field.
func Text(name, description string) Field {
	return Field{Name: name, Kind: KindString, Required: true, Description: description}
}

// TextList declares a required ordered sequence of strings.
func TextList(name, description string) Field {
	return Field{Name: name, Kind: KindStringArray, Required: true, Description: description}
}

// Optional returns a copy of the field that may be omitted.
func (f Field) Optional() Field {
	f.Required = false
	return f
}

// Schema is an ordered set of named, typed fields.
type Schema struct {
	Name        string
	Description string
	Fields      []Field
}

func New(name, description string, fields ...Field) Schema {
	return Schema{Name: name, Description: description, Fields: fields}
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns field names in declared order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Required returns the required field names in declared order.
func (s Schema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// AllRequired reports whether every field is required.
func (s Schema) AllRequired() bool {
	for _, f := range s.Fields {
		if !f.Required {
			return false
		}
	}
	return true
}

// JSONSchema renders s as a closed JSON Schema object with properties in
// declared order.
func (s Schema) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, f := range s.Fields {
		props.Set(f.Name, f.jsonSchema())
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Title:                s.Name,
		Description:          s.Description,
		Properties:           props,
		Required:             s.Required(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func (f Field) jsonSchema() *jsonschema.Schema {
	switch f.Kind {
	case KindStringArray:
		return &jsonschema.Schema{
			Type:        "array",
			Description: f.Description,
			Items:       &jsonschema.Schema{Type: "string"},
		}
	default:
		return &jsonschema.Schema{
			Type:        "string",
			Description: f.Description,
		}
	}
}
