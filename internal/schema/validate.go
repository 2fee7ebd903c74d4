package schema

import (
	"fmt"
)

// Constraint identifies which rule a payload broke.
type Constraint string

const (
	ConstraintMissing          Constraint = "missing_required_field"
	ConstraintWrongType        Constraint = "wrong_type"
	ConstraintWrongElementType Constraint = "wrong_element_type"
)

// ValidationError reports the first field of a payload that violates its schema.
type ValidationError struct {
	Schema     string
	Field      string
	Constraint Constraint
	Expected   Kind
	Got        string // JSON type name of the offending value
	Index      int    // element position, only set for ConstraintWrongElementType
}

func (e *ValidationError) Error() string {
	switch e.Constraint {
	case ConstraintMissing:
		return fmt.Sprintf("%s: field %q is required", e.Schema, e.Field)
	case ConstraintWrongElementType:
		return fmt.Sprintf("%s: field %q element %d must be a string, got %s", e.Schema, e.Field, e.Index, e.Got)
	default:
		return fmt.Sprintf("%s: field %q must be %s, got %s", e.Schema, e.Field, describeKind(e.Expected), e.Got)
	}
}

// Validate checks raw against the schema and returns the typed values.
// Fields are checked in declared order and the first violation is returned.
// JSON null counts as not supplied. Keys the schema does not declare are dropped.
func (s Schema) Validate(raw map[string]any) (Values, error) {
	out := make(Values, len(s.Fields))

	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, &ValidationError{
					Schema:     s.Name,
					Field:      f.Name,
					Constraint: ConstraintMissing,
					Expected:   f.Kind,
					Got:        "null",
				}
			}
			continue
		}

		switch f.Kind {
		case KindString:
			str, ok := v.(string)
			if !ok {
				return nil, &ValidationError{
					Schema:     s.Name,
					Field:      f.Name,
					Constraint: ConstraintWrongType,
					Expected:   f.Kind,
					Got:        typeName(v),
				}
			}
			out[f.Name] = str

		case KindStringArray:
			items, err := toStrings(s.Name, f, v)
			if err != nil {
				return nil, err
			}
			out[f.Name] = items

		default:
			return nil, fmt.Errorf("%s: field %q has unknown kind %q", s.Name, f.Name, f.Kind)
		}
	}

	return out, nil
}

func toStrings(schemaName string, f Field, v any) ([]string, error) {
	switch items := v.(type) {
	case []string:
		return append([]string(nil), items...), nil
	case []any:
		out := make([]string, len(items))
		for i, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, &ValidationError{
					Schema:     schemaName,
					Field:      f.Name,
					Constraint: ConstraintWrongElementType,
					Expected:   f.Kind,
					Got:        typeName(item),
					Index:      i,
				}
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, &ValidationError{
			Schema:     schemaName,
			Field:      f.Name,
			Constraint: ConstraintWrongType,
			Expected:   f.Kind,
			Got:        typeName(v),
		}
	}
}

func describeKind(k Kind) string {
	if k == KindStringArray {
		return "an array of strings"
	}
	return "a string"
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
