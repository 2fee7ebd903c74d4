package schema

// Values is a validated payload. It only holds string and []string values,
// and optional fields that were not supplied are absent.
type Values map[string]any

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the named string value, or "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Strings returns the named sequence, or nil when absent.
func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return s
}

// Map converts the values to a plain map for JSON encoding.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
