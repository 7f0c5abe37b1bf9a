package assistant

import "fmt"

// Fields holds one submission's field values, keyed by field name.
// After Prepare each declared field is present with its canonical type:
// string for text and select kinds, []string for multiselect, bool for
// checkbox. Built fresh per request and discarded with the response.
type Fields map[string]any

// Text returns the string value of a field, or "" when absent.
func (f Fields) Text(name string) string {
	if v, ok := f[name].(string); ok {
		return v
	}
	return ""
}

// List returns the multiselect values of a field, or nil when absent.
func (f Fields) List(name string) []string {
	if v, ok := f[name].([]string); ok {
		return v
	}
	return nil
}

// Bool returns the checkbox value of a field, or def when absent.
func (f Fields) Bool(name string, def bool) bool {
	if v, ok := f[name].(bool); ok {
		return v
	}
	return def
}

// toStringList accepts both []string and the []any produced by
// encoding/json.
func toStringList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("value %v is not a list", v)
}
