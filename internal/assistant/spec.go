package assistant

import (
	"fmt"
	"strings"
	"time"
)

// FieldKind is the widget class a field renders as. The serving layer
// and the MCP tool descriptions both derive their surfaces from it.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindTextarea    FieldKind = "textarea"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindCheckbox    FieldKind = "checkbox"
)

// FieldSpec describes one input field of a function. Select fields
// default to their first option when the submission omits them;
// checkbox fields fall back to Default.
type FieldSpec struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Default     bool      `json:"default,omitempty"`
}

// Prompt is the composed message pair sent upstream.
type Prompt struct {
	System string
	User   string
}

// FunctionSpec is the static descriptor of one assistant function.
// Created at process start, never mutated afterwards.
type FunctionSpec struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FieldSpec `json:"fields"`

	// RequiredMessage is the user-visible warning when required fields
	// are empty.
	RequiredMessage string `json:"-"`

	// Compose maps prepared fields to the prompt pair. Pure: no I/O, no
	// randomness, no clock.
	Compose func(f Fields) Prompt `json:"-"`

	// Download derives the text-file name offered with the result; nil
	// when the function has no download surface.
	Download func(f Fields, now time.Time) string `json:"-"`
}

// Prepare normalizes a raw submission against the field table and
// validates it. Every declared field comes out present with a defined
// value; unknown keys are dropped. Required fields must be non-blank,
// checked before any I/O happens.
func (s *FunctionSpec) Prepare(raw Fields) (Fields, error) {
	out := make(Fields, len(s.Fields))
	for _, fs := range s.Fields {
		v, present := raw[fs.Name]
		if v == nil {
			present = false
		}
		switch fs.Kind {
		case KindText, KindTextarea:
			if !present {
				out[fs.Name] = ""
				break
			}
			str, ok := v.(string)
			if !ok {
				return nil, &ValidationError{
					FunctionID: s.ID,
					Message:    fmt.Sprintf("field %q must be a string", fs.Name),
				}
			}
			out[fs.Name] = str
		case KindSelect:
			str, ok := v.(string)
			if present && !ok {
				return nil, &ValidationError{
					FunctionID: s.ID,
					Message:    fmt.Sprintf("field %q must be a string", fs.Name),
				}
			}
			if strings.TrimSpace(str) == "" && len(fs.Options) > 0 {
				str = fs.Options[0]
			}
			out[fs.Name] = str
		case KindMultiSelect:
			if !present {
				out[fs.Name] = []string(nil)
				break
			}
			list, err := toStringList(v)
			if err != nil {
				return nil, &ValidationError{
					FunctionID: s.ID,
					Message:    fmt.Sprintf("field %q must be a list of strings", fs.Name),
				}
			}
			out[fs.Name] = list
		case KindCheckbox:
			if !present {
				out[fs.Name] = fs.Default
				break
			}
			b, ok := v.(bool)
			if !ok {
				return nil, &ValidationError{
					FunctionID: s.ID,
					Message:    fmt.Sprintf("field %q must be a boolean", fs.Name),
				}
			}
			out[fs.Name] = b
		}
	}

	var missing []string
	for _, fs := range s.Fields {
		if fs.Required && strings.TrimSpace(out.Text(fs.Name)) == "" {
			missing = append(missing, fs.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			FunctionID: s.ID,
			Missing:    missing,
			Message:    s.RequiredMessage,
		}
	}
	return out, nil
}

// Registry holds the function table in declaration order.
type Registry struct {
	specs []*FunctionSpec
	byID  map[string]*FunctionSpec
}

func newRegistry(specs ...*FunctionSpec) *Registry {
	r := &Registry{
		specs: specs,
		byID:  make(map[string]*FunctionSpec, len(specs)),
	}
	for _, s := range specs {
		r.byID[s.ID] = s
	}
	return r
}

// Get looks up a function by identifier.
func (r *Registry) Get(id string) (*FunctionSpec, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, &UnknownFunctionError{ID: id}
	}
	return s, nil
}

// List returns the functions in declaration order.
func (r *Registry) List() []*FunctionSpec {
	return r.specs
}

// Compose prepares a raw submission and composes its prompt pair.
func (r *Registry) Compose(id string, raw Fields) (Prompt, error) {
	spec, err := r.Get(id)
	if err != nil {
		return Prompt{}, err
	}
	fields, err := spec.Prepare(raw)
	if err != nil {
		return Prompt{}, err
	}
	return spec.Compose(fields), nil
}
