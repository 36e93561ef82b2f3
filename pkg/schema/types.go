package schema

import (
	"github.com/goliatone/go-formkit/pkg/media"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Definition describes a form declaratively.
type Definition struct {
	Name    string            `json:"name" yaml:"name"`
	Extends string            `json:"extends,omitempty" yaml:"extends,omitempty"`
	Prefix  string            `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Media   media.Media       `json:"media,omitempty" yaml:"media,omitempty"`
	Fields  []FieldDefinition `json:"fields" yaml:"fields"`

	// Source is the file the definition was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Field returns the named field definition.
func (d Definition) Field(name string) (FieldDefinition, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// FieldDefinition describes one field. Type selects the field constructor;
// Widget and Format select a widget through the widget registry.
type FieldDefinition struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty"`
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	Initial  any    `json:"initial,omitempty" yaml:"initial,omitempty"`

	Widget string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Format string            `json:"format,omitempty" yaml:"format,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	Choices []widgets.Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	// Coerce converts typed_choice values: "int", "float" or "bool".
	Coerce string `json:"coerce,omitempty" yaml:"coerce,omitempty"`

	MinLength *int     `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinValue  *float64 `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	InputFormats      []string          `json:"input_formats,omitempty" yaml:"input_formats,omitempty"`
	Messages          map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
	ShowHiddenInitial bool              `json:"show_hidden_initial,omitempty" yaml:"show_hidden_initial,omitempty"`
}

// IsRequired reports whether the field is required. Fields are required
// unless the definition says otherwise.
func (f FieldDefinition) IsRequired() bool {
	return f.Required == nil || *f.Required
}
