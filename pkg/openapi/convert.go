package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// convertProperties maps an object schema's properties onto fields. Read-only,
// object and untyped array properties have no form representation and are
// skipped.
func convertProperties(obj *openapi3.Schema) []schema.FieldDefinition {
	required := make(map[string]bool, len(obj.Required))
	for _, name := range obj.Required {
		required[name] = true
	}

	var out []schema.FieldDefinition
	for _, name := range propertyOrder(obj) {
		ref := obj.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		field, ok := convertProperty(name, ref.Value, required[name])
		if ok {
			out = append(out, field)
		}
	}
	return out
}

// propertyOrder returns the names listed by ExtensionOrder first, then the
// remaining properties alphabetically.
func propertyOrder(obj *openapi3.Schema) []string {
	seen := make(map[string]bool, len(obj.Properties))
	var names []string
	if listed, ok := obj.Extensions[ExtensionOrder].([]any); ok {
		for _, raw := range listed {
			name, _ := raw.(string)
			if _, exists := obj.Properties[name]; exists && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	rest := make([]string, 0, len(obj.Properties))
	for name := range obj.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func convertProperty(name string, s *openapi3.Schema, required bool) (schema.FieldDefinition, bool) {
	field := schema.FieldDefinition{
		Name:     name,
		Label:    s.Title,
		Help:     s.Description,
		Required: &required,
		Initial:  s.Default,
	}
	if widget, ok := s.Extensions[ExtensionWidget].(string); ok {
		field.Widget = widget
	}

	switch {
	case hasType(s, "boolean"):
		field.Type = schema.TypeBoolean
		if s.Nullable {
			field.Type = schema.TypeNullBoolean
		}
		// A required checkbox would have to be ticked; presence is all the
		// schema asks for.
		notRequired := false
		field.Required = &notRequired
	case len(s.Enum) > 0:
		field.Choices = enumChoices(s.Enum)
		field.Type = schema.TypeChoice
		if hasType(s, "integer") {
			field.Type, field.Coerce = schema.TypeTypedChoice, "int"
		} else if hasType(s, "number") {
			field.Type, field.Coerce = schema.TypeTypedChoice, "float"
		}
	case hasType(s, "integer"):
		field.Type = schema.TypeInteger
		field.MinValue, field.MaxValue = s.Min, s.Max
	case hasType(s, "number"):
		field.Type = schema.TypeFloat
		field.MinValue, field.MaxValue = s.Min, s.Max
	case hasType(s, "array"):
		items := s.Items
		if items == nil || items.Value == nil || len(items.Value.Enum) == 0 {
			return field, false
		}
		field.Type = schema.TypeMultipleChoice
		field.Choices = enumChoices(items.Value.Enum)
	case hasType(s, "object"):
		return field, false
	default:
		convertString(&field, s)
	}
	return field, true
}

func convertString(field *schema.FieldDefinition, s *openapi3.Schema) {
	field.Type = schema.TypeChar
	switch strings.ToLower(s.Format) {
	case "email":
		field.Type = schema.TypeEmail
	case "date":
		field.Type = schema.TypeDate
	case "binary":
		field.Type = schema.TypeFile
	case "password", "textarea", "hidden":
		field.Format = strings.ToLower(s.Format)
	}
	if s.Pattern != "" && field.Type == schema.TypeChar {
		field.Pattern = s.Pattern
	}
	if s.MinLength > 0 {
		n := int(s.MinLength)
		field.MinLength = &n
	}
	if s.MaxLength != nil {
		n := int(*s.MaxLength)
		field.MaxLength = &n
	}
}

func enumChoices(values []any) []widgets.Choice {
	choices := make([]widgets.Choice, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		text := fmt.Sprint(value)
		choices = append(choices, widgets.Choice{Value: text, Label: text})
	}
	return choices
}

func hasType(s *openapi3.Schema, name string) bool {
	if s.Type == nil {
		return false
	}
	for _, typ := range s.Type.Slice() {
		if typ == name {
			return true
		}
	}
	return false
}
