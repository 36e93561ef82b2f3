package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// HiddenField is a hidden input emitted after the form rows. It is not a
// declared field: it is never cleaned and never appears in cleaned data.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a request forgery token under name ("_csrf",
// "csrfmiddlewaretoken", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// AuthToken carries an authentication token or session hint.
func AuthToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields returns a copy of base with fields applied in order, so
// later fields win. Blank names are dropped and an empty result is nil.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	all := SortedHiddenFields(base)
	all = append(all, fields...)

	var out map[string]string
	for _, field := range all {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(all))
		}
		out[name] = field.Value
	}
	return out
}

// SortedHiddenFields lists fields ordered by name. Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	var out []HiddenField
	for name, value := range fields {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, HiddenField{Name: name, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Render emits the hidden input for h.
func (h HiddenField) Render() string {
	return widgets.NewHiddenInput(nil).Render(h.Name, h.Value, nil)
}
