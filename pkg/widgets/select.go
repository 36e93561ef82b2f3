package widgets

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// Select renders a <select> drop-down.
type Select struct {
	Base
	choices []Choice
}

func NewSelect(attrs Attrs, choices []Choice) *Select {
	return &Select{Base: newBase(attrs), choices: cloneChoices(choices)}
}

func (w *Select) Choices() []Choice {
	return cloneChoices(w.choices)
}

func (w *Select) SetChoices(choices []Choice) {
	w.choices = cloneChoices(choices)
}

func (w *Select) Render(name string, value any, attrs Attrs) string {
	return w.RenderChoices(name, value, attrs, nil)
}

// RenderChoices renders the widget with extra choices appended to its own.
func (w *Select) RenderChoices(name string, value any, attrs Attrs, extra []Choice) string {
	final := w.buildAttrs(attrs, Attrs{"name": name})
	output := []string{fmt.Sprintf("<select%s>", final.Flatten())}
	if options := w.renderOptions(extra, []string{ValueString(value)}); options != "" {
		output = append(output, options)
	}
	output = append(output, "</select>")
	return strings.Join(output, "\n")
}

func (w *Select) allChoices(extra []Choice) []Choice {
	return append(cloneChoices(w.choices), cloneChoices(extra)...)
}

func (w *Select) renderOptions(extra []Choice, selected []string) string {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		selectedSet[value] = struct{}{}
	}

	var output []string
	for _, choice := range w.allChoices(extra) {
		if choice.IsGroup() {
			output = append(output, fmt.Sprintf(`<optgroup label="%s">`, html.EscapeString(choice.Label)))
			for _, option := range Flatten(choice.Options) {
				output = append(output, renderOption(option, selectedSet))
			}
			output = append(output, "</optgroup>")
			continue
		}
		output = append(output, renderOption(choice, selectedSet))
	}
	return strings.Join(output, "\n")
}

func renderOption(choice Choice, selected map[string]struct{}) string {
	selectedHTML := ""
	if _, ok := selected[choice.Value]; ok {
		selectedHTML = ` selected="selected"`
	}
	return fmt.Sprintf(`<option value="%s"%s>%s</option>`,
		html.EscapeString(choice.Value), selectedHTML, html.EscapeString(choice.Label))
}

// SelectMultiple renders a <select multiple> list. Its value is a list.
type SelectMultiple struct {
	Select
}

func NewSelectMultiple(attrs Attrs, choices []Choice) *SelectMultiple {
	return &SelectMultiple{Select: *NewSelect(attrs, choices)}
}

func (w *SelectMultiple) Render(name string, value any, attrs Attrs) string {
	return w.RenderChoices(name, value, attrs, nil)
}

func (w *SelectMultiple) RenderChoices(name string, value any, attrs Attrs, extra []Choice) string {
	final := w.buildAttrs(attrs, Attrs{"name": name})
	output := []string{fmt.Sprintf(`<select multiple="multiple"%s>`, final.Flatten())}
	if options := w.renderOptions(extra, ValueStrings(value)); options != "" {
		output = append(output, options)
	}
	output = append(output, "</select>")
	return strings.Join(output, "\n")
}

// ValueFromData returns every submitted value for name, or nil.
func (w *SelectMultiple) ValueFromData(data url.Values, _ Files, name string) any {
	values, ok := data[name]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

func (w *SelectMultiple) HasChanged(initial, data any) bool {
	return !sameStringSet(ValueStrings(initial), ValueStrings(data))
}

// NullBooleanSelect offers Unknown / Yes / No and yields nil, true or false.
type NullBooleanSelect struct {
	Select
}

func NewNullBooleanSelect(attrs Attrs) *NullBooleanSelect {
	return &NullBooleanSelect{Select: *NewSelect(attrs, Pairs("1", "Unknown", "2", "Yes", "3", "No"))}
}

func (w *NullBooleanSelect) Render(name string, value any, attrs Attrs) string {
	return w.Select.Render(name, nullBooleanOption(value), attrs)
}

func (w *NullBooleanSelect) ValueFromData(data url.Values, files Files, name string) any {
	return NullBoolean(w.Base.ValueFromData(data, files, name))
}

func (w *NullBooleanSelect) HasChanged(initial, data any) bool {
	return nullBooleanOption(initial) != nullBooleanOption(data)
}

// NullBoolean maps submitted tri-state values onto true, false or nil.
func NullBoolean(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch v {
		case "2", "True", "true", "on":
			return true
		case "3", "False", "false", "off":
			return false
		}
	}
	return nil
}

func nullBooleanOption(value any) string {
	switch NullBoolean(value) {
	case true:
		return "2"
	case false:
		return "3"
	default:
		return "1"
	}
}
