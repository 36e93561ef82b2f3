package widgets

import (
	"fmt"
	"html"
	"strings"
)

// RadioInput is a single radio button within a RadioRenderer.
type RadioInput struct {
	Name   string
	Value  string
	Attrs  Attrs
	Choice Choice
	Index  int
}

// IsChecked reports whether the button matches the current value.
func (r RadioInput) IsChecked() bool {
	return r.Value == r.Choice.Value
}

// Tag renders the bare <input type="radio"> element.
func (r RadioInput) Tag() string {
	attrs := r.Attrs.Clone()
	if id, ok := attrs["id"]; ok && id != "" {
		attrs["id"] = fmt.Sprintf("%s_%d", id, r.Index)
	}
	attrs["type"] = "radio"
	attrs["name"] = r.Name
	attrs["value"] = r.Choice.Value
	if r.IsChecked() {
		attrs["checked"] = "checked"
	}
	return fmt.Sprintf("<input%s />", attrs.Flatten())
}

// String renders the button wrapped in its label.
func (r RadioInput) String() string {
	labelFor := ""
	if id, ok := r.Attrs["id"]; ok && id != "" {
		labelFor = fmt.Sprintf(` for="%s_%d"`, html.EscapeString(id), r.Index)
	}
	return fmt.Sprintf("<label%s>%s %s</label>", labelFor, r.Tag(), html.EscapeString(r.Choice.Label))
}

// RadioRenderer lays out a set of radio buttons. It can be iterated through
// Inputs or At for custom layouts.
type RadioRenderer struct {
	name    string
	value   string
	attrs   Attrs
	choices []Choice
}

// Len reports the number of buttons.
func (r *RadioRenderer) Len() int {
	return len(r.choices)
}

// At returns the i-th button. ok is false when out of range.
func (r *RadioRenderer) At(i int) (RadioInput, bool) {
	if i < 0 || i >= len(r.choices) {
		return RadioInput{}, false
	}
	return RadioInput{Name: r.name, Value: r.value, Attrs: r.attrs.Clone(), Choice: r.choices[i], Index: i}, true
}

// Inputs returns every button in order.
func (r *RadioRenderer) Inputs() []RadioInput {
	out := make([]RadioInput, 0, len(r.choices))
	for i := range r.choices {
		input, _ := r.At(i)
		out = append(out, input)
	}
	return out
}

// Render draws the buttons as an unordered list.
func (r *RadioRenderer) Render() string {
	lines := []string{"<ul>"}
	for _, input := range r.Inputs() {
		lines = append(lines, fmt.Sprintf("<li>%s</li>", input))
	}
	lines = append(lines, "</ul>")
	return strings.Join(lines, "\n")
}

func (r *RadioRenderer) String() string {
	return r.Render()
}

// RadioSelect renders a choice list as radio buttons.
type RadioSelect struct {
	Select
}

func NewRadioSelect(attrs Attrs, choices []Choice) *RadioSelect {
	return &RadioSelect{Select: *NewSelect(attrs, choices)}
}

// Renderer builds the layout helper for the given value and extra choices.
func (w *RadioSelect) Renderer(name string, value any, attrs Attrs, extra []Choice) *RadioRenderer {
	return &RadioRenderer{
		name:    name,
		value:   ValueString(value),
		attrs:   w.buildAttrs(attrs, nil),
		choices: Flatten(w.allChoices(extra)),
	}
}

func (w *RadioSelect) Render(name string, value any, attrs Attrs) string {
	return w.RenderChoices(name, value, attrs, nil)
}

func (w *RadioSelect) RenderChoices(name string, value any, attrs Attrs, extra []Choice) string {
	return w.Renderer(name, value, attrs, extra).Render()
}

// IDForLabel points labels at the first button.
func (w *RadioSelect) IDForLabel(id string) string {
	if id == "" {
		return id
	}
	return id + "_0"
}

// CheckboxSelectMultiple renders a choice list as checkboxes.
type CheckboxSelectMultiple struct {
	SelectMultiple
}

func NewCheckboxSelectMultiple(attrs Attrs, choices []Choice) *CheckboxSelectMultiple {
	return &CheckboxSelectMultiple{SelectMultiple: *NewSelectMultiple(attrs, choices)}
}

func (w *CheckboxSelectMultiple) Render(name string, value any, attrs Attrs) string {
	return w.RenderChoices(name, value, attrs, nil)
}

func (w *CheckboxSelectMultiple) RenderChoices(name string, value any, attrs Attrs, extra []Choice) string {
	final := w.buildAttrs(attrs, Attrs{"name": name})
	id := final["id"]

	selected := make(map[string]struct{})
	for _, v := range ValueStrings(value) {
		selected[v] = struct{}{}
	}
	check := func(v any) bool {
		_, ok := selected[ValueString(v)]
		return ok
	}

	lines := []string{"<ul>"}
	for i, choice := range Flatten(w.allChoices(extra)) {
		itemAttrs := final.Clone()
		delete(itemAttrs, "name")
		labelFor := ""
		if id != "" {
			itemAttrs["id"] = fmt.Sprintf("%s_%d", id, i)
			labelFor = fmt.Sprintf(` for="%s"`, html.EscapeString(itemAttrs["id"]))
		}
		box := NewCheckboxInput(itemAttrs, check)
		lines = append(lines, fmt.Sprintf("<li><label%s>%s %s</label></li>",
			labelFor, box.Render(name, choice.Value, nil), html.EscapeString(choice.Label)))
	}
	lines = append(lines, "</ul>")
	return strings.Join(lines, "\n")
}

func (w *CheckboxSelectMultiple) IDForLabel(id string) string {
	if id == "" {
		return id
	}
	return id + "_0"
}
