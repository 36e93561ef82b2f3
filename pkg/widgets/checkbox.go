package widgets

import (
	"fmt"
	"net/url"
	"strings"
)

// CheckTest decides whether a checkbox renders as checked for a value.
type CheckTest func(value any) bool

// CheckboxInput renders a single <input type="checkbox">.
type CheckboxInput struct {
	Base
	check CheckTest
}

// NewCheckboxInput builds a checkbox. A nil check falls back to Truthy.
func NewCheckboxInput(attrs Attrs, check CheckTest) *CheckboxInput {
	return &CheckboxInput{Base: newBase(attrs), check: check}
}

func (w *CheckboxInput) Render(name string, value any, attrs Attrs) string {
	final := w.buildAttrs(attrs, Attrs{"type": "checkbox", "name": name})

	check := w.check
	if check == nil {
		check = Truthy
	}
	if check(value) {
		final["checked"] = "checked"
	}

	switch v := value.(type) {
	case nil, bool:
	case string:
		if v != "" {
			final["value"] = v
		}
	default:
		final["value"] = ValueString(v)
	}
	return fmt.Sprintf("<input%s />", final.Flatten())
}

// ValueFromData reports false when the key is absent: browsers omit
// unchecked boxes entirely. "true" and "false" map to booleans.
func (w *CheckboxInput) ValueFromData(data url.Values, _ Files, name string) any {
	values, ok := data[name]
	if !ok {
		return false
	}
	if len(values) == 0 {
		return ""
	}
	switch strings.ToLower(values[0]) {
	case "true":
		return true
	case "false":
		return false
	}
	return values[0]
}

func (w *CheckboxInput) HasChanged(initial, data any) bool {
	return Truthy(initial) != Truthy(data)
}
