package widgets

import (
	"strings"
	"time"
)

// DefaultDateFormat is the layout DateInput renders time values with.
const DefaultDateFormat = "2006-01-02"

// DateInput renders <input type="text"> holding a date. time.Time values are
// formatted with Format; anything else renders as text.
type DateInput struct {
	input
	Format string
	// InputFormats are tried, after Format, when HasChanged compares text
	// values.
	InputFormats []string
}

func NewDateInput(attrs Attrs, format string) *DateInput {
	if format == "" {
		format = DefaultDateFormat
	}
	return &DateInput{input: input{Base: newBase(attrs), inputType: "text"}, Format: format}
}

// NewDateHiddenInput renders a date as <input type="hidden"> using format, so
// a hidden initial value reads back the same way the visible input does.
func NewDateHiddenInput(attrs Attrs, format string) *DateInput {
	w := NewDateInput(attrs, format)
	w.inputType = "hidden"
	return w
}

func (w *DateInput) IsHidden() bool {
	return w.inputType == "hidden"
}

func (w *DateInput) Render(name string, value any, attrs Attrs) string {
	return w.input.Render(name, w.formatValue(value), attrs)
}

func (w *DateInput) HasChanged(initial, data any) bool {
	return ValueString(w.normalize(initial)) != ValueString(w.normalize(data))
}

// normalize formats time values and any text that parses with Format or
// InputFormats, leaving unparseable text untouched.
func (w *DateInput) normalize(value any) any {
	s, ok := value.(string)
	if !ok {
		return w.formatValue(value)
	}
	s = strings.TrimSpace(s)
	for _, layout := range append([]string{w.Format}, w.InputFormats...) {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(w.Format)
		}
	}
	return s
}

func (w *DateInput) formatValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return v.Format(w.Format)
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return v.Format(w.Format)
	}
	return value
}
