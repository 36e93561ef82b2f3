package widgets

import (
	"fmt"
	"html"
)

// Textarea renders a <textarea>; cols and rows default to 40 and 10.
type Textarea struct {
	Base
}

func NewTextarea(attrs Attrs) *Textarea {
	return &Textarea{Base: newBase(MergeAttrs(Attrs{"cols": "40", "rows": "10"}, attrs))}
}

func (w *Textarea) Render(name string, value any, attrs Attrs) string {
	final := w.buildAttrs(attrs, Attrs{"name": name})
	return fmt.Sprintf("<textarea%s>%s</textarea>", final.Flatten(), html.EscapeString(ValueString(value)))
}
