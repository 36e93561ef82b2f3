package forms

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// BoundField is a field seen through a form: it knows its html name, id,
// errors and the value to render.
type BoundField struct {
	form  *Form
	field fields.Field
	name  string

	htmlName        string
	htmlInitialName string
	label           string
	helpText        string
}

func newBoundField(form *Form, field fields.Field, name string) *BoundField {
	label := field.Label()
	if label == "" {
		label = PrettyName(name)
	}
	return &BoundField{
		form:            form,
		field:           field,
		name:            name,
		htmlName:        form.AddPrefix(name),
		htmlInitialName: form.AddInitialPrefix(name),
		label:           label,
		helpText:        field.HelpText(),
	}
}

func (b *BoundField) Name() string {
	return b.name
}

func (b *BoundField) HTMLName() string {
	return b.htmlName
}

func (b *BoundField) HTMLInitialName() string {
	return b.htmlInitialName
}

// Field returns the underlying field.
func (b *BoundField) Field() fields.Field {
	return b.field
}

func (b *BoundField) Label() string {
	return b.label
}

// HelpText returns the sanitized help text.
func (b *BoundField) HelpText() string {
	return SanitizeHelpText(b.helpText)
}

// AutoID returns the id attribute for the widget, or "" when ids are off.
func (b *BoundField) AutoID() string {
	format := b.form.autoID
	switch {
	case format == "":
		return ""
	case strings.Contains(format, "%s"):
		return strings.Replace(format, "%s", b.htmlName, 1)
	default:
		return b.htmlName
	}
}

// HTMLInitialID returns the id of the hidden initial input.
func (b *BoundField) HTMLInitialID() string {
	id := b.AutoID()
	if id == "" {
		return ""
	}
	return "initial-" + id
}

// IDForLabel returns the id a label should point at.
func (b *BoundField) IDForLabel() string {
	widget := b.field.Widget()
	id := widget.Attrs()["id"]
	if id == "" {
		id = b.AutoID()
	}
	return widget.IDForLabel(id)
}

// Errors returns the field's errors, empty when it has none.
func (b *BoundField) Errors() *validation.ErrorList {
	if list := b.form.Errors().Get(b.name); list != nil {
		return list
	}
	return validation.NewErrorListWithClass(b.form.errorClass)
}

// Data returns the value the widget extracts from the submitted data.
func (b *BoundField) Data() any {
	return b.field.Widget().ValueFromData(b.form.data, b.form.files, b.htmlName)
}

// Initial returns the form initial value, else the field initial.
func (b *BoundField) Initial() any {
	return b.form.initialFor(b.name, b.field)
}

// Value returns the value to render: the initial value for unbound forms,
// the field's bound data otherwise.
func (b *BoundField) Value() any {
	initial := b.Initial()
	if !b.form.bound {
		return initial
	}
	return b.field.BoundData(b.Data(), initial)
}

func (b *BoundField) IsHidden() bool {
	return b.field.Widget().IsHidden()
}

// String renders the widget, followed by the hidden initial input when the
// field asks for one.
func (b *BoundField) String() string {
	if b.field.ShowHiddenInitial() {
		return b.AsWidget(nil, nil, false) + b.AsHidden(nil, true)
	}
	return b.AsWidget(nil, nil, false)
}

// AsWidget renders the field through widget, or the field's own widget when
// nil. onlyInitial renders the hidden initial copy instead.
func (b *BoundField) AsWidget(widget widgets.Widget, attrs widgets.Attrs, onlyInitial bool) string {
	if widget == nil {
		widget = b.field.Widget()
	}
	attrs = attrs.Clone()

	if autoID := b.AutoID(); autoID != "" && !attrs.Has("id") && !widget.Attrs().Has("id") {
		if onlyInitial {
			attrs["id"] = b.HTMLInitialID()
		} else {
			attrs["id"] = autoID
		}
	}

	name := b.htmlName
	value := b.Value()
	if onlyInitial {
		name = b.htmlInitialName
		if _, ok := b.form.data[name]; ok {
			value = b.field.HiddenWidget().ValueFromData(b.form.data, b.form.files, name)
		}
	}
	return widget.Render(name, value, attrs)
}

// AsText renders the field as a text input.
func (b *BoundField) AsText(attrs widgets.Attrs) string {
	return b.AsWidget(widgets.NewTextInput(nil), attrs, false)
}

// AsTextarea renders the field as a textarea.
func (b *BoundField) AsTextarea(attrs widgets.Attrs) string {
	return b.AsWidget(widgets.NewTextarea(nil), attrs, false)
}

// AsHidden renders the field with its hidden widget.
func (b *BoundField) AsHidden(attrs widgets.Attrs, onlyInitial bool) string {
	return b.AsWidget(b.field.HiddenWidget(), attrs, onlyInitial)
}

// LabelTag wraps contents in a <label> pointing at the widget. contents
// defaults to the escaped label. Without an id the contents are returned
// bare.
func (b *BoundField) LabelTag(contents string, attrs widgets.Attrs) string {
	if contents == "" {
		contents = html.EscapeString(b.label)
	}
	widget := b.field.Widget()
	id := widget.Attrs()["id"]
	if id == "" {
		id = b.AutoID()
	}
	if id == "" {
		return contents
	}
	return fmt.Sprintf(`<label for="%s"%s>%s</label>`, html.EscapeString(widget.IDForLabel(id)), attrs.Flatten(), contents)
}

// CSSClasses returns the row classes for the field: extra first, then the
// form's error and required classes when they apply.
func (b *BoundField) CSSClasses(extra ...string) string {
	classes := append([]string(nil), extra...)
	if b.form.errorCSSClass != "" && b.Errors().Len() > 0 {
		classes = append(classes, b.form.errorCSSClass)
	}
	if b.form.requiredCSSClass != "" && b.field.Required() {
		classes = append(classes, b.form.requiredCSSClass)
	}
	return strings.Join(classes, " ")
}
