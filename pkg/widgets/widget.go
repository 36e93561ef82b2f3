// Package widgets renders form controls and extracts their submitted values.
//
// A widget knows three things about a control: how to draw it for a given
// name and value, how to read its value back out of submitted data, and how
// to tell whether that value differs from the initial one. Fields own a
// widget; forms drive it.
package widgets

import (
	"net/url"

	"github.com/goliatone/go-formkit/pkg/media"
)

// Widget is the contract every control implements.
type Widget interface {
	// Render draws the control. attrs are merged over the widget's own attrs.
	Render(name string, value any, attrs Attrs) string
	// ValueFromData extracts the control's value from submitted data.
	ValueFromData(data url.Values, files Files, name string) any
	// HasChanged compares an initial value with extracted data.
	HasChanged(initial, data any) bool
	// IDForLabel returns the id a label should point at.
	IDForLabel(id string) string
	IsHidden() bool
	NeedsMultipart() bool
	Attrs() Attrs
	SetAttrs(attrs Attrs)
	Media() media.Media
}

// ChoiceWidget is implemented by widgets that draw a fixed set of options.
type ChoiceWidget interface {
	Widget
	Choices() []Choice
	SetChoices(choices []Choice)
}

// Base carries attrs and media and supplies the default single-value
// behaviour. Concrete widgets embed it.
type Base struct {
	attrs Attrs
	media media.Media
}

func newBase(attrs Attrs) Base {
	return Base{attrs: attrs.Clone()}
}

// Attrs returns a copy of the widget attributes.
func (b *Base) Attrs() Attrs {
	return b.attrs.Clone()
}

// SetAttrs replaces the widget attributes.
func (b *Base) SetAttrs(attrs Attrs) {
	b.attrs = attrs.Clone()
}

// Media returns the assets the widget needs.
func (b *Base) Media() media.Media {
	return b.media
}

// SetMedia declares the assets the widget needs.
func (b *Base) SetMedia(m media.Media) {
	b.media = m
}

// ValueFromData returns the first submitted value for name, or nil.
func (b *Base) ValueFromData(data url.Values, _ Files, name string) any {
	values, ok := data[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return values[0]
}

// HasChanged compares string forms, treating nil as "".
func (b *Base) HasChanged(initial, data any) bool {
	return ValueString(initial) != ValueString(data)
}

func (b *Base) IDForLabel(id string) string {
	return id
}

func (b *Base) IsHidden() bool {
	return false
}

func (b *Base) NeedsMultipart() bool {
	return false
}

func (b *Base) buildAttrs(extra Attrs, fixed Attrs) Attrs {
	return MergeAttrs(b.attrs, extra, fixed)
}
