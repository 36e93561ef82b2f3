package widgets

import (
	"fmt"
	"net/url"
	"strings"
)

type input struct {
	Base
	inputType string
}

func (w *input) Render(name string, value any, attrs Attrs) string {
	final := w.buildAttrs(attrs, Attrs{"type": w.inputType, "name": name})
	if s := ValueString(value); s != "" {
		final["value"] = s
	}
	return fmt.Sprintf("<input%s />", final.Flatten())
}

// InputType reports the HTML input type.
func (w *input) InputType() string {
	return w.inputType
}

// TextInput renders <input type="text">.
type TextInput struct {
	input
}

func NewTextInput(attrs Attrs) *TextInput {
	return &TextInput{input{Base: newBase(attrs), inputType: "text"}}
}

// PasswordInput renders <input type="password">. The value is only echoed
// back when RenderValue is set.
type PasswordInput struct {
	input
	RenderValue bool
}

func NewPasswordInput(attrs Attrs, renderValue bool) *PasswordInput {
	return &PasswordInput{input: input{Base: newBase(attrs), inputType: "password"}, RenderValue: renderValue}
}

func (w *PasswordInput) Render(name string, value any, attrs Attrs) string {
	if !w.RenderValue {
		value = nil
	}
	return w.input.Render(name, value, attrs)
}

// HiddenInput renders <input type="hidden">.
type HiddenInput struct {
	input
}

func NewHiddenInput(attrs Attrs) *HiddenInput {
	return &HiddenInput{input{Base: newBase(attrs), inputType: "hidden"}}
}

func (w *HiddenInput) IsHidden() bool {
	return true
}

// MultipleHiddenInput renders one hidden input per value of a list.
type MultipleHiddenInput struct {
	HiddenInput
	choices []Choice
}

func NewMultipleHiddenInput(attrs Attrs, choices []Choice) *MultipleHiddenInput {
	return &MultipleHiddenInput{HiddenInput: *NewHiddenInput(attrs), choices: cloneChoices(choices)}
}

func (w *MultipleHiddenInput) Choices() []Choice {
	return cloneChoices(w.choices)
}

func (w *MultipleHiddenInput) SetChoices(choices []Choice) {
	w.choices = cloneChoices(choices)
}

func (w *MultipleHiddenInput) Render(name string, value any, attrs Attrs) string {
	final := w.buildAttrs(attrs, Attrs{"type": w.inputType, "name": name})
	id := final["id"]
	values := ValueStrings(value)
	lines := make([]string, 0, len(values))
	for i, v := range values {
		item := final.Clone()
		item["value"] = v
		if id != "" {
			item["id"] = fmt.Sprintf("%s_%d", id, i)
		}
		lines = append(lines, fmt.Sprintf("<input%s />", item.Flatten()))
	}
	return strings.Join(lines, "\n")
}

func (w *MultipleHiddenInput) ValueFromData(data url.Values, _ Files, name string) any {
	values, ok := data[name]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

func (w *MultipleHiddenInput) HasChanged(initial, data any) bool {
	return !sameStringSet(ValueStrings(initial), ValueStrings(data))
}

// FileInput renders <input type="file">. Uploaded files are never echoed.
type FileInput struct {
	input
}

func NewFileInput(attrs Attrs) *FileInput {
	return &FileInput{input{Base: newBase(attrs), inputType: "file"}}
}

func (w *FileInput) Render(name string, _ any, attrs Attrs) string {
	return w.input.Render(name, nil, attrs)
}

// ValueFromData returns the first uploaded *multipart.FileHeader, or nil.
func (w *FileInput) ValueFromData(_ url.Values, files Files, name string) any {
	headers := files[name]
	if len(headers) == 0 || headers[0] == nil {
		return nil
	}
	return headers[0]
}

func (w *FileInput) HasChanged(_ any, data any) bool {
	return data != nil
}

func (w *FileInput) NeedsMultipart() bool {
	return true
}
