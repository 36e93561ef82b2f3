// Package fields declares typed form fields. A field owns a widget, knows
// its label, help text and initial value, and cleans raw submitted values
// into typed values or returns a validation error.
package fields

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Error message keys shared by every field.
const (
	MessageRequired = "required"
	MessageInvalid  = "invalid"
)

var baseMessages = map[string]string{
	MessageRequired: "This field is required.",
	MessageInvalid:  "Enter a valid value.",
}

// Field is the contract forms use to drive a declared field.
type Field interface {
	// Clean converts a raw value extracted by the widget into its typed
	// form, or returns a validation error.
	Clean(value any) (any, error)
	Widget() widgets.Widget
	HiddenWidget() widgets.Widget
	Label() string
	HelpText() string
	Initial() any
	Required() bool
	ShowHiddenInitial() bool
	// ErrorMessages returns the merged message table keyed by code.
	ErrorMessages() map[string]string
	// BoundData picks the value a bound form renders for the field.
	BoundData(data, initial any) any
}

// FileCleaner is implemented by fields that fall back to their initial value
// when nothing was uploaded.
type FileCleaner interface {
	CleanFile(data, initial any) (any, error)
}

// Validator runs after a field's own cleaning on non-empty values.
type Validator func(value any) error

// Base implements the option handling and behaviour shared by all fields.
type Base struct {
	label             string
	helpText          string
	initial           any
	required          bool
	widget            widgets.Widget
	hiddenWidget      widgets.Widget
	messages          map[string]string
	showHiddenInitial bool
	validators        []Validator
}

func newBase(cfg config, defaults map[string]string, widget widgets.Widget) Base {
	if cfg.widget != nil {
		widget = cfg.widget
	}
	if len(cfg.attrs) > 0 {
		widget.SetAttrs(widgets.MergeAttrs(widget.Attrs(), cfg.attrs))
	}
	hidden := cfg.hiddenWidget
	if hidden == nil {
		hidden = widgets.NewHiddenInput(nil)
	}

	messages := make(map[string]string, len(baseMessages)+len(defaults)+len(cfg.messages))
	for _, set := range []map[string]string{baseMessages, defaults, cfg.messages} {
		for key, value := range set {
			messages[key] = value
		}
	}

	return Base{
		label:             cfg.label,
		helpText:          cfg.helpText,
		initial:           cfg.initial,
		required:          cfg.required,
		widget:            widget,
		hiddenWidget:      hidden,
		messages:          messages,
		showHiddenInitial: cfg.showHiddenInitial,
		validators:        append([]Validator(nil), cfg.validators...),
	}
}

func (b *Base) Label() string { return b.label }
func (b *Base) HelpText() string { return b.helpText }
func (b *Base) Initial() any { return b.initial }
func (b *Base) Required() bool { return b.required }
func (b *Base) ShowHiddenInitial() bool { return b.showHiddenInitial }
func (b *Base) Widget() widgets.Widget { return b.widget }
func (b *Base) HiddenWidget() widgets.Widget { return b.hiddenWidget }
func (b *Base) BoundData(data, _ any) any { return data }
func (b *Base) Validators() []Validator { return append([]Validator(nil), b.validators...) }

func (b *Base) ErrorMessages() map[string]string {
	out := make(map[string]string, len(b.messages))
	for key, value := range b.messages {
		out[key] = value
	}
	return out
}

// Clean enforces required and runs the extra validators. Concrete fields
// call it after their own conversion.
func (b *Base) Clean(value any) (any, error) {
	if IsEmpty(value) {
		if b.required {
			return nil, b.fail(MessageRequired)
		}
		return value, nil
	}
	if err := b.validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

func (b *Base) validate(value any) error {
	var errs []error
	for _, validator := range b.validators {
		if err := validator(value); err != nil {
			errs = append(errs, err)
		}
	}
	return validation.Join(errs...)
}

// fail builds a validation error from the message registered under code.
func (b *Base) fail(code string, args ...any) error {
	message, ok := b.messages[code]
	if !ok {
		message = baseMessages[MessageInvalid]
	}
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return validation.NewError(code, message)
}

// IsEmpty reports whether a value counts as "not supplied": nil, the empty
// string, or an empty list or map.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case map[string]string:
		return len(v) == 0
	}
	return false
}
