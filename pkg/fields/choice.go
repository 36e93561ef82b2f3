package fields

import (
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Message keys used by choice fields.
const (
	MessageInvalidChoice = "invalid_choice"
	MessageInvalidList   = "invalid_list"
)

var choiceMessages = map[string]string{
	MessageInvalidChoice: "Select a valid choice. %s is not one of the available choices.",
}

// Choice accepts one value out of a fixed set. Option groups are searched
// too. Empty input yields "".
type Choice struct {
	Base
	choices []widgets.Choice
}

func NewChoice(opts ...Option) *Choice {
	return newChoice(newConfig(opts), choiceMessages, widgets.NewSelect(nil, nil))
}

func newChoice(cfg config, messages map[string]string, widget widgets.Widget) *Choice {
	field := &Choice{Base: newBase(cfg, messages, widget)}
	field.SetChoices(cfg.choices)
	return field
}

// Choices returns a copy of the available choices.
func (f *Choice) Choices() []widgets.Choice {
	return append([]widgets.Choice(nil), f.choices...)
}

// SetChoices replaces the available choices on the field and its widget.
func (f *Choice) SetChoices(choices []widgets.Choice) {
	f.choices = append([]widgets.Choice(nil), choices...)
	if chooser, ok := f.widget.(widgets.ChoiceWidget); ok {
		chooser.SetChoices(f.choices)
	}
}

// ValidValue reports whether value matches one of the choices.
func (f *Choice) ValidValue(value string) bool {
	return widgets.Contains(f.choices, value)
}

func (f *Choice) Clean(value any) (any, error) {
	text := widgets.ValueString(value)
	if text == "" {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return "", nil
	}
	if !f.ValidValue(text) {
		return nil, f.fail(MessageInvalidChoice, text)
	}
	if err := f.validate(text); err != nil {
		return nil, err
	}
	return text, nil
}

// TypedChoice is a choice field whose value is converted by a coerce func.
// Empty input yields the configured empty value.
type TypedChoice struct {
	*Choice
	coerce     func(string) (any, error)
	emptyValue any
}

func NewTypedChoice(opts ...Option) *TypedChoice {
	cfg := newConfig(opts)
	coerce := cfg.coerce
	if coerce == nil {
		coerce = func(s string) (any, error) { return s, nil }
	}
	emptyValue := cfg.emptyValue
	if emptyValue == nil {
		emptyValue = ""
	}
	return &TypedChoice{
		Choice:     newChoice(cfg, choiceMessages, widgets.NewSelect(nil, nil)),
		coerce:     coerce,
		emptyValue: emptyValue,
	}
}

func (f *TypedChoice) Clean(value any) (any, error) {
	cleaned, err := f.Choice.Clean(value)
	if err != nil {
		return nil, err
	}
	if cleaned == "" {
		return f.emptyValue, nil
	}
	typed, err := f.coerce(cleaned.(string))
	if err != nil {
		return nil, f.fail(MessageInvalidChoice, cleaned)
	}
	return typed, nil
}

// MultipleChoice accepts a list of values out of a fixed set and cleans it
// into []string. Its hidden widget carries one input per value.
type MultipleChoice struct {
	*Choice
}

func NewMultipleChoice(opts ...Option) *MultipleChoice {
	cfg := newConfig(opts)
	if cfg.hiddenWidget == nil {
		cfg.hiddenWidget = widgets.NewMultipleHiddenInput(nil, nil)
	}
	messages := mergeMessages(choiceMessages, map[string]string{MessageInvalidList: "Enter a list of values."})
	return &MultipleChoice{Choice: newChoice(cfg, messages, widgets.NewSelectMultiple(nil, nil))}
}

func (f *MultipleChoice) Clean(value any) (any, error) {
	if IsEmpty(value) {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return []string{}, nil
	}

	var values []string
	switch v := value.(type) {
	case []string:
		values = append([]string(nil), v...)
	case []any:
		values = widgets.ValueStrings(v)
	default:
		return nil, f.fail(MessageInvalidList)
	}

	for _, item := range values {
		if !f.ValidValue(item) {
			return nil, f.fail(MessageInvalidChoice, item)
		}
	}
	if err := f.validate(values); err != nil {
		return nil, err
	}
	return values, nil
}
