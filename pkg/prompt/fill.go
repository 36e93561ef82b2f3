// Package prompt fills a form interactively. Each field is asked for with a
// terminal prompt chosen from its widget, the answers are bound as submitted
// data, and fields that fail validation are asked for again.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// DefaultMaxAttempts bounds how often a form is bound before giving up.
const DefaultMaxAttempts = 3

var (
	// ErrAborted signals the user interrupted input.
	ErrAborted = errors.New("prompt: aborted")
	// ErrNilDriver is returned by Fill without a driver.
	ErrNilDriver = errors.New("prompt: driver is nil")
	// ErrTooManyAttempts is returned with the last bound form when it is
	// still invalid after the allowed attempts.
	ErrTooManyAttempts = errors.New("prompt: form still invalid")
)

var nullBooleanOptions = []string{"Unknown", "Yes", "No"}

// Option configures a Filler.
type Option func(*Filler)

// WithMaxAttempts sets how many times the form is bound. Values below one
// are ignored.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithInlineValidation toggles cleaning text answers as they are typed.
func WithInlineValidation(enabled bool) Option {
	return func(f *Filler) { f.inline = enabled }
}

// WithFormOptions forwards options to every form the filler builds, such as
// a prefix or initial values. Data options are overridden by the answers.
func WithFormOptions(opts ...forms.Option) Option {
	return func(f *Filler) { f.formOpts = append(f.formOpts, opts...) }
}

// Filler drives a Driver over the fields of a declaration.
type Filler struct {
	driver      Driver
	maxAttempts int
	inline      bool
	formOpts    []forms.Option
}

func NewFiller(driver Driver, opts ...Option) *Filler {
	f := &Filler{driver: driver, maxAttempts: DefaultMaxAttempts, inline: true}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fill prompts for every field of decl and returns the bound form. When the
// form is invalid, the fields with errors are asked for again; errors not
// tied to a field cause the whole form to be asked again.
func (f *Filler) Fill(ctx context.Context, decl forms.Declaration) (*forms.Form, error) {
	if f == nil || f.driver == nil {
		return nil, ErrNilDriver
	}

	values := url.Values{}
	pending := forms.New(decl, f.formOpts...).Fields()
	var form *forms.Form

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		for _, field := range pending {
			if err := f.ask(ctx, field, values); err != nil {
				return form, err
			}
		}

		form = forms.New(decl, append(append([]forms.Option(nil), f.formOpts...), forms.WithData(values))...)
		if form.IsValid() {
			return form, nil
		}
		if err := f.report(ctx, form); err != nil {
			return form, err
		}
		pending = retryFields(form)
	}
	return form, fmt.Errorf("%w after %d attempts", ErrTooManyAttempts, f.maxAttempts)
}

func (f *Filler) ask(ctx context.Context, field *forms.BoundField, values url.Values) error {
	name := field.HTMLName()
	current := field.Value()
	message := field.Label()
	help := field.HelpText()

	if field.IsHidden() {
		if hidden := widgets.ValueStrings(current); len(hidden) > 0 {
			values[name] = hidden
		}
		return nil
	}

	switch w := field.Field().Widget().(type) {
	case *widgets.FileInput:
		return f.driver.Info(ctx, fmt.Sprintf("%s: file uploads are not supported interactively", message))

	case *widgets.CheckboxInput:
		checked, err := f.driver.Confirm(ctx, ConfirmConfig{Message: message, Help: help, Default: widgets.Truthy(current)})
		if err != nil {
			return err
		}
		delete(values, name)
		if checked {
			values.Set(name, "on")
		}

	case *widgets.NullBooleanSelect:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      message,
			Help:         help,
			Options:      nullBooleanOptions,
			DefaultIndex: nullBooleanIndex(current),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(nullBooleanOptions) {
			idx = 0
		}
		values.Set(name, fmt.Sprint(idx+1))

	case *widgets.SelectMultiple, *widgets.CheckboxSelectMultiple:
		choices := widgets.Flatten(w.(widgets.ChoiceWidget).Choices())
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Help:     help,
			Options:  choiceLabels(choices),
			Defaults: choiceIndices(choices, widgets.ValueStrings(current)),
		})
		if err != nil {
			return err
		}
		delete(values, name)
		for _, idx := range picked {
			if idx >= 0 && idx < len(choices) {
				values.Add(name, choices[idx].Value)
			}
		}

	case widgets.ChoiceWidget:
		choices := widgets.Flatten(w.Choices())
		defaultIdx := -1
		if found := choiceIndices(choices, []string{widgets.ValueString(current)}); len(found) > 0 {
			defaultIdx = found[0]
		}
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      message,
			Help:         help,
			Options:      choiceLabels(choices),
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return err
		}
		delete(values, name)
		if idx >= 0 && idx < len(choices) {
			values.Set(name, choices[idx].Value)
		}

	case *widgets.Textarea:
		text, err := f.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: help, Default: widgets.ValueString(current)})
		if err != nil {
			return err
		}
		values.Set(name, text)

	case *widgets.PasswordInput:
		secret, err := f.driver.Password(ctx, InputConfig{Message: message, Help: help, Validator: f.validator(field)})
		if err != nil {
			return err
		}
		values.Set(name, secret)

	default:
		text, err := f.driver.Input(ctx, InputConfig{
			Message:   message,
			Help:      help,
			Default:   widgets.ValueString(current),
			Validator: f.validator(field),
		})
		if err != nil {
			return err
		}
		values.Set(name, text)
	}
	return nil
}

func (f *Filler) validator(field *forms.BoundField) func(string) error {
	if !f.inline {
		return nil
	}
	return func(answer string) error {
		_, err := field.Field().Clean(answer)
		if err == nil {
			return nil
		}
		if msgs := validation.Messages(err); len(msgs) > 0 {
			return errors.New(msgs[0])
		}
		return err
	}
}

func (f *Filler) report(ctx context.Context, form *forms.Form) error {
	for _, msg := range form.NonFieldErrors().Messages() {
		if err := f.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	for _, field := range form.Fields() {
		for _, msg := range field.Errors().Messages() {
			if err := f.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label(), msg)); err != nil {
				return err
			}
		}
	}
	return nil
}

// retryFields returns the fields to ask again: those with errors, or every
// field when an error is not tied to one.
func retryFields(form *forms.Form) []*forms.BoundField {
	if form.NonFieldErrors().Len() > 0 {
		return form.Fields()
	}
	var out []*forms.BoundField
	for _, field := range form.Fields() {
		if field.Errors().Len() > 0 {
			out = append(out, field)
		}
	}
	if len(out) == 0 {
		return form.Fields()
	}
	return out
}

func choiceLabels(choices []widgets.Choice) []string {
	out := make([]string, len(choices))
	for i, choice := range choices {
		out[i] = choice.Label
	}
	return out
}

func choiceIndices(choices []widgets.Choice, values []string) []int {
	var out []int
	for _, value := range values {
		for i, choice := range choices {
			if choice.Value == value {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func nullBooleanIndex(value any) int {
	switch widgets.NullBoolean(value) {
	case true:
		return 1
	case false:
		return 2
	default:
		return 0
	}
}
