// Package forms binds declared fields to submitted data. A Form validates
// and coerces the data field by field, collects errors, detects which fields
// changed from their initial values, and renders itself as table rows, list
// items or paragraphs.
//
// Forms are built per request and are not safe for concurrent use. The
// Declaration they are built from may be shared.
package forms

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/media"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// ErrFieldNotFound is returned when a field name is not declared.
var ErrFieldNotFound = errors.New("forms: field not found")

// Form is a declaration bound to one request's data.
type Form struct {
	decl Declaration

	data    url.Values
	files   widgets.Files
	initial map[string]any
	bound   bool

	prefix           string
	autoID           string
	labelSuffix      string
	emptyPermitted   bool
	errorClass       string
	errorCSSClass    string
	requiredCSSClass string

	fieldCleaners map[string]FieldCleaner
	cleaners      []Cleaner
	media         media.Media

	errors  *validation.ErrorDict
	cleaned map[string]any
	changed []string
	// changedReady distinguishes "not computed" from "nothing changed".
	changedReady bool
}

// New builds a form from decl. Without WithData or WithFiles the form is
// unbound: it renders initial values and never validates.
func New(decl Declaration, opts ...Option) *Form {
	f := &Form{
		decl:          decl,
		data:          url.Values{},
		files:         widgets.Files{},
		initial:       make(map[string]any),
		autoID:        DefaultAutoID,
		labelSuffix:   DefaultLabelSuffix,
		errorClass:    validation.DefaultErrorClass,
		fieldCleaners: make(map[string]FieldCleaner),
		media:         decl.Media,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Name returns the declaration name.
func (f *Form) Name() string {
	return f.decl.Name
}

func (f *Form) IsBound() bool {
	return f.bound
}

func (f *Form) Prefix() string {
	return f.prefix
}

func (f *Form) AutoIDFormat() string {
	return f.autoID
}

func (f *Form) LabelSuffix() string {
	return f.labelSuffix
}

func (f *Form) ErrorClass() string {
	return f.errorClass
}

// Data returns the submitted values.
func (f *Form) Data() url.Values {
	return f.data
}

// Files returns the uploaded files.
func (f *Form) Files() widgets.Files {
	return f.files
}

// Initial returns the form-level initial value for name, if one was given.
func (f *Form) Initial(name string) (any, bool) {
	value, ok := f.initial[name]
	return value, ok
}

// Declaration returns the declaration the form was built from.
func (f *Form) Declaration() Declaration {
	return f.decl
}

// AddPrefix returns the html name of a field.
func (f *Form) AddPrefix(name string) string {
	if f.prefix == "" {
		return name
	}
	return fmt.Sprintf("%s-%s", f.prefix, name)
}

// AddInitialPrefix returns the name of a field's hidden initial input.
func (f *Form) AddInitialPrefix(name string) string {
	return "initial-" + f.AddPrefix(name)
}

// Errors returns the error dict, running a full clean the first time.
func (f *Form) Errors() *validation.ErrorDict {
	if f.errors == nil {
		f.FullClean()
	}
	return f.errors
}

// IsValid reports whether the form is bound and has no errors.
func (f *Form) IsValid() bool {
	return f.bound && f.Errors().Len() == 0
}

// CleanedData returns a copy of the cleaned values. It is nil for unbound
// forms and for forms whose full clean failed. Errors added afterwards with
// AddError or AddErrorPayload drop only the fields they name.
func (f *Form) CleanedData() map[string]any {
	f.Errors()
	if f.cleaned == nil {
		return nil
	}
	out := make(map[string]any, len(f.cleaned))
	for key, value := range f.cleaned {
		out[key] = value
	}
	return out
}

// NonFieldErrors returns the errors not tied to a field.
func (f *Form) NonFieldErrors() *validation.ErrorList {
	if list := f.Errors().Get(validation.NonFieldErrors); list != nil {
		return list
	}
	return validation.NewErrorListWithClass(f.errorClass)
}

// AddError records err against field, or as a non-field error when field is
// empty. The field is dropped from cleaned data.
func (f *Form) AddError(field string, err error) error {
	if err == nil {
		return nil
	}
	if field == "" {
		field = validation.NonFieldErrors
	} else if field != validation.NonFieldErrors {
		if _, ok := f.decl.Field(field); !ok {
			return fmt.Errorf("%w: %q", ErrFieldNotFound, field)
		}
	}

	dict := f.Errors()
	for _, message := range validation.Messages(err) {
		dict.Add(field, message)
	}
	if f.cleaned != nil {
		delete(f.cleaned, field)
	}
	return nil
}

// RawValue returns the value the field's widget extracts from the data.
func (f *Form) RawValue(name string) (any, error) {
	field, ok := f.decl.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return field.Widget().ValueFromData(f.data, f.files, f.AddPrefix(name)), nil
}

// IsMultipart reports whether any widget needs a multipart encoded form.
func (f *Form) IsMultipart() bool {
	for _, entry := range f.decl.Fields {
		if entry.Field.Widget().NeedsMultipart() {
			return true
		}
	}
	return false
}

// Media returns every widget's assets followed by the form's own assets.
func (f *Form) Media() media.Media {
	var out media.Media
	for _, entry := range f.decl.Fields {
		out = out.Merge(entry.Field.Widget().Media())
	}
	return out.Merge(f.media)
}

// Field returns the bound field for name.
func (f *Form) Field(name string) (*BoundField, error) {
	for _, entry := range f.decl.Fields {
		if entry.Name == name {
			return newBoundField(f, entry.Field, entry.Name), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// MustField is Field for templates and tests; it panics on unknown names.
func (f *Form) MustField(name string) *BoundField {
	bf, err := f.Field(name)
	if err != nil {
		panic(err)
	}
	return bf
}

// Fields returns every bound field in declaration order.
func (f *Form) Fields() []*BoundField {
	out := make([]*BoundField, 0, len(f.decl.Fields))
	for _, entry := range f.decl.Fields {
		out = append(out, newBoundField(f, entry.Field, entry.Name))
	}
	return out
}

// HiddenFields returns the bound fields rendered with hidden widgets.
func (f *Form) HiddenFields() []*BoundField {
	var out []*BoundField
	for _, bf := range f.Fields() {
		if bf.IsHidden() {
			out = append(out, bf)
		}
	}
	return out
}

// VisibleFields returns the bound fields that are not hidden.
func (f *Form) VisibleFields() []*BoundField {
	var out []*BoundField
	for _, bf := range f.Fields() {
		if !bf.IsHidden() {
			out = append(out, bf)
		}
	}
	return out
}

func (f *Form) initialFor(name string, field fields.Field) any {
	if value, ok := f.initial[name]; ok {
		return value
	}
	return field.Initial()
}
