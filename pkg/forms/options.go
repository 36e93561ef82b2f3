package forms

import (
	"net/url"

	"github.com/goliatone/go-formkit/pkg/media"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Defaults applied by New.
const (
	DefaultAutoID      = "id_%s"
	DefaultLabelSuffix = ":"
)

// FieldCleaner runs after a field cleaned successfully. It receives the
// cleaned value and the cleaned data collected so far, and returns the value
// to store.
type FieldCleaner func(value any, cleaned map[string]any) (any, error)

// Cleaner runs once every field was cleaned. It may modify cleaned in place;
// errors it returns are recorded as non-field errors.
type Cleaner func(cleaned map[string]any) error

// Option configures a form instance.
type Option func(*Form)

// WithData binds the form to submitted values. A non-nil map binds the form
// even when it is empty.
func WithData(data url.Values) Option {
	return func(f *Form) {
		if data != nil {
			f.data = data
			f.bound = true
		}
	}
}

// WithFiles binds the form to uploaded files.
func WithFiles(files widgets.Files) Option {
	return func(f *Form) {
		if files != nil {
			f.files = files
			f.bound = true
		}
	}
}

// WithInitial sets per-field initial values keyed by unprefixed name.
func WithInitial(initial map[string]any) Option {
	return func(f *Form) {
		for key, value := range initial {
			f.initial[key] = value
		}
	}
}

// WithPrefix namespaces every field name as "prefix-name".
func WithPrefix(prefix string) Option {
	return func(f *Form) { f.prefix = prefix }
}

// WithAutoID sets the id format. A value containing %s is formatted with the
// field's html name, any other non-empty value uses the html name verbatim,
// and the empty string disables ids.
func WithAutoID(format string) Option {
	return func(f *Form) { f.autoID = format }
}

// WithLabelSuffix sets the text appended to labels in generated markup.
func WithLabelSuffix(suffix string) Option {
	return func(f *Form) { f.labelSuffix = suffix }
}

// WithEmptyPermitted lets an unchanged form validate without running any
// field checks.
func WithEmptyPermitted(permitted bool) Option {
	return func(f *Form) { f.emptyPermitted = permitted }
}

// WithErrorClass sets the CSS class of rendered error lists.
func WithErrorClass(class string) Option {
	return func(f *Form) { f.errorClass = class }
}

// WithErrorCSSClass sets the row class added to fields with errors.
func WithErrorCSSClass(class string) Option {
	return func(f *Form) { f.errorCSSClass = class }
}

// WithRequiredCSSClass sets the row class added to required fields.
func WithRequiredCSSClass(class string) Option {
	return func(f *Form) { f.requiredCSSClass = class }
}

// WithFieldCleaner registers a per-field cleaner for name.
func WithFieldCleaner(name string, cleaner FieldCleaner) Option {
	return func(f *Form) {
		if cleaner != nil {
			f.fieldCleaners[name] = cleaner
		}
	}
}

// WithCleaner registers a form-wide cleaner. Several cleaners run in order.
func WithCleaner(cleaner Cleaner) Option {
	return func(f *Form) {
		if cleaner != nil {
			f.cleaners = append(f.cleaners, cleaner)
		}
	}
}

// WithMedia adds assets on top of the declaration's own media.
func WithMedia(m media.Media) Option {
	return func(f *Form) { f.media = f.media.Merge(m) }
}
