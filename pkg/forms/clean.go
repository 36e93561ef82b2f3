package forms

import (
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// FullClean validates every field in declaration order and then runs the
// form cleaners. It resets any previous result. Errors calls it lazily;
// calling it directly is only needed after changing cleaners.
func (f *Form) FullClean() {
	f.errors = validation.NewErrorDict(f.errorClass)
	if !f.bound {
		return
	}
	f.cleaned = make(map[string]any)
	if f.emptyPermitted && !f.HasChanged() {
		return
	}

	f.cleanFields()
	f.cleanForm()

	if f.errors.Len() > 0 {
		f.cleaned = nil
	}
}

func (f *Form) cleanFields() {
	for _, entry := range f.decl.Fields {
		name, field := entry.Name, entry.Field
		raw := field.Widget().ValueFromData(f.data, f.files, f.AddPrefix(name))

		value, err := f.cleanValue(field, name, raw)
		if err == nil {
			f.cleaned[name] = value
			if cleaner, ok := f.fieldCleaners[name]; ok {
				value, err = cleaner(value, f.cleaned)
				if err == nil {
					f.cleaned[name] = value
				}
			}
		}
		if err != nil {
			f.recordError(name, err)
			delete(f.cleaned, name)
		}
	}
}

func (f *Form) cleanValue(field fields.Field, name string, raw any) (any, error) {
	if cleaner, ok := field.(fields.FileCleaner); ok {
		return cleaner.CleanFile(raw, f.initialFor(name, field))
	}
	return field.Clean(raw)
}

func (f *Form) cleanForm() {
	for _, cleaner := range f.cleaners {
		if err := cleaner(f.cleaned); err != nil {
			f.recordError(validation.NonFieldErrors, err)
		}
	}
}

func (f *Form) recordError(key string, err error) {
	list := validation.NewErrorListWithClass(f.errorClass, validation.Messages(err)...)
	f.errors.Set(key, list)
}
