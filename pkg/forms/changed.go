package forms

// ChangedData lists the fields whose submitted value differs from their
// initial value. It is computed once.
func (f *Form) ChangedData() []string {
	if f.changedReady {
		return append([]string(nil), f.changed...)
	}

	f.changed = nil
	for _, entry := range f.decl.Fields {
		name, field := entry.Name, entry.Field
		data := field.Widget().ValueFromData(f.data, f.files, f.AddPrefix(name))

		var initial any
		if field.ShowHiddenInitial() {
			initial = field.HiddenWidget().ValueFromData(f.data, f.files, f.AddInitialPrefix(name))
		} else {
			initial = f.initialFor(name, field)
		}

		if field.Widget().HasChanged(initial, data) {
			f.changed = append(f.changed, name)
		}
	}
	f.changedReady = true
	return append([]string(nil), f.changed...)
}

// HasChanged reports whether any field changed.
func (f *Form) HasChanged() bool {
	return len(f.ChangedData()) > 0
}
