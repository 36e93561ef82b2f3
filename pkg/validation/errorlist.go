package validation

import (
	"html"
	"strings"
)

// DefaultErrorClass is the CSS class applied to rendered error lists.
const DefaultErrorClass = "errorlist"

// ErrorList is an ordered list of messages attached to a field or the form.
type ErrorList struct {
	class    string
	messages []string
}

// NewErrorList builds a list using the default CSS class.
func NewErrorList(messages ...string) *ErrorList {
	return NewErrorListWithClass(DefaultErrorClass, messages...)
}

// NewErrorListWithClass builds a list rendered with the supplied CSS class.
func NewErrorListWithClass(class string, messages ...string) *ErrorList {
	class = strings.TrimSpace(class)
	if class == "" {
		class = DefaultErrorClass
	}
	return &ErrorList{class: class, messages: append([]string(nil), messages...)}
}

// Add appends messages to the list.
func (l *ErrorList) Add(messages ...string) {
	l.messages = append(l.messages, messages...)
}

// Messages returns a copy of the list contents.
func (l *ErrorList) Messages() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.messages...)
}

// Len reports the number of messages.
func (l *ErrorList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.messages)
}

// Class returns the CSS class used when rendering.
func (l *ErrorList) Class() string {
	if l == nil || l.class == "" {
		return DefaultErrorClass
	}
	return l.class
}

// AsUL renders the list as an unordered HTML list. Empty lists render as an
// empty string.
func (l *ErrorList) AsUL() string {
	if l.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="`)
	b.WriteString(html.EscapeString(l.Class()))
	b.WriteString(`">`)
	for _, msg := range l.messages {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(msg))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// AsText renders the list as "* message" lines.
func (l *ErrorList) AsText() string {
	if l.Len() == 0 {
		return ""
	}
	lines := make([]string, 0, len(l.messages))
	for _, msg := range l.messages {
		lines = append(lines, "* "+msg)
	}
	return strings.Join(lines, "\n")
}

func (l *ErrorList) String() string {
	return l.AsUL()
}

// ErrorDict maps field names to error lists, preserving insertion order.
type ErrorDict struct {
	class string
	keys  []string
	lists map[string]*ErrorList
}

// NewErrorDict builds an empty dict whose lists use the given CSS class.
func NewErrorDict(class string) *ErrorDict {
	return &ErrorDict{class: class, lists: make(map[string]*ErrorList)}
}

// Set replaces the list stored for name.
func (d *ErrorDict) Set(name string, list *ErrorList) {
	if _, ok := d.lists[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.lists[name] = list
}

// Add appends messages to the list for name, creating it when missing.
func (d *ErrorDict) Add(name string, messages ...string) {
	if list, ok := d.lists[name]; ok {
		list.Add(messages...)
		return
	}
	d.Set(name, NewErrorListWithClass(d.class, messages...))
}

// Get returns the list for name, or nil.
func (d *ErrorDict) Get(name string) *ErrorList {
	if d == nil {
		return nil
	}
	return d.lists[name]
}

// Has reports whether name has an entry.
func (d *ErrorDict) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.lists[name]
	return ok
}

// Delete removes the entry for name.
func (d *ErrorDict) Delete(name string) {
	if !d.Has(name) {
		return
	}
	delete(d.lists, name)
	for i, key := range d.keys {
		if key == name {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order.
func (d *ErrorDict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Len reports the number of entries.
func (d *ErrorDict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// AsMap returns a plain map of messages, convenient for JSON encoding.
func (d *ErrorDict) AsMap() map[string][]string {
	if d.Len() == 0 {
		return nil
	}
	out := make(map[string][]string, len(d.keys))
	for _, key := range d.keys {
		out[key] = d.lists[key].Messages()
	}
	return out
}

// AsUL renders the dict as a nested unordered list.
func (d *ErrorDict) AsUL() string {
	if d.Len() == 0 {
		return ""
	}
	class := d.class
	if class == "" {
		class = DefaultErrorClass
	}
	var b strings.Builder
	b.WriteString(`<ul class="`)
	b.WriteString(html.EscapeString(class))
	b.WriteString(`">`)
	for _, key := range d.keys {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(key))
		b.WriteString(d.lists[key].AsUL())
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// AsText renders the dict as indented "* name" blocks.
func (d *ErrorDict) AsText() string {
	if d.Len() == 0 {
		return ""
	}
	var lines []string
	for _, key := range d.keys {
		lines = append(lines, "* "+key)
		for _, msg := range d.lists[key].messages {
			lines = append(lines, "  * "+msg)
		}
	}
	return strings.Join(lines, "\n")
}

func (d *ErrorDict) String() string {
	return d.AsUL()
}
