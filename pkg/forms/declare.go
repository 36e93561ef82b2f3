package forms

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/media"
)

// Declared pairs a field with the name it is declared under.
type Declared struct {
	Name  string
	Field fields.Field
}

// Declaration is the ordered set of fields a form is built from, plus the
// assets the form itself needs. Declarations are shared; forms never mutate
// them.
type Declaration struct {
	Name   string
	Fields []Declared
	Media  media.Media
}

// Declare builds a declaration from name/field pairs.
func Declare(name string, declared ...Declared) Declaration {
	return Declaration{Name: name, Fields: append([]Declared(nil), declared...)}
}

// F is shorthand for a Declared entry.
func F(name string, field fields.Field) Declared {
	return Declared{Name: name, Field: field}
}

// Extend layers child over parent. A child field that reuses a parent name
// replaces it in place; new names are appended in child order. Media merge
// parent first.
func Extend(parent, child Declaration) Declaration {
	out := Declaration{
		Name:   child.Name,
		Fields: append([]Declared(nil), parent.Fields...),
		Media:  parent.Media.Merge(child.Media),
	}
	if out.Name == "" {
		out.Name = parent.Name
	}

	index := make(map[string]int, len(out.Fields))
	for i, entry := range out.Fields {
		index[entry.Name] = i
	}
	for _, entry := range child.Fields {
		if i, ok := index[entry.Name]; ok {
			out.Fields[i] = entry
			continue
		}
		index[entry.Name] = len(out.Fields)
		out.Fields = append(out.Fields, entry)
	}
	return out
}

// Field returns the field declared under name.
func (d Declaration) Field(name string) (fields.Field, bool) {
	for _, entry := range d.Fields {
		if entry.Name == name {
			return entry.Field, true
		}
	}
	return nil, false
}

// Names returns the declared field names in order.
func (d Declaration) Names() []string {
	names := make([]string, 0, len(d.Fields))
	for _, entry := range d.Fields {
		names = append(names, entry.Name)
	}
	return names
}

// PrettyName turns a field name into a label: underscores become spaces and
// the first letter is upper-cased.
func PrettyName(name string) string {
	if name == "" {
		return ""
	}
	pretty := strings.ReplaceAll(name, "_", " ")
	r, size := utf8.DecodeRuneInString(pretty)
	return string(unicode.ToUpper(r)) + pretty[size:]
}
