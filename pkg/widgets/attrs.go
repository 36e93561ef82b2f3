package widgets

import (
	"html"
	"sort"
	"strings"
)

// Attrs holds HTML attributes for a rendered element.
type Attrs map[string]string

// leadingAttrs are flattened first, in this order, so markup reads naturally.
var leadingAttrs = []string{"type", "name", "value"}

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// Has reports whether key is present.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// MergeAttrs combines attribute sets into a new map; later sets win.
func MergeAttrs(sets ...Attrs) Attrs {
	out := make(Attrs)
	for _, set := range sets {
		for key, value := range set {
			out[key] = value
		}
	}
	return out
}

// Flatten renders the attributes as ` key="value"` pairs. type, name and
// value lead; the remaining keys follow in lexical order.
func (a Attrs) Flatten() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for key := range a {
		if isLeading(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range leadingAttrs {
		if value, ok := a[key]; ok {
			writeAttr(&b, key, value)
		}
	}
	for _, key := range keys {
		writeAttr(&b, key, a[key])
	}
	return b.String()
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

func isLeading(key string) bool {
	for _, lead := range leadingAttrs {
		if key == lead {
			return true
		}
	}
	return false
}
