package forms

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// AddErrorPayload records errors reported outside the form, such as an API
// response, against its fields. Keys may be plain or prefixed field names,
// dotted paths or JSON pointers; request wrappers ("body", "data", ...) and
// list indexes are ignored. Keys that match no field become non-field
// errors so no message is lost. Each field that receives an error is
// dropped from cleaned data; the rest stay.
func (f *Form) AddErrorPayload(payload map[string][]string) {
	if len(payload) == 0 {
		return
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	dict := f.Errors()
	for _, key := range keys {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		target := f.mapErrorPath(key)
		dict.Add(target, messages...)
		if f.cleaned != nil && target != validation.NonFieldErrors {
			delete(f.cleaned, target)
		}
	}
}

func (f *Form) mapErrorPath(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return validation.NonFieldErrors
	}

	names := make(map[string]string, len(f.decl.Fields)*2)
	for _, entry := range f.decl.Fields {
		names[entry.Name] = entry.Name
		names[f.AddPrefix(entry.Name)] = entry.Name
	}
	if name, ok := names[trimmed]; ok {
		return name
	}

	segments := dropWrapperSegments(stripNumericSegments(parsePathSegments(trimmed)))
	for _, segment := range segments {
		if name, ok := names[segment]; ok {
			return name
		}
	}
	return validation.NonFieldErrors
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes", "fields":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", validation.NonFieldErrors, "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
