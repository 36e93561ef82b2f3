package widgets

import (
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
)

// Files mirrors multipart.Form.File: uploaded files keyed by input name.
type Files map[string][]*multipart.FileHeader

// ValueString renders a widget value as submitted text. nil becomes "".
func ValueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ValueStrings normalises single values and lists into a string slice.
func ValueStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, ValueString(item))
		}
		return out
	case []int:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		s := ValueString(v)
		if s == "" {
			return nil
		}
		return []string{s}
	}
}

// Truthy reports the boolean interpretation of a submitted or initial value.
// "false", "False" and "0" count as false, like unchecked boolean inputs.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.TrimSpace(v) {
		case "", "0", "false", "False", "FALSE":
			return false
		}
		return true
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

func sameStringSet(a, b []string) bool {
	left := uniqueSorted(a)
	right := uniqueSorted(b)
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
