package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Message keys used by numeric fields.
const (
	MessageMinValue = "min_value"
	MessageMaxValue = "max_value"
)

var numberMessages = map[string]string{
	MessageMinValue: "Ensure this value is greater than or equal to %v.",
	MessageMaxValue: "Ensure this value is less than or equal to %v.",
}

// Integer cleans whole numbers into int. Empty input yields nil.
type Integer struct {
	Base
	MinValue *float64
	MaxValue *float64
}

func NewInteger(opts ...Option) *Integer {
	cfg := newConfig(opts)
	return &Integer{
		Base:     newBase(cfg, mergeMessages(numberMessages, map[string]string{MessageInvalid: "Enter a whole number."}), widgets.NewTextInput(nil)),
		MinValue: cfg.minValue,
		MaxValue: cfg.maxValue,
	}
}

func (f *Integer) Clean(value any) (any, error) {
	if isBlank(value) {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return nil, nil
	}

	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, f.fail(MessageInvalid)
		}
		n = int(v)
	default:
		parsed, err := strconv.Atoi(strings.TrimSpace(widgets.ValueString(value)))
		if err != nil {
			return nil, f.fail(MessageInvalid)
		}
		n = parsed
	}

	if err := checkBounds(&f.Base, float64(n), f.MinValue, f.MaxValue); err != nil {
		return nil, err
	}
	if err := f.validate(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Float cleans numbers into float64. Empty input yields nil.
type Float struct {
	Base
	MinValue *float64
	MaxValue *float64
}

func NewFloat(opts ...Option) *Float {
	cfg := newConfig(opts)
	return &Float{
		Base:     newBase(cfg, mergeMessages(numberMessages, map[string]string{MessageInvalid: "Enter a number."}), widgets.NewTextInput(nil)),
		MinValue: cfg.minValue,
		MaxValue: cfg.maxValue,
	}
}

func (f *Float) Clean(value any) (any, error) {
	if isBlank(value) {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return nil, nil
	}

	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(widgets.ValueString(value)), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, f.fail(MessageInvalid)
		}
		n = parsed
	}

	if err := checkBounds(&f.Base, n, f.MinValue, f.MaxValue); err != nil {
		return nil, err
	}
	if err := f.validate(n); err != nil {
		return nil, err
	}
	return n, nil
}

func checkBounds(b *Base, n float64, lo, hi *float64) error {
	if lo != nil && n < *lo {
		return b.fail(MessageMinValue, formatNumber(*lo))
	}
	if hi != nil && n > *hi {
		return b.fail(MessageMaxValue, formatNumber(*hi))
	}
	return nil
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// isBlank treats whitespace-only text as empty for numeric input.
func isBlank(value any) bool {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return IsEmpty(value)
}

func mergeMessages(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, set := range sets {
		for key, value := range set {
			out[key] = value
		}
	}
	return out
}
