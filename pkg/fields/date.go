package fields

import (
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// DefaultDateInputFormats are the layouts Date accepts when none are set.
var DefaultDateInputFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Date cleans text into a time.Time at midnight UTC. Empty input yields nil.
type Date struct {
	Base
	InputFormats []string
}

func NewDate(opts ...Option) *Date {
	cfg := newConfig(opts)
	formats := cfg.inputFormats
	if len(formats) == 0 {
		formats = DefaultDateInputFormats
	}
	if cfg.hiddenWidget == nil {
		cfg.hiddenWidget = widgets.NewDateHiddenInput(nil, formats[0])
	}
	widget := widgets.NewDateInput(nil, formats[0])
	widget.InputFormats = append([]string(nil), formats...)
	return &Date{
		Base:         newBase(cfg, map[string]string{MessageInvalid: "Enter a valid date."}, widget),
		InputFormats: append([]string(nil), formats...),
	}
}

func (f *Date) Clean(value any) (any, error) {
	if isBlank(value) {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return nil, nil
	}

	var parsed time.Time
	switch v := value.(type) {
	case time.Time:
		parsed = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	default:
		text := strings.TrimSpace(widgets.ValueString(value))
		ok := false
		for _, layout := range f.InputFormats {
			if t, err := time.Parse(layout, text); err == nil {
				parsed, ok = t, true
				break
			}
		}
		if !ok {
			return nil, f.fail(MessageInvalid)
		}
	}

	if err := f.validate(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}
