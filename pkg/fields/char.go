package fields

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Message keys used by text fields.
const (
	MessageMaxLength = "max_length"
	MessageMinLength = "min_length"
)

var charMessages = map[string]string{
	MessageMaxLength: "Ensure this value has at most %d characters (it has %d).",
	MessageMinLength: "Ensure this value has at least %d characters (it has %d).",
}

// Char cleans free text. Empty input yields "".
type Char struct {
	Base
	MaxLength int
	MinLength int
	Strip     bool
}

func NewChar(opts ...Option) *Char {
	return newChar(newConfig(opts), charMessages)
}

func newChar(cfg config, messages map[string]string) *Char {
	field := &Char{
		Base:      newBase(cfg, messages, widgets.NewTextInput(nil)),
		MaxLength: cfg.maxLength,
		MinLength: cfg.minLength,
		Strip:     cfg.strip,
	}
	if field.MaxLength >= 0 {
		if input, ok := field.widget.(interface{ InputType() string }); ok {
			switch input.InputType() {
			case "text", "password":
				field.widget.SetAttrs(widgets.MergeAttrs(field.widget.Attrs(), widgets.Attrs{
					"maxlength": strconv.Itoa(field.MaxLength),
				}))
			}
		}
	}
	return field
}

func (f *Char) Clean(value any) (any, error) {
	text := widgets.ValueString(value)
	if f.Strip {
		text = strings.TrimSpace(text)
	}
	if text == "" {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return "", nil
	}

	length := utf8.RuneCountInString(text)
	if f.MaxLength >= 0 && length > f.MaxLength {
		return nil, f.fail(MessageMaxLength, f.MaxLength, length)
	}
	if f.MinLength >= 0 && length < f.MinLength {
		return nil, f.fail(MessageMinLength, f.MinLength, length)
	}
	if err := f.validate(text); err != nil {
		return nil, err
	}
	return text, nil
}

// Regex is a text field whose value must match a pattern.
type Regex struct {
	*Char
	Pattern *regexp.Regexp
}

func NewRegex(pattern *regexp.Regexp, opts ...Option) *Regex {
	cfg := newConfig(opts)
	if pattern == nil {
		pattern = cfg.pattern
	}
	return &Regex{Char: newChar(cfg, charMessages), Pattern: pattern}
}

func (f *Regex) Clean(value any) (any, error) {
	cleaned, err := f.Char.Clean(value)
	if err != nil || cleaned == "" {
		return cleaned, err
	}
	if f.Pattern != nil && !f.Pattern.MatchString(cleaned.(string)) {
		return nil, f.fail(MessageInvalid)
	}
	return cleaned, nil
}

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`)

// Email is a text field holding an e-mail address.
type Email struct {
	*Regex
}

func NewEmail(opts ...Option) *Email {
	cfg := newConfig(append([]Option{
		WithErrorMessages(map[string]string{MessageInvalid: "Enter a valid email address."}),
	}, opts...))
	return &Email{Regex: &Regex{Char: newChar(cfg, charMessages), Pattern: emailPattern}}
}
