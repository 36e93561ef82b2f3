package fields

import (
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// MinLength rejects text shorter than n runes.
func MinLength(n int) Validator {
	return func(value any) error {
		if length := utf8.RuneCountInString(widgets.ValueString(value)); length < n {
			return validation.Errorf(MessageMinLength, charMessages[MessageMinLength], n, length)
		}
		return nil
	}
}

// MaxLength rejects text longer than n runes.
func MaxLength(n int) Validator {
	return func(value any) error {
		if length := utf8.RuneCountInString(widgets.ValueString(value)); length > n {
			return validation.Errorf(MessageMaxLength, charMessages[MessageMaxLength], n, length)
		}
		return nil
	}
}

// Pattern rejects text that does not match re. An empty message falls back
// to the generic invalid message.
func Pattern(re *regexp.Regexp, message string) Validator {
	if message == "" {
		message = baseMessages[MessageInvalid]
	}
	return func(value any) error {
		if !re.MatchString(widgets.ValueString(value)) {
			return validation.NewError(MessageInvalid, message)
		}
		return nil
	}
}

// OneOf rejects values outside the allowed set.
func OneOf(allowed ...string) Validator {
	return func(value any) error {
		text := widgets.ValueString(value)
		for _, candidate := range allowed {
			if candidate == text {
				return nil
			}
		}
		return validation.Errorf(MessageInvalidChoice, choiceMessages[MessageInvalidChoice], text)
	}
}
