package fields

import (
	"regexp"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Option configures a field. Options that do not apply to a field type are
// ignored by it.
type Option func(*config)

type config struct {
	label             string
	helpText          string
	initial           any
	required          bool
	widget            widgets.Widget
	hiddenWidget      widgets.Widget
	attrs             widgets.Attrs
	messages          map[string]string
	showHiddenInitial bool
	validators        []Validator

	maxLength int
	minLength int
	strip     bool
	pattern   *regexp.Regexp
	minValue  *float64
	maxValue  *float64

	choices    []widgets.Choice
	coerce     func(string) (any, error)
	emptyValue any

	inputFormats []string
}

func newConfig(opts []Option) config {
	cfg := config{required: true, maxLength: -1, minLength: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLabel sets the label rendered next to the widget.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

// WithHelpText sets help text. It may contain HTML; forms sanitize it.
func WithHelpText(text string) Option {
	return func(c *config) { c.helpText = text }
}

// WithInitial sets the value rendered by unbound forms.
func WithInitial(value any) Option {
	return func(c *config) { c.initial = value }
}

// WithRequired toggles the required check. Fields are required by default.
func WithRequired(required bool) Option {
	return func(c *config) { c.required = required }
}

// Optional is shorthand for WithRequired(false).
func Optional() Option {
	return WithRequired(false)
}

// WithWidget replaces the field's default widget.
func WithWidget(widget widgets.Widget) Option {
	return func(c *config) { c.widget = widget }
}

// WithHiddenWidget replaces the widget used for hidden initial values.
func WithHiddenWidget(widget widgets.Widget) Option {
	return func(c *config) { c.hiddenWidget = widget }
}

// WithAttrs merges attributes into the field's widget.
func WithAttrs(attrs widgets.Attrs) Option {
	return func(c *config) { c.attrs = widgets.MergeAttrs(c.attrs, attrs) }
}

// WithErrorMessages overrides messages by code.
func WithErrorMessages(messages map[string]string) Option {
	return func(c *config) {
		if c.messages == nil {
			c.messages = make(map[string]string, len(messages))
		}
		for key, value := range messages {
			c.messages[key] = value
		}
	}
}

// WithShowHiddenInitial renders a hidden copy of the initial value next to
// the widget so changes can be detected against it.
func WithShowHiddenInitial(show bool) Option {
	return func(c *config) { c.showHiddenInitial = show }
}

// WithValidators appends validators run after the field's own checks.
func WithValidators(validators ...Validator) Option {
	return func(c *config) { c.validators = append(c.validators, validators...) }
}

// WithMaxLength bounds the length of text values and uploaded file names.
func WithMaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// WithMinLength sets the minimum length of text values.
func WithMinLength(n int) Option {
	return func(c *config) { c.minLength = n }
}

// WithStrip trims surrounding whitespace from text values before checks.
func WithStrip(strip bool) Option {
	return func(c *config) { c.strip = strip }
}

// WithPattern sets the expression a regex field must match.
func WithPattern(pattern *regexp.Regexp) Option {
	return func(c *config) { c.pattern = pattern }
}

// WithMinValue sets the inclusive lower bound of numeric fields.
func WithMinValue(v float64) Option {
	return func(c *config) { c.minValue = &v }
}

// WithMaxValue sets the inclusive upper bound of numeric fields.
func WithMaxValue(v float64) Option {
	return func(c *config) { c.maxValue = &v }
}

// WithChoices sets the options of choice fields.
func WithChoices(choices ...widgets.Choice) Option {
	return func(c *config) { c.choices = append([]widgets.Choice(nil), choices...) }
}

// WithCoerce converts a valid choice into its typed value.
func WithCoerce(coerce func(string) (any, error)) Option {
	return func(c *config) { c.coerce = coerce }
}

// WithEmptyValue sets what a typed choice field returns when left empty.
func WithEmptyValue(value any) Option {
	return func(c *config) { c.emptyValue = value }
}

// WithInputFormats sets the layouts date fields accept, tried in order.
func WithInputFormats(layouts ...string) Option {
	return func(c *config) { c.inputFormats = append([]string(nil), layouts...) }
}
