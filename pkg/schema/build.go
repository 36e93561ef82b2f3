package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Built-in field types.
const (
	TypeChar           = "char"
	TypeEmail          = "email"
	TypeRegex          = "regex"
	TypeInteger        = "integer"
	TypeFloat          = "float"
	TypeBoolean        = "boolean"
	TypeNullBoolean    = "null_boolean"
	TypeChoice         = "choice"
	TypeTypedChoice    = "typed_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeFile           = "file"
	TypeDate           = "date"
)

// ErrUnknownFieldType is returned for a field type with no registered factory.
var ErrUnknownFieldType = errors.New("schema: unknown field type")

// FieldFactory constructs a field from its definition and the options the
// builder derived from it.
type FieldFactory func(def FieldDefinition, opts []fields.Option) (fields.Field, error)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithWidgetRegistry replaces the widget registry used to resolve widget
// names and formats.
func WithWidgetRegistry(reg *widgets.Registry) BuilderOption {
	return func(b *Builder) {
		if reg != nil {
			b.widgets = reg
		}
	}
}

// WithFieldType registers an additional field type.
func WithFieldType(name string, factory FieldFactory) BuilderOption {
	return func(b *Builder) {
		b.RegisterFieldType(name, factory)
	}
}

// Builder turns definitions into form declarations.
type Builder struct {
	mu      sync.RWMutex
	types   map[string]FieldFactory
	widgets *widgets.Registry
}

// NewBuilder returns a builder with the built-in field types registered.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		types:   make(map[string]FieldFactory),
		widgets: widgets.NewRegistry(),
	}
	b.registerBuiltins()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// RegisterFieldType adds or replaces the factory for a field type.
func (b *Builder) RegisterFieldType(name string, factory FieldFactory) {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types[name] = factory
}

// FieldTypes returns the registered field type names, sorted.
func (b *Builder) FieldTypes() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.types))
	for name := range b.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build converts def into a declaration. def.Extends is ignored; use
// BuildFrom to resolve parents through a store.
func (b *Builder) Build(def Definition) (forms.Declaration, error) {
	declared := make([]forms.Declared, 0, len(def.Fields))
	for _, fieldDef := range def.Fields {
		field, err := b.Field(fieldDef)
		if err != nil {
			return forms.Declaration{}, fmt.Errorf("schema: form %q: %w", def.Name, err)
		}
		declared = append(declared, forms.F(fieldDef.Name, field))
	}
	decl := forms.Declare(def.Name, declared...)
	decl.Media = def.Media
	return decl, nil
}

// BuildFrom builds the named definition, resolving its extends chain through
// store. Cycles are reported as errors.
func (b *Builder) BuildFrom(store *Store, name string) (forms.Declaration, error) {
	return b.buildChain(store, name, map[string]bool{})
}

func (b *Builder) buildChain(store *Store, name string, visiting map[string]bool) (forms.Declaration, error) {
	def, ok := store.Definition(name)
	if !ok {
		return forms.Declaration{}, fmt.Errorf("%w: %q", ErrDefinitionNotFound, name)
	}
	if visiting[def.Name] {
		return forms.Declaration{}, fmt.Errorf("schema: form %q extends itself", def.Name)
	}
	visiting[def.Name] = true

	decl, err := b.Build(def)
	if err != nil {
		return forms.Declaration{}, err
	}
	parentName := strings.TrimSpace(def.Extends)
	if parentName == "" {
		return decl, nil
	}
	parent, err := b.buildChain(store, parentName, visiting)
	if err != nil {
		return forms.Declaration{}, fmt.Errorf("schema: form %q: %w", def.Name, err)
	}
	return forms.Extend(parent, decl), nil
}

// Field builds a single field.
func (b *Builder) Field(def FieldDefinition) (fields.Field, error) {
	kind := strings.TrimSpace(def.Type)
	if kind == "" {
		kind = TypeChar
	}
	b.mu.RLock()
	factory, ok := b.types[kind]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: field %q has type %q", ErrUnknownFieldType, def.Name, kind)
	}

	opts, err := b.fieldOptions(def, kind)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", def.Name, err)
	}
	field, err := factory(def, opts)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", def.Name, err)
	}
	return field, nil
}

func (b *Builder) fieldOptions(def FieldDefinition, kind string) ([]fields.Option, error) {
	opts := []fields.Option{
		fields.WithLabel(def.Label),
		fields.WithHelpText(def.Help),
		fields.WithRequired(def.IsRequired()),
		fields.WithShowHiddenInitial(def.ShowHiddenInitial),
	}
	if def.Initial != nil {
		opts = append(opts, fields.WithInitial(def.Initial))
	}
	if len(def.Messages) > 0 {
		opts = append(opts, fields.WithErrorMessages(def.Messages))
	}
	if def.MaxLength != nil {
		opts = append(opts, fields.WithMaxLength(*def.MaxLength))
	}
	if def.MinLength != nil {
		opts = append(opts, fields.WithMinLength(*def.MinLength))
	}
	if def.MinValue != nil {
		opts = append(opts, fields.WithMinValue(*def.MinValue))
	}
	if def.MaxValue != nil {
		opts = append(opts, fields.WithMaxValue(*def.MaxValue))
	}
	if len(def.Choices) > 0 {
		opts = append(opts, fields.WithChoices(def.Choices...))
	}
	if len(def.InputFormats) > 0 {
		opts = append(opts, fields.WithInputFormats(def.InputFormats...))
	}
	if def.Pattern != "" {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		opts = append(opts, fields.WithPattern(re))
	}

	attrs := widgets.Attrs(def.Attrs).Clone()
	if strings.TrimSpace(def.Widget) == "" && strings.TrimSpace(def.Format) == "" {
		if len(attrs) > 0 {
			opts = append(opts, fields.WithAttrs(attrs))
		}
		return opts, nil
	}

	name, _ := b.widgets.Resolve(widgets.Hint{
		Widget:   def.Widget,
		Kind:     kind,
		Format:   def.Format,
		Multiple: kind == TypeMultipleChoice,
		Choices:  len(def.Choices),
	})
	widget, err := b.widgets.New(name, attrs, def.Choices)
	if err != nil {
		return nil, err
	}
	return append(opts, fields.WithWidget(widget)), nil
}

func (b *Builder) registerBuiltins() {
	b.RegisterFieldType(TypeChar, func(def FieldDefinition, opts []fields.Option) (fields.Field, error) {
		if def.Pattern != "" {
			return fields.NewRegex(nil, opts...), nil
		}
		return fields.NewChar(opts...), nil
	})
	b.RegisterFieldType(TypeRegex, func(def FieldDefinition, opts []fields.Option) (fields.Field, error) {
		if def.Pattern == "" {
			return nil, errors.New("regex fields need a pattern")
		}
		return fields.NewRegex(nil, opts...), nil
	})
	b.RegisterFieldType(TypeEmail, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewEmail(opts...), nil
	})
	b.RegisterFieldType(TypeInteger, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewInteger(opts...), nil
	})
	b.RegisterFieldType(TypeFloat, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewFloat(opts...), nil
	})
	b.RegisterFieldType(TypeBoolean, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewBoolean(opts...), nil
	})
	b.RegisterFieldType(TypeNullBoolean, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewNullBoolean(opts...), nil
	})
	b.RegisterFieldType(TypeChoice, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewChoice(opts...), nil
	})
	b.RegisterFieldType(TypeTypedChoice, func(def FieldDefinition, opts []fields.Option) (fields.Field, error) {
		coerce, err := coercer(def.Coerce)
		if err != nil {
			return nil, err
		}
		if coerce != nil {
			opts = append(opts, fields.WithCoerce(coerce))
		}
		return fields.NewTypedChoice(opts...), nil
	})
	b.RegisterFieldType(TypeMultipleChoice, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewMultipleChoice(opts...), nil
	})
	b.RegisterFieldType(TypeFile, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewFile(opts...), nil
	})
	b.RegisterFieldType(TypeDate, func(_ FieldDefinition, opts []fields.Option) (fields.Field, error) {
		return fields.NewDate(opts...), nil
	})
}

func coercer(name string) (func(string) (any, error), error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string":
		return nil, nil
	case "int", "integer":
		return func(s string) (any, error) { return strconv.Atoi(s) }, nil
	case "float", "number":
		return func(s string) (any, error) { return strconv.ParseFloat(s, 64) }, nil
	case "bool", "boolean":
		return func(s string) (any, error) { return strconv.ParseBool(s) }, nil
	default:
		return nil, fmt.Errorf("unknown coerce %q", name)
	}
}
