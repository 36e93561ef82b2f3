package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText                   = "text"
	WidgetPassword               = "password"
	WidgetHidden                 = "hidden"
	WidgetMultipleHidden         = "multiple_hidden"
	WidgetFile                   = "file"
	WidgetTextarea               = "textarea"
	WidgetCheckbox               = "checkbox"
	WidgetSelect                 = "select"
	WidgetSelectMultiple         = "select_multiple"
	WidgetRadio                  = "radio"
	WidgetCheckboxSelectMultiple = "checkbox_multiple"
	WidgetNullBoolean            = "null_boolean"
	WidgetDate                   = "date"
)

// Factory constructs a widget from attributes and choices. Widgets without
// choices ignore the second argument.
type Factory func(attrs Attrs, choices []Choice) Widget

// Hint describes a field well enough to pick a widget for it when no widget
// was named explicitly.
type Hint struct {
	Widget   string
	Kind     string
	Format   string
	Multiple bool
	Choices  int
}

// Matcher decides whether a widget should handle the supplied hint.
type Matcher func(hint Hint) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry maps widget names to factories and selects widgets for hints
// through prioritised matchers. Higher priority wins; ties fall back to
// registration order.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	rules     []rule
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[string]Factory)}
	reg.registerBuiltins()
	return reg
}

// RegisterFactory adds or replaces the factory for name.
func (r *Registry) RegisterFactory(name string, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[trimmed] = factory
}

// Register adds a matcher selecting the named widget.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a hint. An explicit widget name wins
// over matcher evaluation.
func (r *Registry) Resolve(hint Hint) (string, bool) {
	if explicit := strings.TrimSpace(hint.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(hint) {
			return entry.name, true
		}
	}
	return "", false
}

// New builds the named widget.
func (r *Registry) New(name string, attrs Attrs, choices []Choice) (Widget, error) {
	if r == nil {
		return nil, fmt.Errorf("widgets: registry is nil")
	}
	r.mu.RLock()
	factory, ok := r.factories[strings.TrimSpace(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("widgets: widget %q not registered", name)
	}
	return factory(attrs, choices), nil
}

// Names returns the registered widget names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	r.RegisterFactory(WidgetText, func(attrs Attrs, _ []Choice) Widget { return NewTextInput(attrs) })
	r.RegisterFactory(WidgetPassword, func(attrs Attrs, _ []Choice) Widget { return NewPasswordInput(attrs, false) })
	r.RegisterFactory(WidgetHidden, func(attrs Attrs, _ []Choice) Widget { return NewHiddenInput(attrs) })
	r.RegisterFactory(WidgetMultipleHidden, func(attrs Attrs, choices []Choice) Widget { return NewMultipleHiddenInput(attrs, choices) })
	r.RegisterFactory(WidgetFile, func(attrs Attrs, _ []Choice) Widget { return NewFileInput(attrs) })
	r.RegisterFactory(WidgetTextarea, func(attrs Attrs, _ []Choice) Widget { return NewTextarea(attrs) })
	r.RegisterFactory(WidgetCheckbox, func(attrs Attrs, _ []Choice) Widget { return NewCheckboxInput(attrs, nil) })
	r.RegisterFactory(WidgetSelect, func(attrs Attrs, choices []Choice) Widget { return NewSelect(attrs, choices) })
	r.RegisterFactory(WidgetSelectMultiple, func(attrs Attrs, choices []Choice) Widget { return NewSelectMultiple(attrs, choices) })
	r.RegisterFactory(WidgetRadio, func(attrs Attrs, choices []Choice) Widget { return NewRadioSelect(attrs, choices) })
	r.RegisterFactory(WidgetCheckboxSelectMultiple, func(attrs Attrs, choices []Choice) Widget {
		return NewCheckboxSelectMultiple(attrs, choices)
	})
	r.RegisterFactory(WidgetNullBoolean, func(attrs Attrs, _ []Choice) Widget { return NewNullBooleanSelect(attrs) })
	r.RegisterFactory(WidgetDate, func(attrs Attrs, _ []Choice) Widget { return NewDateInput(attrs, "") })

	r.Register(WidgetHidden, 100, func(hint Hint) bool {
		return strings.EqualFold(hint.Format, "hidden")
	})
	r.Register(WidgetPassword, 90, func(hint Hint) bool {
		return strings.EqualFold(hint.Format, "password")
	})
	r.Register(WidgetTextarea, 80, func(hint Hint) bool {
		format := strings.ToLower(hint.Format)
		return format == "textarea" || format == "multiline"
	})
	r.Register(WidgetRadio, 70, func(hint Hint) bool {
		return !hint.Multiple && hint.Choices > 0 && strings.EqualFold(hint.Format, "radio")
	})
	r.Register(WidgetCheckboxSelectMultiple, 70, func(hint Hint) bool {
		return hint.Multiple && strings.EqualFold(hint.Format, "checkbox")
	})
	r.Register(WidgetFile, 60, func(hint Hint) bool {
		return hint.Kind == "file" || strings.EqualFold(hint.Format, "binary")
	})
	r.Register(WidgetCheckbox, 50, func(hint Hint) bool {
		return hint.Kind == "boolean"
	})
	r.Register(WidgetNullBoolean, 50, func(hint Hint) bool {
		return hint.Kind == "null_boolean"
	})
	r.Register(WidgetDate, 45, func(hint Hint) bool {
		return hint.Kind == "date" || strings.EqualFold(hint.Format, "date")
	})
	r.Register(WidgetSelectMultiple, 40, func(hint Hint) bool {
		return hint.Multiple
	})
	r.Register(WidgetSelect, 30, func(hint Hint) bool {
		return hint.Choices > 0
	})
	r.Register(WidgetText, 0, func(Hint) bool {
		return true
	})
}
