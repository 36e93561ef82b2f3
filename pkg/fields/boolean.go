package fields

import (
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Boolean cleans checkbox input into bool. "False", "false" and "0" are
// false. A required boolean must be true.
type Boolean struct {
	Base
}

func NewBoolean(opts ...Option) *Boolean {
	cfg := newConfig(opts)
	return &Boolean{Base: newBase(cfg, nil, widgets.NewCheckboxInput(nil, nil))}
}

func (f *Boolean) Clean(value any) (any, error) {
	checked := widgets.Truthy(value)
	if !checked && f.required {
		return nil, f.fail(MessageRequired)
	}
	if err := f.validate(checked); err != nil {
		return nil, err
	}
	return checked, nil
}

// NullBoolean cleans tri-state input into true, false or nil. It is never
// required.
type NullBoolean struct {
	Base
}

func NewNullBoolean(opts ...Option) *NullBoolean {
	cfg := newConfig(opts)
	cfg.required = false
	return &NullBoolean{Base: newBase(cfg, nil, widgets.NewNullBooleanSelect(nil))}
}

func (f *NullBoolean) Clean(value any) (any, error) {
	cleaned := widgets.NullBoolean(value)
	if cleaned == nil {
		return nil, nil
	}
	if err := f.validate(cleaned); err != nil {
		return nil, err
	}
	return cleaned, nil
}
