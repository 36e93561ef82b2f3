package widgets

// Choice is a selectable option. A choice with Options is an option group
// labelled Label; its own Value is ignored.
type Choice struct {
	Value   string   `json:"value" yaml:"value"`
	Label   string   `json:"label" yaml:"label"`
	Options []Choice `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsGroup reports whether the choice groups other choices.
func (c Choice) IsGroup() bool {
	return len(c.Options) > 0
}

// Pairs builds choices from alternating value/label strings. A trailing
// value without a label uses itself as the label.
func Pairs(values ...string) []Choice {
	out := make([]Choice, 0, (len(values)+1)/2)
	for i := 0; i < len(values); i += 2 {
		label := values[i]
		if i+1 < len(values) {
			label = values[i+1]
		}
		out = append(out, Choice{Value: values[i], Label: label})
	}
	return out
}

// Group builds an option group.
func Group(label string, options ...Choice) Choice {
	return Choice{Label: label, Options: cloneChoices(options)}
}

// Flatten expands option groups into their leaf choices.
func Flatten(choices []Choice) []Choice {
	var out []Choice
	for _, choice := range choices {
		if choice.IsGroup() {
			out = append(out, Flatten(choice.Options)...)
			continue
		}
		out = append(out, choice)
	}
	return out
}

// Contains reports whether value matches a leaf choice.
func Contains(choices []Choice, value string) bool {
	for _, choice := range Flatten(choices) {
		if choice.Value == value {
			return true
		}
	}
	return false
}

func cloneChoices(choices []Choice) []Choice {
	if len(choices) == 0 {
		return nil
	}
	out := make([]Choice, len(choices))
	for i, choice := range choices {
		out[i] = Choice{Value: choice.Value, Label: choice.Label, Options: cloneChoices(choice.Options)}
	}
	return out
}
