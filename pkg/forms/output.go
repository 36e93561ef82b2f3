package forms

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// RowFormat describes one markup layout. NormalRow uses the placeholders
// {class}, {errors}, {label}, {field} and {help_text}; ErrorRow and HelpText
// use %s. Container names the element that wraps the rows, if any.
type RowFormat struct {
	Container           string
	NormalRow           string
	ErrorRow            string
	RowEnder            string
	HelpText            string
	ErrorsOnSeparateRow bool
}

// Built-in layouts.
var (
	TableFormat = RowFormat{
		Container: "table",
		NormalRow: `<tr{class}><th>{label}</th><td>{errors}{field}{help_text}</td></tr>`,
		ErrorRow:  `<tr><td colspan="2">%s</td></tr>`,
		RowEnder:  `</td></tr>`,
		HelpText:  `<br />%s`,
	}
	ULFormat = RowFormat{
		Container: "ul",
		NormalRow: `<li{class}>{errors}{label} {field}{help_text}</li>`,
		ErrorRow:  `<li>%s</li>`,
		RowEnder:  `</li>`,
		HelpText:  ` %s`,
	}
	PFormat = RowFormat{
		NormalRow:           `<p{class}>{label} {field}{help_text}</p>`,
		ErrorRow:            `%s`,
		RowEnder:            `</p>`,
		HelpText:            ` %s`,
		ErrorsOnSeparateRow: true,
	}
)

type row struct {
	class    string
	errors   string
	label    string
	field    string
	helpText string
}

func (r RowFormat) normal(values row) string {
	return strings.NewReplacer(
		"{class}", values.class,
		"{errors}", values.errors,
		"{label}", values.label,
		"{field}", values.field,
		"{help_text}", values.helpText,
	).Replace(r.NormalRow)
}

// Render lays the form out with format. Errors of hidden fields are shown
// with the non-field errors; hidden inputs go inside the last row.
func (f *Form) Render(format RowFormat) string {
	topErrors := validation.NewErrorListWithClass(f.errorClass, f.NonFieldErrors().Messages()...)
	var output, hidden []string
	classAttr := ""

	for _, bf := range f.Fields() {
		classAttr = ""
		fieldErrors := bf.Errors()

		if bf.IsHidden() {
			for _, message := range fieldErrors.Messages() {
				topErrors.Add(fmt.Sprintf("(Hidden field %s) %s", bf.Name(), message))
			}
			hidden = append(hidden, bf.String())
			continue
		}

		if classes := bf.CSSClasses(); classes != "" {
			classAttr = fmt.Sprintf(` class="%s"`, html.EscapeString(classes))
		}
		if format.ErrorsOnSeparateRow && fieldErrors.Len() > 0 {
			output = append(output, fmt.Sprintf(format.ErrorRow, fieldErrors.AsUL()))
		}

		label := ""
		if bf.Label() != "" {
			label = html.EscapeString(bf.Label())
			if f.labelSuffix != "" && !strings.ContainsAny(label[len(label)-1:], ":?.!") {
				label += f.labelSuffix
			}
			label = bf.LabelTag(label, nil)
		}

		helpText := ""
		if text := bf.HelpText(); text != "" {
			helpText = fmt.Sprintf(format.HelpText, text)
		}

		output = append(output, format.normal(row{
			class:    classAttr,
			errors:   fieldErrors.AsUL(),
			label:    label,
			field:    bf.String(),
			helpText: helpText,
		}))
	}

	if topErrors.Len() > 0 {
		output = append([]string{fmt.Sprintf(format.ErrorRow, topErrors.AsUL())}, output...)
	}

	if len(hidden) > 0 {
		joined := strings.Join(hidden, "")
		if len(output) > 0 {
			last := output[len(output)-1]
			if !strings.HasSuffix(last, format.RowEnder) {
				last = format.normal(row{class: classAttr})
				output = append(output, last)
			}
			output[len(output)-1] = strings.TrimSuffix(last, format.RowEnder) + joined + format.RowEnder
		} else {
			output = append(output, joined)
		}
	}
	return strings.Join(output, "\n")
}

// AsTable renders the form as <tr> rows, without the <table> element.
func (f *Form) AsTable() string {
	return f.Render(TableFormat)
}

// AsUL renders the form as <li> items, without the <ul> element.
func (f *Form) AsUL() string {
	return f.Render(ULFormat)
}

// AsP renders the form as paragraphs.
func (f *Form) AsP() string {
	return f.Render(PFormat)
}

func (f *Form) String() string {
	return f.AsTable()
}
