package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/forms"
)

// LayoutRenderer wraps one of the form's row layouts in a <form> element.
type LayoutRenderer struct {
	name   string
	format forms.RowFormat
	open   string
	close  string
}

var _ Renderer = (*LayoutRenderer)(nil)

// NewTableRenderer renders rows as <tr> elements inside a <table>.
func NewTableRenderer() *LayoutRenderer {
	return &LayoutRenderer{name: "table", format: forms.TableFormat, open: "<table>", close: "</table>"}
}

// NewULRenderer renders rows as <li> elements inside a <ul>.
func NewULRenderer() *LayoutRenderer {
	return &LayoutRenderer{name: "ul", format: forms.ULFormat, open: "<ul>", close: "</ul>"}
}

// NewPRenderer renders rows as paragraphs.
func NewPRenderer() *LayoutRenderer {
	return &LayoutRenderer{name: "p", format: forms.PFormat}
}

func (r *LayoutRenderer) Name() string {
	return r.name
}

func (r *LayoutRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits, one per line: stylesheets, the <form> open tag, the wrapped
// rows, extra hidden inputs, the submit button, the close tag and scripts.
func (r *LayoutRenderer) Render(ctx context.Context, form *forms.Form, opts RenderOptions) ([]byte, error) {
	doc, err := prepare(ctx, form, opts)
	if err != nil {
		return nil, err
	}

	var lines []string
	add := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	add(doc.Media.RenderCSS())
	add(fmt.Sprintf("<form%s>", doc.Attrs.Flatten()))
	add(r.open)
	add(form.Render(r.format))
	add(r.close)
	add(doc.hiddenHTML())
	add(fmt.Sprintf(`<button type="submit">%s</button>`, html.EscapeString(doc.Submit)))
	add("</form>")
	add(doc.Media.RenderJS())

	return []byte(strings.Join(lines, "\n")), nil
}
