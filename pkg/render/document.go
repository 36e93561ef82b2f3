package render

import (
	"context"
	"strings"

	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/media"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// methodOverrideField carries the real verb for PATCH/PUT/DELETE forms.
const methodOverrideField = "_method"

// document is the renderer-neutral view of a form page: the <form> element
// attributes, trailing hidden inputs, the submit label and resolved media.
type document struct {
	Attrs  widgets.Attrs
	Hidden []HiddenField
	Submit string
	Media  media.Media
}

func prepare(ctx context.Context, form *forms.Form, opts RenderOptions) (document, error) {
	if form == nil {
		return document{}, ErrNilForm
	}
	if err := ctx.Err(); err != nil {
		return document{}, err
	}
	if len(opts.Errors) > 0 {
		form.AddErrorPayload(opts.Errors)
	}

	method, override := formMethod(opts.Method)
	hidden := opts.HiddenFields
	if override != "" {
		hidden = MergeHiddenFields(hidden, Hidden(methodOverrideField, override))
	}

	doc := document{
		Attrs:  formAttrs(form, opts, method),
		Hidden: SortedHiddenFields(hidden),
		Submit: submitLabel(opts),
	}
	if opts.IncludeMedia {
		doc.Media = form.Media().Resolve(opts.Theme)
	}
	return doc, nil
}

// formMethod maps a verb onto the browser method plus an override verb for
// methods HTML forms cannot submit.
func formMethod(method string) (string, string) {
	switch verb := strings.ToUpper(strings.TrimSpace(method)); verb {
	case "", "POST":
		return "post", ""
	case "GET":
		return "get", ""
	default:
		return "post", verb
	}
}

func formAttrs(form *forms.Form, opts RenderOptions, method string) widgets.Attrs {
	attrs := widgets.Attrs(opts.Attrs).Clone()
	attrs["method"] = method
	if action := strings.TrimSpace(opts.Action); action != "" {
		attrs["action"] = action
	}
	if form.IsMultipart() {
		attrs["enctype"] = "multipart/form-data"
	}
	if cfg := opts.Theme; cfg != nil {
		if cfg.Theme != "" {
			attrs["data-theme"] = cfg.Theme
		}
		if cfg.Variant != "" {
			attrs["data-variant"] = cfg.Variant
		}
		if style := cssVarsStyle(cfg.CSSVars); style != "" {
			if existing := strings.TrimSpace(attrs["style"]); existing != "" {
				style = strings.TrimSuffix(existing, ";") + "; " + style
			}
			attrs["style"] = style
		}
	}
	return attrs
}

func (d document) hiddenHTML() string {
	lines := make([]string, 0, len(d.Hidden))
	for _, field := range d.Hidden {
		lines = append(lines, field.Render())
	}
	return strings.Join(lines, "\n")
}
