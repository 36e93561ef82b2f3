package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/render/template"
)

// TemplateOption configures a TemplateRenderer.
type TemplateOption func(*TemplateRenderer)

// WithRendererName registers the renderer under a name other than "template".
func WithRendererName(name string) TemplateOption {
	return func(r *TemplateRenderer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.name = trimmed
		}
	}
}

// WithTemplateName selects the page template. A theme partial registered
// under PartialForm still takes precedence.
func WithTemplateName(name string) TemplateOption {
	return func(r *TemplateRenderer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.template = trimmed
		}
	}
}

// WithRowFormat sets the layout used for the pre-rendered "rows" value.
func WithRowFormat(format forms.RowFormat) TemplateOption {
	return func(r *TemplateRenderer) {
		r.format = format
	}
}

// TemplateRenderer renders a form page through a template engine. Templates
// receive the pre-rendered rows as well as per-field values for custom
// layouts; markup values must be emitted with the |safe filter.
type TemplateRenderer struct {
	engine   template.TemplateRenderer
	name     string
	template string
	format   forms.RowFormat
}

var _ Renderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer wraps engine. It fails when engine is nil.
func NewTemplateRenderer(engine template.TemplateRenderer, opts ...TemplateOption) (*TemplateRenderer, error) {
	if engine == nil {
		return nil, fmt.Errorf("render: template engine is required")
	}
	r := &TemplateRenderer{
		engine:   engine,
		name:     "template",
		template: DefaultPartials()[PartialForm],
		format:   forms.TableFormat,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

func (r *TemplateRenderer) Name() string {
	return r.name
}

func (r *TemplateRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *TemplateRenderer) Render(ctx context.Context, form *forms.Form, opts RenderOptions) ([]byte, error) {
	doc, err := prepare(ctx, form, opts)
	if err != nil {
		return nil, err
	}

	name := r.template
	if opts.Theme != nil {
		if partial := strings.TrimSpace(opts.Theme.Partials[PartialForm]); partial != "" {
			name = partial
		}
	}

	out, err := r.engine.RenderTemplate(name, r.templateData(form, doc, opts))
	if err != nil {
		return nil, fmt.Errorf("render: template %q: %w", name, err)
	}
	return []byte(out), nil
}

func (r *TemplateRenderer) templateData(form *forms.Form, doc document, opts RenderOptions) map[string]any {
	visible := make([]any, 0)
	for _, field := range form.VisibleFields() {
		visible = append(visible, fieldData(field))
	}
	hidden := make([]any, 0)
	for _, field := range form.HiddenFields() {
		hidden = append(hidden, fieldData(field))
	}

	data := map[string]any{
		"form": map[string]any{
			"name":      form.Name(),
			"prefix":    form.Prefix(),
			"bound":     form.IsBound(),
			"valid":     form.IsValid(),
			"multipart": form.IsMultipart(),
			"attrs":     doc.Attrs.Flatten(),
			"errors":    form.NonFieldErrors().String(),
		},
		"rows":           form.Render(r.format),
		"rows_tag":       r.format.Container,
		"visible_fields": visible,
		"hidden_fields":  hidden,
		"hidden":         doc.hiddenHTML(),
		"submit":         doc.Submit,
		"css":            doc.Media.RenderCSS(),
		"js":             doc.Media.RenderJS(),
		"locale":         opts.Locale,
	}
	if cfg := opts.Theme; cfg != nil {
		data["theme"] = map[string]any{
			"name":    cfg.Theme,
			"variant": cfg.Variant,
			"tokens":  stringMap(cfg.Tokens),
			"style":   cssVarsStyle(cfg.CSSVars),
		}
	}
	if opts.Translator != nil {
		for key, fn := range TemplateI18nFuncs(opts.Translator, TemplateI18nConfig{OnMissing: opts.OnMissing}) {
			data[key] = fn
		}
	}
	return data
}

func fieldData(field *forms.BoundField) map[string]any {
	return map[string]any{
		"name":         field.Name(),
		"html_name":    field.HTMLName(),
		"label":        field.Label(),
		"label_tag":    field.LabelTag("", nil),
		"widget":       field.String(),
		"errors":       field.Errors().String(),
		"help_text":    field.HelpText(),
		"id_for_label": field.IDForLabel(),
		"css_classes":  field.CSSClasses(),
		"required":     field.Field().Required(),
	}
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
