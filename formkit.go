package formkit

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

// TemplateRendererName is the registry name of the embedded template
// renderer.
const TemplateRendererName = "template"

// Request aliases orchestrator.Request for callers using the root package.
type Request = orchestrator.Request

// RenderOptions describes per-request render settings such as the action,
// hidden fields, server-side errors and theme.
type RenderOptions = render.RenderOptions

// NewTemplateRenderer builds a pongo2 template renderer over the embedded
// templates. Extra engine options, such as WithBaseDir, take precedence.
func NewTemplateRenderer(engineOpts []pongo.Option, opts ...render.TemplateOption) (*render.TemplateRenderer, error) {
	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(EmbeddedTemplates())}, engineOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("formkit: template engine: %w", err)
	}
	return render.NewTemplateRenderer(engine, append([]render.TemplateOption{render.WithRendererName(TemplateRendererName)}, opts...)...)
}

// DefaultRegistry returns a registry holding the table, ul and p layouts and
// the embedded template renderer.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewDefaultRegistry()
	renderer, err := NewTemplateRenderer(nil)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(renderer); err != nil {
		return nil, fmt.Errorf("formkit: register template renderer: %w", err)
	}
	return registry, nil
}

// NewOrchestrator builds an orchestrator backed by DefaultRegistry. Options
// are applied after the defaults, so WithRegistry replaces it.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return orchestrator.New(append([]orchestrator.Option{orchestrator.WithRegistry(registry)}, options...)...), nil
}

// Generate builds and renders the form described by req in one call.
func Generate(ctx context.Context, req Request, options ...orchestrator.Option) ([]byte, error) {
	gen, err := NewOrchestrator(options...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, req)
}

// Render renders an existing form with the named renderer from
// DefaultRegistry.
func Render(ctx context.Context, form *forms.Form, rendererName string, opts RenderOptions) ([]byte, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, fmt.Errorf("formkit: %w", err)
	}
	return renderer.Render(ctx, form, opts)
}
