package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/forms"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const defaultRendererName = "table"

var (
	// ErrNoDefinition is returned when a request names no definition source.
	ErrNoDefinition = errors.New("orchestrator: definition, name or operation is required")
	// ErrNoStore is returned when a request names a definition but no store
	// was configured.
	ErrNoStore = errors.New("orchestrator: definition store is not configured")
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore supplies named definitions for Request.Name.
func WithStore(store *schema.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithBuilder injects a schema builder, e.g. one with custom field types.
func WithBuilder(builder *schema.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithLoader injects the OpenAPI loader used for Request.Source.
func WithLoader(loader *pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithTransformer registers a Transformer run on every definition before it
// is built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithFormOptions appends options applied to every form, e.g. an auto id
// format or a shared cleaner.
func WithFormOptions(opts ...forms.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, opts...)
	}
}

// WithThemeSelector resolves Request.Theme and Request.Variant through
// selector. defaultTheme and defaultVariant apply when the request leaves
// them empty.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithThemeFallbacks sets partials used when a theme does not define them.
// Defaults to render.DefaultPartials.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the pipeline from definition to rendered output.
// Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	store           *schema.Store
	builder         *schema.Builder
	loader          *pkgopenapi.Loader
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	formOptions     []forms.Option

	themeSelector  theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
	themeFallbacks map[string]string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.builder == nil {
		o.builder = schema.NewBuilder()
	}
	if o.loader == nil {
		o.loader = pkgopenapi.NewLoader()
	}
	if o.registry == nil {
		o.registry = render.NewDefaultRegistry()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	return o
}

// Request describes one form to build, bind and optionally render. Exactly
// one definition source is used, in this order: Definition, Name, then
// Document or Source with OperationID.
type Request struct {
	Definition *schema.Definition
	Name       string

	Source      pkgopenapi.Source
	Document    *pkgopenapi.Document
	OperationID string

	// Data binds the form when non-nil, even when empty.
	Data    url.Values
	Files   widgets.Files
	Initial map[string]any
	// Prefix overrides the definition prefix.
	Prefix string

	Renderer      string
	Theme         string
	Variant       string
	RenderOptions render.RenderOptions
}

// Definition resolves the request's definition and runs the transformer on
// it.
func (o *Orchestrator) Definition(ctx context.Context, req Request) (schema.Definition, error) {
	if err := checkContext(ctx); err != nil {
		return schema.Definition{}, err
	}

	var (
		def schema.Definition
		err error
	)
	switch {
	case req.Definition != nil:
		def = *req.Definition
	case strings.TrimSpace(req.Name) != "":
		def, err = o.storedDefinition(req.Name)
	case req.OperationID != "":
		def, err = o.operationDefinition(ctx, req)
	default:
		err = ErrNoDefinition
	}
	if err != nil {
		return schema.Definition{}, err
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &def); err != nil {
			return schema.Definition{}, fmt.Errorf("orchestrator: transform definition: %w", err)
		}
	}
	return def, nil
}

// Declaration resolves and builds the request's declaration. Stored
// definitions have their extends chain resolved through the store.
func (o *Orchestrator) Declaration(ctx context.Context, req Request) (forms.Declaration, schema.Definition, error) {
	def, err := o.Definition(ctx, req)
	if err != nil {
		return forms.Declaration{}, schema.Definition{}, err
	}

	decl, err := o.builder.Build(def)
	if err != nil {
		return forms.Declaration{}, def, fmt.Errorf("orchestrator: build declaration: %w", err)
	}

	parent := strings.TrimSpace(def.Extends)
	if parent == "" {
		return decl, def, nil
	}
	if o.store == nil {
		return forms.Declaration{}, def, fmt.Errorf("orchestrator: form %q extends %q: %w", def.Name, parent, ErrNoStore)
	}
	base, err := o.builder.BuildFrom(o.store, parent)
	if err != nil {
		return forms.Declaration{}, def, fmt.Errorf("orchestrator: build declaration: %w", err)
	}
	return forms.Extend(base, decl), def, nil
}

// Form builds the request's form, bound when the request carries data or
// files.
func (o *Orchestrator) Form(ctx context.Context, req Request) (*forms.Form, error) {
	decl, def, err := o.Declaration(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := append([]forms.Option(nil), o.formOptions...)
	prefix := req.Prefix
	if prefix == "" {
		prefix = def.Prefix
	}
	if prefix != "" {
		opts = append(opts, forms.WithPrefix(prefix))
	}
	if len(req.Initial) > 0 {
		opts = append(opts, forms.WithInitial(req.Initial))
	}
	opts = append(opts, forms.WithData(req.Data), forms.WithFiles(req.Files))

	return forms.New(decl, opts...), nil
}

// Generate builds the form and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}

func (o *Orchestrator) storedDefinition(name string) (schema.Definition, error) {
	if o.store == nil {
		return schema.Definition{}, ErrNoStore
	}
	def, ok := o.store.Definition(strings.TrimSpace(name))
	if !ok {
		return schema.Definition{}, fmt.Errorf("orchestrator: %w: %q", schema.ErrDefinitionNotFound, name)
	}
	return def, nil
}

func (o *Orchestrator) operationDefinition(ctx context.Context, req Request) (schema.Definition, error) {
	doc := req.Document
	if doc == nil {
		if req.Source == nil {
			return schema.Definition{}, errors.New("orchestrator: source or document is required")
		}
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return schema.Definition{}, fmt.Errorf("orchestrator: load document: %w", err)
		}
		doc = loaded
	}
	def, err := doc.Definition(req.OperationID)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("orchestrator: %w", err)
	}
	return def, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := req.Theme
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.Variant
	if variant == "" {
		variant = o.defaultVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = render.DefaultPartials()
	}
	return render.ThemeConfig(selection, fallbacks), nil
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	return ctx.Err()
}
