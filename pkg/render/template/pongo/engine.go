// Package pongo implements template.TemplateRenderer on top of pongo2. Form
// templates use Django syntax, so they read the same as the templates of the
// forms library the package models.
package pongo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formkit/pkg/render/template"
)

// DefaultExtension is appended to template names without it.
const DefaultExtension = ".tpl"

var (
	// ErrNoTemplates is returned by New when neither a directory nor an
	// fs.FS was configured.
	ErrNoTemplates = errors.New("pongo: a template directory or fs.FS is required")

	errNilEngine = errors.New("pongo: engine is nil")
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	dir     string
	files   fs.FS
	ext     string
	funcs   map[string]any
	globals map[string]any
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) { cfg.dir = strings.TrimSpace(dir) }
}

// WithFS loads templates from files. A directory configured with WithBaseDir
// is searched first.
func WithFS(files fs.FS) Option {
	return func(cfg *config) { cfg.files = files }
}

// WithExtension replaces DefaultExtension. The leading dot is optional.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		cfg.ext = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithTemplateFunc registers helpers. pongo2.FilterFunction values become
// filters, other functions become globals callable from templates.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) { cfg.funcs = mergeInto(cfg.funcs, funcs) }
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) { cfg.globals = mergeInto(cfg.globals, data) }
}

// Engine renders pongo2 templates. Parsed files are cached by the template
// set, so an Engine should be reused.
type Engine struct {
	mu  sync.RWMutex
	set *pongo2.TemplateSet
	ext string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. It fails with ErrNoTemplates when no template source
// is configured.
func New(options ...Option) (*Engine, error) {
	cfg := config{ext: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template dir %s: %w", cfg.dir, err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, ErrNoTemplates
	}

	installFilters()
	engine := &Engine{
		set: pongo2.NewSet("formkit", loaders...),
		ext: cfg.ext,
	}
	engine.set.Globals = pongo2.Context{}

	for name, fn := range cfg.funcs {
		if err := engine.addFunc(name, fn); err != nil {
			return nil, err
		}
	}
	if err := engine.GlobalContext(cfg.globals); err != nil {
		return nil, err
	}
	return engine, nil
}

// Render renders name as inline template source when it contains template
// tags, and as a template file otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a template file, adding the extension when name
// lacks it. The result is also written to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("pongo: load %s: %w", name, err)
	}
	return e.execute(name, tmpl, data, out)
}

// RenderString parses and renders templateContent. The parsed template is not
// cached.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.execute("inline template", tmpl, data, out)
}

// RegisterFilter adds a filter. pongo2 keeps filters in a process-wide table,
// so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function are required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees. data must
// be a map keyed by strings.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	values, err := toContext(data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.set.Globals.Update(values)
	e.mu.Unlock()
	return nil
}

func (e *Engine) execute(name string, tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	values, err := toContext(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	e.mu.RLock()
	err = tmpl.ExecuteWriter(values, &sb)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", name, err)
	}

	rendered := sb.String()
	if len(out) > 0 {
		if _, err := io.WriteString(io.MultiWriter(out...), rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) addFunc(name string, fn any) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return nil
	}
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(name) {
			return nil
		}
		if err := pongo2.RegisterFilter(name, filter); err != nil {
			return fmt.Errorf("pongo: filter %q: %w", name, err)
		}
		return nil
	}
	if reflect.TypeOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("pongo: template func %q is a %T", name, fn)
	}
	e.set.Globals[name] = fn
	return nil
}

// toContext accepts nil, pongo2.Context or any string-keyed map.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("pongo: template data must be a string-keyed map, got %T", data)
	}
	ctx := make(pongo2.Context, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		ctx[iter.Key().String()] = iter.Value().Interface()
	}
	return ctx, nil
}

func mergeInto(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		if key = strings.TrimSpace(key); key != "" {
			dst[key] = value
		}
	}
	return dst
}

var filtersOnce sync.Once

func installFilters() {
	filtersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim":       filterTrim,
			"lowerfirst": filterLowerFirst,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterTrim(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterLowerFirst lowercases the first non-space rune.
func filterLowerFirst(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := in.String()
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if i < 0 {
		return pongo2.AsValue(s), nil
	}
	r := []rune(s[i:])
	r[0] = unicode.ToLower(r[0])
	return pongo2.AsValue(s[:i] + string(r)), nil
}
