package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Transformer mutates a definition before it is built. Implementations can
// relabel or rename fields, swap widgets, or drop fields entirely.
type Transformer interface {
	Transform(ctx context.Context, def *schema.Definition) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, def *schema.Definition) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, def *schema.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, def)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, def *schema.Definition) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, def); err != nil {
				return err
			}
		}
		return nil
	})
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document:
//
//	prefix: billing
//	remove: [internal_note]
//	fields:
//	  title:
//	    label: Custom Title
//	    widget: textarea
//	    rename: headline
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Prefix string                `json:"prefix" yaml:"prefix"`
	Remove []string              `json:"remove" yaml:"remove"`
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Label    string            `json:"label" yaml:"label"`
	Help     string            `json:"help" yaml:"help"`
	Widget   string            `json:"widget" yaml:"widget"`
	Format   string            `json:"format" yaml:"format"`
	Rename   string            `json:"rename" yaml:"rename"`
	Required *bool             `json:"required" yaml:"required"`
	Initial  any               `json:"initial" yaml:"initial"`
	Attrs    map[string]string `json:"attrs" yaml:"attrs"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto def. Patching or removing an unknown
// field is an error.
func (t *PresetTransformer) Transform(ctx context.Context, def *schema.Definition) error {
	if def == nil {
		return errors.New("preset transformer: definition is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// stored definitions share their field slice
	def.Fields = append([]schema.FieldDefinition(nil), def.Fields...)

	if t.document.Prefix != "" {
		def.Prefix = t.document.Prefix
	}

	names := make([]string, 0, len(t.document.Fields))
	for name := range t.document.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		field := findField(def.Fields, name)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, t.document.Fields[name])
	}

	for _, name := range t.document.Remove {
		idx := fieldIndex(def.Fields, name)
		if idx < 0 {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		def.Fields = append(def.Fields[:idx], def.Fields[idx+1:]...)
	}
	return nil
}

func applyFieldPatch(field *schema.FieldDefinition, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Help != "" {
		field.Help = patch.Help
	}
	if patch.Widget != "" {
		field.Widget = patch.Widget
	}
	if patch.Format != "" {
		field.Format = patch.Format
	}
	if patch.Required != nil {
		required := *patch.Required
		field.Required = &required
	}
	if patch.Initial != nil {
		field.Initial = patch.Initial
	}
	if len(patch.Attrs) > 0 {
		field.Attrs = mergeStringMap(field.Attrs, patch.Attrs)
	}
	if renamed := strings.TrimSpace(patch.Rename); renamed != "" {
		field.Name = renamed
	}
}

func findField(fields []schema.FieldDefinition, name string) *schema.FieldDefinition {
	if idx := fieldIndex(fields, name); idx >= 0 {
		return &fields[idx]
	}
	return nil
}

func fieldIndex(fields []schema.FieldDefinition, name string) int {
	name = strings.TrimSpace(name)
	for idx := range fields {
		if fields[idx].Name == name {
			return idx
		}
	}
	return -1
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	out := make(map[string]string, len(dst)+len(src))
	for key, value := range dst {
		out[key] = value
	}
	for key, value := range src {
		out[key] = value
	}
	return out
}
