package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDefinitionNotFound is returned when a definition name is unknown.
var ErrDefinitionNotFound = errors.New("schema: definition not found")

// Store holds definitions by name.
type Store struct {
	definitions map[string]Definition
}

// NewStore builds a store from definitions. Duplicate or empty names fail.
func NewStore(defs ...Definition) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := store.add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML file into the store. When
// fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		defs, err := ParseAll(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if err := store.add(def); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Definition returns the named definition.
func (s *Store) Definition(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[strings.TrimSpace(name)]
	return def, ok
}

// Names returns the definition names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func (s *Store) add(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("schema: file %s defines a form without a name", def.Source)
	}
	if existing, exists := s.definitions[name]; exists {
		return fmt.Errorf("schema: duplicate definition %q (files %s and %s)", name, existing.Source, def.Source)
	}
	def.Name = name
	s.definitions[name] = def
	return nil
}

type documentFile struct {
	Forms      []Definition `json:"forms" yaml:"forms"`
	Definition `yaml:",inline"`
}

// Parse decodes a single definition from JSON or YAML.
func Parse(data []byte, source string) (Definition, error) {
	defs, err := ParseAll(data, source)
	if err != nil {
		return Definition{}, err
	}
	if len(defs) != 1 {
		return Definition{}, fmt.Errorf("schema: %s holds %d definitions, expected one", source, len(defs))
	}
	return defs[0], nil
}

// ParseAll decodes every definition in a JSON or YAML document: either the
// entries of a top-level "forms" list or the document itself.
func ParseAll(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	defs := doc.Forms
	if len(defs) == 0 {
		defs = []Definition{doc.Definition}
	}
	out := make([]Definition, 0, len(defs))
	for i, def := range defs {
		def.Source = source
		if err := validateDefinition(def); err != nil {
			return nil, fmt.Errorf("schema: %s: form %d: %w", source, i, err)
		}
		out = append(out, def)
	}
	return out, nil
}

func validateDefinition(def Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return errors.New("name is required")
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for i, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("field %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
