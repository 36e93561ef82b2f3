package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// formInput collects the flags shared by commands operating on a definition
// file.
type formInput struct {
	form     string
	prefix   string
	data     string
	dataFile string
}

func (in *formInput) bindDefinition(flags flagSet) {
	flags.StringVar(&in.form, "form", "", "definition name when the file holds several")
	flags.StringVar(&in.prefix, "prefix", "", "field name prefix (overrides the definition)")
}

func (in *formInput) bindData(flags flagSet) {
	flags.StringVar(&in.data, "data", "", "submitted data as a query string, e.g. 'name=Ann&tags=a&tags=b'")
	flags.StringVar(&in.dataFile, "data-file", "", "submitted data as a JSON or YAML object")
}

// flagSet is the subset of pflag.FlagSet used to bind flags.
type flagSet interface {
	StringVar(p *string, name string, value string, usage string)
}

// load reads the definition file and returns an orchestrator over its
// definitions with a request naming the selected one.
func (a *app) load(path string, in formInput) (*orchestrator.Orchestrator, orchestrator.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, orchestrator.Request{}, fmt.Errorf("read definition: %w", err)
	}
	defs, err := schema.ParseAll(data, path)
	if err != nil {
		return nil, orchestrator.Request{}, err
	}
	store, err := schema.NewStore(defs...)
	if err != nil {
		return nil, orchestrator.Request{}, err
	}

	name := strings.TrimSpace(in.form)
	if name == "" {
		if len(defs) > 1 {
			return nil, orchestrator.Request{}, fmt.Errorf("%s holds %d definitions (%s); choose one with --form",
				path, len(defs), strings.Join(store.Names(), ", "))
		}
		name = defs[0].Name
	}
	a.logger.Debug("definition loaded", "path", path, "form", name, "definitions", len(defs))

	gen, err := formkit.NewOrchestrator(orchestrator.WithStore(store))
	if err != nil {
		return nil, orchestrator.Request{}, err
	}
	return gen, orchestrator.Request{Name: name, Prefix: in.prefix}, nil
}

// submitted merges --data-file and --data. It returns nil when neither is
// set so the form stays unbound.
func (in formInput) submitted() (url.Values, error) {
	if in.data == "" && in.dataFile == "" {
		return nil, nil
	}
	values := url.Values{}
	if in.dataFile != "" {
		raw, err := os.ReadFile(in.dataFile)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", in.dataFile, err)
		}
		for key, value := range doc {
			values[key] = widgets.ValueStrings(value)
		}
	}
	if in.data != "" {
		query, err := url.ParseQuery(in.data)
		if err != nil {
			return nil, fmt.Errorf("parse --data: %w", err)
		}
		for key, list := range query {
			values[key] = list
		}
	}
	return values, nil
}

func encode(w io.Writer, format string, value any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
