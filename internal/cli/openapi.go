package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/openapi"
)

func (a *app) newOpenAPICmd() *cobra.Command {
	var (
		format   string
		validate bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "openapi <document> [operationId]",
		Short: "Derive form definitions from an OpenAPI document",
		Long: `Convert the request body of an OpenAPI 3 operation into a form definition
and print it. Without an operation id the available operations are listed.
The document may be a local path or an http(s) URL.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := openapi.NewLoader(
				openapi.WithValidation(validate),
				openapi.WithHTTPTimeout(timeout),
			)
			doc, err := loader.Load(cmd.Context(), sourceFor(args[0]))
			if err != nil {
				return err
			}

			if len(args) == 1 {
				out := cmd.OutOrStdout()
				for _, op := range doc.Operations() {
					line := fmt.Sprintf("%s\t%s %s", op.ID, op.Method, op.Path)
					if op.Summary != "" {
						line += "\t" + op.Summary
					}
					if _, err := fmt.Fprintln(out, line); err != nil {
						return err
					}
				}
				return nil
			}

			def, err := doc.Definition(args[1])
			if err != nil {
				return err
			}
			a.logger.Debug("definition derived", "operation", args[1], "fields", len(def.Fields))
			return encode(cmd.OutOrStdout(), format, def)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", formatYAML, "output format: yaml or json")
	flags.BoolVar(&validate, "validate", true, "validate the document before converting")
	flags.DurationVar(&timeout, "timeout", 10*time.Second, "timeout for remote documents")

	return cmd
}

func sourceFor(raw string) openapi.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path)
}
