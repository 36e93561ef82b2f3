package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/forms"
)

const formatText = "text"

type validationResult struct {
	Form        string              `json:"form" yaml:"form"`
	Valid       bool                `json:"valid" yaml:"valid"`
	CleanedData map[string]any      `json:"cleaned_data,omitempty" yaml:"cleaned_data,omitempty"`
	Errors      map[string][]string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Changed     []string            `json:"changed,omitempty" yaml:"changed,omitempty"`
}

func resultFor(form *forms.Form) validationResult {
	result := validationResult{
		Form:  form.Name(),
		Valid: form.IsValid(),
	}
	if result.Valid {
		result.CleanedData = form.CleanedData()
	} else {
		result.Errors = form.Errors().AsMap()
	}
	result.Changed = form.ChangedData()
	return result
}

func (a *app) newValidateCmd() *cobra.Command {
	var (
		in     formInput
		format string
	)

	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate submitted data against a form definition",
		Long: `Bind data from --data and/or --data-file to a form definition and print
the cleaned data or the errors. The command exits non-zero when the data is
invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, req, err := a.load(args[0], in)
			if err != nil {
				return err
			}
			if req.Data, err = in.submitted(); err != nil {
				return err
			}
			if req.Data == nil {
				return fmt.Errorf("no data to validate; pass --data or --data-file")
			}

			form, err := gen.Form(cmd.Context(), req)
			if err != nil {
				return err
			}
			result := resultFor(form)
			a.logger.Debug("form validated", "form", result.Form, "valid", result.Valid, "errors", len(result.Errors))

			if strings.EqualFold(format, formatText) {
				err = writeText(cmd, result)
			} else {
				err = encode(cmd.OutOrStdout(), format, result)
			}
			if err != nil {
				return err
			}
			if !result.Valid {
				return ErrInvalid
			}
			return nil
		},
	}

	flags := cmd.Flags()
	in.bindDefinition(flags)
	in.bindData(flags)
	flags.StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml or text")

	return cmd
}

func writeText(cmd *cobra.Command, result validationResult) error {
	out := cmd.OutOrStdout()
	if result.Valid {
		if _, err := fmt.Fprintf(out, "%s: valid\n", result.Form); err != nil {
			return err
		}
		keys := make([]string, 0, len(result.CleanedData))
		for key := range result.CleanedData {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, err := fmt.Fprintf(out, "  %s: %v\n", key, result.CleanedData[key]); err != nil {
				return err
			}
		}
		if len(result.Changed) > 0 {
			if _, err := fmt.Fprintf(out, "changed: %s\n", strings.Join(result.Changed, ", ")); err != nil {
				return err
			}
		}
		return nil
	}
	if _, err := fmt.Fprintf(out, "%s: invalid\n", result.Form); err != nil {
		return err
	}
	for _, field := range sortedKeys(result.Errors) {
		for _, msg := range result.Errors[field] {
			if _, err := fmt.Fprintf(out, "  %s: %s\n", field, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
