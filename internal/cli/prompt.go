package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/prompt"
)

func (a *app) newPromptCmd() *cobra.Command {
	var (
		in       formInput
		format   string
		attempts int
	)

	cmd := &cobra.Command{
		Use:   "prompt <definition>",
		Short: "Fill a form interactively",
		Long: `Ask for every field of a form definition in the terminal, validate the
answers and print the cleaned data. Invalid fields are asked for again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, req, err := a.load(args[0], in)
			if err != nil {
				return err
			}
			decl, def, err := gen.Declaration(cmd.Context(), req)
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			var formOpts []forms.Option
			prefix := req.Prefix
			if prefix == "" {
				prefix = def.Prefix
			}
			if prefix != "" {
				formOpts = append(formOpts, forms.WithPrefix(prefix))
			}

			filler := prompt.NewFiller(driver,
				prompt.WithMaxAttempts(attempts),
				prompt.WithFormOptions(formOpts...),
			)
			form, err := filler.Fill(cmd.Context(), decl)
			if errors.Is(err, prompt.ErrAborted) {
				a.logger.Info("prompt aborted", "form", decl.Name)
				return err
			}
			if err != nil && !errors.Is(err, prompt.ErrTooManyAttempts) {
				return fmt.Errorf("prompt: %w", err)
			}

			result := resultFor(form)
			if encErr := encode(cmd.OutOrStdout(), format, result); encErr != nil {
				return encErr
			}
			if !result.Valid {
				return ErrInvalid
			}
			return nil
		},
	}

	flags := cmd.Flags()
	in.bindDefinition(flags)
	flags.StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	flags.IntVar(&attempts, "attempts", prompt.DefaultMaxAttempts, "how many times invalid fields are asked for")

	return cmd
}
