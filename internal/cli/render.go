package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/render"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		in       formInput
		renderer string
		action   string
		method   string
		submit   string
		output   string
		media    bool
	)

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a form definition as HTML",
		Long: `Render a form definition with one of the built-in renderers (table, ul,
p, template). Passing --data binds the form, so errors are rendered next to
the offending fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, req, err := a.load(args[0], in)
			if err != nil {
				return err
			}
			if req.Data, err = in.submitted(); err != nil {
				return err
			}
			req.Renderer = renderer
			req.RenderOptions = render.RenderOptions{
				Action:       action,
				Method:       method,
				SubmitLabel:  submit,
				IncludeMedia: media,
			}

			a.logger.Debug("rendering form", "form", req.Name, "renderer", renderer, "bound", req.Data != nil)
			out, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			if err := os.WriteFile(output, append(out, '\n'), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.logger.Info("form written", "path", output, "bytes", len(out))
			return nil
		},
	}

	flags := cmd.Flags()
	in.bindDefinition(flags)
	in.bindData(flags)
	flags.StringVarP(&renderer, "renderer", "r", "table", "renderer name: table, ul, p or template")
	flags.StringVar(&action, "action", "", "form action URL")
	flags.StringVar(&method, "method", "", "form method; non GET/POST methods add a _method field")
	flags.StringVar(&submit, "submit", "", "submit button label")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.BoolVar(&media, "media", false, "include the form's CSS and JS tags")

	return cmd
}
