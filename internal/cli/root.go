// Package cli implements the formkit command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/prompt"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"

	// ErrInvalid is returned when submitted data does not validate. The
	// errors were already written to stdout.
	ErrInvalid = errors.New("form is invalid")
)

// Option configures the root command.
type Option func(*app)

// WithPromptDriver replaces the terminal driver used by the prompt command.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(a *app) { a.driver = driver }
}

type app struct {
	verbose bool
	logger  *slog.Logger
	driver  prompt.Driver
}

// NewRootCmd builds the formkit command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "formkit",
		Short: "Build, render and validate declarative forms",
		Long: `formkit loads form definitions from JSON or YAML files (or derives them
from OpenAPI operations), renders them as HTML, validates submitted data
against them, and fills them in interactively.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newValidateCmd())
	root.AddCommand(a.newPromptCmd())
	root.AddCommand(a.newOpenAPICmd())

	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrInvalid) {
			fmt.Fprintln(os.Stderr, "formkit:", err)
		}
		return err
	}
	return nil
}
