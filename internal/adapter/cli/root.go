// Package cli provides the cobra command surface for the reviewer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/darkin100/i-am-reviewed/internal/domain"
)

// ErrVersionRequested indicates the user asked for the version and no review
// should run.
var ErrVersionRequested = errors.New("version requested")

// RunFunc executes one review against the named provider.
type RunFunc func(ctx context.Context, provider string) (domain.ReviewResult, error)

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Run     RunFunc
	Args    Arguments
	Version string
}

// NewRootCommand constructs the root cobra command. The binary has a single
// job, so the review runs from the root command itself rather than a
// subcommand.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	var provider string
	var showVersion bool

	root := &cobra.Command{
		Use:   "iar",
		Short: "AI review agent for pull and merge requests",
		Long: "iar reviews a pull or merge request from inside a CI job: it reads the\n" +
			"change through the platform CLI (gh or glab), asks a Gemini model on\n" +
			"Vertex AI for a review, and posts the result back as a comment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
				return ErrVersionRequested
			}
			if provider == "" {
				return errors.New("--provider is required (github or gitlab)")
			}

			result, err := deps.Run(cmd.Context(), provider)
			if err != nil {
				return err
			}

			caser := cases.Title(language.English)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s review posted: %s\n", caser.String(provider), result.URL)
			return nil
		},
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.Flags().StringVarP(&provider, "provider", "p", "", "Git hosting platform (github or gitlab)")
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")

	return root
}
