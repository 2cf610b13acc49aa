package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/domain"
	m "github.com/mouse-blink/lintel/internal/model"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Go source files",
		Long: `Lint runs every enabled rule over the Go files under the given paths, or
the current directory when none are given. Results of unchanged files are
read from the linter cache.`,
		RunE: runLint,
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	root, err := rootPath()
	if err != nil {
		return err
	}

	paths, err := parsePaths(args)
	if err != nil {
		return err
	}

	res, err := workflow.Lint(cmd.Context(), domain.LintArgs{
		Root:     root,
		Paths:    paths,
		Configs:  appSettings.Configs,
		Jobs:     appSettings.Jobs,
		UseCache: !appSettings.NoCache,
	})
	if err != nil {
		return err
	}

	if strictFlag {
		for i := range res.Violations {
			res.Violations[i].Severity = m.SeverityError
		}
	}

	ui, err := newUI(cmd, res.Config)
	if err != nil {
		return err
	}

	ui.DisplayDiagnostics(res.Diagnostics)

	if err := ui.DisplayViolations(res); err != nil {
		return err
	}

	if res.Failed() {
		return errViolations
	}

	return nil
}
