package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/domain"
)

var diffFlag bool

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fix [paths...]",
		Aliases: []string{"autocorrect"},
		Short:   "Correct violations in place",
		Long: `Fix runs every enabled correctable rule over the Go files under the given
paths and rewrites them. With --diff the files are left untouched and the
corrections are printed as unified diffs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootPath()
			if err != nil {
				return err
			}

			paths, err := parsePaths(args)
			if err != nil {
				return err
			}

			res, err := workflow.Correct(cmd.Context(), domain.CorrectArgs{
				Root:    root,
				Paths:   paths,
				Configs: appSettings.Configs,
				Jobs:    appSettings.Jobs,
				DryRun:  diffFlag,
			})
			if err != nil {
				return err
			}

			ui, err := newUI(cmd, res.Config)
			if err != nil {
				return err
			}

			ui.DisplayDiagnostics(res.Diagnostics)

			return ui.DisplayCorrections(res, diffFlag)
		},
	}
	cmd.Flags().BoolVar(&diffFlag, "diff", false, "print unified diffs instead of writing files")

	return cmd
}
