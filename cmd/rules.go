package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/controller"
	"github.com/mouse-blink/lintel/internal/domain"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Long:  "Rules lists every registered rule and whether the effective configuration enables it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := rootPath()
			if err != nil {
				return err
			}

			res := workflow.Resolve(cmd.Context(), domain.ResolveArgs{Root: string(root), Configs: appSettings.Configs})

			ui, err := newUI(cmd, res.Config)
			if err != nil {
				return err
			}

			ui.DisplayDiagnostics(res.Diagnostics)

			return ui.DisplayRules(controller.RuleRows(registry, res.Config))
		},
	}
}
