package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/lintel/internal/domain"
)

type configDocument struct {
	Configuration domain.Configuration `yaml:"configuration"`
	EnabledRules  []string             `yaml:"enabled_rules"`
	Sources       []string             `yaml:"sources,omitempty"`
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config resolves the configuration graph from the current directory and
prints the merged result as YAML, together with the enabled rules and the
documents that took part.`,
		Args: cobra.NoArgs,
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

			doc := configDocument{
				Configuration: res.Config,
				EnabledRules:  res.Config.EnabledRuleIDs(registry),
			}

			if res.Config.Graph != nil {
				doc.Sources = res.Config.Graph.Nodes
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}

			return enc.Close()
		},
	}
}
