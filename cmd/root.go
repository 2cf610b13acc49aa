// Package cmd provides the root command and CLI setup for lintel.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/adapter"
	"github.com/mouse-blink/lintel/internal/controller"
	"github.com/mouse-blink/lintel/internal/domain"
	"github.com/mouse-blink/lintel/internal/logging"
	m "github.com/mouse-blink/lintel/internal/model"
	"github.com/mouse-blink/lintel/internal/settings"
)

// errViolations is returned when a lint run should exit unsuccessfully.
var errViolations = errors.New("lint found serious violations")

// workflow is built on first use unless a test has replaced it.
var workflow domain.Workflow
var registry = domain.DefaultRegistry()
var appSettings *settings.Settings

var configFlags []string
var reporterFlag string
var strictFlag bool
var noCacheFlag bool
var cachePathFlag string
var jobsFlag int
var logLevelFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lintel [paths...]",
		Short: "Go source linter",
		Long: `Lintel runs a configurable set of rules over Go source files and reports
the violations it finds.

Rules are selected by .lintel.yml files, which may reference parent, child
and remote configurations. Running lintel without a subcommand lints.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runLint,
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&configFlags, "config", "c", nil, "configuration file (can be repeated, merged left to right)")
	flags.StringVarP(&reporterFlag, "reporter", "r", "", fmt.Sprintf("output format, one of %v", controller.Reporters))
	flags.BoolVar(&strictFlag, "strict", false, "report every violation as an error")
	flags.BoolVar(&noCacheFlag, "no-cache", false, "do not read or write the linter cache")
	flags.StringVar(&cachePathFlag, "cache-path", "", "linter cache file")
	flags.IntVarP(&jobsFlag, "jobs", "j", 0, "number of files linted in parallel (0 means one per CPU)")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newLintCmd(), newFixCmd(), newRulesCmd(), newConfigCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on failure: 2 when
// the lint run failed, 1 for any other error.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if errors.Is(err, errViolations) {
		os.Exit(2)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// setup loads settings, applies flag overrides and wires the workflow.
func setup(cmd *cobra.Command, _ []string) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("no-cache") {
		s.NoCache = noCacheFlag
	}

	if flags.Changed("cache-path") {
		s.CachePath = cachePathFlag
	}

	if flags.Changed("jobs") {
		s.Jobs = jobsFlag
	}

	if flags.Changed("log-level") {
		s.Logging.Level = logLevelFlag
	}

	if len(configFlags) > 0 {
		s.Configs = configFlags
	}

	if err := settings.Validate(s); err != nil {
		return err
	}

	log, err := logging.New(s.Logging.Level, s.Logging.Format, cmd.ErrOrStderr(), controller.IsTTY(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	appSettings = s

	if workflow == nil {
		workflow = newWorkflow(s, log)
	}

	return nil
}

func newWorkflow(s *settings.Settings, log zerolog.Logger) domain.Workflow {
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	var store adapter.CacheStore
	if !s.NoCache {
		store = adapter.NewFileCacheStore(m.Path(s.CachePath))
	}

	resolver := domain.NewConfigResolver(
		fsAdapter,
		adapter.NewStructuredDecoder(),
		adapter.NewHTTPFetcher(s.RemoteTimeout),
		registry,
		log,
	)

	return domain.NewWorkflow(fsAdapter, adapter.NewLocalGoFileAdapter(), resolver, store, registry, log)
}

// rootPath is the directory configuration discovery starts from.
func rootPath() (m.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return m.Path(wd), nil
}

// parsePaths turns arguments into absolute paths.
func parsePaths(args []string) ([]m.Path, error) {
	paths := make([]m.Path, 0, len(args))

	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}

		paths = append(paths, m.Path(abs))
	}

	return paths, nil
}

// newUI picks the reporter: the flag first, then the configuration.
func newUI(cmd *cobra.Command, cfg domain.Configuration) (controller.UI, error) {
	reporter := reporterFlag
	if reporter == "" && cfg.Reporter != nil {
		reporter = *cfg.Reporter
	}

	return controller.NewUI(cmd, reporter, controller.IsTTY(cmd.OutOrStdout()))
}
