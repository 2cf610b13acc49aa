package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/lintel/internal/domain"
	domainmocks "github.com/mouse-blink/lintel/internal/domain/mocks"
	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

// execute runs the CLI with wf in place of the real workflow.
func execute(t *testing.T, wf domain.Workflow, args ...string) (string, string, error) {
	t.Helper()

	originalWorkflow := workflow
	workflow = wf

	t.Cleanup(func() { workflow = originalWorkflow })

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func warning(file m.Path, line int) m.Violation {
	return m.Violation{
		RuleID:   rules.TrailingWhitespaceID,
		Severity: m.SeverityWarning,
		Location: m.Location{File: file, Line: line, Character: 10},
		Reason:   "Lines should not have trailing whitespace",
	}
}

func TestLintCmd(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	t.Run("default command lints with cache", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Lint(mock.Anything, mock.MatchedBy(func(args domain.LintArgs) bool {
			return args.Root == m.Path(wd) &&
				len(args.Paths) == 1 && args.Paths[0] == m.Path(filepath.Join(wd, "pkg")) &&
				args.UseCache && args.Jobs == 2
		})).Return(domain.RunResult{Violations: []m.Violation{warning("pkg/a.go", 2)}, Files: 1}, nil)

		out, _, err := execute(t, wf, "--jobs", "2", "pkg")
		require.NoError(t, err)
		assert.Contains(t, out, "pkg/a.go:2:10: warning: Lines should not have trailing whitespace (trailing_whitespace)")
		assert.Contains(t, out, "Found 1 violations, 0 serious in 1 files.")
	})

	t.Run("lint subcommand passes configs and disables the cache", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Lint(mock.Anything, mock.MatchedBy(func(args domain.LintArgs) bool {
			return !args.UseCache && len(args.Paths) == 0 &&
				assert.ObjectsAreEqual([]string{"a.yml", "b.yml"}, args.Configs)
		})).Return(domain.RunResult{}, nil)

		_, _, err := execute(t, wf, "lint", "--no-cache", "--config", "a.yml", "-c", "b.yml")
		require.NoError(t, err)
	})

	t.Run("strict fails on warnings", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Lint(mock.Anything, mock.Anything).
			Return(domain.RunResult{Violations: []m.Violation{warning("a.go", 1)}, Files: 1}, nil)

		out, _, err := execute(t, wf, "lint", "--strict")
		require.ErrorIs(t, err, errViolations)
		assert.Contains(t, out, "a.go:1:10: error:")
	})

	t.Run("reporter from configuration", func(t *testing.T) {
		reporter := "json"
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Lint(mock.Anything, mock.Anything).
			Return(domain.RunResult{Config: domain.Configuration{Reporter: &reporter}}, nil)

		out, _, err := execute(t, wf, "lint")
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, []any{}, doc["violations"])
	})

	t.Run("unknown reporter", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Lint(mock.Anything, mock.Anything).Return(domain.RunResult{}, nil)

		_, _, err := execute(t, wf, "lint", "--reporter", "xml")
		require.ErrorContains(t, err, "unknown reporter")
	})

	t.Run("diagnostics go to stderr", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Lint(mock.Anything, mock.Anything).Return(domain.RunResult{
			Diagnostics: []*domain.ConfigError{{Code: domain.ErrCodeUnknownKey, Path: ".lintel.yml", Key: "colour"}},
		}, nil)

		_, errOut, err := execute(t, wf, "lint")
		require.NoError(t, err)
		assert.Contains(t, errOut, "warning: .lintel.yml")
	})

	t.Run("invalid jobs", func(t *testing.T) {
		_, _, err := execute(t, domainmocks.NewMockWorkflow(t), "lint", "--jobs", "-3")
		require.Error(t, err)
	})
}

func TestFixCmd(t *testing.T) {
	res := domain.CorrectResult{Files: []domain.FileCorrection{{
		Path:        "a.go",
		Original:    []byte("package p\nvar a = 1 \n"),
		Corrected:   []byte("package p\nvar a = 1\n"),
		Corrections: []m.Correction{{RuleID: rules.TrailingWhitespaceID}},
	}}}

	t.Run("writes files", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Correct(mock.Anything, mock.MatchedBy(func(args domain.CorrectArgs) bool {
			return !args.DryRun
		})).Return(res, nil)

		out, _, err := execute(t, wf, "fix")
		require.NoError(t, err)
		assert.Contains(t, out, "a.go: corrected 1 violations")
	})

	t.Run("diff is a dry run", func(t *testing.T) {
		wf := domainmocks.NewMockWorkflow(t)
		wf.EXPECT().Correct(mock.Anything, mock.MatchedBy(func(args domain.CorrectArgs) bool {
			return args.DryRun
		})).Return(res, nil)

		out, _, err := execute(t, wf, "fix", "--diff")
		require.NoError(t, err)
		assert.Contains(t, out, "+var a = 1\n")
	})
}

func TestRulesCmd(t *testing.T) {
	wf := domainmocks.NewMockWorkflow(t)
	wf.EXPECT().Resolve(mock.Anything, mock.Anything).
		Return(domain.Resolution{Config: domain.DefaultConfiguration("")})

	out, _, err := execute(t, wf, "rules", "--reporter", "json")
	require.NoError(t, err)

	var rows []struct {
		ID      string `json:"id"`
		Enabled bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, len(registry.IDs()))
}

func TestConfigCmd(t *testing.T) {
	cfg := domain.DefaultConfiguration("/repo")
	cfg.Mode.Disabled = []string{rules.TodoID}
	cfg.Graph = &domain.FileGraph{Root: "/repo/.lintel.yml", Nodes: []string{"/repo/.lintel.yml"}}

	wf := domainmocks.NewMockWorkflow(t)
	wf.EXPECT().Resolve(mock.Anything, mock.Anything).Return(domain.Resolution{Config: cfg})

	out, _, err := execute(t, wf, "config")
	require.NoError(t, err)

	var doc struct {
		Configuration struct {
			Mode struct {
				Kind     string   `yaml:"kind"`
				Disabled []string `yaml:"disabled"`
			} `yaml:"mode"`
		} `yaml:"configuration"`
		EnabledRules []string `yaml:"enabled_rules"`
		Sources      []string `yaml:"sources"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "default", doc.Configuration.Mode.Kind)
	assert.Equal(t, []string{rules.TodoID}, doc.Configuration.Mode.Disabled)
	assert.NotContains(t, doc.EnabledRules, rules.TodoID)
	assert.Contains(t, doc.EnabledRules, rules.TrailingWhitespaceID)
	assert.Equal(t, []string{"/repo/.lintel.yml"}, doc.Sources)
}
