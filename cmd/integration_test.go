package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/lintel/internal/domain"
	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

// useExample copies examples/<name> into a temporary directory and makes
// it the working directory.
func useExample(t *testing.T, name string) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join(wd, "..", "examples", name))))

	t.Chdir(dir)

	return dir
}

type jsonReport struct {
	Violations []m.Violation `json:"violations"`
	Files      int           `json:"files"`
}

func lintJSON(t *testing.T, args ...string) (jsonReport, error) {
	t.Helper()

	out, _, err := execute(t, nil, append([]string{"lint", "--reporter", "json", "--no-cache"}, args...)...)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	return report, err
}

func TestIntegration_Basic(t *testing.T) {
	dir := useExample(t, "basic")
	main := m.Path(filepath.Join(dir, "main.go"))

	report, err := lintJSON(t)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	assert.Equal(t, []m.Violation{
		{RuleID: rules.TodoID, Severity: m.SeverityWarning, Location: m.Location{File: main, Line: 5, Character: 4}, Reason: "TODOs should be resolved"},
		{RuleID: rules.TrailingWhitespaceID, Severity: m.SeverityWarning, Location: m.Location{File: main, Line: 6, Character: 14}, Reason: "Lines should not have trailing whitespace"},
		{RuleID: rules.PrintStatementID, Severity: m.SeverityWarning, Location: m.Location{File: main, Line: 7, Character: 2}, Reason: "Prefer a logger over the println builtin"},
	}, report.Violations)

	t.Run("fix removes the trailing whitespace", func(t *testing.T) {
		_, _, err := execute(t, nil, "fix")
		require.NoError(t, err)

		report, err := lintJSON(t)
		require.NoError(t, err)
		assert.Len(t, report.Violations, 2)
	})

	t.Run("cache is written and reused", func(t *testing.T) {
		_, _, err := execute(t, nil, "lint", "--cache-path", filepath.Join(dir, ".cache", "lintel"))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, ".cache", "lintel"))

		out, _, err := execute(t, nil, "lint", "--reporter", "json", "--cache-path", filepath.Join(dir, ".cache", "lintel"))
		require.NoError(t, err)

		var doc struct {
			CachedFiles int `json:"cached_files"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, 1, doc.CachedFiles)
	})
}

func TestIntegration_NestedConfigurations(t *testing.T) {
	dir := useExample(t, "nested")

	report, err := lintJSON(t)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, rules.TodoID, report.Violations[0].RuleID)
	assert.Equal(t, m.Path(filepath.Join(dir, "legacy", "old.go")), report.Violations[0].Location.File)

	t.Run("a failing run exits with violations", func(t *testing.T) {
		report, err := lintJSON(t, "--strict")
		require.ErrorIs(t, err, errViolations)
		assert.Len(t, report.Violations, 1)
	})
}

func TestIntegration_Config(t *testing.T) {
	dir := useExample(t, "nested")

	out, _, err := execute(t, nil, "config")
	require.NoError(t, err)

	var doc configDocument
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, domain.ModeDefault, doc.Configuration.Mode.Kind)
	assert.Equal(t, []string{rules.TodoID}, doc.Configuration.Mode.Disabled)
	assert.Equal(t, []string{filepath.Join(dir, ".lintel.yml")}, doc.Sources)
}
