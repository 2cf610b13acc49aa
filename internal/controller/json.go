package controller

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/domain"
	m "github.com/mouse-blink/lintel/internal/model"
)

// JSONUI writes machine-readable documents to the command's output.
type JSONUI struct {
	cmd *cobra.Command
}

// NewJSONUI creates a new JSONUI.
func NewJSONUI(cmd *cobra.Command) *JSONUI {
	return &JSONUI{cmd: cmd}
}

type jsonDiagnostic struct {
	Code    domain.ErrorCode `json:"code"`
	Path    string           `json:"path,omitempty"`
	Key     string           `json:"key,omitempty"`
	Fatal   bool             `json:"fatal"`
	Message string           `json:"message"`
}

type jsonRun struct {
	Violations   []m.Violation    `json:"violations"`
	Failures     []m.RuleFailure  `json:"failures,omitempty"`
	FileFailures []m.FileFailure  `json:"file_failures,omitempty"`
	Diagnostics  []jsonDiagnostic `json:"diagnostics,omitempty"`
	Files        int              `json:"files"`
	CachedFiles  int              `json:"cached_files"`
	Errors       int              `json:"errors"`
	Warnings     int              `json:"warnings"`
}

type jsonCorrection struct {
	Path        m.Path         `json:"path"`
	Corrections []m.Correction `json:"corrections"`
}

type jsonCorrections struct {
	Files        []jsonCorrection `json:"files"`
	Failures     []m.RuleFailure  `json:"failures,omitempty"`
	FileFailures []m.FileFailure  `json:"file_failures,omitempty"`
}

func toJSONDiagnostics(diags []*domain.ConfigError) []jsonDiagnostic {
	out := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, jsonDiagnostic{Code: d.Code, Path: d.Path, Key: d.Key, Fatal: d.Fatal(), Message: d.Error()})
	}

	return out
}

// DisplayViolations writes the run as a single JSON document. Diagnostics
// are embedded instead of going to the error stream.
func (j *JSONUI) DisplayViolations(res domain.RunResult) error {
	violations := res.Violations
	if violations == nil {
		violations = []m.Violation{}
	}

	return j.write(jsonRun{
		Violations:   violations,
		Failures:     res.Failures,
		FileFailures: res.FileFailures,
		Diagnostics:  toJSONDiagnostics(res.Diagnostics),
		Files:        res.Files,
		CachedFiles:  res.CachedFiles,
		Errors:       res.ErrorCount(),
		Warnings:     res.WarningCount(),
	})
}

// DisplayCorrections writes the corrections per file, or unified diffs
// when diff is set.
func (j *JSONUI) DisplayCorrections(res domain.CorrectResult, diff bool) error {
	if diff {
		return printDiffs(j.cmd, res)
	}

	doc := jsonCorrections{Files: []jsonCorrection{}, Failures: res.Failures, FileFailures: res.FileFailures}
	for _, f := range res.Files {
		doc.Files = append(doc.Files, jsonCorrection{Path: f.Path, Corrections: f.Corrections})
	}

	return j.write(doc)
}

// DisplayRules writes the rules listing as a JSON array.
func (j *JSONUI) DisplayRules(rows []RuleRow) error {
	if rows == nil {
		rows = []RuleRow{}
	}

	return j.write(rows)
}

// DisplayDiagnostics is a no-op; DisplayViolations embeds them.
func (j *JSONUI) DisplayDiagnostics([]*domain.ConfigError) {}

func (j *JSONUI) write(v any) error {
	enc := json.NewEncoder(j.cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
