// Package controller renders lint results for the command line.
package controller

import (
	"fmt"
	"sort"

	"github.com/mouse-blink/lintel/internal/domain"
	"github.com/mouse-blink/lintel/internal/domain/rules"
)

// Reporter names accepted by NewUI.
const (
	ReporterText    = "text"
	ReporterJSON    = "json"
	ReporterSummary = "summary"
)

// Reporters lists every reporter name.
var Reporters = []string{ReporterText, ReporterJSON, ReporterSummary}

// UI defines the interface for displaying run outcomes.
// Implementations can use different output formats (text, JSON, tables).
type UI interface {
	DisplayViolations(res domain.RunResult) error
	// DisplayCorrections lists corrected files, or prints unified diffs
	// when diff is set.
	DisplayCorrections(res domain.CorrectResult, diff bool) error
	DisplayRules(rows []RuleRow) error
	// DisplayDiagnostics reports configuration problems on the error stream.
	DisplayDiagnostics(diags []*domain.ConfigError)
}

// RuleRow is one line of the rules listing.
type RuleRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	OptIn       bool     `json:"opt_in"`
	Correctable bool     `json:"correctable"`
	Enabled     bool     `json:"enabled"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}

// RuleRows describes every registered rule and whether cfg enables it.
func RuleRows(registry *domain.Registry, cfg domain.Configuration) []RuleRow {
	enabled := map[string]struct{}{}
	for _, id := range cfg.EnabledRuleIDs(registry) {
		enabled[id] = struct{}{}
	}

	var rows []RuleRow

	for _, entry := range registry.All() {
		d := entry.Description
		_, on := enabled[d.ID]

		row := RuleRow{
			ID:          d.ID,
			Name:        d.Name,
			Kind:        string(d.Kind),
			OptIn:       d.OptIn,
			Enabled:     on,
			Aliases:     append([]string(nil), d.Aliases...),
			Description: d.Description,
		}

		if rule, err := entry.Factory(nil); err == nil {
			_, row.Correctable = rule.(rules.CorrectableRule)
		}

		sort.Strings(row.Aliases)
		rows = append(rows, row)
	}

	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func diagnosticLine(d *domain.ConfigError) string {
	level := "warning"
	if d.Fatal() {
		level = "error"
	}

	return fmt.Sprintf("%s: %s", level, d.Error())
}
