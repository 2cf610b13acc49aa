package controller

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/adapter"
	"github.com/mouse-blink/lintel/internal/domain"
	m "github.com/mouse-blink/lintel/internal/model"
)

// SimpleUI prints one line per violation using the cobra command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	styles styles
}

type styles struct {
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	pathStyle    lipgloss.Style
	ruleStyle    lipgloss.Style
	styled       bool
}

func newStyles(cmd *cobra.Command, useTTY bool) styles {
	if !useTTY {
		return styles{}
	}

	r := lipgloss.NewRenderer(cmd.OutOrStdout())

	return styles{
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warningStyle: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		pathStyle:    r.NewStyle().Foreground(lipgloss.Color("14")),
		ruleStyle:    r.NewStyle().Faint(true),
		styled:       true,
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}

	return style.Render(text)
}

func (s styles) severity(sev m.Severity) string {
	if sev == m.SeverityError {
		return s.render(s.errorStyle, string(sev))
	}

	return s.render(s.warningStyle, string(sev))
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, useTTY bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, styles: newStyles(cmd, useTTY)}
}

// DisplayViolations prints path:line:col: severity: reason (rule) lines
// followed by a one-line total.
func (s *SimpleUI) DisplayViolations(res domain.RunResult) error {
	for _, v := range res.Violations {
		s.printf("%s: %s: %s %s\n",
			s.styles.render(s.styles.pathStyle, v.Location.String()),
			s.styles.severity(v.Severity),
			v.Reason,
			s.styles.render(s.styles.ruleStyle, "("+v.RuleID+")"))
	}

	s.displayFailures(res.Failures, res.FileFailures)
	s.printf("Done linting! Found %d violations, %d serious in %d files.\n",
		len(res.Violations), res.ErrorCount(), res.Files)

	return nil
}

func (s *SimpleUI) displayFailures(failures []m.RuleFailure, skipped []m.FileFailure) {
	for _, f := range skipped {
		s.errorf("%s\n", f.Error())
	}

	for _, f := range failures {
		s.errorf("%s\n", f.Error())
	}
}

// DisplayCorrections lists how many corrections each file received.
func (s *SimpleUI) DisplayCorrections(res domain.CorrectResult, diff bool) error {
	if diff {
		return printDiffs(s.cmd, res)
	}

	for _, f := range res.Files {
		s.printf("%s: corrected %d violations\n", s.styles.render(s.styles.pathStyle, string(f.Path)), len(f.Corrections))
	}

	s.displayFailures(res.Failures, res.FileFailures)
	s.printf("Done correcting %d files!\n", len(res.Files))

	return nil
}

// DisplayRules prints the rules as a table.
func (s *SimpleUI) DisplayRules(rows []RuleRow) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Identifier", "Kind", "Opt-in", "Correctable", "Enabled", "Name"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	enabled := 0

	for _, row := range rows {
		if row.Enabled {
			enabled++
		}

		table.Append([]string{row.ID, row.Kind, yesNo(row.OptIn), yesNo(row.Correctable), yesNo(row.Enabled), row.Name})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(rows)), "", "", "", fmt.Sprintf("%d", enabled), ""})
	table.Render()
	s.printf("%s", buf.String())

	return nil
}

// DisplayDiagnostics prints one line per configuration problem.
func (s *SimpleUI) DisplayDiagnostics(diags []*domain.ConfigError) {
	for _, d := range diags {
		s.errorf("%s\n", diagnosticLine(d))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

func printDiffs(cmd *cobra.Command, res domain.CorrectResult) error {
	for _, f := range res.Files {
		out, err := adapter.UnifiedDiff(f.Path, f.Original, f.Corrected)
		if err != nil {
			return fmt.Errorf("diff %s: %w", f.Path, err)
		}

		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
	}

	return nil
}
