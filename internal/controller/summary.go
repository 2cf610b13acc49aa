package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/lintel/internal/domain"
	m "github.com/mouse-blink/lintel/internal/model"
)

// SummaryUI prints a table of violation counts per rule instead of the
// individual violations.
type SummaryUI struct {
	*SimpleUI
}

// NewSummaryUI creates a new SummaryUI.
func NewSummaryUI(cmd *cobra.Command, useTTY bool) *SummaryUI {
	return &SummaryUI{SimpleUI: NewSimpleUI(cmd, useTTY)}
}

type ruleSummary struct {
	warnings int
	errors   int
	files    map[m.Path]struct{}
}

// DisplayViolations prints one row per rule that reported something.
func (s *SummaryUI) DisplayViolations(res domain.RunResult) error {
	byRule := map[string]*ruleSummary{}

	for _, v := range res.Violations {
		sum, ok := byRule[v.RuleID]
		if !ok {
			sum = &ruleSummary{files: map[m.Path]struct{}{}}
			byRule[v.RuleID] = sum
		}

		if v.Severity == m.SeverityError {
			sum.errors++
		} else {
			sum.warnings++
		}

		sum.files[v.Location.File] = struct{}{}
	}

	ids := make([]string, 0, len(byRule))
	for id := range byRule {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rule", "Warnings", "Errors", "Total", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, id := range ids {
		sum := byRule[id]
		table.Append([]string{
			id,
			fmt.Sprintf("%d", sum.warnings),
			fmt.Sprintf("%d", sum.errors),
			fmt.Sprintf("%d", sum.warnings+sum.errors),
			fmt.Sprintf("%d", len(sum.files)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d rules", len(ids)),
		fmt.Sprintf("%d", res.WarningCount()),
		fmt.Sprintf("%d", res.ErrorCount()),
		fmt.Sprintf("%d", len(res.Violations)),
		fmt.Sprintf("%d", res.Files),
	})

	table.Render()
	s.printf("%s", buf.String())
	s.displayFailures(res.Failures, res.FileFailures)

	return nil
}
