package rules

import (
	"strings"

	m "github.com/mouse-blink/lintel/internal/model"
)

// TrailingWhitespaceID identifies the trailing_whitespace rule.
const TrailingWhitespaceID = "trailing_whitespace"

var trailingWhitespaceDescription = m.RuleDescription{
	ID:          TrailingWhitespaceID,
	Name:        "Trailing Whitespace",
	Description: "Lines should not have trailing whitespace.",
	Kind:        m.KindStyle,
	Examples:    []string{"package p \n"},
}

type trailingWhitespace struct {
	severity          m.Severity
	ignoresEmptyLines bool
}

func newTrailingWhitespace(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramSeverity, "ignores_empty_lines"); err != nil {
		return nil, err
	}

	severity, err := severityParam(params, m.SeverityWarning)
	if err != nil {
		return nil, err
	}

	ignores, err := boolParam(params, "ignores_empty_lines", false)
	if err != nil {
		return nil, err
	}

	return &trailingWhitespace{severity: severity, ignoresEmptyLines: ignores}, nil
}

func (r *trailingWhitespace) Description() m.RuleDescription { return trailingWhitespaceDescription }

func (r *trailingWhitespace) offending(line m.Line) (int, bool) {
	trimmed := strings.TrimRight(line.Content, " \t")
	if len(trimmed) == len(line.Content) {
		return 0, false
	}

	if trimmed == "" && r.ignoresEmptyLines {
		return 0, false
	}

	return len(trimmed) + 1, true
}

func (r *trailingWhitespace) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	for _, line := range file.Lines() {
		column, ok := r.offending(line)
		if !ok {
			continue
		}

		violations = append(violations, m.Violation{
			RuleID:   TrailingWhitespaceID,
			Severity: r.severity,
			Location: m.Location{File: file.Path, Line: line.Index, Character: column},
			Reason:   "Lines should not have trailing whitespace",
		})
	}

	return violations
}

func (r *trailingWhitespace) Correct(file *m.File, allowed func(m.Location) bool) []m.Correction {
	var corrections []m.Correction

	content := file.Contents
	shift := 0

	for _, line := range file.Lines() {
		column, ok := r.offending(line)
		if !ok {
			continue
		}

		loc := m.Location{File: file.Path, Line: line.Index, Character: column}
		if !allowed(loc) {
			continue
		}

		start := line.Offset + column - 1 - shift
		end := line.Offset + len(line.Content) - shift
		content = replaceRange(content, start, end, "")
		shift += end - start

		corrections = append(corrections, m.Correction{RuleID: TrailingWhitespaceID, Location: loc})
	}

	if len(corrections) > 0 {
		file.SetContents(content)
	}

	return corrections
}

// VerticalWhitespaceID identifies the vertical_whitespace rule.
const VerticalWhitespaceID = "vertical_whitespace"

var verticalWhitespaceDescription = m.RuleDescription{
	ID:          VerticalWhitespaceID,
	Name:        "Vertical Whitespace",
	Description: "Limit vertical whitespace to a single empty line.",
	Kind:        m.KindStyle,
	Examples:    []string{"package p\n\n\n\nvar x = 1\n"},
}

type verticalWhitespace struct {
	severity      m.Severity
	maxEmptyLines int
}

func newVerticalWhitespace(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramSeverity, "max_empty_lines"); err != nil {
		return nil, err
	}

	severity, err := severityParam(params, m.SeverityWarning)
	if err != nil {
		return nil, err
	}

	maxEmpty, err := intParam(params, "max_empty_lines", 1)
	if err != nil {
		return nil, err
	}

	return &verticalWhitespace{severity: severity, maxEmptyLines: maxEmpty}, nil
}

func (r *verticalWhitespace) Description() m.RuleDescription { return verticalWhitespaceDescription }

// excessLines returns the empty lines beyond the allowed run length.
func (r *verticalWhitespace) excessLines(file *m.File) []m.Line {
	var excess []m.Line

	run := 0

	for _, line := range file.Lines() {
		if strings.TrimSpace(line.Content) != "" {
			run = 0
			continue
		}

		run++
		if run > r.maxEmptyLines {
			excess = append(excess, line)
		}
	}

	return excess
}

func (r *verticalWhitespace) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	for _, line := range r.excessLines(file) {
		violations = append(violations, m.Violation{
			RuleID:   VerticalWhitespaceID,
			Severity: r.severity,
			Location: m.Location{File: file.Path, Line: line.Index},
			Reason:   "Limit vertical whitespace to a single empty line",
		})
	}

	return violations
}

func (r *verticalWhitespace) Correct(file *m.File, allowed func(m.Location) bool) []m.Correction {
	var corrections []m.Correction

	content := file.Contents
	shift := 0

	for _, line := range r.excessLines(file) {
		loc := m.Location{File: file.Path, Line: line.Index}
		if !allowed(loc) {
			continue
		}

		start := line.Offset - shift
		end := min(line.Offset+line.Length+1, len(file.Contents)) - shift
		content = replaceRange(content, start, end, "")
		shift += end - start

		corrections = append(corrections, m.Correction{RuleID: VerticalWhitespaceID, Location: loc})
	}

	if len(corrections) > 0 {
		file.SetContents(content)
	}

	return corrections
}
