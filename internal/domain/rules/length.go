package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	m "github.com/mouse-blink/lintel/internal/model"
)

// LineLengthID identifies the line_length rule.
const LineLengthID = "line_length"

var lineLengthDescription = m.RuleDescription{
	ID:          LineLengthID,
	Name:        "Line Length",
	Description: "Lines should not span too many characters.",
	Kind:        m.KindMetrics,
	Aliases:     []string{"line_too_long"},
	Examples:    []string{"var x = \"" + strings.Repeat("a", 130) + "\"\n"},
}

type lineLength struct {
	limits         thresholds
	ignoreComments bool
	ignoreURLs     bool
}

func newLineLength(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramWarning, paramError, "ignores_comments", "ignores_urls"); err != nil {
		return nil, err
	}

	limits, err := thresholdParams(params, thresholds{warning: 120, err: 200})
	if err != nil {
		return nil, err
	}

	ignoreComments, err := boolParam(params, "ignores_comments", false)
	if err != nil {
		return nil, err
	}

	ignoreURLs, err := boolParam(params, "ignores_urls", false)
	if err != nil {
		return nil, err
	}

	return &lineLength{limits: limits, ignoreComments: ignoreComments, ignoreURLs: ignoreURLs}, nil
}

func (r *lineLength) Description() m.RuleDescription { return lineLengthDescription }

func (r *lineLength) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	for _, line := range file.Lines() {
		trimmed := strings.TrimSpace(line.Content)
		if r.ignoreComments && strings.HasPrefix(trimmed, "//") {
			continue
		}

		if r.ignoreURLs && (strings.Contains(trimmed, "http://") || strings.Contains(trimmed, "https://")) {
			continue
		}

		length := utf8.RuneCountInString(line.Content)

		severity, limit, ok := r.limits.severityFor(length)
		if !ok {
			continue
		}

		violations = append(violations, m.Violation{
			RuleID:   LineLengthID,
			Severity: severity,
			Location: m.Location{File: file.Path, Line: line.Index},
			Reason:   fmt.Sprintf("Line should be %d characters or less; currently it has %d characters", limit, length),
		})
	}

	return violations
}

// FileLengthID identifies the file_length rule.
const FileLengthID = "file_length"

var fileLengthDescription = m.RuleDescription{
	ID:          FileLengthID,
	Name:        "File Length",
	Description: "Files should not span too many lines.",
	Kind:        m.KindMetrics,
	Examples:    []string{strings.Repeat("// line\n", 401)},
}

type fileLength struct {
	limits             thresholds
	ignoreCommentLines bool
}

func newFileLength(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramWarning, paramError, "ignore_comment_only_lines"); err != nil {
		return nil, err
	}

	limits, err := thresholdParams(params, thresholds{warning: 400, err: 1000})
	if err != nil {
		return nil, err
	}

	ignore, err := boolParam(params, "ignore_comment_only_lines", false)
	if err != nil {
		return nil, err
	}

	return &fileLength{limits: limits, ignoreCommentLines: ignore}, nil
}

func (r *fileLength) Description() m.RuleDescription { return fileLengthDescription }

func (r *fileLength) Validate(file *m.File) []m.Violation {
	lines := file.Lines()

	count := 0

	for _, line := range lines {
		if r.ignoreCommentLines && strings.HasPrefix(strings.TrimSpace(line.Content), "//") {
			continue
		}

		count++
	}

	severity, limit, ok := r.limits.severityFor(count)
	if !ok {
		return nil
	}

	return []m.Violation{{
		RuleID:   FileLengthID,
		Severity: severity,
		Location: m.Location{File: file.Path, Line: len(lines)},
		Reason:   fmt.Sprintf("File should contain %d lines or less: currently contains %d", limit, count),
	}}
}
