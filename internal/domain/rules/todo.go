package rules

import (
	"fmt"
	"regexp"
	"strings"

	m "github.com/mouse-blink/lintel/internal/model"
)

// TodoID identifies the todo rule.
const TodoID = "todo"

var todoDescription = m.RuleDescription{
	ID:          TodoID,
	Name:        "Todo",
	Description: "TODOs and FIXMEs should be resolved.",
	Kind:        m.KindLint,
	Examples:    []string{"package p\n\n// TODO: remove\n", "package p\n\n/* FIXME */\n"},
}

var todoPattern = regexp.MustCompile(`\b(TODO|FIXME)(:|\b)`)

type todo struct {
	severity m.Severity
}

func newTodo(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramSeverity); err != nil {
		return nil, err
	}

	severity, err := severityParam(params, m.SeverityWarning)
	if err != nil {
		return nil, err
	}

	return &todo{severity: severity}, nil
}

func (r *todo) Description() m.RuleDescription { return todoDescription }

func (r *todo) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	for _, c := range file.Comments {
		for _, match := range todoPattern.FindAllStringSubmatchIndex(c.Text, -1) {
			keyword := c.Text[match[2]:match[3]]

			violations = append(violations, m.Violation{
				RuleID:   TodoID,
				Severity: r.severity,
				Location: commentOffsetLocation(file.Path, c, match[0]),
				Reason:   fmt.Sprintf("%ss should be resolved", keyword),
			})
		}
	}

	return violations
}

// commentOffsetLocation maps a byte offset inside a comment to a Location.
func commentOffsetLocation(path m.Path, c m.Comment, offset int) m.Location {
	before := c.Text[:offset]

	newlines := strings.Count(before, "\n")
	if newlines == 0 {
		return m.Location{File: path, Line: c.Line, Character: c.Column + offset}
	}

	lastBreak := strings.LastIndex(before, "\n")

	return m.Location{File: path, Line: c.Line + newlines, Character: offset - lastBreak}
}
