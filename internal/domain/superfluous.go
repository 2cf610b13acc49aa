package domain

import (
	"fmt"

	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

// SuperfluousDisableCommandID identifies the superfluous_disable_command rule.
const SuperfluousDisableCommandID = "superfluous_disable_command"

var superfluousDisableCommandEntry = rules.Entry{
	Description: m.RuleDescription{
		ID:          SuperfluousDisableCommandID,
		Name:        "Superfluous Disable Command",
		Description: "Disable directives should name known rules that would otherwise trigger in the disabled region.",
		Kind:        m.KindLint,
	},
	Factory: newSuperfluousDisableCommand,
}

// superfluousDisableCommand needs the directives, the regions and every
// unfiltered violation of the file, so the linter runs it after all other
// rules. Its own output is filtered like any other rule's.
type superfluousDisableCommand struct {
	severity m.Severity
}

func newSuperfluousDisableCommand(params map[string]any) (rules.Rule, error) {
	severity := m.SeverityWarning

	for k, v := range params {
		if k != "severity" {
			return nil, fmt.Errorf("unknown parameters: %s", k)
		}

		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("severity must be a string, got %T", v)
		}

		parsed, err := m.ParseSeverity(s)
		if err != nil {
			return nil, err
		}

		severity = parsed
	}

	return &superfluousDisableCommand{severity: severity}, nil
}

func (r *superfluousDisableCommand) Description() m.RuleDescription {
	return superfluousDisableCommandEntry.Description
}

func (r *superfluousDisableCommand) Validate(*m.File) []m.Violation {
	return nil
}

// ruleView is what the check needs to know about the rules of the file.
type ruleView struct {
	known   func(id string) bool
	ran     func(id string) bool
	fired   func(id string, start, end m.Location) bool
}

func (r *superfluousDisableCommand) check(file *m.File, commands []m.Command, regions Regions, view ruleView) []m.Violation {
	var out []m.Violation

	for _, cmd := range commands {
		if cmd.Action != m.ActionDisable {
			continue
		}

		at := disableLocation(cmd)

		for _, id := range cmd.RuleIDs {
			if id == m.AllRules {
				continue
			}

			loc := cmd.Location().WithFile(file.Path)

			if !view.known(id) {
				out = append(out, m.Violation{
					RuleID:   SuperfluousDisableCommandID,
					Severity: r.severity,
					Location: loc,
					Reason:   fmt.Sprintf("'%s' is not a valid rule identifier", id),
				})

				continue
			}

			if !view.ran(id) {
				continue
			}

			start, end, ok := regions.span(id, at)
			if !ok || view.fired(id, start, end) {
				continue
			}

			out = append(out, m.Violation{
				RuleID:   SuperfluousDisableCommandID,
				Severity: r.severity,
				Location: loc,
				Reason:   fmt.Sprintf("disabling '%s' is superfluous: it triggers no violation in the disabled region", id),
			})
		}
	}

	return out
}

// disableLocation is where the disable event of cmd takes effect.
func disableLocation(cmd m.Command) m.Location {
	loc := Expand(cmd)[0].Location()
	if loc.Less(m.StartOfFile) {
		return m.StartOfFile
	}

	return loc
}
