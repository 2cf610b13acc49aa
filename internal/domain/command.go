package domain

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/lintel/internal/model"
)

const (
	directivePrefix  = "lintel:"
	ignoreDirectives = directivePrefix + "ignore-directives"
)

var directivePattern = regexp.MustCompile(`^lintel:(enable|disable)(?::(previous|this|next))?(?:\s+(.*))?$`)

// ParseCommands returns the inline directives of file in source order.
//
// Only comment tokens are scanned, so directive look-alikes inside string
// literals never count. A lintel:ignore-directives comment switches off
// every directive that follows it.
func ParseCommands(file *m.File) []m.Command {
	var commands []m.Command

	for _, c := range file.Comments {
		text := commentBody(c.Text)
		if !strings.HasPrefix(text, directivePrefix) {
			continue
		}

		if text == ignoreDirectives || strings.HasPrefix(text, ignoreDirectives+" ") {
			return commands
		}

		cmd, ok := parseDirective(text)
		if !ok {
			continue
		}

		cmd.Line = c.EndLine
		cmd.Character = c.EndColumn
		commands = append(commands, cmd)
	}

	return commands
}

func commentBody(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "//") {
		return strings.TrimSpace(strings.TrimPrefix(s, "//"))
	}

	if strings.HasPrefix(s, "/*") {
		s = strings.TrimPrefix(s, "/*")
		s = strings.TrimSuffix(s, "*/")

		return strings.TrimSpace(s)
	}

	return s
}

func parseDirective(text string) (m.Command, bool) {
	match := directivePattern.FindStringSubmatch(text)
	if match == nil {
		return m.Command{}, false
	}

	cmd := m.Command{
		Action:   m.Action(match[1]),
		Modifier: m.Modifier(match[2]),
	}

	fields := strings.Fields(match[3])
	for i, f := range fields {
		if f == "-" || strings.HasPrefix(f, "-") {
			cmd.TrailingComment = strings.TrimSpace(strings.TrimPrefix(strings.Join(fields[i:], " "), "-"))
			break
		}

		cmd.RuleIDs = append(cmd.RuleIDs, f)
	}

	if len(cmd.RuleIDs) == 0 {
		return m.Command{}, false
	}

	return cmd, true
}

// Expand rewrites a modified command into the two plain commands that
// bound its single-line effect. Commands without a modifier are returned
// unchanged.
func Expand(cmd m.Command) []m.Command {
	var line int

	switch cmd.Modifier {
	case m.ModifierPrevious:
		line = cmd.Line - 1
	case m.ModifierThis:
		line = cmd.Line
	case m.ModifierNext:
		line = cmd.Line + 1
	default:
		return []m.Command{cmd}
	}

	ids := append([]string(nil), cmd.RuleIDs...)

	return []m.Command{
		{Action: cmd.Action, RuleIDs: ids, Line: line, Character: 0, TrailingComment: cmd.TrailingComment},
		{Action: cmd.Action.Inverse(), RuleIDs: ids, Line: line, Character: m.MaxPosition, TrailingComment: cmd.TrailingComment},
	}
}

// canonicalCommands resolves aliases in every command against registry.
// Unknown identifiers are kept verbatim.
func canonicalCommands(commands []m.Command, registry *Registry) []m.Command {
	out := make([]m.Command, len(commands))

	for i, cmd := range commands {
		ids := make([]string, len(cmd.RuleIDs))
		for j, id := range cmd.RuleIDs {
			if canonical, ok := registry.Resolve(id); ok {
				ids[j] = canonical
			} else {
				ids[j] = id
			}
		}

		cmd.RuleIDs = ids
		out[i] = cmd
	}

	return out
}
