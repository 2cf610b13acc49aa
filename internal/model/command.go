package model

// AllRules is the identifier that stands for every known rule in a directive.
const AllRules = "all"

// Action is what a directive does to the rules it names.
type Action string

const (
	// ActionEnable re-enables rules.
	ActionEnable Action = "enable"
	// ActionDisable suppresses rules.
	ActionDisable Action = "disable"
)

// Inverse returns the opposite action.
func (a Action) Inverse() Action {
	if a == ActionEnable {
		return ActionDisable
	}

	return ActionEnable
}

// Modifier narrows a directive to a single line.
type Modifier string

const (
	// ModifierNone applies until the next directive or end of file.
	ModifierNone Modifier = ""
	// ModifierPrevious applies to the line before the directive.
	ModifierPrevious Modifier = "previous"
	// ModifierThis applies to the directive's own line.
	ModifierThis Modifier = "this"
	// ModifierNext applies to the line after the directive.
	ModifierNext Modifier = "next"
)

// Command is one inline directive occurrence.
type Command struct {
	Action          Action
	RuleIDs         []string
	Line            int
	Character       int
	Modifier        Modifier
	TrailingComment string
}

// Location returns the position the command takes effect at.
func (c Command) Location() Location {
	return Location{Line: c.Line, Character: c.Character}
}
