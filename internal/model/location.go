package model

import (
	"fmt"
	"math"
)

// MaxPosition is the sentinel used for "end of line" and "end of file".
const MaxPosition = math.MaxInt

// Location is a position inside a source file.
//
// Line and Character are 1-based. A zero Character means the location refers
// to the whole line and orders before every real column. File is empty for
// synthetic sources such as stdin.
type Location struct {
	File      Path `json:"file,omitempty" yaml:"file,omitempty"`
	Line      int  `json:"line" yaml:"line"`
	Character int  `json:"character,omitempty" yaml:"character,omitempty"`
}

// StartOfFile is the first position a region can start at.
var StartOfFile = Location{Line: 1}

// EndOfFile is the unbounded end position.
var EndOfFile = Location{Line: MaxPosition, Character: MaxPosition}

// Compare orders locations by line, then character. File is ignored.
func (l Location) Compare(o Location) int {
	switch {
	case l.Line < o.Line:
		return -1
	case l.Line > o.Line:
		return 1
	case l.Character < o.Character:
		return -1
	case l.Character > o.Character:
		return 1
	default:
		return 0
	}
}

// Less reports whether l orders strictly before o.
func (l Location) Less(o Location) bool {
	return l.Compare(o) < 0
}

// Prev returns the position immediately before l.
func (l Location) Prev() Location {
	if l.Character > 0 {
		return Location{File: l.File, Line: l.Line, Character: l.Character - 1}
	}

	return Location{File: l.File, Line: l.Line - 1, Character: MaxPosition}
}

// WithFile returns a copy of l pointing at file.
func (l Location) WithFile(file Path) Location {
	l.File = file
	return l
}

func (l Location) String() string {
	prefix := string(l.File)
	if prefix == "" {
		prefix = "<nopath>"
	}

	if l.Character == 0 {
		return fmt.Sprintf("%s:%d", prefix, l.Line)
	}

	return fmt.Sprintf("%s:%d:%d", prefix, l.Line, l.Character)
}
