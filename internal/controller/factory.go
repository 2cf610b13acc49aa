package controller

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewUI creates the UI for the named reporter. Styled output is only
// used when useTTY is true.
func NewUI(cmd *cobra.Command, reporter string, useTTY bool) (UI, error) {
	switch reporter {
	case "", ReporterText:
		return NewSimpleUI(cmd, useTTY), nil
	case ReporterJSON:
		return NewJSONUI(cmd), nil
	case ReporterSummary:
		return NewSummaryUI(cmd, useTTY), nil
	default:
		return nil, fmt.Errorf("unknown reporter %q, expected one of %v", reporter, Reporters)
	}
}

// IsTTY checks if the given writer is an interactive terminal.
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
