// Package logging builds the zerolog loggers used across lintel.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at level. Format is "json" or "text";
// text goes through a ConsoleWriter and is colored only when color is set.
func New(level, format string, w io.Writer, color bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case "", "json":
	case "text":
		w = zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: time.Kitchen}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
