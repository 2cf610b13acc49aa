package adapter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	m "github.com/mouse-blink/lintel/internal/model"
)

const diffContext = 3

// UnifiedDiff renders the change from original to corrected as a unified diff
// with a single hunk spanning every changed line. It returns nil when the
// contents are identical.
func UnifiedDiff(path m.Path, original, corrected []byte) ([]byte, error) {
	if bytes.Equal(original, corrected) {
		return nil, nil
	}

	oldLines := splitKeepingEmpty(original)
	newLines := splitKeepingEmpty(corrected)

	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	start := max(prefix-diffContext, 0)
	oldEnd := min(len(oldLines)-suffix+diffContext, len(oldLines))
	newEnd := min(len(newLines)-suffix+diffContext, len(newLines))

	var body bytes.Buffer

	for _, l := range oldLines[start:prefix] {
		fmt.Fprintf(&body, " %s\n", l)
	}

	for _, l := range oldLines[prefix : len(oldLines)-suffix] {
		fmt.Fprintf(&body, "-%s\n", l)
	}

	for _, l := range newLines[prefix : len(newLines)-suffix] {
		fmt.Fprintf(&body, "+%s\n", l)
	}

	for _, l := range oldLines[len(oldLines)-suffix : oldEnd] {
		fmt.Fprintf(&body, " %s\n", l)
	}

	fd := &diff.FileDiff{
		OrigName: "a/" + strings.TrimPrefix(string(path), "/"),
		NewName:  "b/" + strings.TrimPrefix(string(path), "/"),
		Hunks: []*diff.Hunk{{
			OrigStartLine: int32(start + 1), //nolint:gosec // line counts fit in int32
			OrigLines:     int32(oldEnd - start),
			NewStartLine:  int32(start + 1),
			NewLines:      int32(newEnd - start),
			Body:          body.Bytes(),
		}},
	}

	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return nil, fmt.Errorf("print diff for %s: %w", path, err)
	}

	return out, nil
}

func splitKeepingEmpty(content []byte) []string {
	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}
