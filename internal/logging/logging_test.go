package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		log, err := New("info", "json", &buf, false)
		require.NoError(t, err)

		log.Debug().Msg("hidden")
		log.Info().Str("file", "a.go").Msg("linted")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "linted", entry["message"])
		assert.Equal(t, "a.go", entry["file"])
		assert.Equal(t, "info", entry["level"])
		assert.Contains(t, entry, "time")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		log, err := New("warn", "text", &buf, false)
		require.NoError(t, err)

		log.Info().Msg("hidden")
		log.Warn().Str("rule", "todo").Msg("rule failed")

		out := buf.String()
		assert.Contains(t, out, "rule failed")
		assert.Contains(t, out, "rule=todo")
		assert.NotContains(t, out, "hidden")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := New("loud", "json", &bytes.Buffer{}, false)
		require.Error(t, err)

		_, err = New("info", "xml", &bytes.Buffer{}, false)
		require.Error(t, err)
	})
}
