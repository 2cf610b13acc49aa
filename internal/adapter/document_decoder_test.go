package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) LookupEnvFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestStructuredDecoder_YAML(t *testing.T) {
	decoder := NewStructuredDecoderWithEnv(envOf(map[string]string{"LIMIT": "90", "TEAM": "core"}))

	t.Run("nested values", func(t *testing.T) {
		doc, err := decoder.Decode(".lintel.yml", []byte(`
disabled_rules: [todo, nesting]
line_length:
  warning: 100
  error: 150
custom_rules:
  no_panic:
    regex: 'panic\('
`))
		require.NoError(t, err)

		assert.Equal(t, []any{"todo", "nesting"}, doc["disabled_rules"])
		assert.Equal(t, map[string]any{"warning": 100, "error": 150}, doc["line_length"])
		assert.Equal(t, map[string]any{"no_panic": map[string]any{"regex": `panic\(`}}, doc["custom_rules"])
	})

	t.Run("environment references", func(t *testing.T) {
		doc, err := decoder.Decode(".lintel.yml", []byte("reporter: ${TEAM}-${MISSING}\nwarning_threshold: ${LIMIT}\nlimit: !!int ${LIMIT}\n"))
		require.NoError(t, err)

		assert.Equal(t, "core-", doc["reporter"])
		assert.Equal(t, "90", doc["warning_threshold"])
		assert.Equal(t, 90, doc["limit"])
	})

	t.Run("empty document", func(t *testing.T) {
		doc, err := decoder.Decode(".lintel.yml", nil)
		require.NoError(t, err)
		assert.Empty(t, doc)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := decoder.Decode(".lintel.yml", []byte("disabled_rules: [todo\n"))
		require.Error(t, err)

		_, err = decoder.Decode(".lintel.yml", []byte("- a\n- b\n"))
		require.Error(t, err)
	})
}

func TestStructuredDecoder_TOML(t *testing.T) {
	decoder := NewStructuredDecoderWithEnv(envOf(map[string]string{"SEVERITY": "error"}))

	doc, err := decoder.Decode(".lintel.toml", []byte(`
opt_in_rules = ["print_statement"]
warning_threshold = 3

[line_length]
warning = 100

[todo]
severity = "${SEVERITY}"
`))
	require.NoError(t, err)

	assert.Equal(t, []any{"print_statement"}, doc["opt_in_rules"])
	assert.Equal(t, 3, doc["warning_threshold"])
	assert.Equal(t, map[string]any{"warning": 100}, doc["line_length"])
	assert.Equal(t, map[string]any{"severity": "error"}, doc["todo"])

	_, err = decoder.Decode("LINTEL.TOML", []byte("= broken"))
	require.Error(t, err)
}
