package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		out, err := UnifiedDiff("a.go", []byte("package p\n"), []byte("package p\n"))
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("single hunk with context", func(t *testing.T) {
		original := "package p\n\nvar a = 1\nvar b = 2 \nvar c = 3\n\nvar d = 4\nvar e = 5\nvar f = 6\n"
		corrected := "package p\n\nvar a = 1\nvar b = 2\nvar c = 3\n\nvar d = 4\nvar e = 5\nvar f = 6\n"

		out, err := UnifiedDiff("/repo/a.go", []byte(original), []byte(corrected))
		require.NoError(t, err)

		assert.Equal(t, "--- a/repo/a.go\n"+
			"+++ b/repo/a.go\n"+
			"@@ -1,7 +1,7 @@\n"+
			" package p\n"+
			" \n"+
			" var a = 1\n"+
			"-var b = 2 \n"+
			"+var b = 2\n"+
			" var c = 3\n"+
			" \n"+
			" var d = 4\n", string(out))
	})
}
