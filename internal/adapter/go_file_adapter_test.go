package adapter

import (
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/lintel/internal/model"
)

func TestLocalGoFileAdapter_Parse(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	fset := token.NewFileSet()

	exampleFile := filepath.Join(examplePath(t, "basic"), "main.go")
	content := readFileBytes(t, exampleFile)
	file, err := adapter.Parse(fset, exampleFile, content)
	require.NoError(t, err)

	assert.Equal(t, "main", file.Name.Name)
	assert.NotEmpty(t, file.Comments)
}

func TestLocalGoFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	fset := token.NewFileSet()

	_, err := adapter.Parse(fset, "broken.go", []byte("package foo\n func"))
	require.Error(t, err)
}

func TestLocalGoFileAdapter_Populate(t *testing.T) {
	adapter := NewLocalGoFileAdapter()

	t.Run("valid source", func(t *testing.T) {
		file := m.NewFile("a.go", []byte("package p\n\n// doc\nfunc f() {}\n"))

		require.NoError(t, adapter.Populate(file))
		assert.NotNil(t, file.AST)
		assert.NotNil(t, file.Fset)
		assert.NoError(t, file.ParseErr)
		require.Len(t, file.Comments, 1)
		assert.Equal(t, "// doc", file.Comments[0].Text)
	})

	t.Run("syntax errors keep comments", func(t *testing.T) {
		file := m.NewFile("a.go", []byte("// lintel:disable todo\nprint(123)\n"))

		require.NoError(t, adapter.Populate(file))
		assert.Error(t, file.ParseErr)
		assert.False(t, file.HasAST())
		require.Len(t, file.Comments, 1)
	})
}

func TestScanComments(t *testing.T) {
	src := "package p\n\n/* block\n   comment */\nvar x = 1 // trailing\n"

	comments := ScanComments([]byte(src))
	require.Len(t, comments, 2)

	assert.Equal(t, m.Comment{
		Text: "/* block\n   comment */", Line: 3, Column: 1, EndLine: 4, EndColumn: 14, Offset: 11,
	}, comments[0])
	assert.Equal(t, m.Comment{
		Text: "// trailing", Line: 5, Column: 11, EndLine: 5, EndColumn: 22, Offset: 44,
	}, comments[1])

	t.Run("comments in strings are ignored", func(t *testing.T) {
		assert.Empty(t, ScanComments([]byte("package p\nvar s = \"// not a comment\"\n")))
	})
}
