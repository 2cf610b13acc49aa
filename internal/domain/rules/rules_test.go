package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/lintel/internal/adapter"
	m "github.com/mouse-blink/lintel/internal/model"
)

func loadFile(t *testing.T, path, src string) *m.File {
	t.Helper()

	file := m.NewFile(m.Path(path), []byte(src))
	require.NoError(t, adapter.NewLocalGoFileAdapter().Populate(file))

	return file
}

func build(t *testing.T, factory Factory, params map[string]any) Rule {
	t.Helper()

	rule, err := factory(params)
	require.NoError(t, err)

	return rule
}

func allowAll(m.Location) bool { return true }

func TestBuiltinExamplesTrigger(t *testing.T) {
	for _, entry := range Builtin() {
		for i, example := range entry.Description.Examples {
			t.Run(entry.Description.ID, func(t *testing.T) {
				file := loadFile(t, "example.go", example)
				rule := build(t, entry.Factory, nil)

				violations := rule.Validate(file)
				assert.NotEmptyf(t, violations, "example %d of %s did not trigger", i, entry.Description.ID)
			})
		}
	}
}

func TestBuiltinIdentifiersAreUnique(t *testing.T) {
	seen := map[string]bool{}

	for _, entry := range Builtin() {
		ids := append([]string{entry.Description.ID}, entry.Description.Aliases...)
		for _, id := range ids {
			assert.Falsef(t, seen[id], "duplicate identifier %s", id)
			seen[id] = true
		}
	}
}

func TestLineLength(t *testing.T) {
	t.Run("reports warning and error thresholds", func(t *testing.T) {
		src := "package p\n" + strings.Repeat("a", 11) + "\n" + strings.Repeat("b", 21) + "\n"
		file := loadFile(t, "a.go", src)
		rule := build(t, newLineLength, map[string]any{"warning": 10, "error": 20})

		violations := rule.Validate(file)
		require.Len(t, violations, 2)
		assert.Equal(t, m.SeverityWarning, violations[0].Severity)
		assert.Equal(t, 2, violations[0].Location.Line)
		assert.Equal(t, m.SeverityError, violations[1].Severity)
		assert.Equal(t, 3, violations[1].Location.Line)
	})

	t.Run("rejects unknown parameters", func(t *testing.T) {
		_, err := newLineLength(map[string]any{"warnings": 10})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warnings")
	})

	t.Run("rejects string thresholds", func(t *testing.T) {
		_, err := newLineLength(map[string]any{"warning": "10"})
		require.Error(t, err)
	})
}

func TestTrailingWhitespaceCorrect(t *testing.T) {
	file := loadFile(t, "a.go", "package p \nvar x = 1\t\nvar y = 2  \n")
	rule := build(t, newTrailingWhitespace, nil).(CorrectableRule)

	skipLine2 := func(loc m.Location) bool { return loc.Line != 2 }

	corrections := rule.Correct(file, skipLine2)
	require.Len(t, corrections, 2)
	assert.Equal(t, 1, corrections[0].Location.Line)
	assert.Equal(t, 3, corrections[1].Location.Line)
	assert.Equal(t, "package p\nvar x = 1\t\nvar y = 2\n", string(file.Contents))
}

func TestVerticalWhitespaceCorrect(t *testing.T) {
	file := loadFile(t, "a.go", "package p\n\n\n\nvar x = 1\n\n\nvar y = 2\n")
	rule := build(t, newVerticalWhitespace, nil).(CorrectableRule)

	assert.Len(t, rule.Validate(file), 3)

	corrections := rule.Correct(file, allowAll)
	assert.Len(t, corrections, 3)
	assert.Equal(t, "package p\n\nvar x = 1\n\nvar y = 2\n", string(file.Contents))
}

func TestTodoLocation(t *testing.T) {
	file := loadFile(t, "a.go", "package p\n\n/*\n  FIXME later\n*/\nvar x = 1 // TODO: y\n")
	rule := build(t, newTodo, nil)

	violations := rule.Validate(file)
	require.Len(t, violations, 2)
	assert.Equal(t, m.Location{File: "a.go", Line: 4, Character: 3}, violations[0].Location)
	assert.Equal(t, m.Location{File: "a.go", Line: 6, Character: 14}, violations[1].Location)
}

func TestNestingStatementLevel(t *testing.T) {
	src := "package p\n\nfunc f(x int) {\n\tif x > 0 {\n\t\tfor {\n\t\t\tif x > 1 {\n\t\t\t}\n\t\t}\n\t}\n}\n"
	file := loadFile(t, "a.go", src)

	rule := build(t, newNesting, map[string]any{"statement_level": 2})

	violations := rule.Validate(file)
	require.Len(t, violations, 1)
	assert.Equal(t, 6, violations[0].Location.Line)
}

func TestPrintStatementIgnoresShadowedBuiltin(t *testing.T) {
	src := "package p\n\nfunc f() {\n\tprint := func(int) {}\n\tprint(1)\n\tprintln(2)\n}\n"
	file := loadFile(t, "a.go", src)

	violations := build(t, newPrintStatement, nil).Validate(file)
	require.Len(t, violations, 1)
	assert.Equal(t, 6, violations[0].Location.Line)
}

func TestUnusedDeclarationAcrossFiles(t *testing.T) {
	a := loadFile(t, "/pkg/a.go", "package p\n\nfunc helper() {}\n\nfunc orphan() {}\n")
	b := loadFile(t, "/pkg/b.go", "package p\n\nfunc Use() { helper() }\n")
	other := loadFile(t, "/other/c.go", "package p\n\nfunc X() { orphan() }\n")

	rule := build(t, newUnusedDeclaration, nil).(CollectingRule)

	collected := map[m.Path]any{
		a.Path:     rule.Collect(a),
		b.Path:     rule.Collect(b),
		other.Path: rule.Collect(other),
	}

	violations := rule.ValidateCollected(a, collected)
	require.Len(t, violations, 1)
	assert.Equal(t, UnusedDeclarationID, violations[0].RuleID)
	assert.Contains(t, violations[0].Reason, "orphan")
	assert.Empty(t, rule.ValidateCollected(b, collected))
}

func TestCustomRules(t *testing.T) {
	params := map[string]any{
		"no_panic": map[string]any{"regex": `panic\(`, "message": "avoid panic", "severity": "error"},
		"removed":  map[string]any{"regex": `x`, CustomRuleRemoveKey: true},
		"only_cmd": map[string]any{"regex": `os\.Exit`, "included": `/cmd/`},
	}

	rule := build(t, newCustomRules, params)
	assert.Equal(t, []string{"no_panic", "only_cmd"}, rule.(SubRuleProvider).IDs())

	file := loadFile(t, "/src/a.go", "package p\n\nfunc f() {\n\tpanic(1)\n\tos.Exit(1)\n}\n")

	violations := rule.Validate(file)
	require.Len(t, violations, 1)
	assert.Equal(t, "no_panic", violations[0].RuleID)
	assert.Equal(t, m.SeverityError, violations[0].Severity)
	assert.Equal(t, m.Location{File: "/src/a.go", Line: 4, Character: 2}, violations[0].Location)

	_, err := newCustomRules(map[string]any{"bad": map[string]any{"regex": "("}})
	require.Error(t, err)
}
