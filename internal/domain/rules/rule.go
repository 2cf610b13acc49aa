// Package rules provides the built-in rules run by the linter.
package rules

import (
	m "github.com/mouse-blink/lintel/internal/model"
)

// Rule is a pluggable analyzer with a uniform interface.
type Rule interface {
	Description() m.RuleDescription
	Validate(file *m.File) []m.Violation
}

// ASTRule marks rules that need the parse tree. They are skipped for files
// that failed to parse and for the rest of the run once the parser is down.
type ASTRule interface {
	Rule
	RequiresAST()
}

// CorrectableRule rewrites the violations it finds.
//
// Correct mutates file through File.SetContents and only rewrites spans for
// which allowed returns true.
type CorrectableRule interface {
	Rule
	Correct(file *m.File, allowed func(m.Location) bool) []m.Correction
}

// CollectingRule needs information from every file before validating any.
//
// Collect runs once per file in the first phase. ValidateCollected runs in
// the second phase with the info collected for all files, keyed by path.
type CollectingRule interface {
	Rule
	Collect(file *m.File) any
	ValidateCollected(file *m.File, collected map[m.Path]any) []m.Violation
}

// SubRuleProvider is implemented by rules that report violations under
// identifiers of their own, such as custom_rules.
type SubRuleProvider interface {
	IDs() []string
}

// Factory builds a configured rule instance.
type Factory func(params map[string]any) (Rule, error)

// Entry pairs a rule's metadata with its factory.
type Entry struct {
	Description m.RuleDescription
	Factory     Factory
}

// Builtin returns the built-in rule catalog in registration order.
func Builtin() []Entry {
	return []Entry{
		{lineLengthDescription, newLineLength},
		{fileLengthDescription, newFileLength},
		{trailingWhitespaceDescription, newTrailingWhitespace},
		{verticalWhitespaceDescription, newVerticalWhitespace},
		{todoDescription, newTodo},
		{nestingDescription, newNesting},
		{functionBodyLengthDescription, newFunctionBodyLength},
		{printStatementDescription, newPrintStatement},
		{unusedDeclarationDescription, newUnusedDeclaration},
		{customRulesDescription, newCustomRules},
	}
}
