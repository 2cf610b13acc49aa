package model

// RuleKind is the category a rule belongs to.
type RuleKind string

const (
	// KindLint flags likely bugs.
	KindLint RuleKind = "lint"
	// KindStyle flags formatting and layout.
	KindStyle RuleKind = "style"
	// KindMetrics flags size and complexity thresholds.
	KindMetrics RuleKind = "metrics"
	// KindIdiomatic flags non-idiomatic constructs.
	KindIdiomatic RuleKind = "idiomatic"
)

// RuleDescription is the static metadata of a rule.
type RuleDescription struct {
	ID          string
	Name        string
	Description string
	Kind        RuleKind
	// OptIn rules are disabled unless explicitly enabled.
	OptIn bool
	// Collecting rules need a first pass over every file before validating.
	Collecting bool
	// Aliases are deprecated identifiers resolving to ID.
	Aliases []string
	// Examples are sample inputs used by self-tests.
	Examples []string
}
