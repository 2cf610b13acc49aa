package model

import "fmt"

// Severity of a violation.
type Severity string

const (
	// SeverityWarning is reported but does not fail a run on its own.
	SeverityWarning Severity = "warning"
	// SeverityError fails the run.
	SeverityError Severity = "error"
)

// ParseSeverity converts a configuration value into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityWarning, SeverityError:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("invalid severity %q", s)
	}
}

// Violation is a single rule-detected issue.
type Violation struct {
	RuleID   string   `json:"rule_id" yaml:"rule_id"`
	Severity Severity `json:"severity" yaml:"severity"`
	Location Location `json:"location" yaml:"location"`
	Reason   string   `json:"reason" yaml:"reason"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", v.Location, v.Severity, v.Reason, v.RuleID)
}

// Correction records that a rule rewrote a span of source.
type Correction struct {
	RuleID   string   `json:"rule_id"`
	Location Location `json:"location"`
}

// RuleFailure records a rule implementation that crashed on one file.
type RuleFailure struct {
	RuleID string `json:"rule_id"`
	File   Path   `json:"file"`
	Reason string `json:"reason"`
}

func (f RuleFailure) Error() string {
	return fmt.Sprintf("rule %s failed on %s: %s", f.RuleID, f.File, f.Reason)
}

// FileFailure records a file that could not be read or written. The file is
// skipped and the run goes on.
type FileFailure struct {
	File   Path   `json:"file"`
	Reason string `json:"reason"`
}

func (f FileFailure) Error() string {
	return fmt.Sprintf("skipped %s: %s", f.File, f.Reason)
}
