package rules

import (
	"fmt"
	"sort"
	"strings"

	m "github.com/mouse-blink/lintel/internal/model"
)

const (
	paramSeverity = "severity"
	paramWarning  = "warning"
	paramError    = "error"
)

// checkKeys rejects parameters the rule does not understand.
func checkKeys(params map[string]any, allowed ...string) error {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}

	var unknown []string

	for k := range params {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}

	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)

	return fmt.Errorf("unknown parameters: %s", strings.Join(unknown, ", "))
}

func severityParam(params map[string]any, def m.Severity) (m.Severity, error) {
	raw, ok := params[paramSeverity]
	if !ok {
		return def, nil
	}

	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", paramSeverity, raw)
	}

	return m.ParseSeverity(s)
}

func intParam(params map[string]any, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
		}

		return int(v), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, raw)
	}
}

func boolParam(params map[string]any, key string, def bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}

	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, raw)
	}

	return b, nil
}

func stringParam(params map[string]any, key string, def string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}

	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}

	return s, nil
}

// thresholds is the warning/error pair used by length rules.
type thresholds struct {
	warning int
	err     int
}

func thresholdParams(params map[string]any, def thresholds) (thresholds, error) {
	w, err := intParam(params, paramWarning, def.warning)
	if err != nil {
		return thresholds{}, err
	}

	e, err := intParam(params, paramError, def.err)
	if err != nil {
		return thresholds{}, err
	}

	if w <= 0 || e <= 0 {
		return thresholds{}, fmt.Errorf("thresholds must be positive")
	}

	return thresholds{warning: w, err: e}, nil
}

// severityFor returns the severity for value, or false when under both
// thresholds.
func (t thresholds) severityFor(value int) (m.Severity, int, bool) {
	if value > t.err {
		return m.SeverityError, t.err, true
	}

	if value > t.warning {
		return m.SeverityWarning, t.warning, true
	}

	return "", 0, false
}

func replaceRange(content []byte, start, end int, replacement string) []byte {
	if start < 0 || end < start || end > len(content) {
		return content
	}

	out := make([]byte, 0, len(content)-(end-start)+len(replacement))
	out = append(out, content[:start]...)
	out = append(out, []byte(replacement)...)
	out = append(out, content[end:]...)

	return out
}
