package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	m "github.com/mouse-blink/lintel/internal/model"
)

// CustomRulesID identifies the custom_rules rule.
const CustomRulesID = "custom_rules"

// CustomRuleRemoveKey marks a custom rule entry that removes the inherited
// entry of the same identifier.
const CustomRuleRemoveKey = "disabled"

var customRulesDescription = m.RuleDescription{
	ID:          CustomRulesID,
	Name:        "Custom Rules",
	Description: "User-defined regex rules, each with its own identifier.",
	Kind:        m.KindStyle,
}

type customRule struct {
	id       string
	name     string
	message  string
	severity m.Severity
	regex    *regexp.Regexp
	included *regexp.Regexp
	excluded *regexp.Regexp
}

type customRules struct {
	rules []customRule
}

func newCustomRules(params map[string]any) (Rule, error) {
	ids := make([]string, 0, len(params))
	for id := range params {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	r := &customRules{}

	for _, id := range ids {
		raw, ok := params[id].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("custom rule %s must be a mapping, got %T", id, params[id])
		}

		if removed, _ := raw[CustomRuleRemoveKey].(bool); removed {
			continue
		}

		cr, err := parseCustomRule(id, raw)
		if err != nil {
			return nil, fmt.Errorf("custom rule %s: %w", id, err)
		}

		r.rules = append(r.rules, cr)
	}

	return r, nil
}

func parseCustomRule(id string, params map[string]any) (customRule, error) {
	if err := checkKeys(params, "regex", "name", "message", paramSeverity, "included", "excluded", CustomRuleRemoveKey); err != nil {
		return customRule{}, err
	}

	pattern, err := stringParam(params, "regex", "")
	if err != nil {
		return customRule{}, err
	}

	if pattern == "" {
		return customRule{}, fmt.Errorf("regex is required")
	}

	cr := customRule{id: id}

	if cr.regex, err = regexp.Compile(pattern); err != nil {
		return customRule{}, fmt.Errorf("invalid regex: %w", err)
	}

	if cr.name, err = stringParam(params, "name", id); err != nil {
		return customRule{}, err
	}

	if cr.message, err = stringParam(params, "message", "Regex matched"); err != nil {
		return customRule{}, err
	}

	if cr.severity, err = severityParam(params, m.SeverityWarning); err != nil {
		return customRule{}, err
	}

	if cr.included, err = optionalRegex(params, "included"); err != nil {
		return customRule{}, err
	}

	if cr.excluded, err = optionalRegex(params, "excluded"); err != nil {
		return customRule{}, err
	}

	return cr, nil
}

func optionalRegex(params map[string]any, key string) (*regexp.Regexp, error) {
	pattern, err := stringParam(params, key, "")
	if err != nil || pattern == "" {
		return nil, err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid %s regex: %w", key, err)
	}

	return re, nil
}

func (r *customRules) Description() m.RuleDescription { return customRulesDescription }

// IDs returns the identifiers of the configured custom rules.
func (r *customRules) IDs() []string {
	ids := make([]string, 0, len(r.rules))
	for _, cr := range r.rules {
		ids = append(ids, cr.id)
	}

	return ids
}

func (r *customRules) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	text := string(file.Contents)

	for _, cr := range r.rules {
		if cr.included != nil && !cr.included.MatchString(string(file.Path)) {
			continue
		}

		if cr.excluded != nil && cr.excluded.MatchString(string(file.Path)) {
			continue
		}

		for _, match := range cr.regex.FindAllStringIndex(text, -1) {
			violations = append(violations, m.Violation{
				RuleID:   cr.id,
				Severity: cr.severity,
				Location: offsetLocation(file.Path, text, match[0]),
				Reason:   cr.message,
			})
		}
	}

	return violations
}

func offsetLocation(path m.Path, text string, offset int) m.Location {
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndex(before, "\n")

	return m.Location{File: path, Line: line, Character: column}
}
