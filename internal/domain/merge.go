package domain

import (
	"github.com/mouse-blink/lintel/internal/domain/rules"
)

// Merge layers child over base. The child's explicit settings win; rule
// selection follows the mode of both sides.
func Merge(base, child Configuration) Configuration {
	out := Configuration{
		Mode:             mergeMode(base.Mode, child.Mode),
		RuleParams:       mergeRuleParams(base.RuleParams, child.RuleParams),
		CustomRules:      mergeCustomRules(base.CustomRules, child.CustomRules, child.Mode),
		Included:         unionPaths(base.Included, child.Included),
		Excluded:         unionPaths(base.Excluded, child.Excluded),
		WarningThreshold: base.WarningThreshold,
		Reporter:         base.Reporter,
		Strict:           base.Strict,
		RootPath:         base.RootPath,
		Graph:            base.Graph.merge(child.Graph),
	}

	if child.WarningThreshold != nil {
		out.WarningThreshold = child.WarningThreshold
	}

	if child.Reporter != nil {
		out.Reporter = child.Reporter
	}

	if child.Strict != nil {
		out.Strict = child.Strict
	}

	if out.RootPath == "" {
		out.RootPath = child.RootPath
	}

	return out
}

// MergeAll folds configs left to right. The first element is the base.
func MergeAll(configs []Configuration) Configuration {
	if len(configs) == 0 {
		return DefaultConfiguration("")
	}

	out := configs[0]
	for _, c := range configs[1:] {
		out = Merge(out, c)
	}

	return out
}

func mergeMode(base, child RulesMode) RulesMode {
	switch child.Kind {
	case ModeOnly:
		return RulesMode{Kind: ModeOnly, Only: sortedSet(child.Only)}
	case ModeAll:
		return RulesMode{Kind: ModeAll, Disabled: sortedSet(child.Disabled)}
	}

	// A child in default mode can only narrow an allow-list.
	if base.Kind == ModeOnly {
		return RulesMode{Kind: ModeOnly, Only: minus(base.Only, child.Disabled)}
	}

	disabled := sortedSet(minus(base.Disabled, child.OptIn), child.Disabled)

	if base.Kind == ModeAll {
		return RulesMode{Kind: ModeAll, Disabled: disabled}
	}

	return RulesMode{
		Kind:     ModeDefault,
		Disabled: disabled,
		OptIn:    minus(sortedSet(base.OptIn, child.OptIn), disabled),
	}
}

func mergeRuleParams(base, child map[string]map[string]any) map[string]map[string]any {
	if len(base) == 0 && len(child) == 0 {
		return nil
	}

	out := make(map[string]map[string]any, len(base)+len(child))

	for id, params := range base {
		out[id] = copyParams(params)
	}

	for id, params := range child {
		merged := out[id]
		if merged == nil {
			merged = make(map[string]any, len(params))
		}

		for k, v := range params {
			merged[k] = v
		}

		out[id] = merged
	}

	return out
}

// mergeCustomRules replaces entries per identifier. A child entry carrying
// the removal marker replaces, and so hides, the inherited one. A child in
// only mode keeps inherited entries only when it lists them or custom_rules.
func mergeCustomRules(base, child map[string]map[string]any, childMode RulesMode) map[string]map[string]any {
	if len(base) == 0 && len(child) == 0 {
		return nil
	}

	out := make(map[string]map[string]any, len(base)+len(child))

	for id, params := range base {
		if childMode.Kind == ModeOnly &&
			!contains(childMode.Only, rules.CustomRulesID) && !contains(childMode.Only, id) {
			continue
		}

		out[id] = copyParams(params)
	}

	for id, params := range child {
		out[id] = copyParams(params)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func copyParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}

	return out
}
