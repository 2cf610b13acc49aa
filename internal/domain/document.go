package domain

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

const (
	keyParentConfig     = "parent_config"
	keyChildConfig      = "child_config"
	keyChildrenConfigs  = "children_configs"
	keyDisabledRules    = "disabled_rules"
	keyOptInRules       = "opt_in_rules"
	keyOnlyRules        = "only_rules"
	keyIncluded         = "included"
	keyExcluded         = "excluded"
	keyWarningThreshold = "warning_threshold"
	keyReporter         = "reporter"
	keyStrict           = "strict"
	keyCustomRules      = "custom_rules"
)

// ConfigFileNames are looked up, in order, in every directory.
var ConfigFileNames = []string{".lintel.yml", ".lintel.yaml", ".lintel.toml"}

// node is one configuration document before it is merged with the
// documents it references.
type node struct {
	config   Configuration
	parent   string
	children []string
}

// documentParser turns a decoded document into a node. dir is the
// directory relative references and path filters resolve against.
type documentParser struct {
	id       string
	dir      string
	remote   bool
	registry *Registry
	diags    []*ConfigError
}

func (p *documentParser) parse(doc map[string]any) (node, *ConfigError) {
	var n node

	cfg := Configuration{RuleParams: map[string]map[string]any{}}

	var (
		disabled, optIn, only []string
		hasOnly               bool
	)

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, key := range keys {
		value := doc[key]

		var err *ConfigError

		switch key {
		case keyParentConfig:
			var ref string
			if ref, err = p.stringValue(key, value); err == nil {
				n.parent, err = p.reference(key, ref)
			}
		case keyChildConfig, keyChildrenConfigs:
			var refs []string
			if refs, err = p.stringList(key, value); err == nil {
				for _, ref := range refs {
					var child string
					if child, err = p.reference(key, ref); err != nil {
						break
					}

					n.children = append(n.children, child)
				}
			}
		case keyDisabledRules:
			disabled, err = p.ruleList(key, value)
		case keyOptInRules:
			optIn, err = p.ruleList(key, value)
		case keyOnlyRules:
			hasOnly = true
			only, err = p.ruleList(key, value)
		case keyIncluded:
			cfg.Included, err = p.pathList(key, value)
		case keyExcluded:
			cfg.Excluded, err = p.pathList(key, value)
		case keyWarningThreshold:
			v, ok := value.(int)
			if !ok {
				err = p.wrongType(key, "an integer", value)
			} else {
				cfg.WarningThreshold = &v
			}
		case keyReporter:
			var v string
			if v, err = p.stringValue(key, value); err == nil {
				cfg.Reporter = &v
			}
		case keyStrict:
			v, ok := value.(bool)
			if !ok {
				err = p.wrongType(key, "a boolean", value)
			} else {
				cfg.Strict = &v
			}
		case keyCustomRules:
			cfg.CustomRules, err = p.customRules(value)
		default:
			err = p.ruleParams(&cfg, key, value)
		}

		if err != nil {
			return node{}, err
		}
	}

	switch {
	case hasOnly && containsUnsorted(only, m.AllRules):
		cfg.Mode = RulesMode{Kind: ModeAll, Disabled: sortedSet(disabled)}
	case hasOnly:
		cfg.Mode = RulesMode{Kind: ModeOnly, Only: minus(sortedSet(only), sortedSet(disabled))}
	case containsUnsorted(optIn, m.AllRules):
		cfg.Mode = RulesMode{Kind: ModeAll, Disabled: sortedSet(disabled)}
	default:
		d := sortedSet(disabled)
		cfg.Mode = RulesMode{Kind: ModeDefault, Disabled: d, OptIn: minus(sortedSet(optIn), d)}
	}

	if len(cfg.RuleParams) == 0 {
		cfg.RuleParams = nil
	}

	n.config = cfg

	return n, nil
}

func (p *documentParser) wrongType(key, want string, got any) *ConfigError {
	return configErr(ErrCodeWrongType, p.id, key, fmt.Errorf("expected %s, got %T", want, got))
}

func (p *documentParser) stringValue(key string, value any) (string, *ConfigError) {
	s, ok := value.(string)
	if !ok {
		return "", p.wrongType(key, "a string", value)
	}

	return s, nil
}

func (p *documentParser) stringList(key string, value any) ([]string, *ConfigError) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))

		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, p.wrongType(key, "a list of strings", value)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, p.wrongType(key, "a list of strings", value)
	}
}

// ruleList reads a list of rule identifiers, resolving deprecated aliases.
func (p *documentParser) ruleList(key string, value any) ([]string, *ConfigError) {
	ids, err := p.stringList(key, value)
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		if canonical, ok := p.registry.Resolve(id); ok {
			ids[i] = canonical
		}
	}

	return ids, nil
}

// reference resolves a parent or child reference. Remote documents may only
// reference other remote documents.
func (p *documentParser) reference(key, ref string) (string, *ConfigError) {
	if isRemote(ref) {
		return ref, nil
	}

	if p.remote {
		return "", configErr(ErrCodeRemoteLocalRef, p.id, key, fmt.Errorf("remote configuration references %q", ref))
	}

	if isRuleNode(ref) {
		return ref, nil
	}

	if !filepath.IsAbs(ref) {
		ref = filepath.Join(p.dir, ref)
	}

	return filepath.Clean(ref), nil
}

func (p *documentParser) pathList(key string, value any) ([]string, *ConfigError) {
	paths, err := p.stringList(key, value)
	if err != nil {
		return nil, err
	}

	for i, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.dir, path)
		}

		paths[i] = filepath.Clean(path)
	}

	return paths, nil
}

func (p *documentParser) customRules(value any) (map[string]map[string]any, *ConfigError) {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, p.wrongType(keyCustomRules, "a mapping", value)
	}

	out := make(map[string]map[string]any, len(raw))

	for id, entry := range raw {
		params, ok := entry.(map[string]any)
		if !ok {
			return nil, p.wrongType(keyCustomRules+"."+id, "a mapping", entry)
		}

		out[id] = copyParams(params)
	}

	return out, nil
}

// ruleParams stores the parameters of rule key. Unknown keys are reported
// and skipped.
func (p *documentParser) ruleParams(cfg *Configuration, key string, value any) *ConfigError {
	id, ok := p.registry.Resolve(key)
	if !ok || id == rules.CustomRulesID {
		p.diags = append(p.diags, configErr(ErrCodeUnknownKey, p.id, key, nil))
		return nil
	}

	params, err := normalizeRuleValue(value)
	if err != nil {
		return configErr(ErrCodeWrongType, p.id, key, err)
	}

	merged := cfg.RuleParams[id]
	if merged == nil {
		merged = map[string]any{}
	}

	for k, v := range params {
		merged[k] = v
	}

	cfg.RuleParams[id] = merged

	return nil
}

// normalizeRuleValue expands the short forms a rule entry may take: a
// single threshold, a [warning, error] pair, or a severity name.
func normalizeRuleValue(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return copyParams(v), nil
	case int, float64:
		return map[string]any{"warning": v}, nil
	case []any:
		if len(v) != 2 {
			return nil, fmt.Errorf("expected [warning, error], got %d values", len(v))
		}

		return map[string]any{"warning": v[0], "error": v[1]}, nil
	case string:
		return map[string]any{"severity": v}, nil
	default:
		return nil, fmt.Errorf("unsupported rule configuration %T", value)
	}
}

func containsUnsorted(list []string, id string) bool {
	for _, s := range list {
		if s == id {
			return true
		}
	}

	return false
}
