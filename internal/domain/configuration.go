package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/mouse-blink/lintel/internal/domain/rules"
)

// ModeKind selects how the enabled rule set is derived.
type ModeKind string

const (
	// ModeDefault enables non opt-in rules plus opt-ins, minus disables.
	ModeDefault ModeKind = "default"
	// ModeOnly enables exactly the listed rules.
	ModeOnly ModeKind = "only"
	// ModeAll enables every rule minus disables.
	ModeAll ModeKind = "all"
)

// RulesMode is the rule selection of a configuration. Lists are sorted and
// free of duplicates.
type RulesMode struct {
	Kind     ModeKind `json:"kind" yaml:"kind"`
	Disabled []string `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	OptIn    []string `json:"opt_in,omitempty" yaml:"opt_in,omitempty"`
	Only     []string `json:"only,omitempty" yaml:"only,omitempty"`
}

// Configuration is an effective, fully merged configuration.
//
// It is a value: Equal ignores Graph and RootPath.
type Configuration struct {
	Mode             RulesMode                 `yaml:"mode"`
	RuleParams       map[string]map[string]any `yaml:"rules,omitempty"`
	CustomRules      map[string]map[string]any `yaml:"custom_rules,omitempty"`
	Included         []string                  `yaml:"included,omitempty"`
	Excluded         []string                  `yaml:"excluded,omitempty"`
	WarningThreshold *int                      `yaml:"warning_threshold,omitempty"`
	Reporter         *string                   `yaml:"reporter,omitempty"`
	Strict           *bool                     `yaml:"strict,omitempty"`
	RootPath         string                    `yaml:"root_path"`
	Graph            *FileGraph                `yaml:"-"`
}

// DefaultConfiguration is the built-in configuration rooted at root.
func DefaultConfiguration(root string) Configuration {
	return Configuration{
		Mode:     RulesMode{Kind: ModeDefault},
		RootPath: root,
	}
}

// Equal reports whether both configurations select the same rules with the
// same parameters and path filters.
func (c Configuration) Equal(o Configuration) bool {
	return reflect.DeepEqual(c.comparable(), o.comparable())
}

func (c Configuration) comparable() Configuration {
	c.Graph = nil
	c.RootPath = ""
	c.Mode.Disabled = nilIfEmpty(c.Mode.Disabled)
	c.Mode.OptIn = nilIfEmpty(c.Mode.OptIn)
	c.Mode.Only = nilIfEmpty(c.Mode.Only)
	c.Included = nilIfEmpty(c.Included)
	c.Excluded = nilIfEmpty(c.Excluded)

	if len(c.RuleParams) == 0 {
		c.RuleParams = nil
	}

	if len(c.CustomRules) == 0 {
		c.CustomRules = nil
	}

	return c
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	return s
}

// EnabledRuleIDs returns the canonical identifiers of every rule the
// configuration enables, in registry order.
func (c Configuration) EnabledRuleIDs(registry *Registry) []string {
	var ids []string

	for _, entry := range registry.All() {
		id := entry.Description.ID
		if c.isSelected(id, entry.Description.OptIn) {
			ids = append(ids, id)
		}
	}

	return ids
}

// isSelected applies the rules mode to one identifier.
func (c Configuration) isSelected(id string, optIn bool) bool {
	switch c.Mode.Kind {
	case ModeOnly:
		if id == rules.CustomRulesID && len(c.activeCustomRules()) > 0 {
			return true
		}

		return contains(c.Mode.Only, id)
	case ModeAll:
		return !contains(c.Mode.Disabled, id)
	default:
		if contains(c.Mode.Disabled, id) {
			return false
		}

		return !optIn || contains(c.Mode.OptIn, id)
	}
}

// IsRuleEnabled reports whether id, a canonical rule identifier or a custom
// rule identifier, is enabled.
func (c Configuration) IsRuleEnabled(registry *Registry, id string) bool {
	if _, ok := c.activeCustomRules()[id]; ok {
		return contains(c.EnabledRuleIDs(registry), rules.CustomRulesID)
	}

	return contains(c.EnabledRuleIDs(registry), id)
}

// activeCustomRules returns the custom rule entries the mode lets through,
// without removal markers.
func (c Configuration) activeCustomRules() map[string]map[string]any {
	active := map[string]map[string]any{}

	for id, params := range c.CustomRules {
		if removed, _ := params[rules.CustomRuleRemoveKey].(bool); removed {
			continue
		}

		switch c.Mode.Kind {
		case ModeOnly:
			if !contains(c.Mode.Only, rules.CustomRulesID) && !contains(c.Mode.Only, id) {
				continue
			}
		default:
			if contains(c.Mode.Disabled, rules.CustomRulesID) || contains(c.Mode.Disabled, id) {
				continue
			}
		}

		active[id] = params
	}

	return active
}

// ParamsFor returns the parameters the rule id is instantiated with.
func (c Configuration) ParamsFor(id string) map[string]any {
	if id == rules.CustomRulesID {
		params := make(map[string]any, len(c.CustomRules))
		for sub, p := range c.activeCustomRules() {
			params[sub] = p
		}

		return params
	}

	return c.RuleParams[id]
}

// IsPathIncluded reports whether path passes the included and excluded
// filters. Relative paths are taken relative to the root path.
func (c Configuration) IsPathIncluded(path string) bool {
	if !filepath.IsAbs(path) && c.RootPath != "" {
		path = filepath.Join(c.RootPath, path)
	}

	path = filepath.Clean(path)

	if len(c.Included) > 0 {
		included := false

		for _, pattern := range c.Included {
			if matchesPath(pattern, path) {
				included = true

				break
			}
		}

		if !included {
			return false
		}
	}

	for _, pattern := range c.Excluded {
		if matchesPath(pattern, path) {
			return false
		}
	}

	return true
}

func matchesPath(pattern, path string) bool {
	pattern = filepath.Clean(pattern)
	if path == pattern || strings.HasPrefix(path, pattern+string(filepath.Separator)) {
		return true
	}

	ok, err := filepath.Match(pattern, path)

	return err == nil && ok
}

type fingerprintRule struct {
	ID     string         `json:"id"`
	Params map[string]any `json:"params,omitempty"`
}

type fingerprintDoc struct {
	Mode    RulesMode         `json:"mode"`
	Rules   []fingerprintRule `json:"rules"`
	Version string            `json:"version"`
}

// Fingerprint hashes the parts of the configuration that decide which
// violations a file gets: the rules mode, the enabled rules with their
// parameters, and the version marker.
func (c Configuration) Fingerprint(registry *Registry, version string) string {
	ids := c.EnabledRuleIDs(registry)
	sort.Strings(ids)

	doc := fingerprintDoc{Mode: c.Mode, Version: version}
	for _, id := range ids {
		doc.Rules = append(doc.Rules, fingerprintRule{ID: id, Params: c.ParamsFor(id)})
	}

	// Map keys are marshaled in sorted order, which makes the encoding
	// canonical.
	data, err := json.Marshal(doc)
	if err != nil {
		data = []byte(err.Error())
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

func contains(list []string, id string) bool {
	i := sort.SearchStrings(list, id)

	return i < len(list) && list[i] == id
}

// sortedSet returns the sorted, de-duplicated union of lists.
func sortedSet(lists ...[]string) []string {
	seen := map[string]struct{}{}

	var out []string

	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}

			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	sort.Strings(out)

	return out
}

// minus returns the elements of a that are not in b. Both must be sorted.
func minus(a, b []string) []string {
	var out []string

	for _, id := range a {
		if !contains(b, id) {
			out = append(out, id)
		}
	}

	return out
}

// unionPaths appends the paths of child missing from base.
func unionPaths(base, child []string) []string {
	out := append([]string(nil), base...)

	seen := make(map[string]struct{}, len(base))
	for _, p := range base {
		seen[p] = struct{}{}
	}

	for _, p := range child {
		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}
