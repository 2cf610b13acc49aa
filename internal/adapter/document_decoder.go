package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DocumentDecoder turns a configuration document into a nested key/value
// mapping. Environment references of the form ${NAME} are substituted while
// decoding, before any structural interpretation happens.
type DocumentDecoder interface {
	Decode(name string, data []byte) (map[string]any, error)
}

// LookupEnvFunc resolves an environment variable.
type LookupEnvFunc func(key string) (string, bool)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// StructuredDecoder decodes YAML and TOML documents, choosing the format by
// file extension. YAML is the default.
type StructuredDecoder struct {
	lookup LookupEnvFunc
}

// NewStructuredDecoder creates a decoder reading variables from the process
// environment.
func NewStructuredDecoder() *StructuredDecoder {
	return &StructuredDecoder{lookup: os.LookupEnv}
}

// NewStructuredDecoderWithEnv creates a decoder with a custom variable source.
func NewStructuredDecoderWithEnv(lookup LookupEnvFunc) *StructuredDecoder {
	return &StructuredDecoder{lookup: lookup}
}

// Decode parses data. An empty document decodes to an empty map.
func (d *StructuredDecoder) Decode(name string, data []byte) (map[string]any, error) {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return d.decodeTOML(data)
	}

	return d.decodeYAML(data)
}

func (d *StructuredDecoder) decodeYAML(data []byte) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if root.Kind == 0 {
		return map[string]any{}, nil
	}

	d.interpolateNode(&root)

	var out map[string]any
	if err := root.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if out == nil {
		out = map[string]any{}
	}

	return normalizeMap(out), nil
}

// interpolateNode substitutes environment references in scalar nodes. A
// substituted scalar is pinned to !!str unless the document tagged it
// explicitly, so "${PORT}" never silently becomes a number.
func (d *StructuredDecoder) interpolateNode(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode {
		if !envRef.MatchString(n.Value) {
			return
		}

		n.Value = d.expand(n.Value)
		if n.Style&yaml.TaggedStyle == 0 {
			n.Tag = "!!str"
		}

		return
	}

	for _, child := range n.Content {
		d.interpolateNode(child)
	}
}

func (d *StructuredDecoder) decodeTOML(data []byte) (map[string]any, error) {
	out := map[string]any{}
	if _, err := toml.Decode(string(data), &out); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	return d.interpolateValue(normalizeMap(out)).(map[string]any), nil
}

func (d *StructuredDecoder) interpolateValue(v any) any {
	switch t := v.(type) {
	case string:
		return d.expand(t)
	case map[string]any:
		for k, val := range t {
			t[k] = d.interpolateValue(val)
		}

		return t
	case []any:
		for i, val := range t {
			t[i] = d.interpolateValue(val)
		}

		return t
	default:
		return v
	}
}

func (d *StructuredDecoder) expand(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		name := envRef.FindStringSubmatch(ref)[1]

		value, _ := d.lookup(name)

		return value
	})
}

// normalizeMap converts decoder-specific shapes (int64, []map[string]any,
// map[any]any) into the plain types the domain expects.
func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}

	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case int64:
		return int(t)
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}

		return out
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			out = append(out, normalizeMap(val))
		}

		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			out = append(out, normalizeValue(val))
		}

		return out
	default:
		return v
	}
}
