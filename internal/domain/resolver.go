package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mouse-blink/lintel/internal/adapter"
	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

// ResolveArgs selects what a resolution starts from.
type ResolveArgs struct {
	// Root is the directory linting happens in.
	Root string
	// Configs are explicit configuration sources merged left to right.
	// Entries may be paths, URLs or rule:<id>. When empty the first of
	// ConfigFileNames found in Root is used.
	Configs []string
}

// Resolution is the result of resolving a configuration graph.
type Resolution struct {
	Config      Configuration
	Diagnostics []*ConfigError
}

// ConfigResolver builds effective configurations from configuration graphs.
type ConfigResolver interface {
	Resolve(ctx context.Context, args ResolveArgs) Resolution
	ForFile(ctx context.Context, root Configuration, path m.Path) Configuration
}

type configResolver struct {
	fs       adapter.SourceFSAdapter
	decoder  adapter.DocumentDecoder
	fetcher  adapter.RemoteFetcher
	registry *Registry
	log      zerolog.Logger

	mu     sync.Mutex
	nested map[string]Configuration
}

// NewConfigResolver constructs a ConfigResolver.
func NewConfigResolver(
	fs adapter.SourceFSAdapter,
	decoder adapter.DocumentDecoder,
	fetcher adapter.RemoteFetcher,
	registry *Registry,
	log zerolog.Logger,
) ConfigResolver {
	return &configResolver{
		fs:       fs,
		decoder:  decoder,
		fetcher:  fetcher,
		registry: registry,
		log:      log,
		nested:   map[string]Configuration{},
	}
}

// resolution is the state of one Resolve call. Remote documents are
// fetched at most once per resolution.
type resolution struct {
	ctx    context.Context
	root   string
	remote map[string][]byte
	graph  *FileGraph
	diags  []*ConfigError
}

func (r *configResolver) Resolve(ctx context.Context, args ResolveArgs) Resolution {
	root := filepath.Clean(args.Root)

	sources := make([]string, 0, len(args.Configs))
	for _, src := range args.Configs {
		sources = append(sources, canonicalSource(root, src))
	}

	if len(sources) == 0 {
		if found, ok := r.findConfigIn(root); ok {
			sources = append(sources, found)
		}
	}

	res := &resolution{
		ctx:    ctx,
		root:   root,
		remote: map[string][]byte{},
		graph:  &FileGraph{},
	}

	if len(sources) == 0 {
		cfg := DefaultConfiguration(root)
		cfg.Graph = res.graph

		return Resolution{Config: cfg}
	}

	res.graph.Root = sources[0]

	configs := make([]Configuration, 0, len(sources))

	for i, src := range sources {
		if i > 0 {
			res.graph.addEdge(sources[0], src, EdgeSibling)
		}

		cfg, fatal := r.resolveNode(res, src, nil)
		if fatal != nil {
			return r.fallback(res, fatal)
		}

		configs = append(configs, cfg)
	}

	cfg := MergeAll(configs)
	cfg.RootPath = root
	cfg.Graph = res.graph

	cfg = r.validate(res, cfg)

	return Resolution{Config: cfg, Diagnostics: res.diags}
}

// fallback is the outcome of every fatal configuration problem.
func (r *configResolver) fallback(res *resolution, fatal *ConfigError) Resolution {
	r.log.Warn().Err(fatal).Str("config", fatal.Path).Msg("falling back to the default configuration")

	cfg := DefaultConfiguration(res.root)
	cfg.Graph = res.graph

	return Resolution{Config: cfg, Diagnostics: append(res.diags, fatal)}
}

// resolveNode loads id and everything it references. stack holds the
// identities on the path from the resolution root; revisiting one of them
// is a cycle.
func (r *configResolver) resolveNode(res *resolution, id string, stack []string) (Configuration, *ConfigError) {
	for _, seen := range stack {
		if seen == id {
			return Configuration{}, configErr(ErrCodeCycle, id, "", fmt.Errorf("reference chain %s", strings.Join(append(stack, id), " -> ")))
		}
	}

	res.graph.addNode(id)

	n, fatal := r.loadNode(res, id)
	if fatal != nil {
		return Configuration{}, fatal
	}

	path := append(append([]string(nil), stack...), id)
	cfg := n.config

	if n.parent != "" {
		res.graph.addEdge(id, n.parent, EdgeParent)

		parent, fatal := r.resolveNode(res, n.parent, path)
		if fatal != nil {
			return Configuration{}, fatal
		}

		cfg = Merge(parent, cfg)
	}

	for _, childID := range n.children {
		res.graph.addEdge(id, childID, EdgeChild)

		child, fatal := r.resolveNode(res, childID, path)
		if fatal != nil {
			return Configuration{}, fatal
		}

		cfg = Merge(cfg, child)
	}

	return cfg, nil
}

func (r *configResolver) loadNode(res *resolution, id string) (node, *ConfigError) {
	if isRuleNode(id) {
		ruleID := strings.TrimPrefix(id, ruleNodePrefix)
		if canonical, ok := r.registry.Resolve(ruleID); ok {
			ruleID = canonical
		}

		return node{config: Configuration{Mode: RulesMode{Kind: ModeOnly, Only: []string{ruleID}}}}, nil
	}

	data, dir, err := r.readSource(res, id)
	if err != nil {
		return node{}, configErr(ErrCodeMalformed, id, "", err)
	}

	doc, err := r.decoder.Decode(id, data)
	if err != nil {
		return node{}, configErr(ErrCodeMalformed, id, "", err)
	}

	parser := &documentParser{id: id, dir: dir, remote: isRemote(id), registry: r.registry}

	n, fatal := parser.parse(doc)
	res.diags = append(res.diags, parser.diags...)

	return n, fatal
}

// readSource returns the document behind id and the directory its
// relative paths resolve against.
func (r *configResolver) readSource(res *resolution, id string) ([]byte, string, error) {
	if isRemote(id) {
		if data, ok := res.remote[id]; ok {
			return data, res.root, nil
		}

		data, err := r.fetcher.Fetch(res.ctx, id)
		if err != nil {
			return nil, "", err
		}

		res.remote[id] = data

		return data, res.root, nil
	}

	data, err := r.fs.ReadFile(m.Path(id))
	if err != nil {
		return nil, "", fmt.Errorf("read configuration: %w", err)
	}

	return data, filepath.Dir(id), nil
}

// validate reports identifiers no rule answers to and drops parameters a
// rule rejects.
func (r *configResolver) validate(res *resolution, cfg Configuration) Configuration {
	lists := [][]string{cfg.Mode.Disabled, cfg.Mode.OptIn, cfg.Mode.Only}
	for _, list := range lists {
		for _, id := range list {
			if _, ok := r.registry.Resolve(id); ok {
				continue
			}

			if _, ok := cfg.CustomRules[id]; ok {
				continue
			}

			res.diags = append(res.diags, configErr(ErrCodeUnknownRule, res.graph.Root, id, nil))
		}
	}

	ids := make([]string, 0, len(cfg.RuleParams))
	for id := range cfg.RuleParams {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		entry, ok := r.registry.Lookup(id)
		if !ok {
			continue
		}

		if _, err := entry.Factory(cfg.RuleParams[id]); err != nil {
			res.diags = append(res.diags, configErr(ErrCodeInvalidParams, res.graph.Root, id, err))

			params := copyRuleParams(cfg.RuleParams)
			delete(params, id)
			cfg.RuleParams = params
		}
	}

	if len(cfg.CustomRules) > 0 {
		if entry, ok := r.registry.Lookup(rules.CustomRulesID); ok {
			if _, err := entry.Factory(cfg.ParamsFor(rules.CustomRulesID)); err != nil {
				res.diags = append(res.diags, configErr(ErrCodeInvalidParams, res.graph.Root, rules.CustomRulesID, err))
			}
		}
	}

	return cfg
}

func copyRuleParams(in map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

// ForFile returns the configuration that applies to path: root merged with
// every configuration document found between the root directory and the
// file's directory, closer documents last. Documents that took part in
// resolving root are not applied again.
func (r *configResolver) ForFile(ctx context.Context, root Configuration, path m.Path) Configuration {
	dir := filepath.Dir(string(path))

	rel, err := filepath.Rel(root.RootPath, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return root
	}

	return r.forDir(ctx, root, dir)
}

func (r *configResolver) forDir(ctx context.Context, root Configuration, dir string) Configuration {
	key := nestedKey(root, dir)

	r.mu.Lock()
	cfg, ok := r.nested[key]
	r.mu.Unlock()

	if ok {
		return cfg
	}

	cfg = root
	if dir != filepath.Clean(root.RootPath) {
		cfg = r.forDir(ctx, root, filepath.Dir(dir))
	}

	if found, ok := r.findConfigIn(dir); ok && !root.Graph.Contains(found) {
		res := &resolution{ctx: ctx, root: root.RootPath, remote: map[string][]byte{}, graph: &FileGraph{Root: found}}

		nested, fatal := r.resolveNode(res, found, nil)
		for _, d := range res.diags {
			r.log.Warn().Err(d).Str("config", found).Msg("nested configuration diagnostic")
		}

		if fatal != nil {
			r.log.Warn().Err(fatal).Str("config", found).Msg("ignoring nested configuration")
		} else {
			nested.Graph = res.graph
			cfg = Merge(cfg, nested)
			cfg.Graph.addEdge(root.Graph.rootOr(root.RootPath), found, EdgeNested)
		}
	}

	r.mu.Lock()
	r.nested[key] = cfg
	r.mu.Unlock()

	return cfg
}

func nestedKey(root Configuration, dir string) string {
	return root.RootPath + "\x00" + root.Graph.rootOr("") + "\x00" + dir
}

func (r *configResolver) findConfigIn(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if r.fs.Exists(m.Path(candidate)) {
			return candidate, true
		}
	}

	return "", false
}

// canonicalSource turns a configuration source given on the command line
// into a node identity.
func canonicalSource(root, src string) string {
	if isRemote(src) || isRuleNode(src) {
		return src
	}

	if !filepath.IsAbs(src) {
		src = filepath.Join(root, src)
	}

	return filepath.Clean(src)
}
