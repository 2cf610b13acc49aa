package domain

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/lintel/internal/adapter"
	m "github.com/mouse-blink/lintel/internal/model"
)

// Workflow defines the interface for lint and correction runs.
type Workflow interface {
	Lint(ctx context.Context, args LintArgs) (RunResult, error)
	Correct(ctx context.Context, args CorrectArgs) (CorrectResult, error)
	Resolve(ctx context.Context, args ResolveArgs) Resolution
}

// LintArgs configures a lint run.
type LintArgs struct {
	Root    m.Path
	Paths   []m.Path
	Configs []string
	Jobs    int
	// UseCache enables the linter cache when a cache store is configured.
	UseCache bool
}

// RunResult is the outcome of a lint run. Violations are sorted by file,
// then location.
type RunResult struct {
	Config     Configuration
	Violations []m.Violation
	Failures   []m.RuleFailure
	// FileFailures lists files that could not be read. They are skipped.
	FileFailures []m.FileFailure
	Diagnostics  []*ConfigError
	Files        int
	CachedFiles  int
}

// CorrectArgs configures a correction run.
type CorrectArgs struct {
	Root    m.Path
	Paths   []m.Path
	Configs []string
	Jobs    int
	// DryRun computes corrections without writing files.
	DryRun bool
}

// FileCorrection is the correction outcome for one file.
type FileCorrection struct {
	Path        m.Path
	Original    []byte
	Corrected   []byte
	Corrections []m.Correction
}

// CorrectResult is the outcome of a correction run, sorted by path. Only
// files with at least one correction are listed.
type CorrectResult struct {
	Config   Configuration
	Files    []FileCorrection
	Failures []m.RuleFailure
	// FileFailures lists files that could not be read or written back.
	FileFailures []m.FileFailure
	Diagnostics  []*ConfigError
}

type workflow struct {
	fsAdapter  adapter.SourceFSAdapter
	goAdapter  adapter.GoFileAdapter
	resolver   ConfigResolver
	cacheStore adapter.CacheStore
	registry   *Registry
	log        zerolog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
// cacheStore may be nil to disable caching.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goAdapter adapter.GoFileAdapter,
	resolver ConfigResolver,
	cacheStore adapter.CacheStore,
	registry *Registry,
	log zerolog.Logger,
) Workflow {
	return &workflow{
		fsAdapter:  fsAdapter,
		goAdapter:  goAdapter,
		resolver:   resolver,
		cacheStore: cacheStore,
		registry:   registry,
		log:        log,
	}
}

// lintTarget is one file with the configuration that applies to it.
type lintTarget struct {
	path   m.Path
	config Configuration
}

func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) Resolution {
	res := w.resolver.Resolve(ctx, args)

	for _, d := range res.Diagnostics {
		event := w.log.Warn()
		if !d.Fatal() {
			event = w.log.Info()
		}

		event.Str("config", d.Path).Str("key", d.Key).Str("code", string(d.Code)).Err(d.Cause).
			Msg("configuration diagnostic")
	}

	return res
}

// targets lists the lintable files under paths with their nested
// configurations, dropping files the filters exclude.
func (w *workflow) targets(ctx context.Context, root Configuration, rootPath m.Path, paths []m.Path) ([]lintTarget, error) {
	if len(paths) == 0 {
		paths = []m.Path{rootPath}
	}

	seen := map[m.Path]struct{}{}

	var targets []lintTarget

	for _, p := range paths {
		files, err := w.fsAdapter.FilesToLint(p, rootPath)
		if err != nil {
			return nil, fmt.Errorf("list files in %s: %w", p, err)
		}

		for _, file := range files {
			if _, ok := seen[file]; ok {
				continue
			}

			seen[file] = struct{}{}

			cfg := w.resolver.ForFile(ctx, root, file)
			if !cfg.IsPathIncluded(string(file)) {
				continue
			}

			targets = append(targets, lintTarget{path: file, config: cfg})
		}
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].path < targets[j].path })

	return targets, nil
}

func jobs(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}

	return n
}

// Lint runs every enabled rule over the files under args.Paths.
//
// Files are linted in parallel. When a collecting rule is enabled the run
// has two phases separated by a barrier, and the cache is bypassed.
// Cache writes happen after the parallel phase has joined.
func (w *workflow) Lint(ctx context.Context, args LintArgs) (RunResult, error) {
	res := w.Resolve(ctx, ResolveArgs{Root: string(args.Root), Configs: args.Configs})

	targets, err := w.targets(ctx, res.Config, args.Root, args.Paths)
	if err != nil {
		return RunResult{}, err
	}

	runCtx := NewRunContext(w.registry, w.log)
	collectIDs := w.collectingRuleIDs(targets)

	var cache *LinterCache
	if args.UseCache && w.cacheStore != nil && len(collectIDs) == 0 {
		cache = NewLinterCache(w.cacheStore, w.fsAdapter, w.registry, string(args.Root), CacheVersion, runCtx.Logger)
		cache.Load()
	}

	limit := jobs(args.Jobs)
	linters := make([]*Linter, len(targets))
	readErrs := make([]error, len(targets))

	// load reads a file on first use. Each index is touched by one worker
	// at a time, and the phases are separated by a join.
	load := func(i int) *Linter {
		if linters[i] == nil && readErrs[i] == nil {
			linters[i], readErrs[i] = w.newLinter(targets[i], runCtx)
		}

		return linters[i]
	}

	if len(collectIDs) > 0 {
		err = forEach(ctx, limit, len(targets), func(i int) {
			if l := load(i); l != nil {
				l.Collect(collectIDs)
			}
		})
		if err != nil {
			return RunResult{}, err
		}
	}

	perFile := make([][]m.Violation, len(targets))
	failures := make([][]m.RuleFailure, len(targets))
	cached := make([]bool, len(targets))

	err = forEach(ctx, limit, len(targets), func(i int) {
		if cache != nil {
			if vs := cache.CachedViolations(targets[i].path, targets[i].config); vs != nil {
				perFile[i] = vs
				cached[i] = true

				return
			}
		}

		l := load(i)
		if l == nil {
			return
		}

		perFile[i] = l.Violations()
		failures[i] = l.Failures()
		linters[i] = nil
	})
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{Config: res.Config, Diagnostics: res.Diagnostics, Files: len(targets)}

	for i, t := range targets {
		if readErrs[i] != nil {
			result.FileFailures = append(result.FileFailures, w.fileFailure(t.path, readErrs[i]))
			continue
		}

		if cached[i] {
			result.CachedFiles++
		} else if cache != nil {
			cache.Cache(perFile[i], t.path, t.config)
		}

		strict := t.config.Strict != nil && *t.config.Strict
		for _, v := range perFile[i] {
			if strict {
				v.Severity = m.SeverityError
			}

			result.Violations = append(result.Violations, v)
		}

		result.Failures = append(result.Failures, failures[i]...)
	}

	if cache != nil {
		if err := cache.Flush(); err != nil {
			runCtx.Logger.Warn().Err(err).Msg("failed to persist cache")
		}
	}

	sortViolations(result.Violations)

	runCtx.Logger.Debug().Int("files", result.Files).Int("cached", result.CachedFiles).
		Int("violations", len(result.Violations)).Msg("lint finished")

	return result, nil
}

// Correct applies every correctable rule to the files under args.Paths.
func (w *workflow) Correct(ctx context.Context, args CorrectArgs) (CorrectResult, error) {
	res := w.Resolve(ctx, ResolveArgs{Root: string(args.Root), Configs: args.Configs})

	targets, err := w.targets(ctx, res.Config, args.Root, args.Paths)
	if err != nil {
		return CorrectResult{}, err
	}

	runCtx := NewRunContext(w.registry, w.log)
	outcomes := make([]FileCorrection, len(targets))
	failures := make([][]m.RuleFailure, len(targets))
	errs := make([]error, len(targets))

	err = forEach(ctx, jobs(args.Jobs), len(targets), func(i int) {
		l, err := w.newLinter(targets[i], runCtx)
		if err != nil {
			errs[i] = err
			return
		}

		original := append([]byte(nil), l.Contents()...)
		corrections := l.Correct()
		failures[i] = l.Failures()

		if len(corrections) == 0 {
			return
		}

		if !args.DryRun {
			if err := w.fsAdapter.WriteFile(targets[i].path, l.Contents()); err != nil {
				errs[i] = fmt.Errorf("write %s: %w", targets[i].path, err)
				return
			}
		}

		outcomes[i] = FileCorrection{Path: targets[i].path, Original: original, Corrected: l.Contents(), Corrections: corrections}
	})
	if err != nil {
		return CorrectResult{}, err
	}

	result := CorrectResult{Config: res.Config, Diagnostics: res.Diagnostics}

	for i, t := range targets {
		if errs[i] != nil {
			result.FileFailures = append(result.FileFailures, w.fileFailure(t.path, errs[i]))
		}

		result.Failures = append(result.Failures, failures[i]...)

		if len(outcomes[i].Corrections) > 0 {
			result.Files = append(result.Files, outcomes[i])
		}
	}

	return result, nil
}

// newLinter reads the file of t and prepares a linter for it.
func (w *workflow) newLinter(t lintTarget, runCtx *RunContext) (*Linter, error) {
	content, err := w.fsAdapter.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}

	return NewLinter(m.NewFile(t.path, content), t.config, runCtx, w.goAdapter), nil
}

// collectingRuleIDs returns the collecting rules enabled for any target, in
// registry order.
func (w *workflow) collectingRuleIDs(targets []lintTarget) []string {
	seen := map[string]struct{}{}

	var ids []string

	for _, t := range targets {
		for _, id := range t.config.EnabledRuleIDs(w.registry) {
			if _, ok := seen[id]; ok || !w.registry.IsCollecting(id) {
				continue
			}

			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	w.registry.sortByRegistration(ids)

	return ids
}

func (w *workflow) fileFailure(path m.Path, err error) m.FileFailure {
	w.log.Warn().Err(err).Str("file", string(path)).Msg("skipping file")

	return m.FileFailure{File: path, Reason: err.Error()}
}

// forEach runs fn for indexes [0, n) on at most limit goroutines and
// returns once all of them finished. It stops scheduling new work when ctx
// is done.
func forEach(ctx context.Context, limit, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range n {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fn(i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

func sortViolations(vs []m.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Location.File != vs[j].Location.File {
			return vs[i].Location.File < vs[j].Location.File
		}

		return vs[i].Location.Less(vs[j].Location)
	})
}

// ErrorCount returns the number of error-severity violations.
func (r RunResult) ErrorCount() int {
	n := 0

	for _, v := range r.Violations {
		if v.Severity == m.SeverityError {
			n++
		}
	}

	return n
}

// WarningCount returns the number of warning-severity violations.
func (r RunResult) WarningCount() int {
	return len(r.Violations) - r.ErrorCount()
}

// Failed reports whether the run should exit unsuccessfully: an error was
// reported or the warning threshold was reached.
func (r RunResult) Failed() bool {
	if r.ErrorCount() > 0 {
		return true
	}

	t := r.Config.WarningThreshold

	return t != nil && r.WarningCount() >= *t
}
