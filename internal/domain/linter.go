package domain

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/mouse-blink/lintel/internal/adapter"
	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

// Linter runs the enabled rules of one configuration against one file.
// A Linter is used by a single goroutine.
type Linter struct {
	file        *m.File
	config      Configuration
	runCtx      *RunContext
	parser      adapter.GoFileAdapter
	rules       []rules.Rule
	superfluous *superfluousDisableCommand
	failures    []m.RuleFailure
	prepared    bool
}

// attributed is a violation together with the rule that produced it.
type attributed struct {
	violation m.Violation
	owner     string
}

// NewLinter instantiates the rules cfg enables, in registry order. Rules
// that are not enabled are never constructed.
func NewLinter(file *m.File, cfg Configuration, runCtx *RunContext, parser adapter.GoFileAdapter) *Linter {
	l := &Linter{file: file, config: cfg, runCtx: runCtx, parser: parser}

	for _, id := range cfg.EnabledRuleIDs(runCtx.Registry) {
		entry, _ := runCtx.Registry.Lookup(id)

		rule, err := entry.Factory(cfg.ParamsFor(id))
		if err != nil {
			runCtx.Logger.Warn().Err(err).Str("rule", id).Str("file", string(file.Path)).
				Msg("invalid rule parameters, using defaults")

			if rule, err = entry.Factory(nil); err != nil {
				continue
			}
		}

		if s, ok := rule.(*superfluousDisableCommand); ok {
			l.superfluous = s
			continue
		}

		l.rules = append(l.rules, rule)
	}

	return l
}

// RuleIDs returns the identifiers of the instantiated rules.
func (l *Linter) RuleIDs() []string {
	ids := make([]string, 0, len(l.rules)+1)
	for _, r := range l.rules {
		ids = append(ids, r.Description().ID)
	}

	if l.superfluous != nil {
		ids = append(ids, SuperfluousDisableCommandID)
	}

	return ids
}

// Failures returns the rule failures recorded so far.
func (l *Linter) Failures() []m.RuleFailure {
	return l.failures
}

// prepare derives comments and the AST from the current contents. Once the
// parser has failed for the run, only comments are derived.
func (l *Linter) prepare() {
	if l.prepared {
		return
	}

	l.prepared = true

	if l.runCtx.ParserDown() || l.parser == nil {
		l.file.Comments = adapter.ScanComments(l.file.Contents)
		return
	}

	if err := l.parser.Populate(l.file); err != nil {
		if errors.Is(err, adapter.ErrParserUnavailable) {
			l.runCtx.MarkParserDown()
		}

		l.file.AST = nil
		l.file.Comments = adapter.ScanComments(l.file.Contents)
	}
}

func (l *Linter) canRun(rule rules.Rule) bool {
	if _, ok := rule.(rules.ASTRule); !ok {
		return true
	}

	return !l.runCtx.ParserDown() && l.file.HasAST()
}

// guard runs fn and turns a panic into a rule failure for this file.
func (l *Linter) guard(ruleID string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			failure := m.RuleFailure{RuleID: ruleID, File: l.file.Path, Reason: fmt.Sprint(r)}
			l.failures = append(l.failures, failure)
			l.runCtx.Logger.Warn().Str("rule", ruleID).Str("file", string(l.file.Path)).
				Interface("panic", r).Msg("rule failed")
		}
	}()

	fn()
}

// Collect runs the first phase of the collecting rules named by ids. A rule
// this file's configuration leaves disabled still collects, with default
// parameters, so that cross-file rules enabled elsewhere see the whole
// package.
func (l *Linter) Collect(ids []string) {
	l.prepare()

	for _, id := range ids {
		rule := l.collector(id)
		cr, ok := rule.(rules.CollectingRule)
		if !ok || !l.canRun(rule) {
			continue
		}

		l.guard(id, func() {
			l.runCtx.Collected.Put(id, l.file.Path, cr.Collect(l.file))
		})
	}
}

// collector returns the instantiated rule id, or a default-configured one
// when the file does not enable it.
func (l *Linter) collector(id string) rules.Rule {
	for _, r := range l.rules {
		if r.Description().ID == id {
			return r
		}
	}

	entry, ok := l.runCtx.Registry.Lookup(id)
	if !ok {
		return nil
	}

	rule, err := entry.Factory(nil)
	if err != nil {
		return nil
	}

	return rule
}

// Violations runs every rule, drops the violations a directive disables and
// returns the rest sorted by location. Collecting rules read what the
// collect phase stored in the run context.
func (l *Linter) Violations() []m.Violation {
	l.prepare()

	var raw []attributed

	ran := map[string]struct{}{}

	for _, rule := range l.rules {
		if !l.canRun(rule) {
			continue
		}

		id := rule.Description().ID
		ran[id] = struct{}{}

		if p, ok := rule.(rules.SubRuleProvider); ok {
			for _, sub := range p.IDs() {
				ran[sub] = struct{}{}
			}
		}

		l.guard(id, func() {
			var found []m.Violation

			if cr, ok := rule.(rules.CollectingRule); ok {
				found = cr.ValidateCollected(l.file, l.runCtx.Collected.For(id))
			} else {
				found = rule.Validate(l.file)
			}

			for _, v := range found {
				raw = append(raw, attributed{violation: v, owner: id})
			}
		})
	}

	commands := canonicalCommands(ParseCommands(l.file), l.runCtx.Registry)
	regions := BuildRegions(commands, l.knownIDs())

	if l.superfluous != nil {
		l.guard(SuperfluousDisableCommandID, func() {
			for _, v := range l.superfluous.check(l.file, commands, regions, l.ruleView(ran, raw)) {
				raw = append(raw, attributed{violation: v, owner: SuperfluousDisableCommandID})
			}
		})
	}

	out := make([]m.Violation, 0, len(raw))

	for _, a := range raw {
		loc := a.violation.Location
		if regions.IsDisabled(a.violation.RuleID, loc) || regions.IsDisabled(a.owner, loc) {
			continue
		}

		out = append(out, a.violation)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Location.Less(out[j].Location) })

	return out
}

// knownIDs is what the all identifier stands for in this file.
func (l *Linter) knownIDs() []string {
	ids := l.runCtx.Registry.IDs()
	for id := range l.config.CustomRules {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// ruleView describes the rules of this file. ran holds the rules, and their
// sub-identifiers, that actually ran; a rule skipped for lack of a parse
// tree never makes a disable superfluous.
func (l *Linter) ruleView(ran map[string]struct{}, raw []attributed) ruleView {
	return ruleView{
		known: func(id string) bool {
			if _, ok := l.runCtx.Registry.Resolve(id); ok {
				return true
			}

			_, ok := l.config.CustomRules[id]

			return ok
		},
		ran: func(id string) bool {
			_, ok := ran[id]
			return ok
		},
		fired: func(id string, start, end m.Location) bool {
			for _, a := range raw {
				if a.violation.RuleID != id && a.owner != id {
					continue
				}

				loc := a.violation.Location
				if start.Compare(loc) <= 0 && loc.Compare(end) <= 0 {
					return true
				}
			}

			return false
		},
	}
}

// Correct runs every correctable rule once, in registry order, and returns
// the corrections applied. Regions are rebuilt from the current contents
// before each rule, but a rule may still see spans that an earlier rule
// shifted.
func (l *Linter) Correct() []m.Correction {
	var corrections []m.Correction

	for _, rule := range l.rules {
		cr, ok := rule.(rules.CorrectableRule)
		if !ok {
			continue
		}

		l.prepare()

		if !l.canRun(rule) {
			continue
		}

		id := rule.Description().ID
		regions := BuildRegions(canonicalCommands(ParseCommands(l.file), l.runCtx.Registry), l.knownIDs())
		before := l.file.Contents

		l.guard(id, func() {
			applied := cr.Correct(l.file, func(loc m.Location) bool {
				return !regions.IsDisabled(id, loc)
			})
			corrections = append(corrections, applied...)
		})

		if !bytes.Equal(before, l.file.Contents) {
			l.file.SetContents(l.file.Contents)
			l.prepared = false
		}
	}

	return corrections
}

// Contents returns the current, possibly corrected, file contents.
func (l *Linter) Contents() []byte {
	return l.file.Contents
}
