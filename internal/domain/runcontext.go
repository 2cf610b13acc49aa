package domain

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunContext carries the state shared by every file of one invocation.
// It is created once per run and passed explicitly.
type RunContext struct {
	Registry  *Registry
	Logger    zerolog.Logger
	RunID     string
	Collected *CollectedStore

	parserDown atomic.Bool
}

// NewRunContext creates a RunContext with a fresh run id and an empty
// collected store.
func NewRunContext(registry *Registry, logger zerolog.Logger) *RunContext {
	id := uuid.NewString()

	return &RunContext{
		Registry:  registry,
		Logger:    logger.With().Str("run_id", id).Logger(),
		RunID:     id,
		Collected: NewCollectedStore(),
	}
}

// ParserDown reports whether the parser failed earlier in this run.
func (rc *RunContext) ParserDown() bool {
	return rc.parserDown.Load()
}

// MarkParserDown disables AST-based analysis for the rest of the run.
func (rc *RunContext) MarkParserDown() {
	if rc.parserDown.CompareAndSwap(false, true) {
		rc.Logger.Warn().Msg("parser unavailable, skipping AST rules for the rest of the run")
	}
}
