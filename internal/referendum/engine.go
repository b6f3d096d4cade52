package referendum

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eigerco/referendum/internal/height"
)

// Option is a set of configurable parameters. If left empty, defaults
// will be used
type Option func(e *Engine)

// WithLogger sets the logger used for operation outcomes
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithMetrics records operation outcomes in m
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithResultsAggregator adds a consumer notified after every successful tally
func WithResultsAggregator(a ResultsAggregator) Option {
	return func(e *Engine) {
		e.aggregators = append(e.aggregators, a)
	}
}

// WithReferendumTracker adds a consumer notified of every finalized status
func WithReferendumTracker(t ReferendumTracker) Option {
	return func(e *Engine) {
		e.trackers = append(e.trackers, t)
	}
}

// Engine is the referendum voting state machine. Every operation runs to
// completion under a single lock, so operations are atomic and totally ordered
// by submission: for conflicting operations on the same key the first one
// wins and later ones fail without overwriting.
//
// The current height is always an explicit argument. The engine never reads a
// clock and does not require heights to be monotonic between calls.
type Engine struct {
	mu    sync.Mutex
	state *State
	owner Principal

	registry ProposalRegistry
	oracle   EligibilityOracle

	aggregators []ResultsAggregator
	trackers    []ReferendumTracker

	log     zerolog.Logger
	metrics *Metrics
}

func New(owner Principal, registry ProposalRegistry, oracle EligibilityOracle, opts ...Option) *Engine {
	e := &Engine{
		state:    NewState(),
		owner:    owner,
		registry: registry,
		oracle:   oracle,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// guard is the first check of every mutating operation
func (s *State) guard() error {
	if s.halted {
		return ErrHalted
	}
	return nil
}

// window fetches and validates the proposal's window from the registry
func window(registry ProposalRegistry, id ProposalID) (height.Window, error) {
	w, err := registry.Window(id)
	if err != nil {
		return height.Window{}, fmt.Errorf("proposal %d: %w", id, err)
	}
	if err := w.Validate(); err != nil {
		return height.Window{}, fmt.Errorf("proposal %d: %w", id, err)
	}
	return w, nil
}

// finish logs and records the outcome of an operation
func (e *Engine) finish(op string, id ProposalID, now height.Height, err error) {
	e.metrics.observe(op, err)

	if err != nil {
		e.log.Debug().
			Str("op", op).
			Uint64("proposal", uint64(id)).
			Uint64("height", uint64(now)).
			Err(err).
			Msg("operation rejected")
		return
	}
	e.log.Debug().
		Str("op", op).
		Uint64("proposal", uint64(id)).
		Uint64("height", uint64(now)).
		Msg("operation applied")
}
