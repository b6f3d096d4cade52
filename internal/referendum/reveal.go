package referendum

import (
	"errors"
	"fmt"

	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/safemath"
)

const opReveal = "reveal"

// Reveal opens the commitment of voter. The weight is counted only if the
// EligibilityOracle authorizes it.
//
// A reveal also absorbs delegated weight: every principal transitively
// delegating to voter that has not been counted yet contributes its eligible
// weight to voter's commitment, exactly once, and is marked as voted.
func (e *Engine) Reveal(now height.Height, id ProposalID, voter Principal, choice bool, salt []byte, weight uint64) error {
	e.mu.Lock()
	absorbed, err := reveal(e.state, e.registry, e.oracle, now, id, voter, choice, salt, weight)
	e.mu.Unlock()

	if err == nil && len(absorbed) > 0 {
		e.log.Debug().
			Uint64("proposal", uint64(id)).
			Str("delegate", string(voter)).
			Int("delegators", len(absorbed)).
			Msg("absorbed delegated weight")
	}
	e.finish(opReveal, id, now, err)
	return err
}

// reveal returns the delegators whose weight was absorbed
func reveal(
	s *State,
	registry ProposalRegistry,
	oracle EligibilityOracle,
	now height.Height,
	id ProposalID,
	voter Principal,
	choice bool,
	salt []byte,
	weight uint64,
) ([]Principal, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	w, err := window(registry, id)
	if err != nil {
		return nil, err
	}

	ps := s.lookup(id)
	c, ok := ps.commitment(voter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVoteNotCommitted, voter)
	}
	if c.Revealed {
		return nil, fmt.Errorf("%w: %s already revealed", ErrInvalidRevealProof, voter)
	}
	if CommitmentHash(choice, salt, voter) != c.Hash {
		return nil, fmt.Errorf("%w: digest mismatch for %s", ErrInvalidRevealProof, voter)
	}

	switch err := w.RevealCheck(now); {
	case errors.Is(err, height.ErrBeforeWindow):
		return nil, fmt.Errorf("%w: reveal opens at %d", ErrInvalidRevealProof, w.RevealStart)
	case errors.Is(err, height.ErrAfterWindow):
		return nil, fmt.Errorf("%w: reveal closed at %d", ErrProposalExpired, w.RevealEnd)
	}

	if weight == 0 {
		return nil, ErrInvalidWeight
	}
	if !oracle.AuthorizeWeight(voter, weight) {
		return nil, fmt.Errorf("%w: %s for weight %d", ErrNotEligible, voter, weight)
	}
	if ps.hasVoted(voter) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyVoted, voter)
	}

	absorbed, delegated, err := resolveDelegatedWeight(ps, oracle, voter)
	if err != nil {
		return nil, err
	}
	if _, ok := (Commitment{Weight: weight, DelegatedWeight: delegated}).EffectiveWeight(); !ok {
		return nil, fmt.Errorf("%w: effective weight of %s overflows", ErrInvalidWeight, voter)
	}

	// all checks passed, apply
	c.Revealed = true
	c.Choice = &choice
	c.Weight = weight
	c.DelegatedWeight = delegated
	ps.voted[voter] = struct{}{}
	for _, d := range absorbed {
		ps.voted[d] = struct{}{}
	}
	return absorbed, nil
}

// resolveDelegatedWeight walks the delegation chains reaching delegate,
// breadth first, and sums the eligible weight of every delegator that has not
// been counted yet. Each principal is visited once. Delegators without an
// authorized, non-zero weight are skipped and stay uncounted.
func resolveDelegatedWeight(ps *proposalState, oracle EligibilityOracle, delegate Principal) ([]Principal, uint64, error) {
	var (
		absorbed []Principal
		weights  []uint64
	)
	visited := map[Principal]struct{}{delegate: {}}
	queue := append([]Principal(nil), ps.chain(delegate)...)

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]
		if _, ok := visited[d]; ok {
			continue
		}
		visited[d] = struct{}{}
		queue = append(queue, ps.chain(d)...)

		if ps.hasVoted(d) {
			continue
		}
		w, ok := oracle.EligibleWeight(d)
		if !ok || w == 0 || !oracle.AuthorizeWeight(d, w) {
			continue
		}
		absorbed = append(absorbed, d)
		weights = append(weights, w)
	}

	total, err := safemath.Sum64(weights...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: delegated weight of %s: %w", ErrInvalidWeight, delegate, err)
	}
	return absorbed, total, nil
}
