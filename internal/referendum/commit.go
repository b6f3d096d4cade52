package referendum

import (
	"fmt"

	"github.com/eigerco/referendum/internal/crypto"
	"github.com/eigerco/referendum/internal/height"
)

const opCommit = "commit"

// Commit records the hidden vote of voter for a proposal. It succeeds only
// during the commit phase, once per voter, and never for a voter who has
// delegated.
func (e *Engine) Commit(now height.Height, id ProposalID, voter Principal, hash crypto.Hash) error {
	e.mu.Lock()
	err := commit(e.state, e.registry, now, id, voter, hash)
	e.mu.Unlock()

	e.finish(opCommit, id, now, err)
	return err
}

func commit(s *State, registry ProposalRegistry, now height.Height, id ProposalID, voter Principal, hash crypto.Hash) error {
	if err := s.guard(); err != nil {
		return err
	}
	w, err := window(registry, id)
	if err != nil {
		return err
	}
	if !w.InCommitPhase(now) {
		return fmt.Errorf("%w: height %d outside [%d, %d]", ErrVotingNotOpen, now, w.Start, w.End)
	}

	ps := s.lookup(id)
	if _, ok := ps.commitment(voter); ok {
		return fmt.Errorf("%w: %s", ErrAlreadyCommitted, voter)
	}
	if d, ok := ps.delegateOfPrincipal(voter); ok {
		return fmt.Errorf("%w: %s delegated to %s", ErrAlreadyDelegated, voter, d)
	}

	s.ensure(id).commitments[voter] = &Commitment{Hash: hash}
	return nil
}
