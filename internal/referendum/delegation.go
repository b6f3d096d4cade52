package referendum

import (
	"fmt"

	"github.com/eigerco/referendum/internal/height"
)

const opDelegate = "delegate"

// Delegate routes the weight of delegator to delegate for a proposal.
// Delegation happens during the commit phase, at most once per delegator, and
// is rejected for principals that voted or committed directly, or when the new
// edge would close a cycle.
func (e *Engine) Delegate(now height.Height, id ProposalID, delegator, delegate Principal) error {
	e.mu.Lock()
	err := delegateVote(e.state, e.registry, now, id, delegator, delegate)
	e.mu.Unlock()

	e.finish(opDelegate, id, now, err)
	return err
}

func delegateVote(s *State, registry ProposalRegistry, now height.Height, id ProposalID, delegator, delegate Principal) error {
	if err := s.guard(); err != nil {
		return err
	}
	if delegator == delegate {
		return fmt.Errorf("%w: %s", ErrSelfDelegation, delegator)
	}
	w, err := window(registry, id)
	if err != nil {
		return err
	}
	if !w.InCommitPhase(now) {
		return fmt.Errorf("%w: height %d outside [%d, %d]", ErrVotingNotOpen, now, w.Start, w.End)
	}

	ps := s.lookup(id)
	// a closing edge is reported as a cycle whatever the delegator did before
	if reaches(ps, delegate, delegator) {
		return fmt.Errorf("%w: %s -> %s", ErrCycleDetected, delegator, delegate)
	}
	if ps.hasVoted(delegator) {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, delegator)
	}
	if _, ok := ps.commitment(delegator); ok {
		return fmt.Errorf("%w: %s cannot delegate after committing", ErrAlreadyCommitted, delegator)
	}
	if current, ok := ps.delegateOfPrincipal(delegator); ok {
		return fmt.Errorf("%w: %s already delegated to %s", ErrAlreadyDelegated, delegator, current)
	}

	ps = s.ensure(id)
	ps.delegateOf[delegator] = delegate
	ps.chains[delegate] = append(ps.chains[delegate], delegator)
	return nil
}

// reaches reports whether target is reachable from start by following
// outgoing delegation edges, start included. Each principal has at most one
// outgoing edge, so the walk is a single path; the visited set bounds it even
// if the graph were corrupted.
func reaches(ps *proposalState, start, target Principal) bool {
	if ps == nil {
		return start == target
	}

	visited := make(map[Principal]struct{}, ps.participants()+1)
	for cur := start; ; {
		if cur == target {
			return true
		}
		if _, ok := visited[cur]; ok {
			return false
		}
		visited[cur] = struct{}{}

		next, ok := ps.delegateOf[cur]
		if !ok {
			return false
		}
		cur = next
	}
}
