package referendum

import "fmt"

// VotingStatus returns the finalized status of a proposal, if it was tallied
func (e *Engine) VotingStatus(id ProposalID) (VotingStatus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	status, ok := e.state.lookup(id).votingStatus()
	if !ok {
		return VotingStatus{}, false
	}
	return *status, true
}

// HasVoted reports whether voter's weight has been counted, either by its own
// reveal or through a delegate's reveal
func (e *Engine) HasVoted(id ProposalID, voter Principal) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.lookup(id).hasVoted(voter)
}

// Commitment returns a copy of voter's commitment
func (e *Engine) Commitment(id ProposalID, voter Principal) (Commitment, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.state.lookup(id).commitment(voter)
	if !ok {
		return Commitment{}, false
	}
	return c.clone(), true
}

// DelegateOf returns the principal delegator delegated to
func (e *Engine) DelegateOf(id ProposalID, delegator Principal) (Principal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.state.lookup(id).delegateOfPrincipal(delegator)
	if !ok {
		return "", fmt.Errorf("%w: %s on proposal %d", ErrDelegationNotFound, delegator, id)
	}
	return d, nil
}

// DelegationChain returns the direct delegators of delegate, in the order
// they delegated
func (e *Engine) DelegationChain(id ProposalID, delegate Principal) []Principal {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Principal(nil), e.state.lookup(id).chain(delegate)...)
}
