package referendum

// State is the shared state container of the referendum. It is owned by one
// Engine and handed by reference to each operation; operations validate
// everything first and only then write, so a failing operation leaves State
// untouched.
type State struct {
	halted    bool
	proposals map[ProposalID]*proposalState
}

// proposalState holds everything keyed by (proposal, principal)
type proposalState struct {
	commitments map[Principal]*Commitment
	// voted is the VotedMark set: principals whose weight has been counted
	voted map[Principal]struct{}
	// delegateOf holds the outgoing delegation edge of each delegator
	delegateOf map[Principal]Principal
	// chains holds, per delegate, its direct delegators in delegation order
	chains map[Principal][]Principal
	status *VotingStatus
}

func NewState() *State {
	return &State{proposals: make(map[ProposalID]*proposalState)}
}

func newProposalState() *proposalState {
	return &proposalState{
		commitments: make(map[Principal]*Commitment),
		voted:       make(map[Principal]struct{}),
		delegateOf:  make(map[Principal]Principal),
		chains:      make(map[Principal][]Principal),
	}
}

// lookup returns the proposal's state or nil. It never creates entries and is
// safe on the read and validation paths.
func (s *State) lookup(id ProposalID) *proposalState {
	return s.proposals[id]
}

// ensure returns the proposal's state, creating it. Only call after all
// validation has passed.
func (s *State) ensure(id ProposalID) *proposalState {
	ps, ok := s.proposals[id]
	if !ok {
		ps = newProposalState()
		s.proposals[id] = ps
	}
	return ps
}

func (ps *proposalState) commitment(voter Principal) (*Commitment, bool) {
	if ps == nil {
		return nil, false
	}
	c, ok := ps.commitments[voter]
	return c, ok
}

func (ps *proposalState) hasVoted(voter Principal) bool {
	if ps == nil {
		return false
	}
	_, ok := ps.voted[voter]
	return ok
}

func (ps *proposalState) delegateOfPrincipal(delegator Principal) (Principal, bool) {
	if ps == nil {
		return "", false
	}
	d, ok := ps.delegateOf[delegator]
	return d, ok
}

func (ps *proposalState) chain(delegate Principal) []Principal {
	if ps == nil {
		return nil
	}
	return ps.chains[delegate]
}

func (ps *proposalState) votingStatus() (*VotingStatus, bool) {
	if ps == nil || ps.status == nil {
		return nil, false
	}
	return ps.status, true
}

// participants is the number of distinct principals known for the proposal,
// an upper bound on the length of any delegation path.
func (ps *proposalState) participants() int {
	if ps == nil {
		return 0
	}
	return len(ps.commitments) + len(ps.delegateOf) + len(ps.chains)
}
