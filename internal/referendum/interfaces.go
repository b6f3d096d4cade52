package referendum

import "github.com/eigerco/referendum/internal/height"

type (
	// ProposalRegistry supplies the immutable timing and quorum parameters of a
	// proposal. Unknown proposals must yield an error wrapping ErrProposalNotFound.
	ProposalRegistry interface {
		Window(id ProposalID) (height.Window, error)
	}

	// EligibilityOracle confirms a principal's voting weight. AuthorizeWeight
	// must hold for every weight the engine counts; EligibleWeight resolves the
	// weight of delegators, who never claim one themselves.
	EligibilityOracle interface {
		AuthorizeWeight(voter Principal, claimed uint64) bool
		EligibleWeight(voter Principal) (uint64, bool)
	}

	// ResultsAggregator is notified with the totals of every successful tally
	ResultsAggregator interface {
		OnTally(id ProposalID, totals Totals) error
	}

	// ReferendumTracker is notified whenever a proposal's status is finalized
	ReferendumTracker interface {
		OnStatusChange(id ProposalID, status VotingStatus) error
	}
)
