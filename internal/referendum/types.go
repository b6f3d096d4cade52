package referendum

import (
	"github.com/eigerco/referendum/internal/crypto"
	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/safemath"
)

// ProposalID identifies a proposal in the ProposalRegistry
type ProposalID uint64

// Principal identifies a voter, delegator or delegate
type Principal string

// Commitment is the hidden vote of a principal. It is created once at commit
// time and mutated exactly once when revealed; it is never deleted.
type Commitment struct {
	Hash     crypto.Hash
	Revealed bool
	// Choice is nil until the commitment is revealed
	Choice *bool
	// Weight is the principal's own authorized weight
	Weight uint64
	// DelegatedWeight is the weight absorbed from delegators when revealed
	DelegatedWeight uint64
}

// EffectiveWeight is the weight the commitment contributes to the tally. It
// reports false if own and delegated weight overflow together.
func (c Commitment) EffectiveWeight() (uint64, bool) {
	return safemath.Add64(c.Weight, c.DelegatedWeight)
}

func (c Commitment) clone() Commitment {
	if c.Choice != nil {
		choice := *c.Choice
		c.Choice = &choice
	}
	return c
}

// Totals are the aggregated revealed weights of a proposal
type Totals struct {
	Yes   uint64 `json:"yes"`
	No    uint64 `json:"no"`
	Total uint64 `json:"total"`
}

// VotingStatus is the final, immutable result of a successful tally
type VotingStatus struct {
	IsOpen     bool          `json:"is_open"`
	Window     height.Window `json:"window"`
	TotalVotes uint64        `json:"total_votes"`
	YesVotes   uint64        `json:"yes_votes"`
	NoVotes    uint64        `json:"no_votes"`
	TalliedAt  height.Height `json:"tallied_at"`
}

func (s VotingStatus) Totals() Totals {
	return Totals{Yes: s.YesVotes, No: s.NoVotes, Total: s.TotalVotes}
}

// Passed reports whether the yes votes outweigh the no votes
func (s VotingStatus) Passed() bool {
	return s.YesVotes > s.NoVotes
}
