package referendum

import (
	"fmt"

	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/safemath"
)

const opTally = "tally"

// Tally finalizes a proposal once its commit phase has ended. It is a one-time
// operation: the VotingStatus it writes is immutable and a second call fails
// with ErrTallyAlreadyComputed.
//
// When the revealed weight falls short of the quorum no status is written, the
// referendum stays unfinalized and Tally may be called again later.
//
// Registered ResultsAggregator and ReferendumTracker collaborators are notified
// after the status is written; their failures are logged and do not affect
// the result.
func (e *Engine) Tally(now height.Height, id ProposalID) (VotingStatus, error) {
	e.mu.Lock()
	status, err := tally(e.state, e.registry, now, id)
	e.mu.Unlock()

	e.finish(opTally, id, now, err)
	if err != nil {
		return VotingStatus{}, err
	}

	e.log.Info().
		Uint64("proposal", uint64(id)).
		Uint64("yes", status.YesVotes).
		Uint64("no", status.NoVotes).
		Uint64("total", status.TotalVotes).
		Bool("passed", status.Passed()).
		Msg("referendum tallied")
	e.notify(id, status)
	return status, nil
}

func tally(s *State, registry ProposalRegistry, now height.Height, id ProposalID) (VotingStatus, error) {
	if err := s.guard(); err != nil {
		return VotingStatus{}, err
	}
	w, err := window(registry, id)
	if err != nil {
		return VotingStatus{}, err
	}
	if !w.Ended(now) {
		return VotingStatus{}, fmt.Errorf("%w: height %d, voting ends at %d", ErrTallyNotAllowed, now, w.End)
	}

	ps := s.lookup(id)
	if _, ok := ps.votingStatus(); ok {
		return VotingStatus{}, fmt.Errorf("%w: proposal %d", ErrTallyAlreadyComputed, id)
	}

	totals, err := sumRevealed(ps)
	if err != nil {
		return VotingStatus{}, err
	}
	if totals.Total < w.Quorum {
		return VotingStatus{}, fmt.Errorf("%w: %d of %d", ErrQuorumNotMet, totals.Total, w.Quorum)
	}

	status := VotingStatus{
		IsOpen:     false,
		Window:     w,
		TotalVotes: totals.Total,
		YesVotes:   totals.Yes,
		NoVotes:    totals.No,
		TalliedAt:  now,
	}
	stored := status
	s.ensure(id).status = &stored
	return status, nil
}

// sumRevealed adds up the effective weight of every revealed commitment by
// choice. Delegators are never commitments themselves, so every counted
// principal contributes exactly once.
func sumRevealed(ps *proposalState) (Totals, error) {
	var totals Totals
	if ps == nil {
		return totals, nil
	}

	for voter, c := range ps.commitments {
		if !c.Revealed || c.Choice == nil {
			continue
		}
		w, ok := c.EffectiveWeight()
		if !ok {
			return Totals{}, fmt.Errorf("%w: weight of %s overflows", ErrInvalidWeight, voter)
		}
		if *c.Choice {
			totals.Yes, ok = safemath.Add64(totals.Yes, w)
		} else {
			totals.No, ok = safemath.Add64(totals.No, w)
		}
		if !ok {
			return Totals{}, fmt.Errorf("%w: tally overflows", ErrInvalidWeight)
		}
	}

	total, ok := safemath.Add64(totals.Yes, totals.No)
	if !ok {
		return Totals{}, fmt.Errorf("%w: tally overflows", ErrInvalidWeight)
	}
	totals.Total = total
	return totals, nil
}

func (e *Engine) notify(id ProposalID, status VotingStatus) {
	for _, a := range e.aggregators {
		if err := a.OnTally(id, status.Totals()); err != nil {
			e.log.Warn().Uint64("proposal", uint64(id)).Err(err).Msg("results aggregator failed")
		}
	}
	for _, t := range e.trackers {
		if err := t.OnStatusChange(id, status); err != nil {
			e.log.Warn().Uint64("proposal", uint64(id)).Err(err).Msg("referendum tracker failed")
		}
	}
}
