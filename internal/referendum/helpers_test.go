package referendum

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/referendum/internal/crypto"
	"github.com/eigerco/referendum/internal/height"
)

const testProposal ProposalID = 1

var testWindow = height.Window{Start: 50, End: 150, RevealStart: 151, RevealEnd: 200, Quorum: 100}

type fakeRegistry map[ProposalID]height.Window

func (r fakeRegistry) Window(id ProposalID) (height.Window, error) {
	w, ok := r[id]
	if !ok {
		return height.Window{}, ErrProposalNotFound
	}
	return w, nil
}

// fakeOracle authorizes any weight up to the principal's eligible weight
type fakeOracle map[Principal]uint64

func (o fakeOracle) AuthorizeWeight(voter Principal, claimed uint64) bool {
	w, ok := o[voter]
	return ok && claimed > 0 && claimed <= w
}

func (o fakeOracle) EligibleWeight(voter Principal) (uint64, bool) {
	w, ok := o[voter]
	return w, ok
}

type recorder struct {
	totals   map[ProposalID]Totals
	statuses map[ProposalID]VotingStatus
	err      error
}

func newRecorder() *recorder {
	return &recorder{
		totals:   make(map[ProposalID]Totals),
		statuses: make(map[ProposalID]VotingStatus),
	}
}

func (r *recorder) OnTally(id ProposalID, totals Totals) error {
	r.totals[id] = totals
	return r.err
}

func (r *recorder) OnStatusChange(id ProposalID, status VotingStatus) error {
	r.statuses[id] = status
	return r.err
}

func newTestEngine(oracle fakeOracle, opts ...Option) *Engine {
	return New("owner", fakeRegistry{testProposal: testWindow}, oracle, opts...)
}

func salt(voter Principal) []byte {
	return []byte("salt-" + string(voter))
}

func mustCommit(t *testing.T, e *Engine, now height.Height, voter Principal, choice bool) {
	t.Helper()
	require.NoError(t, e.Commit(now, testProposal, voter, CommitmentHash(choice, salt(voter), voter)))
}

func mustReveal(t *testing.T, e *Engine, now height.Height, voter Principal, choice bool, weight uint64) {
	t.Helper()
	require.NoError(t, e.Reveal(now, testProposal, voter, choice, salt(voter), weight))
}

func requireCode(t *testing.T, err error, want *Error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, want), "got %v, want %v", err, want)
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, want.Code, code)
}

// cloneState deep-copies s so a later comparison proves nothing was written
func cloneState(s *State) *State {
	out := &State{halted: s.halted, proposals: make(map[ProposalID]*proposalState, len(s.proposals))}
	for id, ps := range s.proposals {
		cp := newProposalState()
		for k, c := range ps.commitments {
			cc := c.clone()
			cp.commitments[k] = &cc
		}
		for k := range ps.voted {
			cp.voted[k] = struct{}{}
		}
		for k, v := range ps.delegateOf {
			cp.delegateOf[k] = v
		}
		for k, v := range ps.chains {
			cp.chains[k] = append([]Principal(nil), v...)
		}
		if ps.status != nil {
			st := *ps.status
			cp.status = &st
		}
		out.proposals[id] = cp
	}
	return out
}

// requireUnchanged runs op, which must fail with want, and checks it left
// the engine state exactly as it was
func requireUnchanged(t *testing.T, e *Engine, want *Error, op func() error) {
	t.Helper()
	before := cloneState(e.state)
	requireCode(t, op(), want)
	require.Equal(t, before, e.state)
}

func principal(i int) Principal {
	return Principal(fmt.Sprintf("P%03d", i))
}

func otherHash() crypto.Hash {
	return crypto.HashData([]byte("not a commitment"))
}
