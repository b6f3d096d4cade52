package referendum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/referendum/internal/height"
)

func TestDelegate(t *testing.T) {
	e := newTestEngine(fakeOracle{})

	require.NoError(t, e.Delegate(100, testProposal, "A", "C"))
	require.NoError(t, e.Delegate(100, testProposal, "B", "C"))

	d, err := e.DelegateOf(testProposal, "A")
	require.NoError(t, err)
	assert.Equal(t, Principal("C"), d)
	assert.Equal(t, []Principal{"A", "B"}, e.DelegationChain(testProposal, "C"))
	assert.Empty(t, e.DelegationChain(testProposal, "A"))

	// delegation does not count as a vote
	assert.False(t, e.HasVoted(testProposal, "A"))
}

func TestDelegateOfUnknown(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	_, err := e.DelegateOf(testProposal, "A")
	requireCode(t, err, ErrDelegationNotFound)
}

func TestDelegateRejected(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, e *Engine)
		delegator Principal
		delegate  Principal
		err       *Error
	}{
		{
			name:      "self delegation",
			delegator: "A", delegate: "A",
			err: ErrSelfDelegation,
		},
		{
			name: "direct cycle",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.Delegate(100, testProposal, "A", "B"))
			},
			delegator: "B", delegate: "A",
			err: ErrCycleDetected,
		},
		{
			name: "transitive cycle",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.Delegate(100, testProposal, "A", "B"))
				require.NoError(t, e.Delegate(100, testProposal, "B", "C"))
			},
			delegator: "C", delegate: "A",
			err: ErrCycleDetected,
		},
		{
			name: "already delegated",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.Delegate(100, testProposal, "A", "B"))
			},
			delegator: "A", delegate: "C",
			err: ErrAlreadyDelegated,
		},
		{
			name: "already committed",
			setup: func(t *testing.T, e *Engine) {
				mustCommit(t, e, 100, "A", true)
			},
			delegator: "A", delegate: "B",
			err: ErrAlreadyCommitted,
		},
		{
			name: "cycle wins over committed",
			setup: func(t *testing.T, e *Engine) {
				mustCommit(t, e, 100, "A", true)
				require.NoError(t, e.Delegate(100, testProposal, "B", "A"))
			},
			delegator: "A", delegate: "B",
			err: ErrCycleDetected,
		},
		{
			name: "cycle wins over voted",
			setup: func(t *testing.T, e *Engine) {
				mustCommit(t, e, 100, "A", true)
				mustReveal(t, e, 160, "A", true, 1)
				require.NoError(t, e.Delegate(100, testProposal, "B", "A"))
			},
			delegator: "A", delegate: "B",
			err: ErrCycleDetected,
		},
		{
			name: "already voted",
			setup: func(t *testing.T, e *Engine) {
				mustCommit(t, e, 100, "A", true)
				mustReveal(t, e, 160, "A", true, 1)
			},
			delegator: "A", delegate: "B",
			err: ErrAlreadyVoted,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(fakeOracle{"A": 1})
			if tc.setup != nil {
				tc.setup(t, e)
			}
			requireUnchanged(t, e, tc.err, func() error {
				return e.Delegate(100, testProposal, tc.delegator, tc.delegate)
			})
		})
	}
}

func TestDelegateWindow(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	for _, h := range []height.Height{0, 49, 151, 200} {
		err := e.Delegate(h, testProposal, "A", "B")
		requireCode(t, err, ErrVotingNotOpen)
	}
	_, err := e.DelegateOf(testProposal, "A")
	requireCode(t, err, ErrDelegationNotFound)
}

func TestDelegateUnknownProposal(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	requireUnchanged(t, e, ErrProposalNotFound, func() error {
		return e.Delegate(100, 9, "A", "B")
	})
}

func TestDelegateLongChain(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	const n = 500
	for i := 0; i < n-1; i++ {
		require.NoError(t, e.Delegate(100, testProposal, principal(i), principal(i+1)))
	}

	err := e.Delegate(100, testProposal, principal(n-1), principal(0))
	requireCode(t, err, ErrCycleDetected)

	// joining the chain from outside stays acyclic
	require.NoError(t, e.Delegate(100, testProposal, principal(n-1), "outside"))
}

func TestReaches(t *testing.T) {
	ps := newProposalState()
	ps.delegateOf["A"] = "B"
	ps.delegateOf["B"] = "C"

	assert.True(t, reaches(ps, "A", "C"))
	assert.True(t, reaches(ps, "A", "A"))
	assert.False(t, reaches(ps, "C", "A"))
	assert.True(t, reaches(nil, "A", "A"))
	assert.False(t, reaches(nil, "A", "B"))

	// a corrupted cyclic graph still terminates
	ps.delegateOf["C"] = "A"
	assert.False(t, reaches(ps, "A", "X"))
}
