package referendum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/referendum/internal/height"
)

func TestCommit(t *testing.T) {
	e := newTestEngine(fakeOracle{"V1": 10})
	hash := CommitmentHash(true, []byte("salt1"), "V1")

	require.NoError(t, e.Commit(100, testProposal, "V1", hash))

	c, ok := e.Commitment(testProposal, "V1")
	require.True(t, ok)
	assert.Equal(t, hash, c.Hash)
	assert.False(t, c.Revealed)
	assert.Nil(t, c.Choice)
	w, ok := c.EffectiveWeight()
	assert.True(t, ok)
	assert.Zero(t, w)
	assert.False(t, e.HasVoted(testProposal, "V1"))
}

func TestCommitWindow(t *testing.T) {
	tests := []struct {
		name   string
		height height.Height
		err    *Error
	}{
		{"before start", 49, ErrVotingNotOpen},
		{"at start", 50, nil},
		{"in window", 100, nil},
		{"at end", 150, nil},
		{"after end", 151, ErrVotingNotOpen},
		{"during reveal", 180, ErrVotingNotOpen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(fakeOracle{})
			err := e.Commit(tc.height, testProposal, "V1", CommitmentHash(true, salt("V1"), "V1"))
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			requireCode(t, err, tc.err)
			_, ok := e.Commitment(testProposal, "V1")
			assert.False(t, ok)
		})
	}
}

func TestCommitFirstCommitterWins(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	first := CommitmentHash(true, salt("V1"), "V1")
	require.NoError(t, e.Commit(100, testProposal, "V1", first))

	requireUnchanged(t, e, ErrAlreadyCommitted, func() error {
		return e.Commit(101, testProposal, "V1", otherHash())
	})

	c, _ := e.Commitment(testProposal, "V1")
	assert.Equal(t, first, c.Hash)
}

func TestCommitAfterDelegating(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	require.NoError(t, e.Delegate(100, testProposal, "A", "B"))

	requireUnchanged(t, e, ErrAlreadyDelegated, func() error {
		return e.Commit(100, testProposal, "A", CommitmentHash(true, salt("A"), "A"))
	})
}

func TestCommitUnknownProposal(t *testing.T) {
	e := newTestEngine(fakeOracle{})
	requireUnchanged(t, e, ErrProposalNotFound, func() error {
		return e.Commit(100, 7, "V1", otherHash())
	})
}

func TestCommitInvalidWindow(t *testing.T) {
	registry := fakeRegistry{testProposal: {Start: 100, End: 50, RevealStart: 51, RevealEnd: 60}}
	e := New("owner", registry, fakeOracle{})

	err := e.Commit(100, testProposal, "V1", otherHash())
	require.ErrorIs(t, err, height.ErrInvalidWindow)
}

func TestCommitIsolatedPerProposal(t *testing.T) {
	registry := fakeRegistry{1: testWindow, 2: testWindow}
	e := New("owner", registry, fakeOracle{})

	require.NoError(t, e.Commit(100, 1, "V1", otherHash()))
	require.NoError(t, e.Commit(100, 2, "V1", otherHash()))
}
