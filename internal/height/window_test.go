package height

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWindow = Window{Start: 50, End: 150, RevealStart: 151, RevealEnd: 200, Quorum: 100}

func TestWindow_Validate(t *testing.T) {
	require.NoError(t, testWindow.Validate())

	tests := []struct {
		name   string
		window Window
	}{
		{"zero window", Window{}},
		{"start equals end", Window{Start: 10, End: 10, RevealStart: 11, RevealEnd: 12}},
		{"reveal overlaps commit", Window{Start: 10, End: 20, RevealStart: 20, RevealEnd: 30}},
		{"reveal end before reveal start", Window{Start: 10, End: 20, RevealStart: 30, RevealEnd: 25}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.window.Validate()
			require.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestWindow_InCommitPhase(t *testing.T) {
	assert.False(t, testWindow.InCommitPhase(49))
	assert.True(t, testWindow.InCommitPhase(50))
	assert.True(t, testWindow.InCommitPhase(100))
	assert.True(t, testWindow.InCommitPhase(150))
	assert.False(t, testWindow.InCommitPhase(151))
}

func TestWindow_RevealCheck(t *testing.T) {
	assert.ErrorIs(t, testWindow.RevealCheck(150), ErrBeforeWindow)
	assert.NoError(t, testWindow.RevealCheck(151))
	assert.NoError(t, testWindow.RevealCheck(200))
	assert.ErrorIs(t, testWindow.RevealCheck(201), ErrAfterWindow)
}

func TestWindow_Ended(t *testing.T) {
	assert.False(t, testWindow.Ended(99))
	assert.False(t, testWindow.Ended(150))
	assert.True(t, testWindow.Ended(151))
}
