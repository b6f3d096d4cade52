package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/pkg/db/pebble"
)

var testWindow = height.Window{Start: 50, End: 150, RevealStart: 151, RevealEnd: 200, Quorum: 1}

func newDB(t *testing.T) *pebble.KVStore {
	t.Helper()
	db, err := pebble.NewKVStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}
