package store

import (
	"errors"
	"fmt"

	"github.com/eigerco/referendum/internal/referendum"
	"github.com/eigerco/referendum/pkg/codec"
	"github.com/eigerco/referendum/pkg/db"
	"github.com/eigerco/referendum/pkg/db/pebble"
	"github.com/eigerco/referendum/pkg/log"
)

var _ referendum.EligibilityOracle = (*Eligibility)(nil)

// Eligibility is an EligibilityOracle over a table of eligible weights. A
// claimed weight is authorized when it is positive and does not exceed the
// principal's eligible weight.
type Eligibility struct {
	db.KVStore
}

// NewEligibility creates a new eligibility table using KVStore
func NewEligibility(db db.KVStore) *Eligibility {
	return &Eligibility{KVStore: db}
}

func (e *Eligibility) SetWeight(p referendum.Principal, weight uint64) error {
	return e.Put(makeKey(prefixEligibility, []byte(p)), codec.EncodeNatural(weight))
}

// SetWeights stores all weights atomically
func (e *Eligibility) SetWeights(weights map[referendum.Principal]uint64) error {
	batch := e.NewBatch()
	defer batch.Close() //nolint:errcheck

	for p, w := range weights {
		if err := batch.Put(makeKey(prefixEligibility, []byte(p)), codec.EncodeNatural(w)); err != nil {
			return err
		}
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf(ErrFailedBatchCommit, err)
	}
	return nil
}

// Weight returns the eligible weight of p, or pebble.ErrNotFound
func (e *Eligibility) Weight(p referendum.Principal) (uint64, error) {
	b, err := e.Get(makeKey(prefixEligibility, []byte(p)))
	if err != nil {
		return 0, err
	}

	d := codec.NewDecoder(b)
	w, err := d.Natural()
	if err != nil {
		return 0, fmt.Errorf("unmarshal weight: %w", err)
	}
	return w, d.Finish()
}

// EligibleWeight reports the eligible weight of p. Storage failures are
// logged and treated as ineligible.
func (e *Eligibility) EligibleWeight(p referendum.Principal) (uint64, bool) {
	w, err := e.Weight(p)
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			log.Storage.Error().Err(err).Str("principal", string(p)).Msg("failed to read eligible weight")
		}
		return 0, false
	}
	return w, true
}

func (e *Eligibility) AuthorizeWeight(p referendum.Principal, claimed uint64) bool {
	w, ok := e.EligibleWeight(p)
	return ok && claimed > 0 && claimed <= w
}
