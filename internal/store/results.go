package store

import (
	"errors"
	"fmt"

	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/referendum"
	"github.com/eigerco/referendum/pkg/codec"
	"github.com/eigerco/referendum/pkg/db"
	"github.com/eigerco/referendum/pkg/db/pebble"
)

var (
	ErrResultNotFound = errors.New("result not found")
	ErrResultExists   = errors.New("result already stored")
)

var (
	_ referendum.ResultsAggregator = (*Results)(nil)
	_ referendum.ReferendumTracker = (*Results)(nil)
)

// Results persists tally outcomes. It is registered with the engine both as
// ResultsAggregator and ReferendumTracker.
type Results struct {
	db.KVStore
}

// NewResults creates a new results store using KVStore
func NewResults(db db.KVStore) *Results {
	return &Results{KVStore: db}
}

// ProposalStatus pairs a finalized status with its proposal
type ProposalStatus struct {
	ID     referendum.ProposalID   `json:"id"`
	Status referendum.VotingStatus `json:"status"`
}

// OnTally stores the totals of a proposal. Stored totals are final.
func (r *Results) OnTally(id referendum.ProposalID, totals referendum.Totals) error {
	key := proposalKey(prefixTotals, id)
	exists, err := r.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: totals of proposal %d", ErrResultExists, id)
	}
	return r.Put(key, encodeTotals(codec.NewEncoder(), totals).Result())
}

// OnStatusChange stores the status together with its totals, unless totals
// were already stored by OnTally. A stored status is final.
func (r *Results) OnStatusChange(id referendum.ProposalID, status referendum.VotingStatus) error {
	statusKey := proposalKey(prefixStatus, id)
	exists, err := r.Has(statusKey)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: status of proposal %d", ErrResultExists, id)
	}
	totalsKey := proposalKey(prefixTotals, id)
	hasTotals, err := r.Has(totalsKey)
	if err != nil {
		return err
	}

	batch := r.NewBatch()
	defer batch.Close() //nolint:errcheck

	if err := batch.Put(statusKey, encodeStatus(status)); err != nil {
		return err
	}
	if !hasTotals {
		if err := batch.Put(totalsKey, encodeTotals(codec.NewEncoder(), status.Totals()).Result()); err != nil {
			return err
		}
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf(ErrFailedBatchCommit, err)
	}
	return nil
}

func (r *Results) Totals(id referendum.ProposalID) (referendum.Totals, error) {
	b, err := r.Get(proposalKey(prefixTotals, id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return referendum.Totals{}, ErrResultNotFound
		}
		return referendum.Totals{}, err
	}

	d := codec.NewDecoder(b)
	t, err := decodeTotals(d)
	if err != nil {
		return referendum.Totals{}, fmt.Errorf("unmarshal totals: %w", err)
	}
	return t, d.Finish()
}

func (r *Results) Status(id referendum.ProposalID) (referendum.VotingStatus, error) {
	b, err := r.Get(proposalKey(prefixStatus, id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return referendum.VotingStatus{}, ErrResultNotFound
		}
		return referendum.VotingStatus{}, err
	}
	return decodeStatus(b)
}

// Statuses lists every stored status in proposal order
func (r *Results) Statuses() ([]ProposalStatus, error) {
	start, end := prefixRange(prefixStatus)
	it, err := r.NewIterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Close() //nolint:errcheck

	var out []ProposalStatus
	for it.Next() {
		id, err := proposalFromKey(it.Key())
		if err != nil {
			return nil, err
		}
		b, err := it.Value()
		if err != nil {
			return nil, err
		}
		status, err := decodeStatus(b)
		if err != nil {
			return nil, fmt.Errorf("proposal %d: %w", id, err)
		}
		out = append(out, ProposalStatus{ID: id, Status: status})
	}
	return out, nil
}

func encodeStatus(s referendum.VotingStatus) []byte {
	e := codec.NewEncoder().Bool(s.IsOpen)
	return encodeWindow(e, s.Window).
		Natural(s.TotalVotes).
		Natural(s.YesVotes).
		Natural(s.NoVotes).
		Natural(uint64(s.TalliedAt)).
		Result()
}

func decodeStatus(b []byte) (referendum.VotingStatus, error) {
	var (
		s   referendum.VotingStatus
		err error
	)
	d := codec.NewDecoder(b)
	if s.IsOpen, err = d.Bool(); err != nil {
		return s, fmt.Errorf("unmarshal status: %w", err)
	}
	if s.Window, err = decodeWindow(d); err != nil {
		return s, fmt.Errorf("unmarshal status: %w", err)
	}
	var fields [4]uint64
	for i := range fields {
		if fields[i], err = d.Natural(); err != nil {
			return s, fmt.Errorf("unmarshal status: %w", err)
		}
	}
	s.TotalVotes, s.YesVotes, s.NoVotes = fields[0], fields[1], fields[2]
	s.TalliedAt = height.Height(fields[3])
	if err := d.Finish(); err != nil {
		return s, fmt.Errorf("unmarshal status: %w", err)
	}
	return s, nil
}
