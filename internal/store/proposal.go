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

var ErrProposalExists = errors.New("proposal already registered")

var _ referendum.ProposalRegistry = (*Proposals)(nil)

// Proposals is the ProposalRegistry backed by a key-value store. A window is
// immutable once registered.
type Proposals struct {
	db.KVStore
}

// NewProposals creates a new proposal registry using KVStore
func NewProposals(db db.KVStore) *Proposals {
	return &Proposals{KVStore: db}
}

// PutWindow registers the window of a new proposal
func (p *Proposals) PutWindow(id referendum.ProposalID, w height.Window) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("proposal %d: %w", id, err)
	}

	key := proposalKey(prefixProposal, id)
	exists, err := p.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %d", ErrProposalExists, id)
	}

	return p.Put(key, encodeWindow(codec.NewEncoder(), w).Result())
}

// Window fetches the window of a proposal
func (p *Proposals) Window(id referendum.ProposalID) (height.Window, error) {
	b, err := p.Get(proposalKey(prefixProposal, id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return height.Window{}, referendum.ErrProposalNotFound
		}
		return height.Window{}, err
	}

	d := codec.NewDecoder(b)
	w, err := decodeWindow(d)
	if err != nil {
		return height.Window{}, fmt.Errorf("unmarshal window: %w", err)
	}
	if err := d.Finish(); err != nil {
		return height.Window{}, fmt.Errorf("unmarshal window: %w", err)
	}
	return w, nil
}
