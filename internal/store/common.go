package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/referendum"
	"github.com/eigerco/referendum/pkg/codec"
)

const (
	ErrFailedBatchCommit = "failed to commit batch: %w"
)

// Prefix constants for all store types
const (
	prefixProposal byte = iota + 1
	prefixEligibility
	prefixStatus
	prefixTotals
)

// PrefixToString converts a prefix byte to a string
func PrefixToString(p byte) string {
	switch p {
	case prefixProposal:
		return "proposal"
	case prefixEligibility:
		return "eligibility"
	case prefixStatus:
		return "status"
	case prefixTotals:
		return "totals"
	default:
		return "unknown"
	}
}

// makeKey creates a key from a prefix and an identifier
func makeKey(prefix byte, id []byte) []byte {
	key := make([]byte, 1+len(id))
	key[0] = prefix
	copy(key[1:], id)
	return key
}

// proposalKey encodes the id big endian so keys iterate in proposal order
func proposalKey(prefix byte, id referendum.ProposalID) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return makeKey(prefix, b[:])
}

func proposalFromKey(key []byte) (referendum.ProposalID, error) {
	if len(key) == 0 {
		return 0, errors.New("malformed key: empty")
	}
	if len(key) != 9 {
		return 0, fmt.Errorf("malformed %s key of %d bytes", PrefixToString(key[0]), len(key))
	}
	return referendum.ProposalID(binary.BigEndian.Uint64(key[1:])), nil
}

// prefixRange returns the [start, end) bounds of every key under prefix
func prefixRange(prefix byte) ([]byte, []byte) {
	return []byte{prefix}, []byte{prefix + 1}
}

func encodeWindow(e *codec.Encoder, w height.Window) *codec.Encoder {
	return e.
		Natural(uint64(w.Start)).
		Natural(uint64(w.End)).
		Natural(uint64(w.RevealStart)).
		Natural(uint64(w.RevealEnd)).
		Natural(w.Quorum)
}

func decodeWindow(d *codec.Decoder) (height.Window, error) {
	var fields [5]uint64
	for i := range fields {
		v, err := d.Natural()
		if err != nil {
			return height.Window{}, err
		}
		fields[i] = v
	}
	return height.Window{
		Start:       height.Height(fields[0]),
		End:         height.Height(fields[1]),
		RevealStart: height.Height(fields[2]),
		RevealEnd:   height.Height(fields[3]),
		Quorum:      fields[4],
	}, nil
}

func encodeTotals(e *codec.Encoder, t referendum.Totals) *codec.Encoder {
	return e.Natural(t.Yes).Natural(t.No).Natural(t.Total)
}

func decodeTotals(d *codec.Decoder) (referendum.Totals, error) {
	var t referendum.Totals
	var err error
	if t.Yes, err = d.Natural(); err != nil {
		return t, err
	}
	if t.No, err = d.Natural(); err != nil {
		return t, err
	}
	if t.Total, err = d.Natural(); err != nil {
		return t, err
	}
	return t, nil
}
