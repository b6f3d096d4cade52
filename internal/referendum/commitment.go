package referendum

import (
	"fmt"
	"strings"

	"github.com/eigerco/referendum/internal/crypto"
	"github.com/eigerco/referendum/pkg/codec"
)

// CommitmentPreimage is the pinned byte layout hashed into a commitment:
//
//	choice (1 byte, 0x01 yes / 0x00 no)
//	‖ natural(len(salt)) ‖ salt
//	‖ natural(len(voter)) ‖ utf8(voter)
//
// where natural is the general natural number encoding of pkg/codec.
func CommitmentPreimage(choice bool, salt []byte, voter Principal) []byte {
	return codec.NewEncoder().
		Bool(choice).
		Bytes(salt).
		Text(string(voter)).
		Result()
}

// CommitmentHash is H(choice, salt, voter): blake2b-256 of CommitmentPreimage
func CommitmentHash(choice bool, salt []byte, voter Principal) crypto.Hash {
	return crypto.HashData(CommitmentPreimage(choice, salt, voter))
}

// ParseChoice accepts yes/no (and true/false) in any case
func ParseChoice(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
}
