package referendum

import (
	"errors"
	"fmt"
)

// Code is the stable numeric error code returned to callers
type Code uint16

// Category groups errors by cause
type Category uint8

const (
	CategoryAuthorization Category = iota + 1
	CategoryTiming
	CategoryState
	CategoryValidation
	CategoryGraph
	CategorySystem
)

func (c Category) String() string {
	switch c {
	case CategoryAuthorization:
		return "authorization"
	case CategoryTiming:
		return "timing"
	case CategoryState:
		return "state"
	case CategoryValidation:
		return "validation"
	case CategoryGraph:
		return "graph"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Error is a typed referendum failure. Values are compared by identity, so
// two errors sharing a code (AlreadyVoted and AlreadyCommitted) stay distinct.
type Error struct {
	Code     Code
	Name     string
	Category Category
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Name, e.Code)
}

var (
	ErrNotAuthorized        = &Error{401, "NotAuthorized", CategoryAuthorization}
	ErrHalted               = &Error{403, "Halted", CategorySystem}
	ErrProposalNotFound     = &Error{404, "ProposalNotFound", CategoryState}
	ErrVotingNotOpen        = &Error{405, "VotingNotOpen", CategoryTiming}
	ErrAlreadyVoted         = &Error{406, "AlreadyVoted", CategoryState}
	ErrAlreadyCommitted     = &Error{406, "AlreadyCommitted", CategoryState}
	ErrNotEligible          = &Error{407, "NotEligible", CategoryValidation}
	ErrInvalidChoice        = &Error{408, "InvalidChoice", CategoryValidation}
	ErrInvalidWeight        = &Error{409, "InvalidWeight", CategoryValidation}
	ErrTallyNotAllowed      = &Error{410, "TallyNotAllowed", CategoryTiming}
	ErrTallyAlreadyComputed = &Error{411, "TallyAlreadyComputed", CategoryState}
	ErrDelegationNotFound   = &Error{412, "DelegationNotFound", CategoryState}
	ErrAlreadyDelegated     = &Error{413, "AlreadyDelegated", CategoryState}
	ErrInvalidRevealProof   = &Error{416, "InvalidRevealProof", CategoryValidation}
	ErrProposalExpired      = &Error{417, "ProposalExpired", CategoryTiming}
	ErrQuorumNotMet         = &Error{419, "InvalidQuorum", CategoryValidation}
	ErrVoteNotCommitted     = &Error{420, "VoteNotCommitted", CategoryState}
	ErrSelfDelegation       = &Error{422, "SelfDelegation", CategoryGraph}
	ErrCycleDetected        = &Error{423, "CycleDetected", CategoryGraph}
)

// CodeOf extracts the numeric code of a referendum error anywhere in err's chain
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// NameOf returns the stable name of a referendum error, or "" if err is not one
func NameOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Name
	}
	return ""
}
