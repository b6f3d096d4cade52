package height

import "fmt"

// Window holds the immutable timing and quorum parameters of a proposal.
//
//	[Start, End]             commit (and delegation) phase
//	[RevealStart, RevealEnd] reveal phase
//	(End, ...)               tally allowed
type Window struct {
	Start       Height `json:"start"`
	End         Height `json:"end"`
	RevealStart Height `json:"reveal_start"`
	RevealEnd   Height `json:"reveal_end"`
	Quorum      uint64 `json:"quorum"`
}

// Validate checks start < end < revealStart < revealEnd
func (w Window) Validate() error {
	if w.Start < w.End && w.End < w.RevealStart && w.RevealStart < w.RevealEnd {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidWindow, w)
}

// InCommitPhase reports whether start <= h <= end
func (w Window) InCommitPhase(h Height) bool {
	return w.Start <= h && h <= w.End
}

// RevealCheck returns ErrBeforeWindow if h < revealStart, ErrAfterWindow if
// h > revealEnd and nil otherwise.
func (w Window) RevealCheck(h Height) error {
	switch {
	case h < w.RevealStart:
		return ErrBeforeWindow
	case h > w.RevealEnd:
		return ErrAfterWindow
	default:
		return nil
	}
}

// Ended reports whether the commit phase is over, i.e. h > end
func (w Window) Ended(h Height) bool {
	return h > w.End
}

func (w Window) String() string {
	return fmt.Sprintf("{start:%d end:%d reveal:[%d,%d] quorum:%d}", w.Start, w.End, w.RevealStart, w.RevealEnd, w.Quorum)
}
