package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/eigerco/referendum/internal/crypto"
	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/referendum"
	"github.com/eigerco/referendum/pkg/log"
)

// Outcome is the result of one step
type Outcome struct {
	Step  int
	Op    string
	Err   error
	Value string
}

// String renders the outcome as a single transcript line, e.g.
//
//	3 delegate error 423 CycleDetected
//	5 tally ok yes=110 no=30 total=140 passed=true
func (o Outcome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", o.Step, o.Op)
	if o.Err != nil {
		code, ok := referendum.CodeOf(o.Err)
		if !ok {
			fmt.Fprintf(&b, " error %v", o.Err)
			return b.String()
		}
		fmt.Fprintf(&b, " error %d %s", code, referendum.NameOf(o.Err))
		return b.String()
	}
	b.WriteString(" ok")
	if o.Value != "" {
		b.WriteString(" ")
		b.WriteString(o.Value)
	}
	return b.String()
}

// Transcript joins the outcomes one per line
func Transcript(outcomes []Outcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		b.WriteString(o.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Run replays steps in order. Engine failures are recorded in the outcomes;
// Run itself only fails when ctx is done.
func Run(ctx context.Context, e *referendum.Engine, steps []Step) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(steps))
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		o := apply(e, s)
		o.Step = i + 1
		log.Cmd.Debug().Str("outcome", o.String()).Msg("step")
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func apply(e *referendum.Engine, s Step) Outcome {
	now := height.Height(s.Height)
	o := Outcome{Op: s.Op}

	switch s.Op {
	case OpCommit:
		hash, err := commitment(s)
		if err != nil {
			o.Err = err
			return o
		}
		o.Err = e.Commit(now, s.Proposal, s.Voter, hash)
	case OpReveal:
		choice, err := referendum.ParseChoice(s.Choice)
		if err != nil {
			o.Err = err
			return o
		}
		o.Err = e.Reveal(now, s.Proposal, s.Voter, choice, []byte(s.Salt), s.Weight)
	case OpDelegate:
		o.Err = e.Delegate(now, s.Proposal, s.Voter, s.Delegate)
	case OpTally:
		status, err := e.Tally(now, s.Proposal)
		o.Err = err
		if err == nil {
			o.Value = formatStatus(status)
		}
	case OpEmergencyStop:
		o.Err = e.SetEmergencyStop(s.Caller, s.Halt)
	case OpHasVoted:
		o.Value = fmt.Sprintf("%t", e.HasVoted(s.Proposal, s.Voter))
	case OpStatus:
		status, ok := e.VotingStatus(s.Proposal)
		if !ok {
			o.Value = "none"
			return o
		}
		o.Value = formatStatus(status)
	default:
		o.Err = fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
	}
	return o
}

func commitment(s Step) (crypto.Hash, error) {
	if s.Hash != "" {
		return crypto.ParseHash(s.Hash)
	}
	choice, err := referendum.ParseChoice(s.Choice)
	if err != nil {
		return crypto.Hash{}, err
	}
	return referendum.CommitmentHash(choice, []byte(s.Salt), s.Voter), nil
}

func formatStatus(s referendum.VotingStatus) string {
	return fmt.Sprintf("yes=%d no=%d total=%d passed=%t", s.YesVotes, s.NoVotes, s.TotalVotes, s.Passed())
}
