package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/eigerco/referendum/internal/referendum"
)

const (
	OpCommit        = "commit"
	OpReveal        = "reveal"
	OpDelegate      = "delegate"
	OpTally         = "tally"
	OpEmergencyStop = "emergency_stop"
	OpHasVoted      = "has_voted"
	OpStatus        = "status"
)

var ErrUnknownOp = errors.New("unknown operation")

// Step is one scripted call against the engine. Fields not used by Op are
// ignored.
type Step struct {
	Op       string                `json:"op"`
	Height   uint64                `json:"height"`
	Proposal referendum.ProposalID `json:"proposal"`
	Voter    referendum.Principal  `json:"voter,omitempty"`
	Delegate referendum.Principal  `json:"delegate,omitempty"`
	Caller   referendum.Principal  `json:"caller,omitempty"`
	Choice   string                `json:"choice,omitempty"`
	Salt     string                `json:"salt,omitempty"`
	// Hash overrides the commitment computed from Choice, Salt and Voter
	Hash   string `json:"hash,omitempty"`
	Weight uint64 `json:"weight,omitempty"`
	Halt   bool   `json:"halt,omitempty"`
}

func ParseSteps(data []byte) ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("unmarshal steps: %w", err)
	}
	for i, s := range steps {
		switch s.Op {
		case OpCommit, OpReveal, OpDelegate, OpTally, OpEmergencyStop, OpHasVoted, OpStatus:
		default:
			return nil, fmt.Errorf("step %d: %w %q", i+1, ErrUnknownOp, s.Op)
		}
	}
	return steps, nil
}

func LoadSteps(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read steps: %w", err)
	}
	return ParseSteps(data)
}
