package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/eigerco/referendum/internal/height"
	"github.com/eigerco/referendum/internal/referendum"
	"github.com/eigerco/referendum/internal/store"
	"github.com/eigerco/referendum/pkg/log"
)

// Genesis is the initial configuration of a referendum deployment
type Genesis struct {
	Owner     referendum.Principal            `json:"owner"`
	Proposals []Proposal                      `json:"proposals"`
	Weights   map[referendum.Principal]uint64 `json:"weights"`
}

type Proposal struct {
	ID     referendum.ProposalID `json:"id"`
	Window height.Window         `json:"window"`
}

func ParseGenesis(data []byte) (Genesis, error) {
	var g Genesis
	if err := json.Unmarshal(data, &g); err != nil {
		return Genesis{}, fmt.Errorf("unmarshal genesis: %w", err)
	}
	return g, nil
}

func LoadGenesis(path string) (Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("read genesis: %w", err)
	}
	return ParseGenesis(data)
}

var ErrGenesisConflict = errors.New("genesis window differs from the registered one")

// Seed registers the genesis proposals and eligible weights. Proposals that
// are already registered with the same window are skipped, so a genesis can
// be applied again to a persistent store.
func Seed(g Genesis, proposals *store.Proposals, eligibility *store.Eligibility) error {
	for _, p := range g.Proposals {
		err := proposals.PutWindow(p.ID, p.Window)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrProposalExists) {
			return fmt.Errorf("seed proposal: %w", err)
		}
		registered, err := proposals.Window(p.ID)
		if err != nil {
			return fmt.Errorf("seed proposal: %w", err)
		}
		if registered != p.Window {
			return fmt.Errorf("%w: proposal %d has %s, genesis %s", ErrGenesisConflict, p.ID, registered, p.Window)
		}
		log.Cmd.Debug().Uint64("proposal", uint64(p.ID)).Msg("proposal already registered")
	}
	if len(g.Weights) == 0 {
		return nil
	}
	if err := eligibility.SetWeights(g.Weights); err != nil {
		return fmt.Errorf("seed weights: %w", err)
	}
	return nil
}
