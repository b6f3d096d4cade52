package referendum

import "fmt"

const opEmergency = "emergency_stop"

// SetEmergencyStop sets or clears the halt flag. Only the owner may call it;
// it is the single operation that works while halted, and nothing clears the
// flag automatically.
func (e *Engine) SetEmergencyStop(caller Principal, halt bool) error {
	e.mu.Lock()
	err := setEmergencyStop(e.state, e.owner, caller, halt)
	e.mu.Unlock()

	e.metrics.observe(opEmergency, err)
	if err != nil {
		e.log.Warn().Str("caller", string(caller)).Err(err).Msg("emergency stop rejected")
		return err
	}
	e.metrics.setHalted(halt)
	e.log.Info().Str("caller", string(caller)).Bool("halted", halt).Msg("emergency stop updated")
	return nil
}

func setEmergencyStop(s *State, owner, caller Principal, halt bool) error {
	if owner == "" || caller != owner {
		return fmt.Errorf("%w: %s is not the owner", ErrNotAuthorized, caller)
	}
	s.halted = halt
	return nil
}

// Halted reports whether mutating operations are currently rejected
func (e *Engine) Halted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.halted
}
