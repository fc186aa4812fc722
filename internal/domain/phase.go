package domain

// TurnState represents where a room is in the turn lifecycle.
type TurnState string

const (
	StateIdle          TurnState = "IDLE"          // Not started, players gathering
	StateAwaitingAck   TurnState = "AWAITING_ACK"  // Word assigned, waiting for every player to confirm
	StateRunning       TurnState = "RUNNING"       // Countdown active, guesses adjudicated
	StateTransitioning TurnState = "TRANSITIONING" // Fixed pause before the next turn begins
)

// String returns the string representation of the state.
func (s TurnState) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from the current state to the
// target state is valid.
func (s TurnState) CanTransitionTo(target TurnState) bool {
	validTransitions := map[TurnState][]TurnState{
		StateIdle:          {StateAwaitingAck},
		StateAwaitingAck:   {StateRunning, StateIdle},
		StateRunning:       {StateTransitioning, StateIdle},
		StateTransitioning: {StateAwaitingAck, StateIdle},
	}

	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}
