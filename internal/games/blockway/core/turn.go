package core

import "errors"

// TurnController owns the authoritative level state for a play session. It
// serializes turns: Apply runs the engine's full state machine to Settled
// before returning, so only one turn is ever in flight. Every settled state
// is appended to an immutable history enabling replay and undo without
// re-simulation.
type TurnController struct {
	engine  *Engine
	history []*LevelState
	halted  error // set after an invariant violation; simulation stops
}

// NewTurnController creates a controller over a validated initial state.
func NewTurnController(initial *LevelState, rules Rules) *TurnController {
	return &TurnController{
		engine:  NewEngine(rules),
		history: []*LevelState{initial},
	}
}

// Current returns the latest settled state.
func (t *TurnController) Current() *LevelState {
	return t.history[len(t.history)-1]
}

// History returns all settled states in order, the initial state first.
// Callers must treat the snapshots as read-only.
func (t *TurnController) History() []*LevelState {
	return t.history
}

// Apply resolves one turn for the given intent and returns the new settled
// state plus the events produced. State is unchanged when an error is
// returned. After an InvariantError the controller is halted and rejects all
// further intents.
func (t *TurnController) Apply(intent Intent) (*LevelState, []Event, error) {
	if t.halted != nil {
		return t.Current(), nil, t.halted
	}

	next, events, err := t.engine.ResolveTurn(t.Current(), intent)
	if err != nil {
		var inv InvariantError
		if errors.As(err, &inv) {
			t.halted = err
		}
		return t.Current(), events, err
	}

	t.history = append(t.history, next)
	return next, events, nil
}

// Undo discards the latest settled state and returns the previous one.
// Returns false when already at the initial state or after a halt.
func (t *TurnController) Undo() (*LevelState, bool) {
	if t.halted != nil || len(t.history) <= 1 {
		return t.Current(), false
	}
	t.history = t.history[:len(t.history)-1]
	return t.Current(), true
}

// Outcome returns the terminal outcome of the current state.
func (t *TurnController) Outcome() Outcome {
	return t.Current().Outcome
}
