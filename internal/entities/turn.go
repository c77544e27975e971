package entities

import "time"

// TurnState is the phase of a game's turn cycle
type TurnState string

// Turn cycle states
const (
	TurnIdle            TurnState = "idle"
	TurnAwaitingActions TurnState = "awaiting_actions"
	TurnResolving       TurnState = "resolving"
	TurnEnded           TurnState = "ended"
)

// PlayerAction is one player's choice for the current turn
type PlayerAction struct {
	Kind      ActionKind `json:"kind"`
	Confirmed bool       `json:"confirmed"`
}

// TurnRecord is the persisted view of a turn, written at turn boundaries
type TurnRecord struct {
	GameID    string                  `json:"game_id"`
	Number    int                     `json:"number"`
	State     TurnState               `json:"state"`
	Deadline  time.Time               `json:"deadline"`
	Actions   map[string]PlayerAction `json:"actions"`
	Summary   string                  `json:"summary,omitempty"`
	UpdatedAt time.Time               `json:"updated_at"`
}
