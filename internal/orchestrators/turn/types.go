package turn

import (
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Reasons reported when an action is not accepted
const (
	ReasonNotAwaiting        = "turn is not accepting actions"
	ReasonNotInGame          = "player is not in this game"
	ReasonEliminated         = "player has been eliminated"
	ReasonUnknownKind        = "unknown action kind"
	ReasonAlreadyConfirmed   = "action already confirmed"
	ReasonNoRegisteredAction = "no action registered"
)

// StartTurnOutput describes the turn that just opened
type StartTurnOutput struct {
	Turn     int
	Deadline time.Time
	// Intro is empty unless intros are narrated
	Intro string
}

// RegisterActionInput picks an action kind for a player
type RegisterActionInput struct {
	PlayerID string
	Kind     entities.ActionKind
}

// RegisterActionOutput reports whether the pick was recorded
type RegisterActionOutput struct {
	Accepted bool
	Reason   string
}

// ConfirmActionInput locks in a player's registered action
type ConfirmActionInput struct {
	PlayerID string
}

// ConfirmActionOutput reports the confirmation and whether it closed the turn
type ConfirmActionOutput struct {
	Confirmed bool
	Resolved  bool
	Reason    string
}

// Snapshot is a read-only view of the turn cycle
type Snapshot struct {
	GameID      string
	State       entities.TurnState
	Turn        int
	Deadline    time.Time
	Actions     map[string]entities.PlayerAction
	LastSummary string
	Intro       string
}
