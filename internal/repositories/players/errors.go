package players

import "github.com/KirkDiggler/horror-bot/internal/errors"

const (
	errInputRequired    = "input is required"
	errGameIDRequired   = "game ID is required"
	errPlayerIDRequired = "player ID is required"
	errPlayerRequired   = "player is required"
)

func validateKey(gameID, playerID string) error {
	if gameID == "" {
		return errors.InvalidArgument(errGameIDRequired)
	}
	if playerID == "" {
		return errors.InvalidArgument(errPlayerIDRequired)
	}
	return nil
}

func notFound(gameID, playerID string) error {
	return errors.NotFound("player not found").
		WithMeta("game_id", gameID).
		WithMeta("player_id", playerID)
}
