package games

import (
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const (
	errInputRequired      = "input is required"
	errGameRequired       = "game is required"
	errGameIDRequired     = "game ID is required"
	errLocationIDRequired = "location ID is required"
)

func gameNotFound(id string) error {
	return errors.NotFound("game not found").WithMeta("game_id", id)
}

func locationNotFound(gameID, locationID string) error {
	return errors.NotFound("location not found").
		WithMeta("game_id", gameID).
		WithMeta("location_id", locationID)
}

func validateGame(g *entities.Game) error {
	if g == nil {
		return errors.InvalidArgument(errGameRequired)
	}
	if g.ID == "" {
		return errors.InvalidArgument(errGameIDRequired)
	}
	return nil
}

func keepRule(r entities.Rule, v RuleVisibility) bool {
	switch v {
	case RulesHidden:
		return r.Hidden
	case RulesPublic:
		return !r.Hidden
	default:
		return true
	}
}

func cloneGame(g *entities.Game) *entities.Game {
	c := *g
	if g.EndedAt != nil {
		t := *g.EndedAt
		c.EndedAt = &t
	}
	return &c
}

func cloneLocation(l *entities.Location) *entities.Location {
	c := *l
	c.Exits = append([]string(nil), l.Exits...)
	return &c
}
