package rpgtoolkit

import "github.com/KirkDiggler/horror-bot/internal/entities"

// Entity types reported to rpg-toolkit
const (
	EntityTypePlayer = "player"
	EntityTypeGame   = "game"
)

// PlayerEntity wraps entities.Player to implement core.Entity interface
type PlayerEntity struct {
	*entities.Player
}

// GetID returns the player's ID
func (p *PlayerEntity) GetID() string {
	return p.ID
}

// GetType returns the entity type for rpg-toolkit
func (p *PlayerEntity) GetType() string {
	return EntityTypePlayer
}

// GameEntity identifies a game as an event source or target
type GameEntity struct {
	ID string
}

// GetID returns the game ID
func (g *GameEntity) GetID() string {
	return g.ID
}

// GetType returns the entity type for rpg-toolkit
func (g *GameEntity) GetType() string {
	return EntityTypeGame
}

// WrapPlayer converts a player into a core.Entity
func WrapPlayer(p *entities.Player) *PlayerEntity {
	return &PlayerEntity{Player: p}
}

// WrapGame converts a game ID into a core.Entity
func WrapGame(gameID string) *GameEntity {
	return &GameEntity{ID: gameID}
}
