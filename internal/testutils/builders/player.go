// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// PlayerBuilder provides a fluent interface for building test Player instances
type PlayerBuilder struct {
	player *entities.Player
}

// NewPlayerBuilder creates a healthy player with average stats
func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		player: &entities.Player{
			ID:         "player-test-123",
			GameID:     "game-test-123",
			Name:       "Test Player",
			Background: "night watchman",
			HP:         entities.MaxStat,
			Sanity:     entities.MaxStat,
			Agility:    50,
			Accuracy:   50,
			LocationID: "f1_r0",
			Inventory:  []string{},
			JoinedAt:   time.Now(),
		},
	}
}

// WithID sets the player ID
func (b *PlayerBuilder) WithID(id string) *PlayerBuilder {
	b.player.ID = id
	return b
}

// WithGameID sets the game ID
func (b *PlayerBuilder) WithGameID(gameID string) *PlayerBuilder {
	b.player.GameID = gameID
	return b
}

// WithName sets the display name
func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.player.Name = name
	return b
}

// WithVitals sets HP and sanity
func (b *PlayerBuilder) WithVitals(hp, sanity int) *PlayerBuilder {
	b.player.HP = hp
	b.player.Sanity = sanity
	return b
}

// WithSkills sets agility and accuracy
func (b *PlayerBuilder) WithSkills(agility, accuracy int) *PlayerBuilder {
	b.player.Agility = agility
	b.player.Accuracy = accuracy
	return b
}

// AtLocation places the player on a map node
func (b *PlayerBuilder) AtLocation(locationID string) *PlayerBuilder {
	b.player.LocationID = locationID
	return b
}

// WithInventory replaces the inventory
func (b *PlayerBuilder) WithInventory(items ...string) *PlayerBuilder {
	b.player.Inventory = items
	return b
}

// Eliminated sets HP to zero
func (b *PlayerBuilder) Eliminated() *PlayerBuilder {
	b.player.HP = 0
	return b
}

// Build returns the constructed player
func (b *PlayerBuilder) Build() *entities.Player {
	return b.player.Clone()
}
