// Package games stores game rows together with their rules and generated map
package games

//go:generate mockgen -destination=mock/mock_repository.go -package=gamesmock github.com/KirkDiggler/horror-bot/internal/repositories/games Repository

import (
	"context"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Repository defines the storage interface for games, rules and locations
type Repository interface {
	// Create inserts a new game; AlreadyExists on duplicate ID
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get returns a game or NotFound
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update overwrites the mutable game fields (active, started, ended_at)
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// ListActive returns games that have not ended
	ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error)

	// AddRules appends rules to a game
	AddRules(ctx context.Context, input *AddRulesInput) (*AddRulesOutput, error)

	// ListRules returns a game's rules, optionally only hidden or only public
	ListRules(ctx context.Context, input *ListRulesInput) (*ListRulesOutput, error)

	// SaveLocations stores the generated map, replacing any previous one
	SaveLocations(ctx context.Context, input *SaveLocationsInput) (*SaveLocationsOutput, error)

	// ListLocations returns the map in generation order
	ListLocations(ctx context.Context, input *ListLocationsInput) (*ListLocationsOutput, error)

	// GetLocation returns one map node or NotFound
	GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error)
}

// RuleVisibility filters ListRules
type RuleVisibility int

// Rule filters
const (
	RulesAll RuleVisibility = iota
	RulesPublic
	RulesHidden
)

// CreateInput defines the request for creating a game
type CreateInput struct {
	Game *entities.Game
}

// CreateOutput defines the response for creating a game
type CreateOutput struct {
	Game *entities.Game
}

// GetInput defines the request for loading a game
type GetInput struct {
	ID string
}

// GetOutput defines the response for loading a game
type GetOutput struct {
	Game *entities.Game
}

// UpdateInput defines the request for updating a game
type UpdateInput struct {
	Game *entities.Game
}

// UpdateOutput defines the response for updating a game
type UpdateOutput struct {
	Game *entities.Game
}

// ListActiveInput defines the request for listing running games
type ListActiveInput struct{}

// ListActiveOutput defines the response for listing running games
type ListActiveOutput struct {
	Games []*entities.Game
}

// AddRulesInput defines rules to append to a game
type AddRulesInput struct {
	GameID string
	Rules  []entities.Rule
}

// AddRulesOutput defines the response for adding rules
type AddRulesOutput struct{}

// ListRulesInput defines the request for listing rules
type ListRulesInput struct {
	GameID     string
	Visibility RuleVisibility
}

// ListRulesOutput returns rules in insertion order
type ListRulesOutput struct {
	Rules []entities.Rule
}

// SaveLocationsInput defines a full game map
type SaveLocationsInput struct {
	GameID    string
	Locations []*entities.Location
}

// SaveLocationsOutput defines the response for saving a map
type SaveLocationsOutput struct{}

// ListLocationsInput defines the request for loading a map
type ListLocationsInput struct {
	GameID string
}

// ListLocationsOutput returns locations in generation order
type ListLocationsOutput struct {
	Locations []*entities.Location
}

// GetLocationInput defines the request for loading a map node
type GetLocationInput struct {
	GameID     string
	LocationID string
}

// GetLocationOutput defines the response for loading a map node
type GetLocationOutput struct {
	Location *entities.Location
}
