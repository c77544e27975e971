// Package players stores per-game player rows: stats, location, inventory and
// the rolling oracle conversation.
package players

//go:generate mockgen -destination=mock/mock_repository.go -package=playersmock github.com/KirkDiggler/horror-bot/internal/repositories/players Repository

import (
	"context"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// DefaultHistoryLimit bounds the conversation window kept per player
const DefaultHistoryLimit = 10

// Repository defines the storage interface for players
type Repository interface {
	// Create inserts a new player row; AlreadyExists if the player joined already
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get returns a player or NotFound
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// UpdateStats applies clamped deltas and optional location/inventory changes
	UpdateStats(ctx context.Context, input *UpdateStatsInput) (*UpdateStatsOutput, error)

	// ListByGame returns every player in a game, living or not
	ListByGame(ctx context.Context, input *ListByGameInput) (*ListOutput, error)

	// ListLiving returns players with HP above zero
	ListLiving(ctx context.Context, input *ListLivingInput) (*ListOutput, error)

	// ListAtLocation returns living players at a location
	ListAtLocation(ctx context.Context, input *ListAtLocationInput) (*ListOutput, error)

	// AppendConversation adds one history entry and trims to the window
	AppendConversation(ctx context.Context, input *AppendConversationInput) (*AppendConversationOutput, error)

	// Delete removes one player
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// DeleteByGame removes every player of a game
	DeleteByGame(ctx context.Context, input *DeleteByGameInput) (*DeleteByGameOutput, error)
}

// CreateInput defines the request for creating a player
type CreateInput struct {
	Player *entities.Player
}

// CreateOutput defines the response for creating a player
type CreateOutput struct {
	Player *entities.Player
}

// GetInput defines the request for loading a player
type GetInput struct {
	GameID   string
	PlayerID string
}

// GetOutput defines the response for loading a player
type GetOutput struct {
	Player *entities.Player
}

// UpdateStatsInput describes a stat change. Zero deltas leave a stat alone,
// a nil LocationID keeps the location, a nil Inventory keeps the inventory.
type UpdateStatsInput struct {
	GameID      string
	PlayerID    string
	HPDelta     int
	SanityDelta int
	LocationID  *string
	Inventory   []string
}

// UpdateStatsOutput returns the stored snapshot after the update
type UpdateStatsOutput struct {
	Player *entities.Player
}

// ListByGameInput defines the request for listing a game's players
type ListByGameInput struct {
	GameID string
}

// ListLivingInput defines the request for listing living players
type ListLivingInput struct {
	GameID string
}

// ListAtLocationInput defines the request for listing living players at a location
type ListAtLocationInput struct {
	GameID     string
	LocationID string
}

// ListOutput is shared by the list operations, ordered by join time
type ListOutput struct {
	Players []*entities.Player
}

// AppendConversationInput defines one history entry to append
type AppendConversationInput struct {
	GameID   string
	PlayerID string
	Entry    entities.ConversationEntry
}

// AppendConversationOutput returns the trimmed history
type AppendConversationOutput struct {
	History []entities.ConversationEntry
}

// DeleteInput defines the request for removing a player
type DeleteInput struct {
	GameID   string
	PlayerID string
}

// DeleteOutput defines the response for removing a player
type DeleteOutput struct{}

// DeleteByGameInput defines the request for removing a game's players
type DeleteByGameInput struct {
	GameID string
}

// DeleteByGameOutput reports how many rows were removed
type DeleteByGameOutput struct {
	Deleted int
}
