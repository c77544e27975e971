// Package turns persists the turn record of each running game
package turns

//go:generate mockgen -destination=mock/mock_repository.go -package=turnsmock github.com/KirkDiggler/horror-bot/internal/repositories/turns Repository

import (
	"context"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Repository defines the storage interface for turn records
type Repository interface {
	// Save overwrites the game's turn record
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get returns the game's turn record or NotFound
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes the game's turn record; deleting a missing record is not an error
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving a turn record
type SaveInput struct {
	Record *entities.TurnRecord
}

// SaveOutput defines the response for saving a turn record
type SaveOutput struct{}

// GetInput defines the request for loading a turn record
type GetInput struct {
	GameID string
}

// GetOutput defines the response for loading a turn record
type GetOutput struct {
	Record *entities.TurnRecord
}

// DeleteInput defines the request for removing a turn record
type DeleteInput struct {
	GameID string
}

// DeleteOutput defines the response for removing a turn record
type DeleteOutput struct{}
