// Package encounters stores the append-only log of players meeting at a location
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/KirkDiggler/horror-bot/internal/repositories/encounters Repository

import (
	"context"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Repository defines the storage interface for encounters
type Repository interface {
	// Record appends an encounter. Records are never updated.
	Record(ctx context.Context, input *RecordInput) (*RecordOutput, error)

	// ListByGame returns a game's encounters, oldest first
	ListByGame(ctx context.Context, input *ListByGameInput) (*ListByGameOutput, error)
}

// RecordInput defines the request for recording an encounter
type RecordInput struct {
	Encounter *entities.Encounter
}

// RecordOutput defines the response for recording an encounter
type RecordOutput struct {
	Encounter *entities.Encounter
}

// ListByGameInput defines the request for listing encounters
type ListByGameInput struct {
	GameID string
}

// ListByGameOutput defines the response for listing encounters
type ListByGameOutput struct {
	Encounters []*entities.Encounter
}
