package encounters

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	ids   map[string]struct{}
	store map[string][]*entities.Encounter
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		ids:   make(map[string]struct{}),
		store: make(map[string][]*entities.Encounter),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Record appends an encounter
func (r *InMemoryRepository) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errEncounterRequired)
	}
	if err := validateEncounter(input.Encounter); err != nil {
		return nil, err
	}

	e := cloneEncounter(input.Encounter)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[e.ID]; exists {
		return nil, errors.AlreadyExists("encounter already recorded").WithMeta("encounter_id", e.ID)
	}
	r.ids[e.ID] = struct{}{}
	r.store[e.GameID] = append(r.store[e.GameID], e)

	return &RecordOutput{Encounter: cloneEncounter(e)}, nil
}

// ListByGame lists a game's encounters in recording order
func (r *InMemoryRepository) ListByGame(ctx context.Context, input *ListByGameInput) (*ListByGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListByGameOutput{Encounters: make([]*entities.Encounter, 0, len(r.store[input.GameID]))}
	for _, e := range r.store[input.GameID] {
		out.Encounters = append(out.Encounters, cloneEncounter(e))
	}

	return out, nil
}
