package games

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu        sync.RWMutex
	games     map[string]*entities.Game
	rules     map[string][]entities.Rule
	locations map[string][]*entities.Location
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		games:     make(map[string]*entities.Game),
		rules:     make(map[string][]entities.Rule),
		locations: make(map[string][]*entities.Location),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new game
func (r *InMemoryRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[input.Game.ID]; exists {
		return nil, errors.AlreadyExists("game already exists").WithMeta("game_id", input.Game.ID)
	}
	r.games[input.Game.ID] = cloneGame(input.Game)

	return &CreateOutput{Game: cloneGame(input.Game)}, nil
}

// Get retrieves a game
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	g, exists := r.games[input.ID]
	if !exists {
		return nil, gameNotFound(input.ID)
	}

	return &GetOutput{Game: cloneGame(g)}, nil
}

// Update overwrites a stored game
func (r *InMemoryRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[input.Game.ID]; !exists {
		return nil, gameNotFound(input.Game.ID)
	}
	r.games[input.Game.ID] = cloneGame(input.Game)

	return &UpdateOutput{Game: cloneGame(input.Game)}, nil
}

// ListActive lists games that have not ended, oldest first
func (r *InMemoryRepository) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListActiveOutput{Games: []*entities.Game{}}
	for _, g := range r.games {
		if g.Active {
			out.Games = append(out.Games, cloneGame(g))
		}
	}
	sort.Slice(out.Games, func(i, j int) bool {
		return out.Games[i].CreatedAt.Before(out.Games[j].CreatedAt)
	})

	return out, nil
}

// AddRules appends rules to a game
func (r *InMemoryRepository) AddRules(ctx context.Context, input *AddRulesInput) (*AddRulesOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[input.GameID]; !exists {
		return nil, gameNotFound(input.GameID)
	}
	for _, rule := range input.Rules {
		rule.GameID = input.GameID
		r.rules[input.GameID] = append(r.rules[input.GameID], rule)
	}

	return &AddRulesOutput{}, nil
}

// ListRules lists a game's rules
func (r *InMemoryRepository) ListRules(ctx context.Context, input *ListRulesInput) (*ListRulesOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListRulesOutput{Rules: []entities.Rule{}}
	for _, rule := range r.rules[input.GameID] {
		if keepRule(rule, input.Visibility) {
			out.Rules = append(out.Rules, rule)
		}
	}

	return out, nil
}

// SaveLocations replaces a game's map
func (r *InMemoryRepository) SaveLocations(ctx context.Context, input *SaveLocationsInput) (*SaveLocationsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[input.GameID]; !exists {
		return nil, gameNotFound(input.GameID)
	}

	locs := make([]*entities.Location, 0, len(input.Locations))
	for _, l := range input.Locations {
		if l == nil || l.ID == "" {
			return nil, errors.InvalidArgument(errLocationIDRequired)
		}
		c := cloneLocation(l)
		c.GameID = input.GameID
		locs = append(locs, c)
	}
	r.locations[input.GameID] = locs

	return &SaveLocationsOutput{}, nil
}

// ListLocations lists a game's map
func (r *InMemoryRepository) ListLocations(ctx context.Context, input *ListLocationsInput) (*ListLocationsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListLocationsOutput{Locations: make([]*entities.Location, 0, len(r.locations[input.GameID]))}
	for _, l := range r.locations[input.GameID] {
		out.Locations = append(out.Locations, cloneLocation(l))
	}

	return out, nil
}

// GetLocation returns one map node
func (r *InMemoryRepository) GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	if input.LocationID == "" {
		return nil, errors.InvalidArgument(errLocationIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.locations[input.GameID] {
		if l.ID == input.LocationID {
			return &GetLocationOutput{Location: cloneLocation(l)}, nil
		}
	}

	return nil, locationNotFound(input.GameID, input.LocationID)
}
