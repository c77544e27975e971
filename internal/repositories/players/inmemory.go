package players

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

type playerKey struct {
	gameID   string
	playerID string
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu           sync.RWMutex
	store        map[playerKey]*entities.Player
	seq          map[playerKey]int
	next         int
	historyLimit int
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return NewInMemoryWithLimit(DefaultHistoryLimit)
}

// NewInMemoryWithLimit keeps at most limit conversation entries per player.
// A non-positive limit uses DefaultHistoryLimit.
func NewInMemoryWithLimit(limit int) *InMemoryRepository {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &InMemoryRepository{
		store:        make(map[playerKey]*entities.Player),
		seq:          make(map[playerKey]int),
		historyLimit: limit,
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new player
func (r *InMemoryRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerRequired)
	}
	if err := validateKey(input.Player.GameID, input.Player.ID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerKey{input.Player.GameID, input.Player.ID}
	if _, exists := r.store[key]; exists {
		return nil, errors.AlreadyExists("player already joined").
			WithMeta("game_id", key.gameID).
			WithMeta("player_id", key.playerID)
	}

	p := input.Player.Clone()
	p.HP = entities.Clamp(p.HP, 0, entities.MaxStat)
	p.Sanity = entities.Clamp(p.Sanity, 0, entities.MaxStat)
	r.store[key] = p
	r.next++
	r.seq[key] = r.next

	return &CreateOutput{Player: p.Clone()}, nil
}

// Get retrieves a player
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.store[playerKey{input.GameID, input.PlayerID}]
	if !exists {
		return nil, notFound(input.GameID, input.PlayerID)
	}

	return &GetOutput{Player: p.Clone()}, nil
}

// UpdateStats applies a clamped update
func (r *InMemoryRepository) UpdateStats(ctx context.Context, input *UpdateStatsInput) (*UpdateStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.store[playerKey{input.GameID, input.PlayerID}]
	if !exists {
		return nil, notFound(input.GameID, input.PlayerID)
	}

	applyUpdate(p, input)

	return &UpdateStatsOutput{Player: p.Clone()}, nil
}

// ListByGame lists every player in a game
func (r *InMemoryRepository) ListByGame(ctx context.Context, input *ListByGameInput) (*ListOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	return r.list(input.GameID, func(*entities.Player) bool { return true }), nil
}

// ListLiving lists living players in a game
func (r *InMemoryRepository) ListLiving(ctx context.Context, input *ListLivingInput) (*ListOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	return r.list(input.GameID, (*entities.Player).IsAlive), nil
}

// ListAtLocation lists living players at one location
func (r *InMemoryRepository) ListAtLocation(ctx context.Context, input *ListAtLocationInput) (*ListOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	if input.LocationID == "" {
		return &ListOutput{}, nil
	}
	return r.list(input.GameID, func(p *entities.Player) bool {
		return p.IsAlive() && p.LocationID == input.LocationID
	}), nil
}

// AppendConversation adds a history entry and trims the window
func (r *InMemoryRepository) AppendConversation(ctx context.Context, input *AppendConversationInput) (*AppendConversationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.store[playerKey{input.GameID, input.PlayerID}]
	if !exists {
		return nil, notFound(input.GameID, input.PlayerID)
	}

	p.History = entities.TrimHistory(append(p.History, input.Entry), r.historyLimit)

	return &AppendConversationOutput{
		History: append([]entities.ConversationEntry(nil), p.History...),
	}, nil
}

// Delete removes a player
func (r *InMemoryRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerKey{input.GameID, input.PlayerID}
	if _, exists := r.store[key]; !exists {
		return nil, notFound(input.GameID, input.PlayerID)
	}
	delete(r.store, key)
	delete(r.seq, key)

	return &DeleteOutput{}, nil
}

// DeleteByGame removes every player of a game
func (r *InMemoryRepository) DeleteByGame(ctx context.Context, input *DeleteByGameInput) (*DeleteByGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for key := range r.store {
		if key.gameID == input.GameID {
			delete(r.store, key)
			delete(r.seq, key)
			deleted++
		}
	}

	return &DeleteByGameOutput{Deleted: deleted}, nil
}

func (r *InMemoryRepository) list(gameID string, keep func(*entities.Player) bool) *ListOutput {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []playerKey
	for key, p := range r.store {
		if key.gameID == gameID && keep(p) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return r.seq[keys[i]] < r.seq[keys[j]] })

	out := &ListOutput{Players: make([]*entities.Player, 0, len(keys))}
	for _, key := range keys {
		out.Players = append(out.Players, r.store[key].Clone())
	}
	return out
}

// applyUpdate mutates p in place; shared by both implementations
func applyUpdate(p *entities.Player, input *UpdateStatsInput) {
	p.HP = entities.Clamp(p.HP, input.HPDelta, entities.MaxStat)
	p.Sanity = entities.Clamp(p.Sanity, input.SanityDelta, entities.MaxStat)
	if input.LocationID != nil {
		p.LocationID = *input.LocationID
	}
	if input.Inventory != nil {
		p.Inventory = append([]string(nil), input.Inventory...)
	}
}
