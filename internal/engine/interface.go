// Package engine holds the game mechanics: success trials for turn actions and
// the stat rolls used when a player joins
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/horror-bot/internal/engine Engine

import (
	"context"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Engine provides game mechanics backed by a dice roller
type Engine interface {
	// CheckSuccess rolls a d100 against SuccessRate for the stat the action uses
	CheckSuccess(ctx context.Context, input *CheckSuccessInput) (*CheckSuccessOutput, error)

	// RollStats applies the random join-time variation to a background's base stats
	RollStats(ctx context.Context, input *RollStatsInput) (*RollStatsOutput, error)

	// Pick returns a uniformly random index in [0, n)
	Pick(ctx context.Context, n int) (int, error)
}

// CheckSuccessInput defines one trial
type CheckSuccessInput struct {
	Kind   entities.ActionKind
	Player *entities.Player
}

// CheckSuccessOutput reports the trial
type CheckSuccessOutput struct {
	Success bool
	Rate    float64
	Roll    int
}

// Stats is a block of player stats
type Stats struct {
	HP       int
	Sanity   int
	Agility  int
	Accuracy int
}

// RollStatsInput defines the base stats to vary
type RollStatsInput struct {
	Base Stats
	// VariationPercent defaults to DefaultVariationPercent
	VariationPercent int
}

// RollStatsOutput returns the varied stats
type RollStatsOutput struct {
	Stats Stats
}
