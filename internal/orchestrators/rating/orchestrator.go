// Package rating grades players at the end of a game. Grades blend visible
// health and sanity with hidden skill components; only the visible part ever
// reaches the reason text.
package rating

//go:generate mockgen -destination=mock/mock_service.go -package=ratingmock github.com/KirkDiggler/horror-bot/internal/orchestrators/rating Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
)

// Service evaluates finished games
type Service interface {
	// Evaluate returns nil when the game has no players
	Evaluate(ctx context.Context, gameID string) (*entities.Evaluation, error)
}

// ObjectiveSource looks up a scenario's objectives; unknown scenarios yield nil
type ObjectiveSource interface {
	Objectives(scenarioID string) []string
}

// Config holds the dependencies for the rating service
type Config struct {
	PlayerRepo players.Repository
	GameRepo   games.Repository
	Objectives ObjectiveSource
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.GameRepo == nil {
		vb.RequiredField("GameRepo")
	}
	if c.Objectives == nil {
		vb.RequiredField("Objectives")
	}

	return vb.Build()
}

type orchestrator struct {
	playerRepo players.Repository
	gameRepo   games.Repository
	objectives ObjectiveSource
}

var _ Service = (*orchestrator)(nil)

// NewOrchestrator creates a new rating service
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		playerRepo: cfg.PlayerRepo,
		gameRepo:   cfg.GameRepo,
		objectives: cfg.Objectives,
	}, nil
}

func (o *orchestrator) Evaluate(ctx context.Context, gameID string) (*entities.Evaluation, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	list, err := o.playerRepo.ListByGame(ctx, &players.ListByGameInput{GameID: gameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list players")
	}
	if len(list.Players) == 0 {
		return nil, nil
	}

	eval := &entities.Evaluation{
		GameID:     gameID,
		Players:    make([]entities.PlayerRating, 0, len(list.Players)),
		Objectives: o.loadObjectives(ctx, gameID),
	}

	var total float64
	for _, p := range list.Players {
		score := Score(p)
		total += score
		eval.Players = append(eval.Players, entities.PlayerRating{
			PlayerID: p.ID,
			Name:     p.Name,
			Grade:    PlayerGrade(score),
			Score:    score,
			Reason:   Reason(p),
		})
	}
	eval.OverallGrade = OverallGrade(total / float64(len(list.Players)))

	slog.InfoContext(ctx, "game evaluated",
		"game_id", gameID,
		"players", len(eval.Players),
		"overall_grade", eval.OverallGrade)

	return eval, nil
}

func (o *orchestrator) loadObjectives(ctx context.Context, gameID string) []string {
	got, err := o.gameRepo.Get(ctx, &games.GetInput{ID: gameID})
	if err != nil {
		slog.WarnContext(ctx, "evaluating without objectives", "game_id", gameID, "error", err)
		return []string{}
	}

	objectives := o.objectives.Objectives(got.Game.ScenarioID)
	if objectives == nil {
		return []string{}
	}
	return objectives
}
