// Package game runs the lifecycle around the turn cycle: lobbies, joining,
// world generation at start, completion checks and ending.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/horror-bot/internal/orchestrators/game Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/clients/oracle"
	"github.com/KirkDiggler/horror-bot/internal/engine"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/maps"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/rating"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/repositories/encounters"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
	"github.com/KirkDiggler/horror-bot/internal/repositories/turns"
)

// DefaultOracleTimeout bounds the dark-rules request at start
const DefaultOracleTimeout = 10 * time.Second

// Service manages the lifecycle of games
type Service interface {
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)
	LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error)
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// CheckCompletion ends the game once every player is eliminated and
	// reports whether it did
	CheckCompletion(ctx context.Context, gameID string) (bool, error)

	Dashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error)
}

// ScenarioCatalog provides scenario and background definitions
type ScenarioCatalog interface {
	Scenario(id string) (*catalog.Scenario, error)
	Backgrounds() []*catalog.Background
}

// MapGenerator lays out a scenario's map
type MapGenerator interface {
	Generate(ctx context.Context, input *maps.GenerateInput) (*maps.GenerateOutput, error)
}

// TurnRegistry holds the live turn cycles
type TurnRegistry interface {
	GetOrCreate(ctx context.Context, gameID string) (turn.Service, error)
	Get(gameID string) (turn.Service, bool)
	End(gameID string)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	GameRepo      games.Repository
	PlayerRepo    players.Repository
	EncounterRepo encounters.Repository
	TurnRepo      turns.Repository
	Catalog       ScenarioCatalog
	Engine        engine.Engine
	Maps          MapGenerator
	Oracle        oracle.Client
	Registry      TurnRegistry
	Rating        rating.Service
	Notifier      notify.Notifier
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// DarkRules asks the oracle for extra hidden rules at start
	DarkRules     bool
	OracleTimeout time.Duration
	// MaxPlayers caps a lobby; zero means no cap
	MaxPlayers    int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameRepo == nil {
		vb.RequiredField("GameRepo")
	}
	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.TurnRepo == nil {
		vb.RequiredField("TurnRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Maps == nil {
		vb.RequiredField("Maps")
	}
	if c.Oracle == nil {
		vb.RequiredField("Oracle")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Rating == nil {
		vb.RequiredField("Rating")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.OracleTimeout < 0 {
		vb.Field("OracleTimeout", "must not be negative")
	}
	if c.MaxPlayers < 0 {
		vb.Field("MaxPlayers", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	gameRepo      games.Repository
	playerRepo    players.Repository
	encounterRepo encounters.Repository
	turnRepo      turns.Repository
	catalog       ScenarioCatalog
	engine        engine.Engine
	maps          MapGenerator
	oracle        oracle.Client
	registry      TurnRegistry
	rating        rating.Service
	notifier      notify.Notifier
	idGen         idgen.Generator
	clock         clock.Clock

	darkRules     bool
	oracleTimeout time.Duration
	maxPlayers    int
}

var _ Service = (*orchestrator)(nil)

// NewOrchestrator creates a new game orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		gameRepo:      cfg.GameRepo,
		playerRepo:    cfg.PlayerRepo,
		encounterRepo: cfg.EncounterRepo,
		turnRepo:      cfg.TurnRepo,
		catalog:       cfg.Catalog,
		engine:        cfg.Engine,
		maps:          cfg.Maps,
		oracle:        cfg.Oracle,
		registry:      cfg.Registry,
		rating:        cfg.Rating,
		notifier:      cfg.Notifier,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		darkRules:     cfg.DarkRules,
		oracleTimeout: cfg.OracleTimeout,
		maxPlayers:    cfg.MaxPlayers,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.oracleTimeout == 0 {
		o.oracleTimeout = DefaultOracleTimeout
	}

	return o, nil
}

func (o *orchestrator) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ScenarioID", input.ScenarioID, vb)
	errors.ValidateRequired("CreatorID", input.CreatorID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	scenario, err := o.catalog.Scenario(input.ScenarioID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load scenario")
	}

	created, err := o.gameRepo.Create(ctx, &games.CreateInput{Game: &entities.Game{
		ID:         o.idGen.Generate(),
		ScenarioID: scenario.ID,
		CreatorID:  input.CreatorID,
		Active:     true,
		CreatedAt:  o.clock.Now(),
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game")
	}

	slog.InfoContext(ctx, "game created",
		"game_id", created.Game.ID,
		"scenario_id", scenario.ID,
		"creator_id", input.CreatorID)

	return &CreateGameOutput{Game: created.Game, Scenario: scenario}, nil
}

func (o *orchestrator) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GameID", input.GameID, vb)
	errors.ValidateRequired("PlayerID", input.PlayerID, vb)
	errors.ValidateRequired("Name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.lobby(ctx, input.GameID); err != nil {
		return nil, err
	}

	if o.maxPlayers > 0 {
		roster, err := o.playerRepo.ListByGame(ctx, &players.ListByGameInput{GameID: input.GameID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list players")
		}
		if len(roster.Players) >= o.maxPlayers {
			return nil, errors.FailedPrecondition("game is full").
				WithMeta("game_id", input.GameID).
				WithMeta("max_players", o.maxPlayers)
		}
	}

	background, err := o.drawBackground(ctx)
	if err != nil {
		return nil, err
	}

	rolled, err := o.engine.RollStats(ctx, &engine.RollStatsInput{Base: engine.Stats{
		HP:       background.Stats.HP,
		Sanity:   background.Stats.Sanity,
		Agility:  background.Stats.Agility,
		Accuracy: background.Stats.Accuracy,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll stats")
	}

	created, err := o.playerRepo.Create(ctx, &players.CreateInput{Player: &entities.Player{
		ID:         input.PlayerID,
		GameID:     input.GameID,
		Name:       input.Name,
		Background: background.Name,
		HP:         rolled.Stats.HP,
		Sanity:     rolled.Stats.Sanity,
		Agility:    rolled.Stats.Agility,
		Accuracy:   rolled.Stats.Accuracy,
		Inventory:  []string{},
		JoinedAt:   o.clock.Now(),
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add player")
	}

	slog.InfoContext(ctx, "player joined",
		"game_id", input.GameID,
		"player_id", input.PlayerID,
		"background", background.ID)

	return &JoinGameOutput{Player: created.Player, Background: background}, nil
}

func (o *orchestrator) LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GameID", input.GameID, vb)
	errors.ValidateRequired("PlayerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.lobby(ctx, input.GameID); err != nil {
		return nil, err
	}

	if _, err := o.playerRepo.Delete(ctx, &players.DeleteInput{GameID: input.GameID, PlayerID: input.PlayerID}); err != nil {
		return nil, errors.Wrap(err, "failed to remove player")
	}

	slog.InfoContext(ctx, "player left", "game_id", input.GameID, "player_id", input.PlayerID)

	return &LeaveGameOutput{}, nil
}

func (o *orchestrator) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GameID", input.GameID, vb)
	errors.ValidateRequired("RequesterID", input.RequesterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	game, err := o.lobby(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if game.CreatorID != input.RequesterID {
		return nil, errors.FailedPrecondition("only the creator can start the game").
			WithMeta("game_id", game.ID).
			WithMeta("requester_id", input.RequesterID)
	}

	roster, err := o.playerRepo.ListByGame(ctx, &players.ListByGameInput{GameID: game.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list players")
	}
	if len(roster.Players) == 0 {
		return nil, errors.FailedPrecondition("cannot start a game without players").WithMeta("game_id", game.ID)
	}

	scenario, err := o.catalog.Scenario(game.ScenarioID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load scenario")
	}

	world, err := o.maps.Generate(ctx, &maps.GenerateInput{GameID: game.ID, Scenario: scenario})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate map")
	}
	if len(world.Locations) == 0 {
		return nil, errors.Internal("generated map is empty").WithMeta("game_id", game.ID)
	}
	if _, err := o.gameRepo.SaveLocations(ctx, &games.SaveLocationsInput{GameID: game.ID, Locations: world.Locations}); err != nil {
		return nil, errors.Wrap(err, "failed to save map")
	}
	start := world.Locations[0]

	if err := o.seedRules(ctx, game.ID, scenario); err != nil {
		return nil, err
	}

	for _, p := range roster.Players {
		startID := start.ID
		if _, err := o.playerRepo.UpdateStats(ctx, &players.UpdateStatsInput{
			GameID:     game.ID,
			PlayerID:   p.ID,
			LocationID: &startID,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to place player %s", p.ID)
		}
	}

	game.Started = true
	updated, err := o.gameRepo.Update(ctx, &games.UpdateInput{Game: game})
	if err != nil {
		return nil, errors.Wrap(err, "failed to mark game started")
	}

	cycle, err := o.registry.GetOrCreate(ctx, game.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create turn cycle")
	}
	first, err := cycle.StartTurn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start first turn")
	}

	slog.InfoContext(ctx, "game started",
		"game_id", game.ID,
		"scenario_id", scenario.ID,
		"players", len(roster.Players),
		"locations", len(world.Locations))

	return &StartGameOutput{
		Game:        updated.Game,
		Greeting:    scenario.Greeting,
		Turn:        first.Turn,
		Intro:       first.Intro,
		Start:       start,
		Locations:   len(world.Locations),
		PublicRules: append([]string(nil), scenario.Rules...),
	}, nil
}

func (o *orchestrator) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	got, err := o.gameRepo.Get(ctx, &games.GetInput{ID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load game")
	}
	game := got.Game

	o.registry.End(game.ID)
	if _, err := o.turnRepo.Delete(ctx, &turns.DeleteInput{GameID: game.ID}); err != nil {
		slog.WarnContext(ctx, "failed to drop turn record", "game_id", game.ID, "error", err)
	}

	removed, err := o.playerRepo.DeleteByGame(ctx, &players.DeleteByGameInput{GameID: game.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove players")
	}

	if !game.Active {
		return &EndGameOutput{Game: game}, nil
	}

	now := o.clock.Now()
	game.Active = false
	game.EndedAt = &now
	updated, err := o.gameRepo.Update(ctx, &games.UpdateInput{Game: game})
	if err != nil {
		return nil, errors.Wrap(err, "failed to mark game ended")
	}

	slog.InfoContext(ctx, "game ended", "game_id", game.ID, "players_removed", removed.Deleted)

	return &EndGameOutput{Game: updated.Game}, nil
}

func (o *orchestrator) CheckCompletion(ctx context.Context, gameID string) (bool, error) {
	if gameID == "" {
		return false, errors.InvalidArgument("game ID is required")
	}

	living, err := o.playerRepo.ListLiving(ctx, &players.ListLivingInput{GameID: gameID})
	if err != nil {
		return false, errors.Wrap(err, "failed to list living players")
	}
	if len(living.Players) > 0 {
		return false, nil
	}

	eval, err := o.rating.Evaluate(ctx, gameID)
	if err != nil {
		return false, errors.Wrap(err, "failed to evaluate game")
	}
	if eval == nil {
		// nobody ever joined; nothing to grade and nothing to end
		return false, nil
	}

	if err := o.notifier.GameEvaluated(ctx, eval); err != nil {
		slog.WarnContext(ctx, "failed to publish evaluation", "game_id", gameID, "error", err)
	}

	if _, err := o.EndGame(ctx, &EndGameInput{GameID: gameID}); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "all players eliminated", "game_id", gameID, "overall_grade", eval.OverallGrade)

	return true, nil
}

func (o *orchestrator) Dashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	got, err := o.gameRepo.Get(ctx, &games.GetInput{ID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load game")
	}

	roster, err := o.playerRepo.ListByGame(ctx, &players.ListByGameInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list players")
	}

	rules, err := o.gameRepo.ListRules(ctx, &games.ListRulesInput{GameID: input.GameID, Visibility: games.RulesPublic})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rules")
	}
	public := make([]string, 0, len(rules.Rules))
	for _, r := range rules.Rules {
		public = append(public, r.Text)
	}

	met, err := o.encounterRepo.ListByGame(ctx, &encounters.ListByGameInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list encounters")
	}

	out := &DashboardOutput{
		Game:         got.Game,
		ScenarioName: catalog.DisplayName(got.Game.ScenarioID),
		Players:      roster.Players,
		PublicRules:  public,
		Encounters:   met.Encounters,
	}
	if cycle, ok := o.registry.Get(input.GameID); ok {
		out.Turn = cycle.Snapshot()
	}

	return out, nil
}

// lobby loads a game that is still accepting players
func (o *orchestrator) lobby(ctx context.Context, gameID string) (*entities.Game, error) {
	got, err := o.gameRepo.Get(ctx, &games.GetInput{ID: gameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load game")
	}
	if !got.Game.Active {
		return nil, errors.FailedPrecondition("game has ended").WithMeta("game_id", gameID)
	}
	if got.Game.Started {
		return nil, errors.FailedPrecondition("game has already started").WithMeta("game_id", gameID)
	}
	return got.Game, nil
}

func (o *orchestrator) drawBackground(ctx context.Context) (*catalog.Background, error) {
	options := o.catalog.Backgrounds()
	if len(options) == 0 {
		return catalog.DefaultBackground(), nil
	}

	i, err := o.engine.Pick(ctx, len(options))
	if err != nil {
		return nil, errors.Wrap(err, "failed to draw background")
	}
	return options[i], nil
}

// seedRules stores the scenario's public and hidden rules, plus any dark
// rules the oracle comes up with. Oracle failures only cost the extra rules.
func (o *orchestrator) seedRules(ctx context.Context, gameID string, scenario *catalog.Scenario) error {
	rules := make([]entities.Rule, 0, len(scenario.Rules)+len(scenario.HiddenRules))
	for _, text := range scenario.Rules {
		rules = append(rules, entities.Rule{GameID: gameID, Text: text})
	}
	for _, text := range scenario.HiddenRules {
		rules = append(rules, entities.Rule{GameID: gameID, Text: text, Hidden: true})
	}

	if o.darkRules {
		callCtx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
		extra, err := o.oracle.GenerateRules(callCtx, scenario.Name())
		cancel()
		if err != nil {
			slog.WarnContext(ctx, "no dark rules this game", "game_id", gameID, "error", err)
		}
		for _, text := range extra {
			rules = append(rules, entities.Rule{GameID: gameID, Text: text, Hidden: true})
		}
	}

	if len(rules) == 0 {
		return nil
	}
	if _, err := o.gameRepo.AddRules(ctx, &games.AddRulesInput{GameID: gameID, Rules: rules}); err != nil {
		return errors.Wrap(err, "failed to save rules")
	}
	return nil
}
