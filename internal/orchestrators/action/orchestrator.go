// Package action resolves free-form player actions: the oracle interprets the
// text, hidden rules are checked, stats and history are persisted and players
// who end up in the same room run into each other.
package action

//go:generate mockgen -destination=mock/mock_service.go -package=actionmock github.com/KirkDiggler/horror-bot/internal/orchestrators/action Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/clients/oracle"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/pkg/clock"
	"github.com/KirkDiggler/horror-bot/internal/pkg/idgen"
	"github.com/KirkDiggler/horror-bot/internal/repositories/encounters"
	"github.com/KirkDiggler/horror-bot/internal/repositories/games"
	"github.com/KirkDiggler/horror-bot/internal/repositories/players"
)

const (
	// DefaultViolationSanityPenalty is stacked onto the sanity delta when a
	// hidden rule is broken
	DefaultViolationSanityPenalty = 15

	// DefaultOracleTimeout bounds each oracle call
	DefaultOracleTimeout = 5 * time.Second

	// DescriptionCannotAct is returned to players who are missing or dead
	DescriptionCannotAct = "You are in no state to act."

	unknownLocationName = "An Unknown Place"
)

// Service resolves free-form actions
type Service interface {
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// CompletionFunc reports whether the game ended after an action
type CompletionFunc func(ctx context.Context, gameID string) (bool, error)

// ResolveInput is one typed action
type ResolveInput struct {
	GameID     string
	PlayerID   string
	ActionText string
}

// ResolveOutput is what the player sees
type ResolveOutput struct {
	Outcome         *entities.ActionOutcome
	ViolationNotice string
	EncounterText   string
	// DeathText is set when this action took the player's last health
	DeathText string
	// Player is the stored snapshot after the action; nil when nothing was persisted
	Player *entities.Player
}

// Config holds the dependencies for the action resolver
type Config struct {
	PlayerRepo    players.Repository
	GameRepo      games.Repository
	EncounterRepo encounters.Repository
	Oracle        oracle.Client
	Notifier      notify.Notifier
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	OracleTimeout          time.Duration
	ViolationSanityPenalty int

	// CompletionCheck is optional
	CompletionCheck CompletionFunc
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
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.Oracle == nil {
		vb.RequiredField("Oracle")
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
	errors.ValidateRange("ViolationSanityPenalty", c.ViolationSanityPenalty, 0, entities.MaxStat, vb)

	return vb.Build()
}

type orchestrator struct {
	playerRepo    players.Repository
	gameRepo      games.Repository
	encounterRepo encounters.Repository
	oracle        oracle.Client
	notifier      notify.Notifier
	idGen         idgen.Generator
	clock         clock.Clock
	completion    CompletionFunc

	oracleTimeout    time.Duration
	violationPenalty int
}

var _ Service = (*orchestrator)(nil)

// NewOrchestrator creates a new action resolver
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		playerRepo:       cfg.PlayerRepo,
		gameRepo:         cfg.GameRepo,
		encounterRepo:    cfg.EncounterRepo,
		oracle:           cfg.Oracle,
		notifier:         cfg.Notifier,
		idGen:            cfg.IDGenerator,
		clock:            cfg.Clock,
		completion:       cfg.CompletionCheck,
		oracleTimeout:    cfg.OracleTimeout,
		violationPenalty: cfg.ViolationSanityPenalty,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.oracleTimeout == 0 {
		o.oracleTimeout = DefaultOracleTimeout
	}

	return o, nil
}

// mapView is the part of the game the oracle prompt needs
type mapView struct {
	scenario  string
	locations map[string]*entities.Location
}

func (m *mapView) name(locationID string) string {
	if loc, ok := m.locations[locationID]; ok {
		return loc.Name
	}
	return unknownLocationName
}

func (m *mapView) exits(locationID string) []*entities.Location {
	loc, ok := m.locations[locationID]
	if !ok {
		return nil
	}
	var exits []*entities.Location
	for _, id := range loc.Exits {
		if exit, ok := m.locations[id]; ok {
			exits = append(exits, exit)
		}
	}
	return exits
}

func (o *orchestrator) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GameID", input.GameID, vb)
	errors.ValidateRequired("PlayerID", input.PlayerID, vb)
	errors.ValidateRequired("ActionText", input.ActionText, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	logger := slog.With("game_id", input.GameID, "player_id", input.PlayerID)
	actionText := strings.TrimSpace(input.ActionText)

	got, err := o.playerRepo.Get(ctx, &players.GetInput{GameID: input.GameID, PlayerID: input.PlayerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &ResolveOutput{Outcome: entities.FailedOutcome(DescriptionCannotAct)}, nil
		}
		return nil, errors.Wrap(err, "failed to load player")
	}
	player := got.Player
	if !player.IsAlive() {
		return &ResolveOutput{Outcome: entities.FailedOutcome(DescriptionCannotAct)}, nil
	}

	view := o.loadMap(ctx, input.GameID)
	outcome := o.interpret(ctx, player, view, actionText)

	out := &ResolveOutput{Outcome: outcome}
	if o.violated(ctx, input.GameID, actionText, outcome.Description) {
		outcome.SanityDelta -= o.violationPenalty
		out.ViolationNotice = oracle.FallbackViolationNotice
		logger.InfoContext(ctx, "hidden rule broken", "penalty", o.violationPenalty)
	}

	update := &players.UpdateStatsInput{
		GameID:      input.GameID,
		PlayerID:    input.PlayerID,
		HPDelta:     outcome.HPDelta,
		SanityDelta: outcome.SanityDelta,
	}
	if len(outcome.DiscoveredItems) > 0 {
		update.Inventory = append(append([]string{}, player.Inventory...), outcome.DiscoveredItems...)
	}
	if dest, ok := outcome.MovesTo(); ok {
		if _, known := view.locations[dest]; known {
			update.LocationID = &dest
		} else {
			logger.DebugContext(ctx, "ignoring move to unknown location", "location_id", dest)
		}
	}

	updated, err := o.playerRepo.UpdateStats(ctx, update)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update player stats")
	}
	player = updated.Player

	for _, entry := range []entities.ConversationEntry{
		{Role: entities.RoleUser, Content: actionText},
		{Role: entities.RoleAssistant, Content: outcome.Description},
	} {
		appended, err := o.playerRepo.AppendConversation(ctx, &players.AppendConversationInput{
			GameID:   input.GameID,
			PlayerID: input.PlayerID,
			Entry:    entry,
		})
		if err != nil {
			// stats are committed at this point, so the outcome still goes out
			logger.ErrorContext(ctx, "failed to append conversation", "role", entry.Role, "error", err)
			break
		}
		player.History = appended.History
	}
	out.Player = player

	if !player.IsAlive() {
		out.DeathText = o.narrateDeath(ctx, player, view)
		logger.InfoContext(ctx, "player eliminated")
	}

	out.EncounterText = o.detectEncounter(ctx, player, view, outcome.Description)

	if err := o.notifier.ActionResolved(ctx, &notify.ActionResolvedInput{
		GameID:          input.GameID,
		Player:          player,
		ActionText:      actionText,
		Outcome:         outcome,
		ViolationNotice: out.ViolationNotice,
		EncounterText:   out.EncounterText,
		DeathText:       out.DeathText,
	}); err != nil {
		logger.WarnContext(ctx, "failed to refresh dashboard", "error", err)
	}

	if o.completion != nil {
		if _, err := o.completion(ctx, input.GameID); err != nil {
			logger.WarnContext(ctx, "completion check failed", "error", err)
		}
	}

	return out, nil
}

func (o *orchestrator) loadMap(ctx context.Context, gameID string) *mapView {
	view := &mapView{locations: map[string]*entities.Location{}}

	if game, err := o.gameRepo.Get(ctx, &games.GetInput{ID: gameID}); err != nil {
		slog.WarnContext(ctx, "failed to load game", "game_id", gameID, "error", err)
	} else {
		view.scenario = catalog.DisplayName(game.Game.ScenarioID)
	}

	locs, err := o.gameRepo.ListLocations(ctx, &games.ListLocationsInput{GameID: gameID})
	if err != nil {
		slog.WarnContext(ctx, "failed to load map", "game_id", gameID, "error", err)
		return view
	}
	for _, loc := range locs.Locations {
		view.locations[loc.ID] = loc
	}

	return view
}

func (o *orchestrator) interpret(ctx context.Context, p *entities.Player, view *mapView, actionText string) *entities.ActionOutcome {
	callCtx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
	defer cancel()

	outcome, err := o.oracle.ProcessAction(callCtx, &oracle.ProcessActionInput{
		ActionText:   actionText,
		Scenario:     view.scenario,
		LocationName: view.name(p.LocationID),
		Player:       p,
		Exits:        view.exits(p.LocationID),
		History:      p.History,
	})
	if err != nil || outcome == nil {
		slog.WarnContext(ctx, "oracle could not interpret action, using fallback",
			"game_id", p.GameID,
			"player_id", p.ID,
			"error", err)
		return entities.FailedOutcome(oracle.FallbackActionDescription)
	}

	return outcome
}

// violated asks the oracle about hidden rules. Any failure counts as not violated.
func (o *orchestrator) violated(ctx context.Context, gameID, actionText, description string) bool {
	rules, err := o.gameRepo.ListRules(ctx, &games.ListRulesInput{GameID: gameID, Visibility: games.RulesHidden})
	if err != nil {
		slog.WarnContext(ctx, "failed to load hidden rules", "game_id", gameID, "error", err)
		return false
	}
	if len(rules.Rules) == 0 {
		return false
	}

	texts := make([]string, 0, len(rules.Rules))
	for _, r := range rules.Rules {
		texts = append(texts, r.Text)
	}

	callCtx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
	defer cancel()

	verdict, err := o.oracle.CheckRuleViolation(callCtx, &oracle.RuleCheckInput{
		Rules:             texts,
		ActionText:        actionText,
		ActionDescription: description,
	})
	if err != nil || verdict == nil {
		slog.WarnContext(ctx, "rule check unavailable", "game_id", gameID, "error", err)
		return false
	}

	return verdict.Violated
}

// detectEncounter narrates and records a meeting with other living players in
// the player's room. It never fails the action.
func (o *orchestrator) narrateDeath(ctx context.Context, p *entities.Player, view *mapView) string {
	callCtx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
	defer cancel()

	text, err := o.oracle.GenerateSceneSummary(callCtx, oracle.DeathKeywords(p.Name, view.scenario))
	if err != nil || strings.TrimSpace(text) == "" {
		return oracle.FallbackDeathMessage(p.Name)
	}
	return strings.TrimSpace(text)
}

func (o *orchestrator) detectEncounter(ctx context.Context, p *entities.Player, view *mapView, description string) string {
	if p.LocationID == "" {
		return ""
	}

	here, err := o.playerRepo.ListAtLocation(ctx, &players.ListAtLocationInput{
		GameID:     p.GameID,
		LocationID: p.LocationID,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to list players at location",
			"game_id", p.GameID,
			"location_id", p.LocationID,
			"error", err)
		return ""
	}

	var others []string
	participants := []string{p.ID}
	for _, other := range here.Players {
		if other.ID == p.ID {
			continue
		}
		others = append(others, other.Name)
		participants = append(participants, other.ID)
	}
	if len(others) == 0 {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, o.oracleTimeout)
	text, err := o.oracle.GenerateEncounterText(callCtx, &oracle.EncounterInput{
		Scenario:          view.scenario,
		PlayerName:        p.Name,
		ActionDescription: description,
		Others:            others,
	})
	cancel()
	if err != nil || strings.TrimSpace(text) == "" {
		text = oracle.FallbackEncounterText(others)
	}

	_, err = o.encounterRepo.Record(ctx, &encounters.RecordInput{Encounter: &entities.Encounter{
		ID:             o.idGen.Generate(),
		GameID:         p.GameID,
		LocationID:     p.LocationID,
		ParticipantIDs: participants,
		Text:           text,
		CreatedAt:      o.clock.Now(),
	}})
	if err != nil {
		slog.WarnContext(ctx, "failed to record encounter",
			"game_id", p.GameID,
			"location_id", p.LocationID,
			"error", err)
	}

	return text
}
