package game

import (
	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/orchestrators/turn"
)

// CreateGameInput opens a lobby for a scenario
type CreateGameInput struct {
	ScenarioID string
	CreatorID  string
}

// CreateGameOutput returns the lobby and its scenario
type CreateGameOutput struct {
	Game     *entities.Game
	Scenario *catalog.Scenario
}

// JoinGameInput adds a player to a lobby
type JoinGameInput struct {
	GameID   string
	PlayerID string
	Name     string
}

// JoinGameOutput returns the new player and the background they drew
type JoinGameOutput struct {
	Player     *entities.Player
	Background *catalog.Background
}

// LeaveGameInput removes a player from a lobby
type LeaveGameInput struct {
	GameID   string
	PlayerID string
}

// LeaveGameOutput is empty
type LeaveGameOutput struct{}

// StartGameInput starts a lobby; only the creator may start it
type StartGameInput struct {
	GameID      string
	RequesterID string
}

// StartGameOutput describes the world the players woke up in
type StartGameOutput struct {
	Game        *entities.Game
	Greeting    string
	Turn        int
	Intro       string
	Start       *entities.Location
	Locations   int
	PublicRules []string
}

// EndGameInput ends a game
type EndGameInput struct {
	GameID string
}

// EndGameOutput returns the ended game
type EndGameOutput struct {
	Game *entities.Game
}

// DashboardInput requests a game overview
type DashboardInput struct {
	GameID string
}

// DashboardOutput is everything a status panel shows
type DashboardOutput struct {
	Game         *entities.Game
	ScenarioName string
	Players      []*entities.Player
	PublicRules  []string
	Encounters   []*entities.Encounter
	// Turn is nil when no turn cycle is live
	Turn *turn.Snapshot
}
