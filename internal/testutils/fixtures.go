package testutils

import (
	"github.com/KirkDiggler/horror-bot/internal/entities"
)

const (
	// TestGameID is the default game used by fixtures
	TestGameID = "game-test-123"

	// TestPlayerName is the default player name for fixtures
	TestPlayerName = "Mara Quill"
)

// CreateTestGame creates an active, started asylum game
func CreateTestGame(gameID string) *entities.Game {
	return &entities.Game{
		ID:         gameID,
		ScenarioID: "asylum",
		CreatorID:  "creator-test-001",
		Active:     true,
		Started:    true,
	}
}

// CreateTestLocations returns a three-room map: a start hall, a ward and an
// upstairs room reached from the ward
func CreateTestLocations(gameID string) []*entities.Location {
	return []*entities.Location{
		{ID: "f1_r0", GameID: gameID, Name: "Reception Hall", Floor: 1, Exits: []string{"f1_r1"}, Start: true},
		{ID: "f1_r1", GameID: gameID, Name: "Ward A", Floor: 1, Exits: []string{"f1_r0", "f2_r0"}},
		{ID: "f2_r0", GameID: gameID, Name: "Operating Theatre", Floor: 2, Exits: []string{"f1_r1"}},
	}
}

// CreateTestPlayer creates a healthy player in the start hall
func CreateTestPlayer(gameID, playerID string) *entities.Player {
	return &entities.Player{
		ID:         playerID,
		GameID:     gameID,
		Name:       TestPlayerName,
		Background: "night nurse",
		HP:         entities.MaxStat,
		Sanity:     entities.MaxStat,
		Agility:    60,
		Accuracy:   55,
		LocationID: "f1_r0",
		Inventory:  []string{"flashlight"},
	}
}
