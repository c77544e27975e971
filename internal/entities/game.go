package entities

import "time"

// Game is one horror session
type Game struct {
	ID         string
	ScenarioID string
	CreatorID  string
	Active     bool
	Started    bool
	CreatedAt  time.Time
	EndedAt    *time.Time
}

// Rule is a game constraint. Hidden rules are only ever shown to the oracle.
type Rule struct {
	GameID string
	Text   string
	Hidden bool
}

// Location is one node of a generated game map
type Location struct {
	ID     string
	GameID string
	Name   string
	Floor  int
	Exits  []string
	Start  bool
}

// Encounter records players meeting at a location. Written once.
type Encounter struct {
	ID             string
	GameID         string
	LocationID     string
	ParticipantIDs []string
	Text           string
	CreatedAt      time.Time
}
