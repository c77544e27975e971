package oracle

import (
	"fmt"
	"strings"
)

// concealed words never reach a turn intro; the threat stays unnamed
var concealer = strings.NewReplacer(
	"monsters", "somethings",
	"Monsters", "Somethings",
	"monster", "something",
	"Monster", "Something",
	"ghosts", "somethings",
	"Ghosts", "Somethings",
	"ghost", "something",
	"Ghost", "Something",
)

// TurnIntroKeywords sets the mood of a new turn without naming the threat
func TurnIntroKeywords(scenario string, turn int) []string {
	return []string{scenario, "mysterious", "dangerous", "dim", "cold", fmt.Sprintf("turn %d", turn)}
}

// ConcealThreat rewrites words that would reveal what hunts the players
func ConcealThreat(text string) string {
	return concealer.Replace(text)
}

// FallbackTurnIntro opens a turn when the oracle cannot
func FallbackTurnIntro(scenario string) string {
	if scenario == "" {
		scenario = "the dark"
	}
	return fmt.Sprintf("You step into %s... Silence, except for your own footsteps.", scenario)
}

// DeathKeywords frames the narration of a player's death
func DeathKeywords(playerName, scenario string) []string {
	keywords := []string{playerName}
	if scenario != "" {
		keywords = append(keywords, scenario)
	}
	return append(keywords, "death", "despair", "darkness")
}

// FallbackDeathMessage marks a death when the oracle cannot
func FallbackDeathMessage(playerName string) string {
	return fmt.Sprintf("%s has met their fate...", playerName)
}
