// Package entities provides core data structures for horror-bot.
package entities

import "time"

const (
	// MaxStat bounds health and sanity
	MaxStat = 100

	// SameLocation in an outcome means the player stays where they are
	SameLocation = "same"
)

// Conversation roles recorded in player history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Player is one participant's row in one game
type Player struct {
	ID         string
	GameID     string
	Name       string
	Background string
	HP         int
	Sanity     int
	Agility    int
	Accuracy   int
	LocationID string
	Inventory  []string
	History    []ConversationEntry
	JoinedAt   time.Time
}

// ConversationEntry is one line of the rolling oracle conversation
type ConversationEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IsAlive reports whether the player still counts toward turns and encounters
func (p *Player) IsAlive() bool {
	return p.HP > 0
}

// Clone returns a deep copy so stores can hand out snapshots safely
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.Inventory = append([]string(nil), p.Inventory...)
	c.History = append([]ConversationEntry(nil), p.History...)
	return &c
}

// Clamp applies delta to current and bounds the result to [0, max]. Deltas
// larger than max in either direction saturate instead of overflowing.
func Clamp(current, delta, max int) int {
	current = bound(current, 0, max)
	delta = bound(delta, -max, max)
	return bound(current+delta, 0, max)
}

// BoundDelta limits a stat change to what a single stat can absorb
func BoundDelta(delta int) int {
	return bound(delta, -MaxStat, MaxStat)
}

func bound(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TrimHistory keeps the most recent limit entries, oldest dropped first
func TrimHistory(history []ConversationEntry, limit int) []ConversationEntry {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return append([]ConversationEntry(nil), history[len(history)-limit:]...)
}
