package engine

import (
	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// DefaultVariationPercent is the join-time stat spread
const DefaultVariationPercent = 15

// Stat bounds after variation
const (
	MinVital = 1
	MinSkill = 10
	MaxSkill = 200
)

// RateConfig tunes SuccessRate
type RateConfig struct {
	Base         float64
	StatWeight   float64
	SanityWeight float64
	SanityOffset float64
	MinRate      float64
	MaxRate      float64
}

// DefaultRateConfig returns the standard tuning
func DefaultRateConfig() RateConfig {
	return RateConfig{
		Base:         0.5,
		StatWeight:   0.3,
		SanityWeight: 0.2,
		SanityOffset: 0.5,
		MinRate:      0.05,
		MaxRate:      0.95,
	}
}

// SuccessRate maps a stat and the player's sanity to a probability that
// never reaches 0 or 1
func (c RateConfig) SuccessRate(stat, sanity int) float64 {
	rate := c.Base +
		c.StatWeight*float64(stat)/100 +
		c.SanityWeight*(float64(sanity)/100-c.SanityOffset)

	if rate < c.MinRate {
		return c.MinRate
	}
	if rate > c.MaxRate {
		return c.MaxRate
	}
	return rate
}

// StatFor returns the stat an action kind is checked against
func StatFor(kind entities.ActionKind, p *entities.Player) int {
	switch kind {
	case entities.ActionAttack:
		return p.Accuracy
	case entities.ActionFlee:
		return p.Agility
	default:
		return p.Sanity
	}
}
