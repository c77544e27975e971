// Package rpgtoolkit provides the concrete implementation of the engine interface using rpg-toolkit modules.
package rpgtoolkit

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/horror-bot/internal/engine"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const percentile = 100

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	diceRoller dice.Roller
	rates      engine.RateConfig
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	DiceRoller dice.Roller
	// Rates defaults to engine.DefaultRateConfig
	Rates *engine.RateConfig
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	if c.DiceRoller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	if c.Rates != nil && c.Rates.MinRate >= c.Rates.MaxRate {
		return errors.InvalidArgument("min rate must be below max rate")
	}
	return nil
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	rates := engine.DefaultRateConfig()
	if cfg.Rates != nil {
		rates = *cfg.Rates
	}

	return &Adapter{
		diceRoller: cfg.DiceRoller,
		rates:      rates,
	}, nil
}

var _ engine.Engine = (*Adapter)(nil)

// CheckSuccess rolls a d100; the trial succeeds when the roll is at most rate*100
func (a *Adapter) CheckSuccess(ctx context.Context, input *engine.CheckSuccessInput) (*engine.CheckSuccessOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument("player is required")
	}
	if !input.Kind.Valid() {
		return nil, errors.InvalidArgumentf("unknown action kind %q", input.Kind)
	}

	rate := a.rates.SuccessRate(engine.StatFor(input.Kind, input.Player), input.Player.Sanity)

	roll, err := a.diceRoller.Roll(percentile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll d100")
	}

	return &engine.CheckSuccessOutput{
		Success: float64(roll) <= rate*percentile,
		Rate:    rate,
		Roll:    roll,
	}, nil
}

// RollStats varies every stat by up to VariationPercent in either direction
func (a *Adapter) RollStats(ctx context.Context, input *engine.RollStatsInput) (*engine.RollStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	pct := input.VariationPercent
	if pct == 0 {
		pct = engine.DefaultVariationPercent
	}
	if pct < 0 || pct > 100 {
		return nil, errors.InvalidArgumentf("variation percent %d out of range", pct)
	}

	vary := func(base, lo, hi int) (int, error) {
		spread := base * pct / 100
		if spread <= 0 {
			return clamp(base, lo, hi), nil
		}
		// d(2*spread+1) shifted to [-spread, +spread]
		roll, err := a.diceRoller.Roll(2*spread + 1)
		if err != nil {
			return 0, errors.Wrap(err, "failed to roll stat variation")
		}
		return clamp(base+roll-1-spread, lo, hi), nil
	}

	var (
		out engine.Stats
		err error
	)
	if out.HP, err = vary(input.Base.HP, engine.MinVital, entities.MaxStat); err != nil {
		return nil, err
	}
	if out.Sanity, err = vary(input.Base.Sanity, engine.MinVital, entities.MaxStat); err != nil {
		return nil, err
	}
	if out.Agility, err = vary(input.Base.Agility, engine.MinSkill, engine.MaxSkill); err != nil {
		return nil, err
	}
	if out.Accuracy, err = vary(input.Base.Accuracy, engine.MinSkill, engine.MaxSkill); err != nil {
		return nil, err
	}

	return &engine.RollStatsOutput{Stats: out}, nil
}

// Pick rolls a die with n sides and returns a zero-based index
func (a *Adapter) Pick(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgument("cannot pick from an empty set")
	}
	if n == 1 {
		return 0, nil
	}

	roll, err := a.diceRoller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll pick")
	}
	return roll - 1, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
