// Package config provides YAML-based configuration loading for the poker
// dice table, with environment variable overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/engine"
)

// PokerDiceConfig contains all configuration for a poker dice table.
type PokerDiceConfig struct {
	Game   GameConfig   `yaml:"game"`
	Policy PolicyConfig `yaml:"policy"`
	Engine EngineConfig `yaml:"engine"`
}

// GameConfig defines dice inventory and throw strength.
type GameConfig struct {
	MaxDice           int     `yaml:"max_dice" env:"POKERDICE_MAX_DICE"`
	ImpulseMultiplier float64 `yaml:"impulse_multiplier" env:"POKERDICE_IMPULSE_MULTIPLIER"`
	VerticalOffset    float64 `yaml:"vertical_offset" env:"POKERDICE_VERTICAL_OFFSET"`
}

// PolicyConfig picks the phase rules.
type PolicyConfig struct {
	StartFrom              string `yaml:"start_from" env:"POKERDICE_START_FROM"` // detect_surface or point_to_surface
	HoldPlayOnTrackingLoss bool   `yaml:"hold_play_on_tracking_loss" env:"POKERDICE_HOLD_PLAY"`
}

// EngineConfig tunes the scripted table engine.
type EngineConfig struct {
	SurfaceDelayTicks int     `yaml:"surface_delay_ticks" env:"POKERDICE_SURFACE_DELAY_TICKS"`
	SettleTicks       int     `yaml:"settle_ticks" env:"POKERDICE_SETTLE_TICKS"`
	TableRadius       float64 `yaml:"table_radius" env:"POKERDICE_TABLE_RADIUS"`
	Flight            float64 `yaml:"flight" env:"POKERDICE_FLIGHT"`
	Tumble            float64 `yaml:"tumble" env:"POKERDICE_TUMBLE"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the ranges the controller and engine rely on.
func (c PokerDiceConfig) Validate() error {
	if c.Game.MaxDice < 1 || c.Game.MaxDice > 10 {
		return fmt.Errorf("%w: game.max_dice must be in 1..10, got %d", ErrInvalid, c.Game.MaxDice)
	}
	if c.Game.ImpulseMultiplier <= 0 {
		return fmt.Errorf("%w: game.impulse_multiplier must be positive", ErrInvalid)
	}
	phase, err := dice.ParsePhase(c.Policy.StartFrom)
	if err != nil || phase == dice.PhaseSwipeToPlay {
		return fmt.Errorf("%w: policy.start_from must be detect_surface or point_to_surface, got %q", ErrInvalid, c.Policy.StartFrom)
	}
	if c.Engine.SettleTicks <= 0 {
		return fmt.Errorf("%w: engine.settle_ticks must be positive", ErrInvalid)
	}
	if c.Engine.SurfaceDelayTicks < 0 {
		return fmt.Errorf("%w: engine.surface_delay_ticks must not be negative", ErrInvalid)
	}
	if c.Engine.TableRadius <= 0 {
		return fmt.Errorf("%w: engine.table_radius must be positive", ErrInvalid)
	}
	return nil
}

// DiceOptions converts the config into controller options.
// Call Validate first; an unparsable start_from falls back to point_to_surface.
func (c PokerDiceConfig) DiceOptions(seed int64) dice.Options {
	startFrom, err := dice.ParsePhase(c.Policy.StartFrom)
	if err != nil {
		startFrom = dice.PhasePointToSurface
	}
	return dice.Options{
		MaxDice:           c.Game.MaxDice,
		ImpulseMultiplier: c.Game.ImpulseMultiplier,
		VerticalOffset:    c.Game.VerticalOffset,
		Policy: dice.Policy{
			StartFrom:              startFrom,
			HoldPlayOnTrackingLoss: c.Policy.HoldPlayOnTrackingLoss,
		},
		Seed: seed,
	}
}

// ScriptedEngine converts the config into scripted engine settings.
func (c PokerDiceConfig) ScriptedEngine() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.SurfaceDelay = c.Engine.SurfaceDelayTicks
	cfg.SettleTicks = c.Engine.SettleTicks
	cfg.TableRadius = c.Engine.TableRadius
	cfg.Flight = c.Engine.Flight
	cfg.Tumble = c.Engine.Tumble
	return cfg
}
