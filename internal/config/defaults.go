package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/pokerdice.yaml
var defaultPokerDiceYAML []byte

// DefaultPokerDiceConfig returns the hardcoded default configuration.
// It matches defaults/pokerdice.yaml.
func DefaultPokerDiceConfig() PokerDiceConfig {
	return PokerDiceConfig{
		Game: GameConfig{
			MaxDice:           5,
			ImpulseMultiplier: 2.5,
			VerticalOffset:    math.Pi / 4,
		},
		Policy: PolicyConfig{
			StartFrom:              "point_to_surface",
			HoldPlayOnTrackingLoss: true,
		},
		Engine: EngineConfig{
			SurfaceDelayTicks: 30,
			SettleTicks:       20,
			TableRadius:       0.6,
			Flight:            0.4,
			Tumble:            1.7,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPokerDiceYAML
}
