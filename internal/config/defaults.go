package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			StartLevel:  1,
			FixedLevel:  false,
			NextQueue:   3,
			LockDelayMS: 500,
			Scoring:     "cumulative",
			Seed:        0,
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		Bot: BotConfig{
			Lookahead: 2,
			PollMS:    20,
			TieBreak:  "coin",
			Parallel:  true,
			Weights: WeightsConfig{
				AggregateHeight: -1,
				MaxHeight:       -1,
				Unevenness:      -1,
				Holes:           -2,
				Blockers:        -3,
			},
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultYAML
}
