// Package config provides YAML-based settings loading and difficulty
// presets for blockfall.
package config

import "time"

// Config is the full settings file.
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Sound SoundConfig `yaml:"sound"`
	Bot   BotConfig   `yaml:"bot"`
}

// GameConfig holds engine parameters.
type GameConfig struct {
	StartLevel  int    `yaml:"start_level"`
	FixedLevel  bool   `yaml:"fixed_level"` // Disable level progression
	NextQueue   int    `yaml:"next_queue"`  // Upcoming pieces shown and visible to the bot
	LockDelayMS int    `yaml:"lock_delay_ms"`
	Scoring     string `yaml:"scoring"` // "cumulative" or "guideline"
	Seed        int64  `yaml:"seed"`    // 0 means time-based
}

// SoundConfig toggles the terminal bell on four-line clears.
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
}

// BotConfig tunes the autonomous player.
type BotConfig struct {
	Lookahead int           `yaml:"lookahead"`
	PollMS    int           `yaml:"poll_ms"`
	TieBreak  string        `yaml:"tie_break"` // "first" or "coin"
	Parallel  bool          `yaml:"parallel"`
	Weights   WeightsConfig `yaml:"weights"`
}

// WeightsConfig are the evaluator weights.
type WeightsConfig struct {
	AggregateHeight float64 `yaml:"aggregate_height"`
	MaxHeight       float64 `yaml:"max_height"`
	Unevenness      float64 `yaml:"unevenness"`
	Holes           float64 `yaml:"holes"`
	Blockers        float64 `yaml:"blockers"`
}

const (
	minLevel = 1
	maxLevel = 15
)

// Normalize clamps out-of-range values into something playable.
func (c *Config) Normalize() {
	c.Game.StartLevel = min(max(c.Game.StartLevel, minLevel), maxLevel)
	if c.Game.NextQueue < 1 {
		c.Game.NextQueue = 1
	}
	if c.Game.LockDelayMS <= 0 {
		c.Game.LockDelayMS = 500
	}
	if c.Bot.Lookahead < 0 {
		c.Bot.Lookahead = 0
	}
	if c.Bot.Lookahead > c.Game.NextQueue {
		c.Bot.Lookahead = c.Game.NextQueue
	}
	if c.Bot.PollMS <= 0 {
		c.Bot.PollMS = 20
	}
}

// LockDelay returns the lock-down delay as a duration.
func (c Config) LockDelay() time.Duration {
	return time.Duration(c.Game.LockDelayMS) * time.Millisecond
}

// BotPoll returns the bot polling quantum as a duration.
func (c Config) BotPoll() time.Duration {
	return time.Duration(c.Bot.PollMS) * time.Millisecond
}
