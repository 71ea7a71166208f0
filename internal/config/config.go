// Package config loads Blockfall settings from YAML with embedded defaults.
package config

import "time"

// BlockfallConfig holds every tunable of a match.
type BlockfallConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Speed    SpeedConfig    `yaml:"speed"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Rotation RotationConfig `yaml:"rotation"`
	Match    MatchConfig    `yaml:"match"`
	Bot      BotConfig      `yaml:"bot"`
	Controls ControlsConfig `yaml:"controls"`
	Campaign []LevelConfig  `yaml:"campaign"`
}

// BoardConfig sizes the playfield.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	NextQueue int `yaml:"next_queue"` // Number of previewed pieces
}

// SpeedConfig is the gravity curve in milliseconds.
type SpeedConfig struct {
	StartMs       int `yaml:"start_ms"`
	MinMs         int `yaml:"min_ms"`
	StepMs        int `yaml:"step_ms"` // Subtracted per level
	LinesPerLevel int `yaml:"lines_per_level"`
}

// Start returns the level-1 fall interval.
func (s SpeedConfig) Start() time.Duration { return time.Duration(s.StartMs) * time.Millisecond }

// Min returns the fastest fall interval.
func (s SpeedConfig) Min() time.Duration { return time.Duration(s.MinMs) * time.Millisecond }

// Step returns the per-level speedup.
func (s SpeedConfig) Step() time.Duration { return time.Duration(s.StepMs) * time.Millisecond }

// ScoringConfig defines points.
type ScoringConfig struct {
	LineRewards    []int `yaml:"line_rewards"` // Index = rows cleared at once
	HardDropPerRow int   `yaml:"hard_drop_per_row"`
	SoftDropPerRow int   `yaml:"soft_drop_per_row"`
}

// RotationConfig lists the horizontal kick offsets tried in order.
type RotationConfig struct {
	Kicks []int `yaml:"kicks"`
}

// MatchConfig covers two-board matches.
type MatchConfig struct {
	TimeSeconds int  `yaml:"time_seconds"`
	Garbage     bool `yaml:"garbage"`
}

// Duration returns the VS match length.
func (m MatchConfig) Duration() time.Duration { return time.Duration(m.TimeSeconds) * time.Second }

// BotConfig drives the computer opponent.
type BotConfig struct {
	IntervalMs int              `yaml:"interval_ms"`
	Weights    BotWeightsConfig `yaml:"weights"`
}

// Interval returns the time between bot actions.
func (b BotConfig) Interval() time.Duration { return time.Duration(b.IntervalMs) * time.Millisecond }

// BotWeightsConfig holds relative action chances.
type BotWeightsConfig struct {
	Left     float64 `yaml:"left"`
	Right    float64 `yaml:"right"`
	Rotate   float64 `yaml:"rotate"`
	SoftDrop float64 `yaml:"soft_drop"`
	HardDrop float64 `yaml:"hard_drop"`
}

// Sum returns the total weight.
func (w BotWeightsConfig) Sum() float64 {
	return w.Left + w.Right + w.Rotate + w.SoftDrop + w.HardDrop
}

// ControlsConfig maps key names to actions for each player plus global keys.
type ControlsConfig struct {
	Player1 KeyBindings    `yaml:"player1"`
	Player2 KeyBindings    `yaml:"player2"`
	Global  GlobalBindings `yaml:"global"`
}

// KeyBindings are the piece controls of one player.
type KeyBindings struct {
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	Rotate   []string `yaml:"rotate"`
	SoftDrop []string `yaml:"soft_drop"`
	HardDrop []string `yaml:"hard_drop"`
	Hold     []string `yaml:"hold"`
}

// GlobalBindings are the match-level keys shared by both players.
type GlobalBindings struct {
	Pause   []string `yaml:"pause"`
	Restart []string `yaml:"restart"`
	Back    []string `yaml:"back"`
	Quit    []string `yaml:"quit"`
}

// LevelConfig is one campaign stage. A level is won by reaching TargetScore
// or by surviving TimeLimitSeconds; zero disables that goal.
type LevelConfig struct {
	ID               int    `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	TargetScore      int    `yaml:"target_score"`
	TimeLimitSeconds int    `yaml:"time_limit_seconds"`
}

// TimeLimit returns the survival goal, zero when unset.
func (l LevelConfig) TimeLimit() time.Duration { return time.Duration(l.TimeLimitSeconds) * time.Second }

// DifficultyPreset names a fixed bot pace chosen before a match.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty input yields "".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}
