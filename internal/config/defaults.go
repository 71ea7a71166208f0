package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in configuration.
// It mirrors defaults/blockfall.yaml and is used when no YAML can be parsed.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:     10,
			Height:    20,
			NextQueue: 3,
		},
		Speed: SpeedConfig{
			StartMs:       800,
			MinMs:         100,
			StepMs:        50,
			LinesPerLevel: 10,
		},
		Scoring: ScoringConfig{
			LineRewards:    []int{0, 100, 300, 500, 800},
			HardDropPerRow: 2,
			SoftDropPerRow: 1,
		},
		Rotation: RotationConfig{
			Kicks: []int{0, -1, 1, -2, 2},
		},
		Match: MatchConfig{
			TimeSeconds: 180,
			Garbage:     true,
		},
		Bot: BotConfig{
			IntervalMs: 300,
			Weights: BotWeightsConfig{
				Left:     0.2,
				Right:    0.2,
				Rotate:   0.2,
				SoftDrop: 0.3,
				HardDrop: 0.1,
			},
		},
		Controls: ControlsConfig{
			Player1: KeyBindings{
				Left:     []string{"a"},
				Right:    []string{"d"},
				Rotate:   []string{"w"},
				SoftDrop: []string{"s"},
				HardDrop: []string{"space"},
				Hold:     []string{"e"},
			},
			Player2: KeyBindings{
				Left:     []string{"left"},
				Right:    []string{"right"},
				Rotate:   []string{"up"},
				SoftDrop: []string{"down"},
				HardDrop: []string{"enter"},
				Hold:     []string{"/"},
			},
			Global: GlobalBindings{
				Pause:   []string{"p"},
				Restart: []string{"r"},
				Back:    []string{"esc", "b"},
				Quit:    []string{"ctrl+c", "q"},
			},
		},
		Campaign: []LevelConfig{
			{ID: 1, Name: "Basics", Description: "Score 1,000 points", TargetScore: 1000},
			{ID: 2, Name: "Speed Up", Description: "Score 3,000 points", TargetScore: 3000},
			{ID: 3, Name: "Survival", Description: "Survive for 60 seconds", TimeLimitSeconds: 60},
			{ID: 4, Name: "Master", Description: "Score 10,000 points", TargetScore: 10000},
		},
	}
}
