package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "blockfall.yaml"

// LoadBlockfall loads the configuration.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml -> ./configs/blockfall.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or malformed.
func LoadBlockfall(customPath string) (BlockfallConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultBlockfallYAML)
	if err != nil {
		return DefaultBlockfallConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so omitted keys keep
// their default values, and validates the result.
func Parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockfallConfig{}, fmt.Errorf("cannot parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BlockfallConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// Validate reports every setting that would make a match unplayable.
func (c BlockfallConfig) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New("config: "+msg))
		}
	}

	check(c.Board.Width >= 4, "board width must be >= 4")
	check(c.Board.Height >= 4, "board height must be >= 4")
	check(c.Board.NextQueue >= 3, "next_queue must be >= 3")
	check(c.Speed.MinMs > 0, "speed min_ms must be > 0")
	check(c.Speed.StartMs >= c.Speed.MinMs, "speed start_ms must be >= min_ms")
	check(c.Speed.StepMs >= 0, "speed step_ms must be >= 0")
	check(c.Speed.LinesPerLevel >= 1, "lines_per_level must be >= 1")
	check(len(c.Scoring.LineRewards) >= 2, "line_rewards needs at least two entries")
	for _, r := range c.Scoring.LineRewards {
		check(r >= 0, "line_rewards must not be negative")
	}
	check(len(c.Rotation.Kicks) > 0, "rotation kicks must not be empty")
	check(c.Match.TimeSeconds > 0, "match time_seconds must be > 0")
	check(c.Bot.IntervalMs > 0, "bot interval_ms must be > 0")
	check(c.Bot.Weights.Sum() > 0, "bot weights must sum to > 0")
	for _, lvl := range c.Campaign {
		check(lvl.TargetScore > 0 || lvl.TimeLimitSeconds > 0,
			fmt.Sprintf("campaign level %d needs target_score or time_limit_seconds", lvl.ID))
	}

	return errors.Join(errs...)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy slows the bot down and hard speeds it up. Normal and fixed keep the
// configured interval. The interval never changes once a match starts.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Bot.IntervalMs = 500
		cfg.Bot.Weights.HardDrop = 0.05
	case DifficultyHard:
		cfg.Bot.IntervalMs = 150
	}
}
