package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := Parse(defaultBlockfallYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	def := DefaultBlockfallConfig()

	if cfg.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", cfg.Board, def.Board)
	}
	if cfg.Speed != def.Speed {
		t.Errorf("Speed = %+v, expected %+v", cfg.Speed, def.Speed)
	}
	if cfg.Match != def.Match {
		t.Errorf("Match = %+v, expected %+v", cfg.Match, def.Match)
	}
	if cfg.Bot != def.Bot {
		t.Errorf("Bot = %+v, expected %+v", cfg.Bot, def.Bot)
	}
	if len(cfg.Campaign) != len(def.Campaign) {
		t.Fatalf("len(Campaign) = %d, expected %d", len(cfg.Campaign), len(def.Campaign))
	}
	for i := range cfg.Campaign {
		if cfg.Campaign[i] != def.Campaign[i] {
			t.Errorf("Campaign[%d] = %+v, expected %+v", i, cfg.Campaign[i], def.Campaign[i])
		}
	}
	if strings.Join(cfg.Controls.Player2.Hold, ",") != "/" {
		t.Errorf("Player2.Hold = %v, expected [/]", cfg.Controls.Player2.Hold)
	}
}

func TestParseKeepsDefaultsForOmittedKeys(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  width: 12\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("Board.Width = %d, expected 12", cfg.Board.Width)
	}
	if cfg.Board.Height != 20 {
		t.Errorf("Board.Height = %d, expected 20", cfg.Board.Height)
	}
	if cfg.Speed.Start() != 800*time.Millisecond {
		t.Errorf("Speed.Start() = %v, expected 800ms", cfg.Speed.Start())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockfallConfig)
		errMsg string
	}{
		{"defaults", func(*BlockfallConfig) {}, ""},
		{"narrow board", func(c *BlockfallConfig) { c.Board.Width = 3 }, "board width must be >= 4"},
		{"no queue", func(c *BlockfallConfig) { c.Board.NextQueue = 0 }, "next_queue"},
		{"short queue", func(c *BlockfallConfig) { c.Board.NextQueue = 2 }, "next_queue must be >= 3"},
		{"start below min", func(c *BlockfallConfig) { c.Speed.StartMs = 50 }, "start_ms"},
		{"no kicks", func(c *BlockfallConfig) { c.Rotation.Kicks = nil }, "kicks"},
		{"zero weights", func(c *BlockfallConfig) { c.Bot.Weights = BotWeightsConfig{} }, "weights"},
		{"goal-less level", func(c *BlockfallConfig) {
			c.Campaign = append(c.Campaign, LevelConfig{ID: 9})
		}, "campaign level 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("match:\n  time_seconds: 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall error: %v", err)
	}
	if cfg.Match.Duration() != 90*time.Second {
		t.Errorf("Match.Duration() = %v, expected 90s", cfg.Match.Duration())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadBlockfall(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlockfall(path); err == nil {
		t.Error("expected validation error for narrow board")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		interval int
	}{
		{"", 300},
		{DifficultyEasy, 500},
		{DifficultyNormal, 300},
		{DifficultyHard, 150},
		{DifficultyFixed, 300},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Bot.IntervalMs != tt.interval {
				t.Errorf("Bot.IntervalMs = %d, expected %d", cfg.Bot.IntervalMs, tt.interval)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, ok := ParsePreset(s); !ok {
			t.Errorf("ParsePreset(%q) rejected", s)
		}
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset(insane) accepted")
	}
}
