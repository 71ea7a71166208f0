package duel

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
)

// Level is a campaign stage. It is won by reaching TargetScore or by
// surviving TimeLimit, whichever is set.
type Level struct {
	ID          int
	Name        string
	Description string
	TargetScore int
	TimeLimit   time.Duration
}

// LevelsFromConfig converts configured campaign stages.
func LevelsFromConfig(cfgs []config.LevelConfig) []Level {
	levels := make([]Level, len(cfgs))
	for i, c := range cfgs {
		levels[i] = Level{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			TargetScore: c.TargetScore,
			TimeLimit:   c.TimeLimit(),
		}
	}
	return levels
}

// Reached reports whether the stage goal is met.
func (l Level) Reached(score int, survived time.Duration) bool {
	if l.TargetScore > 0 && score >= l.TargetScore {
		return true
	}
	return l.TimeLimit > 0 && survived >= l.TimeLimit
}
