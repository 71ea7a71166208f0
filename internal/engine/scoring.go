package engine

import "time"

// Stats is the score, cleared-line total and level of one board.
type Stats struct {
	Score int
	Lines int
	Level int
}

// Scoring holds the reward table and the gravity curve.
type Scoring struct {
	// Rewards[n] is the base reward for clearing n rows at once.
	Rewards       []int
	LinesPerLevel int
	StartSpeed    time.Duration
	MinSpeed      time.Duration
	SpeedStep     time.Duration
	HardDropPoint int
	SoftDropPoint int
}

// DefaultScoring returns the classic table: 100/300/500/800 per 1-4 rows,
// ten lines per level, gravity from 800ms down to 100ms in 50ms steps.
func DefaultScoring() Scoring {
	return Scoring{
		Rewards:       []int{0, 100, 300, 500, 800},
		LinesPerLevel: 10,
		StartSpeed:    800 * time.Millisecond,
		MinSpeed:      100 * time.Millisecond,
		SpeedStep:     50 * time.Millisecond,
		HardDropPoint: 2,
		SoftDropPoint: 1,
	}
}

// Reward returns the base reward for clearing n rows; counts past the end
// of the table earn the last entry.
func (s Scoring) Reward(n int) int {
	if n <= 0 || len(s.Rewards) == 0 {
		return 0
	}
	if n >= len(s.Rewards) {
		return s.Rewards[len(s.Rewards)-1]
	}
	return s.Rewards[n]
}

// LevelFor returns the level reached after the given number of cleared lines.
func (s Scoring) LevelFor(lines int) int {
	per := s.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return lines/per + 1
}

// FallSpeed returns the gravity interval at level.
func (s Scoring) FallSpeed(level int) time.Duration {
	d := s.StartSpeed - time.Duration(level-1)*s.SpeedStep
	if d < s.MinSpeed {
		return s.MinSpeed
	}
	return d
}

// Apply folds a clear of n rows into stats. The reward is multiplied by the
// level held before the clear. Zero rows leave stats untouched.
func (s Scoring) Apply(stats *Stats, n int) {
	if n <= 0 {
		return
	}
	stats.Score += s.Reward(n) * stats.Level
	stats.Lines += n
	stats.Level = s.LevelFor(stats.Lines)
}
