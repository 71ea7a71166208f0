package duel

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// Snapshot captures the complete match state for determinism testing,
// rendering and delivery to an online session.
type Snapshot struct {
	Mode     Mode
	Status   Status
	Winner   core.PlayerID
	Reason   EndReason
	Tick     uint64
	TimeLeft time.Duration
	Elapsed  time.Duration

	// Level is the 1-based campaign stage, 0 outside campaign.
	Level      int
	LevelCount int
	LevelInfo  Level

	Boards []engine.Snapshot
}

// IsGameSnapshot marks Snapshot as a multiplayer payload.
func (Snapshot) IsGameSnapshot() {}

// Draw reports a two-board match that ended level on time.
func (s Snapshot) Draw() bool {
	return s.Mode.TwoBoard() && s.Status == StatusVictory && s.Winner == core.PlayerNone
}

// Snapshot returns the current match snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Mode:     g.mode,
		Status:   g.status,
		Winner:   g.winner,
		Reason:   g.reason,
		Tick:     g.tick,
		TimeLeft: g.timeLeft,
		Elapsed:  g.elapsed,
	}
	if lvl, ok := g.Level(); ok {
		s.Level = g.levelIndex + 1
		s.LevelCount = len(g.levels)
		s.LevelInfo = lvl
	}
	for _, l := range g.loops {
		if l != nil {
			s.Boards = append(s.Boards, l.Board().Snapshot())
		}
	}
	return s
}

// MatchSnapshot returns the snapshot as a multiplayer payload.
func (g *Game) MatchSnapshot() multiplayer.GameSnapshot {
	return g.Snapshot()
}
