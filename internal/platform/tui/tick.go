// Package tui provides the Bubble Tea front end: the game runner, the
// control binding table, the mode menu, the scoreboard, the simulated
// online lobby and SSH delivery of all of them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation step of the game model that issued it.
type TickMsg struct {
	Time time.Time
	Gen  int64
}

// tickGen numbers game models so a stale tick chain is ignored after a new
// game has started in the same program.
var tickGen atomic.Int64

func nextTickGen() int64 {
	return tickGen.Add(1)
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int, gen int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
