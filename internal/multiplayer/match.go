package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// OnlineGame is what a game must implement to be run by an OnlineMatch.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances the game by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// MatchSnapshot returns an immutable copy of the state for the session.
	MatchSnapshot() GameSnapshot

	IsGameOver() bool

	// Winner returns the winning player, or PlayerNone for a draw.
	Winner() PlayerID

	Score1() int
	Score2() int
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Ticks   uint64
}

// OnlineMatch runs an OnlineGame at a fixed tick rate on its own goroutine.
// The local session drives Player1; the opponent lives inside the game.
type OnlineMatch struct {
	id      MatchID
	code    string
	gameID  string
	game    OnlineGame
	session SessionHandle

	inputMu   sync.Mutex
	pending   core.InputFrame
	inputChan chan core.InputFrame

	tick     uint64
	tickRate int
	done     chan struct{}
	doneOnce sync.Once

	disconnectChan chan struct{}
}

// NewOnlineMatch creates a match. The game must already be Reset.
func NewOnlineMatch(id MatchID, code, gameID string, game OnlineGame, session SessionHandle, tickRate int) *OnlineMatch {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &OnlineMatch{
		id:             id,
		code:           code,
		gameID:         gameID,
		game:           game,
		session:        session,
		inputChan:      make(chan core.InputFrame, 64),
		tickRate:       tickRate,
		done:           make(chan struct{}),
		disconnectChan: make(chan struct{}, 1),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the room code the match was started from.
func (m *OnlineMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *OnlineMatch) GameID() string {
	return m.gameID
}

// Session returns the local player's session.
func (m *OnlineMatch) Session() SessionHandle {
	return m.session
}

// SendInput queues the local player's input for the next tick.
// Non-blocking; input is dropped if the buffer is full.
func (m *OnlineMatch) SendInput(input core.InputFrame) {
	select {
	case m.inputChan <- input:
	default:
	}
}

// PlayerDisconnected ends the match on its next loop iteration.
func (m *OnlineMatch) PlayerDisconnected() {
	select {
	case m.disconnectChan <- struct{}{}:
	default:
	}
}

// Run is the authoritative match loop. onComplete is called once with the
// result unless the match is stopped first.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if result, over := m.runTick(); over {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case <-m.disconnectChan:
			if onComplete != nil {
				onComplete(m.result(MatchEndReasonDisconnect, Player2))
			}
			return

		case <-m.session.Done():
			if onComplete != nil {
				onComplete(m.result(MatchEndReasonDisconnect, Player2))
			}
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	m.drainInputs()

	m.inputMu.Lock()
	in := core.NewMultiInputFrame()
	in.SetPlayer(Player1, m.pending.Clone())
	m.pending.Clear()
	m.inputMu.Unlock()

	m.game.StepMulti(in)
	m.tick++

	m.session.Send(SnapshotEvent{
		MatchID:  m.id,
		Tick:     m.tick,
		Snapshot: m.game.MatchSnapshot(),
	})

	if m.game.IsGameOver() {
		return m.result(MatchEndReasonCompleted, m.game.Winner()), true
	}
	return MatchResult{}, false
}

func (m *OnlineMatch) drainInputs() {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

	for {
		select {
		case in := <-m.inputChan:
			for _, a := range in.Actions {
				m.pending.Set(a)
			}
		default:
			return
		}
	}
}

func (m *OnlineMatch) result(reason MatchEndReason, winner PlayerID) MatchResult {
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Winner:  winner,
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}
}

// Stop ends the loop without reporting a result. Safe to call multiple times.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Done is closed once the loop has exited or Stop was called.
func (m *OnlineMatch) Done() <-chan struct{} {
	return m.done
}
