package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// GameModel runs one registered game on a fixed tick.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   KeyMap
	split  bool // Player2's keys drive board 2
	gen    int64

	input       core.MultiInputFrame
	state       core.GameState
	resultSaved bool

	embedded   bool // Hosted by SessionModel: never quits the program itself
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a runner for game. Versus splits the key table
// between the two boards; every other mode maps both tables to board 1.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, controls config.ControlsConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   NewKeyMap(controls),
		split:  game.ID() == string(duel.ModeVersus),
		gen:    nextTickGen(),
		input:  core.NewMultiInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.GameOver && key.Matches(msg, m.keys.Confirm) {
		m.input.Add(core.Player1, core.ActionConfirm)
		return m, nil
	}

	p, a := m.keys.MapKey(msg, m.split)
	switch a {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case core.ActionBack:
		if m.state.GameOver || m.state.Paused {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
	default:
		m.input.Add(p, a)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := registry.StepInput(m.game, m.input)
	m.state = result.State
	m.input.Clear()

	switch {
	case m.state.GameOver && !m.resultSaved:
		m.saveResult()
		m.resultSaved = true
	case !m.state.GameOver:
		m.resultSaved = false
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveResult records board 1's run and, for local two-board matches, the
// match outcome. Best effort: play continues if the store fails.
func (m *GameModel) saveResult() {
	if m.store == nil {
		return
	}
	dg, ok := m.game.(*duel.Game)
	if !ok {
		if m.state.Score > 0 {
			m.store.SaveScore(m.game.ID(), m.state.Score, 0, 0) //nolint:errcheck // best effort
		}
		return
	}

	snap := dg.Snapshot()
	if st := snap.Boards[0].Stats; st.Score > 0 {
		m.store.SaveScore(dg.ID(), st.Score, st.Lines, st.Level) //nolint:errcheck // best effort
	}
	if !dg.Mode().TwoBoard() {
		return
	}
	m.store.SaveMatch(matchRecord(dg, snap, time.Now())) //nolint:errcheck // best effort
}

func matchRecord(g *duel.Game, snap duel.Snapshot, now time.Time) storage.MatchRecord {
	opponent := "p2"
	if g.Mode().BotOpponent() {
		opponent = "cpu"
	}
	winner := ""
	switch snap.Winner {
	case core.Player1:
		winner = "p1"
	case core.Player2:
		winner = opponent
	}
	return storage.MatchRecord{
		MatchID:   fmt.Sprintf("%s-%d", g.ID(), now.UnixNano()),
		Mode:      g.ID(),
		Player1:   "p1",
		Player2:   opponent,
		Score1:    g.Score1(),
		Score2:    g.Score2(),
		Winner:    winner,
		EndReason: string(snap.Reason),
		Duration:  snap.Elapsed,
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports a quit request.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports a request to leave the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own Bubble Tea program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, controls config.ControlsConfig) error {
	p := tea.NewProgram(
		NewGameModel(game, store, cfg, controls),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
