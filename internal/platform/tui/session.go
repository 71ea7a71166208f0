package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
	screenOnline
)

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	Store       *storage.Store // Optional
	Coordinator *multiplayer.Coordinator
	Session     *multiplayer.ChannelSession
	Config      core.RuntimeConfig
	Controls    config.ControlsConfig
	Levels      []duel.Level
}

// SessionModel is the top-level model of one player's session: the menu
// and whichever screen it opened. Used for local menus and SSH sessions.
type SessionModel struct {
	opts   SessionOptions
	config core.RuntimeConfig
	active screenKind

	menu   MenuModel
	game   *GameModel
	scores *ScoreboardModel
	online *OnlineModel

	quitting bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	m := SessionModel{opts: opts, config: opts.Config}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.config, m.opts.Levels)
	menu.embedded = true
	return menu
}

// Init starts the session's single event listener.
func (m SessionModel) Init() tea.Cmd {
	if m.opts.Session == nil {
		return nil
	}
	return listenEvents(m.opts.Session)
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case eventMsg:
		var cmd tea.Cmd
		if m.online != nil {
			next, c := m.online.Update(msg)
			online := next.(OnlineModel)
			m.online = &online
			cmd = c
		}
		return m, tea.Batch(cmd, listenEvents(m.opts.Session))
	}

	switch m.active {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenOnline:
		return m.updateOnline(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.active = screenMenu
	m.game, m.scores, m.online = nil, nil, nil
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.opts.Coordinator != nil && m.opts.Session != nil {
		m.opts.Coordinator.SessionDisconnected(m.opts.Session)
	}
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		scores := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		scores.embedded = true
		m.scores = &scores
		m.active = screenScores
		return m, scores.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if id == string(duel.ModeOnline) && m.opts.Coordinator != nil && m.opts.Session != nil {
			online := NewOnlineModel(m.opts.Coordinator, m.opts.Session, m.config, m.opts.Controls)
			online.embedded = true
			m.online = &online
			m.active = screenOnline
			return m, online.Init()
		}

		game, err := registry.Create(id)
		if err != nil {
			return m.toMenu()
		}
		if lvl := m.menu.StartLevel(); lvl > 0 {
			duel.SetStartLevel(lvl)
		}
		cfg := m.config
		cfg.Seed = 0
		gm := NewGameModel(game, m.opts.Store, cfg, m.opts.Controls)
		gm.embedded = true
		m.game = &gm
		m.active = screenGame
		return m, gm.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	switch {
	case gm.IsQuitting():
		return m.quit()
	case gm.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sm := next.(ScoreboardModel)
	m.scores = &sm

	switch {
	case sm.IsQuitting():
		return m.quit()
	case sm.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	om := next.(OnlineModel)
	m.online = &om

	switch {
	case om.IsQuitting():
		return m.quit()
	case om.BackToMenu():
		m.opts.Coordinator.SessionDisconnected(m.opts.Session)
		return m.toMenu()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.active == screenGame && m.game != nil:
		return m.game.View()
	case m.active == screenScores && m.scores != nil:
		return m.scores.View()
	case m.active == screenOnline && m.online != nil:
		return m.online.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a full session in its own program.
func RunSession(opts SessionOptions) error {
	if opts.Coordinator != nil && opts.Session != nil {
		defer opts.Coordinator.SessionDisconnected(opts.Session)
	}
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
