package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// OnlineState is a step of the simulated online flow.
type OnlineState int

const (
	OnlineStateChoose    OnlineState = iota // Host or join
	OnlineStateHosting                      // Room created, waiting for the opponent
	OnlineStateEnterCode                    // Typing a room code
	OnlineStateJoining                      // Code accepted, connecting
	OnlineStateInMatch
	OnlineStateEnded
)

// eventMsg wraps a coordinator event for Bubble Tea.
type eventMsg struct {
	evt multiplayer.SessionEvent
}

// listenEvents waits for the next event on the session. Exactly one
// listener must be pending per session.
func listenEvents(s *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt, ok := <-s.Events():
			if !ok {
				return nil
			}
			return eventMsg{evt: evt}
		case <-s.Done():
			return nil
		}
	}
}

// OnlineModel drives the simulated lobby and renders the match it starts.
type OnlineModel struct {
	state       OnlineState
	width       int
	height      int
	coordinator *multiplayer.Coordinator
	session     *multiplayer.ChannelSession
	gameID      string
	keys        KeyMap
	menuKeys    MenuKeyMap
	screen      *core.Screen

	code      string
	opponent  string
	codeInput string
	errMsg    string

	matchID  multiplayer.MatchID
	snapshot duel.Snapshot
	hasSnap  bool
	ended    multiplayer.MatchEndedEvent

	embedded   bool // Hosted by SessionModel, which owns the event listener
	backToMenu bool
	quitting   bool
}

// NewOnlineModel creates the lobby screen for session.
func NewOnlineModel(
	coordinator *multiplayer.Coordinator,
	session *multiplayer.ChannelSession,
	cfg core.RuntimeConfig,
	controls config.ControlsConfig,
) OnlineModel {
	return OnlineModel{
		state:       OnlineStateChoose,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		coordinator: coordinator,
		session:     session,
		gameID:      string(duel.ModeOnline),
		keys:        NewKeyMap(controls),
		menuKeys:    DefaultMenuKeyMap(),
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
	}
}

// Init starts listening for events unless the host model does.
func (m OnlineModel) Init() tea.Cmd {
	if m.embedded {
		return nil
	}
	return listenEvents(m.session)
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case eventMsg:
		m = m.handleEvent(msg.evt)
		if m.embedded {
			return m, nil
		}
		return m, listenEvents(m.session)
	}
	return m, nil
}

func (m OnlineModel) handleEvent(evt multiplayer.SessionEvent) OnlineModel {
	switch e := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		m.code = e.Code
		m.state = OnlineStateHosting
	case multiplayer.LobbyJoinedEvent:
		m.opponent = e.Opponent
	case multiplayer.LobbyErrorEvent:
		m.errMsg = e.Message
		m.state = OnlineStateChoose
	case multiplayer.MatchStartedEvent:
		m.matchID = e.MatchID
		m.code = e.Code
		m.opponent = e.Opponent
		m.hasSnap = false
		m.state = OnlineStateInMatch
	case multiplayer.SnapshotEvent:
		if e.MatchID != m.matchID {
			break
		}
		if snap, ok := e.Snapshot.(duel.Snapshot); ok {
			m.snapshot = snap
			m.hasSnap = true
		}
	case multiplayer.MatchEndedEvent:
		if e.MatchID != m.matchID {
			break
		}
		m.ended = e
		m.state = OnlineStateEnded
	}
	return m
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.state {
	case OnlineStateChoose:
		return m.handleChooseKey(msg)
	case OnlineStateHosting:
		if key.Matches(msg, m.menuKeys.Back) {
			m.coordinator.CancelLobby(m.session) //nolint:errcheck // room may already have started
			m.state = OnlineStateChoose
			m.code, m.opponent = "", ""
		}
	case OnlineStateEnterCode:
		return m.handleCodeKey(msg)
	case OnlineStateJoining:
		if key.Matches(msg, m.menuKeys.Back) {
			m.coordinator.CancelLobby(m.session) //nolint:errcheck // room may already have started
			m.state = OnlineStateEnterCode
		}
	case OnlineStateInMatch:
		return m.handleMatchKey(msg)
	case OnlineStateEnded:
		switch {
		case key.Matches(msg, m.menuKeys.Select), key.Matches(msg, m.keys.Restart):
			m = m.resetLobby()
		case key.Matches(msg, m.menuKeys.Back):
			return m.leave()
		case key.Matches(msg, m.menuKeys.Quit):
			return m.quit()
		}
	}
	return m, nil
}

func (m OnlineModel) handleChooseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.errMsg = ""
		if _, err := m.coordinator.CreateLobby(m.session, m.gameID); err != nil {
			m.errMsg = lobbyErrorText(err)
		}
	case "j", "J", "2":
		m.state = OnlineStateEnterCode
		m.codeInput = ""
		m.errMsg = ""
	case "esc", "b":
		return m.leave()
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m OnlineModel) handleCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = OnlineStateChoose
		m.errMsg = ""
	case "enter":
		if err := m.coordinator.JoinLobby(m.session, m.gameID, m.codeInput); err != nil {
			m.errMsg = lobbyErrorText(err)
			return m, nil
		}
		m.errMsg = ""
		m.code = strings.ToUpper(m.codeInput)
		m.state = OnlineStateJoining
	case "backspace":
		if m.codeInput != "" {
			m.codeInput = m.codeInput[:len(m.codeInput)-1]
		}
	default:
		k := msg.String()
		if len(k) == 1 && len(m.codeInput) < 8 {
			c := strings.ToUpper(k)
			if strings.Contains(multiplayer.CodeAlphabet, c) {
				m.codeInput += c
			}
		}
	}
	return m, nil
}

func (m OnlineModel) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, a := m.keys.MapKey(msg, false)
	switch a {
	case core.ActionNone:
	case core.ActionQuit:
		m.coordinator.LeaveMatch(m.session)
		return m.quit()
	case core.ActionBack:
		// Forfeit; MatchEndedEvent follows.
		m.coordinator.LeaveMatch(m.session)
	default:
		frame := core.NewInputFrame()
		frame.Set(a)
		m.coordinator.SendInput(m.session, frame)
	}
	return m, nil
}

func (m OnlineModel) resetLobby() OnlineModel {
	m.state = OnlineStateChoose
	m.code, m.opponent, m.codeInput, m.errMsg = "", "", "", ""
	m.matchID = ""
	m.hasSnap = false
	return m
}

func (m OnlineModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

func (m OnlineModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

func lobbyErrorText(err error) string {
	switch {
	case errors.Is(err, multiplayer.ErrEmptyCode):
		return "Enter a room code"
	case errors.Is(err, multiplayer.ErrLobbyNotFound):
		return "No room with that code"
	case errors.Is(err, multiplayer.ErrLobbyFull):
		return "That room is full"
	case errors.Is(err, multiplayer.ErrOwnLobby):
		return "That is your own room"
	case errors.Is(err, multiplayer.ErrAlreadyInLobby):
		return "Already in a room"
	case errors.Is(err, multiplayer.ErrStopped):
		return "Server is shutting down"
	default:
		return err.Error()
	}
}

// View renders the current step.
func (m OnlineModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateInMatch:
		if !m.hasSnap {
			return m.lines("MATCH STARTING", "", "Opponent: "+m.opponent, "", "Get ready!")
		}
		m.snapshot.Render(m.screen)
		return RenderScreen(m.screen)
	case OnlineStateEnded:
		return m.viewEnded()
	case OnlineStateHosting:
		status := "Waiting for an opponent to join..."
		if m.opponent != "" {
			status = m.opponent + " joined. Starting..."
		}
		return m.lines("HOSTING ROOM", "", "Share this code with your opponent:", "",
			fmt.Sprintf("[ %s ]", m.code), "", status, "", dimStyle.Render("Esc: Cancel"))
	case OnlineStateEnterCode:
		input := m.codeInput + "_"
		out := []string{"JOIN ROOM", "", "Enter the room code:", "", fmt.Sprintf("[ %-5s ]", input)}
		if m.errMsg != "" {
			out = append(out, "", errorStyle.Render(m.errMsg))
		}
		out = append(out, "", dimStyle.Render("Enter: Connect  |  Esc: Back"))
		return m.lines(out...)
	case OnlineStateJoining:
		return m.lines("CONNECTING", "", "Joining room "+m.code, "", "Please wait...", "", dimStyle.Render("Esc: Cancel"))
	default:
		out := []string{"ONLINE VERSUS", "", "[H] Host a room", "[J] Join a room"}
		if m.errMsg != "" {
			out = append(out, "", errorStyle.Render(m.errMsg))
		}
		out = append(out, "", dimStyle.Render("Esc: Back  |  Q: Quit"))
		return m.lines(out...)
	}
}

func (m OnlineModel) viewEnded() string {
	e := m.ended
	var result string
	switch e.Winner {
	case core.Player1:
		result = "YOU WIN!"
	case core.Player2:
		result = "YOU LOSE"
	default:
		result = "DRAW"
	}
	return m.lines(
		"MATCH OVER", "",
		titleStyle.Render(result), "",
		fmt.Sprintf("You %d  -  %d %s", e.Score1, e.Score2, m.opponent),
		dimStyle.Render(e.Reason.String()), "",
		dimStyle.Render("Enter: Play again  |  Esc: Menu  |  Q: Quit"),
	)
}

func (m OnlineModel) lines(rows ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(centerText(r, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// State returns the current step.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// BackToMenu reports a request to leave the lobby.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports a quit request.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// RunOnline runs the lobby screen in its own program. The session is
// disconnected from the coordinator when the program exits.
func RunOnline(
	coordinator *multiplayer.Coordinator,
	session *multiplayer.ChannelSession,
	cfg core.RuntimeConfig,
	controls config.ControlsConfig,
) error {
	defer coordinator.SessionDisconnected(session)

	p := tea.NewProgram(NewOnlineModel(coordinator, session, cfg, controls), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
