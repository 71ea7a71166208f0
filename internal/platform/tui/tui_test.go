package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testKeys() KeyMap {
	return NewKeyMap(config.DefaultBlockfallConfig().Controls)
}

func TestKeyMapBindings(t *testing.T) {
	keys := testKeys()

	tests := []struct {
		name       string
		msg        tea.KeyMsg
		split      bool
		wantPlayer core.PlayerID
		wantAction core.Action
	}{
		{"p1 left", runeKey('a'), true, core.Player1, core.ActionLeft},
		{"p1 rotate", runeKey('w'), true, core.Player1, core.ActionRotate},
		{"space alias", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true, core.Player1, core.ActionHardDrop},
		{"p1 hold", runeKey('e'), true, core.Player1, core.ActionHold},
		{"p2 split", tea.KeyMsg{Type: tea.KeyLeft}, true, core.Player2, core.ActionLeft},
		{"p2 merged", tea.KeyMsg{Type: tea.KeyLeft}, false, core.Player1, core.ActionLeft},
		{"p2 hard drop", tea.KeyMsg{Type: tea.KeyEnter}, true, core.Player2, core.ActionHardDrop},
		{"pause", runeKey('p'), true, core.Player1, core.ActionPause},
		{"restart", runeKey('r'), false, core.Player1, core.ActionRestart},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, false, core.Player1, core.ActionBack},
		{"quit", runeKey('q'), false, core.Player1, core.ActionQuit},
		{"unbound", runeKey('z'), false, core.PlayerNone, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a := keys.MapKey(tt.msg, tt.split)
			if p != tt.wantPlayer || a != tt.wantAction {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), p, a, tt.wantPlayer, tt.wantAction)
			}
		})
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "AB")
	s.DrawTextColored(2, 0, "CD", core.ColorPurple)
	out := RenderScreen(s)

	if !strings.Contains(out, "AB") || !strings.Contains(out, "CD") {
		t.Errorf("RenderScreen() = %q, expected both runs", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("line breaks = %d, expected 1", got)
	}
}

func newTestGameModel(t *testing.T, mode duel.Mode) (GameModel, *duel.Game) {
	t.Helper()
	g, err := registry.Create(string(mode))
	if err != nil {
		t.Fatalf("Create(%s): %v", mode, err)
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	m := NewGameModel(g, nil, cfg, config.DefaultBlockfallConfig().Controls)
	m.Init()
	return m, g.(*duel.Game)
}

func TestGameModelTick(t *testing.T) {
	m, g := newTestGameModel(t, duel.ModeMarathon)

	next, _ := m.Update(runeKey('s'))
	m = next.(GameModel)
	next, cmd := m.Update(TickMsg{Gen: m.gen})
	m = next.(GameModel)

	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if g.Score1() != 1 {
		t.Errorf("Score1() = %d, expected 1 after a soft drop", g.Score1())
	}
	if g.Status() != duel.StatusPlaying {
		t.Errorf("Status() = %v, expected playing", g.Status())
	}

	tick := g.Snapshot().Tick
	next, cmd = m.Update(TickMsg{Gen: m.gen + 1000})
	m = next.(GameModel)
	if cmd != nil || g.Snapshot().Tick != tick {
		t.Error("a tick from another game model must be ignored")
	}

	if !strings.Contains(m.View(), "NEXT") {
		t.Error("View() should render the side panel")
	}
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m, _ := newTestGameModel(t, duel.ModeMarathon)
	m.embedded = true

	next, _ := m.Update(TickMsg{Gen: m.gen})
	m = next.(GameModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(GameModel)
	if m.BackToMenu() {
		t.Fatal("back must be ignored while playing")
	}

	next, _ = m.Update(runeKey('p'))
	m = next.(GameModel)
	next, _ = m.Update(TickMsg{Gen: m.gen})
	m = next.(GameModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(GameModel)
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestMatchRecordWinner(t *testing.T) {
	g := duel.New(duel.ModeCPU)
	g.ResetWith(core.RuntimeConfig{TickRate: 60, Seed: 1}, config.DefaultBlockfallConfig())

	snap := g.Snapshot()
	snap.Winner = core.Player2
	snap.Reason = duel.ReasonTopOut
	rec := matchRecord(g, snap, time.Unix(10, 0))

	if rec.Player2 != "cpu" || rec.Winner != "cpu" {
		t.Errorf("record = %+v, expected cpu to win", rec)
	}
	if rec.EndReason != "top_out" || rec.Mode != "cpu" {
		t.Errorf("record = %+v", rec)
	}
}

func TestMenuCampaignLevelPicker(t *testing.T) {
	levels := duel.LevelsFromConfig(config.DefaultBlockfallConfig().Campaign)
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, levels)

	idx := -1
	for i, item := range m.items {
		if item.GameID == string(duel.ModeCampaign) {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("campaign not listed")
	}

	var next tea.Model = m
	for range idx {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if !m.pickingLevel || m.Selected() != nil {
		t.Fatal("selecting campaign should open the level picker")
	}
	if !strings.Contains(m.View(), levels[0].Name) {
		t.Error("level picker should list level names")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != "campaign" || m.StartLevel() != 2 {
		t.Errorf("selection = %+v level %d, expected campaign level 2", m.Selected(), m.StartLevel())
	}
	if cmd == nil {
		t.Error("standalone menu should quit after a selection")
	}
}

func TestOnlineModelEvents(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewOnlineModel(nil, nil, cfg, config.DefaultBlockfallConfig().Controls)
	m.embedded = true

	step := func(evt multiplayer.SessionEvent) {
		next, _ := m.Update(eventMsg{evt: evt})
		m = next.(OnlineModel)
	}

	step(multiplayer.LobbyCreatedEvent{Code: "AB12", GameID: "online"})
	if m.State() != OnlineStateHosting || !strings.Contains(m.View(), "AB12") {
		t.Fatalf("state = %v, expected hosting with the code shown", m.State())
	}

	step(multiplayer.LobbyJoinedEvent{Code: "AB12", Side: core.Player1, Opponent: "Guest AB12"})
	if !strings.Contains(m.View(), "Guest AB12 joined") {
		t.Error("hosting view should announce the opponent")
	}

	step(multiplayer.MatchStartedEvent{MatchID: "m1", Side: core.Player1, Code: "AB12", Opponent: "Guest AB12"})
	if m.State() != OnlineStateInMatch {
		t.Fatalf("state = %v, expected in match", m.State())
	}

	g := duel.New(duel.ModeOnline)
	g.ResetWith(core.RuntimeConfig{TickRate: 60, Seed: 3}, config.DefaultBlockfallConfig())
	step(multiplayer.SnapshotEvent{MatchID: "other", Snapshot: g.Snapshot()})
	if m.hasSnap {
		t.Error("snapshots of another match must be ignored")
	}
	step(multiplayer.SnapshotEvent{MatchID: "m1", Tick: 1, Snapshot: g.Snapshot()})
	if !m.hasSnap || !strings.Contains(m.View(), "REMOTE") {
		t.Error("match view should render the streamed snapshot")
	}

	step(multiplayer.MatchEndedEvent{MatchID: "m1", Winner: core.Player1, Score1: 300, Score2: 100})
	if m.State() != OnlineStateEnded || !strings.Contains(m.View(), "YOU WIN!") {
		t.Errorf("state = %v, expected a won match", m.State())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(OnlineModel)
	if m.State() != OnlineStateChoose {
		t.Errorf("state = %v, expected back at host/join", m.State())
	}
}

func TestOnlineModelJoinCode(t *testing.T) {
	c := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), duel.NewOnlineGame)
	defer c.Stop()
	session := multiplayer.NewChannelSession("tester", multiplayer.DefaultEventBuffer)
	defer session.Close()

	m := NewOnlineModel(c, session, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, config.DefaultBlockfallConfig().Controls)
	m.embedded = true

	var next tea.Model = m
	next, _ = next.Update(runeKey('j'))
	for _, r := range "ab" {
		next, _ = next.Update(runeKey(r))
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(OnlineModel)
	if m.State() != OnlineStateEnterCode || m.errMsg != "No room with that code" {
		t.Fatalf("state = %v err %q, expected a rejected code", m.State(), m.errMsg)
	}

	for _, r := range "cd" {
		next, _ = next.Update(runeKey(r))
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(OnlineModel)
	if m.State() != OnlineStateJoining || m.code != "ABCD" {
		t.Fatalf("state = %v code %q, expected joining ABCD", m.State(), m.code)
	}
	if lobby, ok := c.GetLobby("abcd"); !ok || !lobby.Joining {
		t.Fatal("joining should open a pending lobby for the code")
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(OnlineModel)
	if m.State() != OnlineStateEnterCode {
		t.Errorf("state = %v, expected code entry after cancel", m.State())
	}
	if c.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d, expected 0 after cancel", c.LobbyCount())
	}
}
