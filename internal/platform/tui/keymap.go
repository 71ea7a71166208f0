package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// PlayerKeys are one player's piece controls.
type PlayerKeys struct {
	Left     key.Binding
	Right    key.Binding
	Rotate   key.Binding
	SoftDrop key.Binding
	HardDrop key.Binding
	Hold     key.Binding
}

func newPlayerKeys(b config.KeyBindings) PlayerKeys {
	return PlayerKeys{
		Left:     binding(b.Left, "left"),
		Right:    binding(b.Right, "right"),
		Rotate:   binding(b.Rotate, "rotate"),
		SoftDrop: binding(b.SoftDrop, "soft drop"),
		HardDrop: binding(b.HardDrop, "hard drop"),
		Hold:     binding(b.Hold, "hold"),
	}
}

func (k PlayerKeys) action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop
	case key.Matches(msg, k.Hold):
		return core.ActionHold
	}
	return core.ActionNone
}

// KeyMap is the control binding table: each player's piece keys plus the
// match keys shared by both.
type KeyMap struct {
	P1      PlayerKeys
	P2      PlayerKeys
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
	Confirm key.Binding // Next campaign level, only after a match ends
}

// NewKeyMap builds the binding table from configuration.
func NewKeyMap(c config.ControlsConfig) KeyMap {
	return KeyMap{
		P1:      newPlayerKeys(c.Player1),
		P2:      newPlayerKeys(c.Player2),
		Pause:   binding(c.Global.Pause, "pause"),
		Restart: binding(c.Global.Restart, "restart"),
		Back:    binding(c.Global.Back, "menu"),
		Quit:    binding(c.Global.Quit, "quit"),
		Confirm: key.NewBinding(key.WithKeys("enter", "n"), key.WithHelp("enter/n", "next level")),
	}
}

// binding builds a key.Binding from config key names. "space" is accepted
// as an alias for the space bar.
func binding(keys []string, help string) key.Binding {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, normalizeKey(k))
	}
	return key.NewBinding(key.WithKeys(names...), key.WithHelp(strings.Join(keys, "/"), help))
}

func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if strings.EqualFold(k, "space") {
		return " "
	}
	return k
}

// MapKey resolves a key to the player it controls and the action.
// Unless split is set, Player2's table also drives Player1, so a single
// player can use either layout.
func (k KeyMap) MapKey(msg tea.KeyMsg, split bool) (core.PlayerID, core.Action) {
	if a := k.P1.action(msg); a != core.ActionNone {
		return core.Player1, a
	}
	if a := k.P2.action(msg); a != core.ActionNone {
		if split {
			return core.Player2, a
		}
		return core.Player1, a
	}

	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.Player1, core.ActionBack
	}
	return core.PlayerNone, core.ActionNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1.Left, k.P1.Right, k.P1.Rotate, k.P1.HardDrop, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1.Left, k.P1.Right, k.P1.Rotate, k.P1.SoftDrop, k.P1.HardDrop, k.P1.Hold},
		{k.P2.Left, k.P2.Right, k.P2.Rotate, k.P2.SoftDrop, k.P2.HardDrop, k.P2.Hold},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// MenuKeyMap holds the list navigation keys shared by menu screens.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
