package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Mode   multiplayer.MatchMode
}

// MenuModel is the mode picker. Picking campaign opens a level list.
type MenuModel struct {
	items  []MenuItem
	cursor int

	levels       []duel.Level
	levelCursor  int
	pickingLevel bool

	width    int
	height   int
	config   core.RuntimeConfig
	keys     MenuKeyMap
	help     help.Model
	embedded bool

	quitting       bool
	selected       *MenuItem
	startLevel     int
	openScoreboard bool
}

// NewMenuModel lists every registered mode. levels feeds the campaign picker.
func NewMenuModel(cfg core.RuntimeConfig, levels []duel.Level) MenuModel {
	infos := registry.List()
	items := make([]MenuItem, 0, len(infos))
	for _, info := range infos {
		mode := multiplayer.MatchModeSolo
		if dm, ok := duel.ParseMode(info.ID); ok {
			mode = dm.MatchMode()
		}
		items = append(items, MenuItem{GameID: info.ID, Title: info.Title, Mode: mode})
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:  items,
		levels: levels,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pickingLevel {
			return m.handleLevelKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) done() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, m.done()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, m.done()
	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.GameID == string(duel.ModeCampaign) && len(m.levels) > 0 {
			m.pickingLevel = true
			m.levelCursor = 0
			return m, nil
		}
		m.selected = &item
		return m, m.done()
	}
	return m, nil
}

func (m MenuModel) handleLevelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, m.done()
	case key.Matches(msg, m.keys.Back):
		m.pickingLevel = false
	case key.Matches(msg, m.keys.Up):
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case key.Matches(msg, m.keys.Select):
		item := m.items[m.cursor]
		m.selected = &item
		m.startLevel = m.levelCursor + 1
		return m, m.done()
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B L O C K F A L L"), m.width))
	b.WriteString("\n\n")

	if m.pickingLevel {
		b.WriteString(centerText("Choose a level", m.width))
		b.WriteString("\n\n")
		for i, lvl := range m.levels {
			line := fmt.Sprintf("  %d. %s", i+1, lvl.Name)
			if i == m.levelCursor {
				line = selectedStyle.Render(fmt.Sprintf("> %d. %s", i+1, lvl.Name))
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if lvl := m.levels[m.levelCursor]; lvl.Description != "" {
			b.WriteString(centerText(dimStyle.Render(lvl.Description), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select a mode", m.width))
		b.WriteString("\n\n")
		for i, item := range m.items {
			line := "  " + item.Title + modeSuffix(item.Mode)
			if i == m.cursor {
				line = selectedStyle.Render("> " + item.Title + modeSuffix(item.Mode))
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

func modeSuffix(mode multiplayer.MatchMode) string {
	switch mode {
	case multiplayer.MatchModeLocal:
		return " (2P)"
	case multiplayer.MatchModeVsCPU:
		return " (CPU)"
	case multiplayer.MatchModeOnline:
		return " (Online)"
	default:
		return ""
	}
}

// Selected returns the chosen item, nil if none.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// StartLevel returns the chosen campaign level (1-based), 0 if none.
func (m MenuModel) StartLevel() int {
	return m.startLevel
}

// IsQuitting reports a quit request.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports a request for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
