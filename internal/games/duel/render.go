package duel

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

const (
	cellW      = 2  // Screen columns per board cell
	panelW     = 12 // Side panel with next, hold and stats
	boardGap   = 4  // Columns between the two player areas
	headerRows = 1
	footerRows = 1
)

// kindColors maps piece kinds to screen colors.
var kindColors = map[engine.Kind]core.Color{
	engine.KindI:       core.ColorCyan,
	engine.KindJ:       core.ColorBlue,
	engine.KindL:       core.ColorOrange,
	engine.KindO:       core.ColorYellow,
	engine.KindS:       core.ColorGreen,
	engine.KindT:       core.ColorPurple,
	engine.KindZ:       core.ColorRed,
	engine.KindGarbage: core.ColorGray,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.Snapshot().Render(dst)
}

// Render draws the snapshot: header, one or two boards with side panels,
// a footer with key hints and an overlay when the match is paused or over.
func (s Snapshot) Render(dst *core.Screen) {
	dst.Clear()
	if len(s.Boards) == 0 {
		return
	}

	rows := len(s.Boards[0].Cells)
	cols := 0
	if rows > 0 {
		cols = len(s.Boards[0].Cells[0])
	}
	boxW := cols*cellW + 2
	boxH := rows + 2
	areaW := boxW + 1 + panelW
	totalW := areaW*len(s.Boards) + boardGap*(len(s.Boards)-1)
	totalH := headerRows + boxH + footerRows

	if dst.Width() < totalW || dst.Height() < totalH {
		renderTooSmall(dst, totalW, totalH)
		return
	}

	left := (dst.Width() - totalW) / 2
	top := (dst.Height() - totalH) / 2

	s.renderHeader(dst, top)
	for i, b := range s.Boards {
		x := left + i*(areaW+boardGap)
		label := "P1"
		if i == 1 {
			label = s.opponentLabel()
		}
		renderBoard(dst, b, x, top+headerRows, boxW, boxH)
		renderPanel(dst, b, label, x+boxW+1, top+headerRows)
	}
	s.renderFooter(dst, top+headerRows+boxH)
	s.renderOverlay(dst, top+headerRows+boxH/2)
}

func (s Snapshot) opponentLabel() string {
	switch s.Mode {
	case ModeCPU:
		return "CPU"
	case ModeOnline:
		return "REMOTE"
	default:
		return "P2"
	}
}

func renderTooSmall(dst *core.Screen, w, h int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d", w, h))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (s Snapshot) renderHeader(dst *core.Screen, y int) {
	title := "BLOCKFALL - " + s.Mode.Title()
	switch {
	case s.Level > 0:
		title = fmt.Sprintf("%s - Level %d/%d: %s", title, s.Level, s.LevelCount, s.LevelInfo.Description)
	case s.Mode.TwoBoard():
		title = fmt.Sprintf("%s - %s", title, formatClock(s.TimeLeft))
	}
	dst.DrawTextCentered(y, title)
}

func (s Snapshot) renderFooter(dst *core.Screen, y int) {
	hint := "WASD move/rotate  Space drop  E hold  P pause  Q quit"
	if s.Mode == ModeVersus {
		hint = "P1 WASD/Space/E  P2 Arrows/Enter//  P pause  Q quit"
	}
	dst.DrawTextColored((dst.Width()-len(hint))/2, y, hint, core.ColorGray)
}

func (s Snapshot) renderOverlay(dst *core.Screen, y int) {
	var title string
	color := core.ColorBrightYellow
	switch s.Status {
	case StatusPaused:
		title = "PAUSED"
	case StatusGameOver:
		title = "GAME OVER"
		if s.Mode.TwoBoard() {
			title = s.winnerText()
		}
		color = core.ColorBrightRed
	case StatusVictory:
		switch {
		case s.Draw():
			title = "DRAW"
		case s.Mode.TwoBoard():
			title = s.winnerText()
		default:
			title = "LEVEL CLEAR"
		}
		color = core.ColorBrightGreen
	default:
		return
	}

	msg := " " + title + " "
	hint := ""
	if s.Status.Ended() {
		hint = " R restart  Esc menu "
		if s.Status == StatusVictory && s.Level > 0 && s.Level < s.LevelCount {
			hint = " Enter next  R retry  Esc menu "
		}
	}

	w := max(len(msg), len(hint))
	dst.DrawRect(core.NewRect((dst.Width()-w)/2, y, w, 2), ' ')
	dst.DrawTextColored((dst.Width()-len(msg))/2, y, msg, color)
	if hint != "" {
		dst.DrawTextColored((dst.Width()-len(hint))/2, y+1, hint, core.ColorWhite)
	}
}

func (s Snapshot) winnerText() string {
	switch s.Winner {
	case core.Player1:
		return "P1 WINS"
	case core.Player2:
		return s.opponentLabel() + " WINS"
	default:
		return "DRAW"
	}
}

func renderBoard(dst *core.Screen, b engine.Snapshot, x, y, w, h int) {
	border := core.ColorWhite
	if b.Over {
		border = core.ColorRed
	}
	dst.DrawBox(core.NewRect(x, y, w, h), border)

	for row, line := range b.Cells {
		for col, c := range line {
			sx := x + 1 + col*cellW
			sy := y + 1 + row
			r, color := cellGlyph(c)
			dst.SetColored(sx, sy, r, color)
			dst.SetColored(sx+1, sy, r, color)
		}
	}
}

func cellGlyph(c engine.Cell) (rune, core.Color) {
	switch {
	case c.Empty():
		return ' ', core.ColorDefault
	case c.Ghost:
		return '░', core.ColorDarkGray
	case c.Kind == engine.KindGarbage:
		return '▓', kindColors[c.Kind]
	default:
		return '█', kindColors[c.Kind]
	}
}

func renderPanel(dst *core.Screen, b engine.Snapshot, label string, x, y int) {
	dst.DrawTextColored(x, y, label, core.ColorBrightWhite)

	dst.DrawText(x, y+2, "NEXT")
	row := y + 3
	for _, k := range b.Next {
		row += drawMini(dst, k, x, row) + 1
	}

	dst.DrawText(x, row, "HOLD")
	if b.Hold != engine.KindEmpty {
		color := kindColors[b.Hold]
		if !b.CanHold {
			color = core.ColorDarkGray
		}
		drawMiniColored(dst, b.Hold, x, row+1, color)
	}
	row += 4

	dst.DrawText(x, row, "SCORE")
	dst.DrawTextColored(x, row+1, fmt.Sprintf("%d", b.Stats.Score), core.ColorBrightYellow)
	dst.DrawText(x, row+2, fmt.Sprintf("LINES %d", b.Stats.Lines))
	dst.DrawText(x, row+3, fmt.Sprintf("LEVEL %d", b.Stats.Level))
}

// drawMini draws a piece preview and returns the rows it used.
func drawMini(dst *core.Screen, k engine.Kind, x, y int) int {
	return drawMiniColored(dst, k, x, y, kindColors[k])
}

func drawMiniColored(dst *core.Screen, k engine.Kind, x, y int, color core.Color) int {
	shape := k.Shape()
	used := 0
	for _, line := range shape {
		occupied := false
		for _, on := range line {
			occupied = occupied || on
		}
		if !occupied {
			continue
		}
		for col, on := range line {
			if on {
				dst.SetColored(x+col*cellW, y+used, '█', color)
				dst.SetColored(x+col*cellW+1, y+used, '█', color)
			}
		}
		used++
	}
	return used
}

// formatClock renders a countdown as m:ss, rounding partial seconds up.
func formatClock(d time.Duration) string {
	total := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
