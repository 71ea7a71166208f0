// Package duel runs Blockfall matches: one board for marathon and campaign
// play, two boards wired for garbage exchange in versus, CPU and online play.
package duel

import "github.com/vovakirdan/blockfall/internal/multiplayer"

// Mode selects the rules of a match.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeCampaign Mode = "campaign"
	ModeVersus   Mode = "versus"
	ModeCPU      Mode = "cpu"
	ModeOnline   Mode = "online"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeMarathon, ModeCampaign, ModeVersus, ModeCPU, ModeOnline}

// TwoBoard reports whether the mode plays two boards against each other.
func (m Mode) TwoBoard() bool {
	return m == ModeVersus || m == ModeCPU || m == ModeOnline
}

// BotOpponent reports whether board 2 is driven by the bot.
func (m Mode) BotOpponent() bool {
	return m == ModeCPU || m == ModeOnline
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeMarathon:
		return "Marathon"
	case ModeCampaign:
		return "Campaign"
	case ModeVersus:
		return "Versus (Local)"
	case ModeCPU:
		return "Versus CPU"
	case ModeOnline:
		return "Online (Simulated)"
	default:
		return string(m)
	}
}

// MatchMode maps the mode onto the multiplayer classification.
func (m Mode) MatchMode() multiplayer.MatchMode {
	switch m {
	case ModeVersus:
		return multiplayer.MatchModeLocal
	case ModeCPU:
		return multiplayer.MatchModeVsCPU
	case ModeOnline:
		return multiplayer.MatchModeOnline
	default:
		return multiplayer.MatchModeSolo
	}
}

// ParseMode converts a mode ID.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Status is the lifecycle state of a match.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
	StatusVictory
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	case StatusVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Ended reports whether the match is over, won or lost.
func (s Status) Ended() bool {
	return s == StatusGameOver || s == StatusVictory
}

// EndReason records why a match ended.
type EndReason string

const (
	ReasonNone   EndReason = ""
	ReasonTopOut EndReason = "top_out"
	ReasonTimeUp EndReason = "time_up"
	ReasonGoal   EndReason = "goal"
)
