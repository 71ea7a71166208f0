// Package multiplayer provides match and session plumbing for two-board play:
// identifiers, session events, the simulated online lobby and the
// authoritative online match loop.
package multiplayer

import (
	"errors"

	"github.com/vovakirdan/blockfall/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the local human player, Player2 is the CPU, a second local
// player or the simulated remote opponent.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a game match.
type MatchID string

// MatchMode defines how a match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-board game (marathon, campaign).
	MatchModeSolo MatchMode = iota

	// MatchModeLocal is two humans sharing one keyboard.
	MatchModeLocal

	// MatchModeVsCPU is player vs the bot.
	MatchModeVsCPU

	// MatchModeOnline is player vs a simulated remote opponent reached through a lobby.
	MatchModeOnline
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeLocal:
		return "Local VS"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeOnline:
		return "Online"
	default:
		return "Unknown"
	}
}

// Lobby errors returned by the coordinator.
var (
	ErrLobbyNotFound  = errors.New("multiplayer: lobby not found")
	ErrLobbyFull      = errors.New("multiplayer: lobby is full")
	ErrAlreadyInLobby = errors.New("multiplayer: already in a lobby")
	ErrOwnLobby       = errors.New("multiplayer: cannot join your own lobby")
	ErrEmptyCode      = errors.New("multiplayer: room code is empty")
	ErrStopped        = errors.New("multiplayer: coordinator stopped")
)
