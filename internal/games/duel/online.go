package duel

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// NewOnlineGame is the lobby's game factory. Only two-board modes can be
// played as an online match; the game is Reset and left Idle.
func NewOnlineGame(gameID string, cfg core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	mode, ok := ParseMode(gameID)
	if !ok || !mode.TwoBoard() {
		return nil, fmt.Errorf("duel: mode %q cannot be played online", gameID)
	}
	g := New(mode)
	g.Reset(cfg)
	return g, nil
}
