package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls (defaults, see blockfall.yaml):
  A/D, W, S, Space, E         - Player 1 move, rotate, soft drop, hard drop, hold
  Arrows, Enter, /            - Player 2 (versus) or Player 1 in other modes
  P                           - Pause
  R                           - Restart (after the match ends)
  N/Enter                     - Next campaign level
  Esc                         - Back (paused or ended)
  Q/Ctrl+C                    - Quit

Difficulty options:
  easy   - CPU acts every 500ms and rarely hard-drops
  normal - CPU acts at the configured interval
  hard   - CPU acts every 150ms
  fixed  - Same as normal

The CPU pace is fixed for the whole match.

Examples:
  blockfall play marathon
  blockfall play campaign --level 2
  blockfall play cpu --difficulty hard
  blockfall play versus --config ./my-blockfall.yaml
  blockfall play online`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameFlags()
	if gameID == string(duel.ModeCampaign) && flagLevel > 0 {
		if flagLevel > len(gameCfg.Campaign) {
			fmt.Fprintf(os.Stderr, "Error: level %d out of range (1-%d)\n", flagLevel, len(gameCfg.Campaign))
			os.Exit(1)
		}
		duel.SetStartLevel(flagLevel)
	}

	cfg := runtimeConfig()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var runErr error
	if gameID == string(duel.ModeOnline) {
		runErr = playOnline(store, cfg, gameCfg)
	} else {
		game, createErr := registry.Create(gameID)
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", createErr)
			os.Exit(1)
		}
		runErr = tui.Run(game, store, cfg, gameCfg.Controls)
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playOnline runs the simulated lobby against an in-process coordinator.
func playOnline(store *storage.Store, cfg core.RuntimeConfig, gameCfg config.BlockfallConfig) error {
	coordinator := newLocalCoordinator(store, cfg)
	defer coordinator.Stop()

	session := multiplayer.NewChannelSession("local", multiplayer.DefaultEventBuffer)
	defer session.Close()

	return tui.RunOnline(coordinator, session, cfg, gameCfg.Controls)
}

func newLocalCoordinator(store *storage.Store, cfg core.RuntimeConfig) *multiplayer.Coordinator {
	ccfg := multiplayer.DefaultCoordinatorConfig()
	ccfg.TickRate = cfg.TickRate
	coordinator := multiplayer.NewCoordinator(ccfg, duel.NewOnlineGame)
	if store != nil {
		coordinator.SetResultSaver(store)
	}
	coordinator.Start()
	return coordinator
}

// loadGameConfig reads blockfall.yaml the same way the game does, with the
// difficulty preset applied.
func loadGameConfig() (config.BlockfallConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.BlockfallConfig{}, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	cfg, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		return config.BlockfallConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// applyGameFlags passes config flags to the modes before they are created.
func applyGameFlags() {
	duel.SetConfigPath(flagConfig)
	duel.SetDifficultyPreset(flagDifficulty)
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
