// blockfall is a falling-block duel game for the terminal.
//
// Usage:
//
//	blockfall list              - List available modes
//	blockfall play <mode>       - Play a mode
//	blockfall menu              - Start menu to pick modes interactively
//	blockfall serve             - Start SSH server for remote play
//	blockfall scores <mode>     - Show high scores and recent matches
//	blockfall sim               - Run a headless bot-vs-bot match
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible matches
//	--db <path>           - Set database path (default: ~/.blockfall/scores.db)
//	--config <path>       - Custom blockfall.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//
// BLOCKFALL_DB, BLOCKFALL_CONFIG and BLOCKFALL_LOG_LEVEL (also read from a
// .env file) override the flag defaults.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/blockfall/internal/games/duel"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling-block duels in your terminal",
	Long: `Blockfall is a falling-block puzzle game for the terminal. Play solo,
work through the campaign, duel a friend on one keyboard, race the CPU or
host a simulated online room.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and match history
  sim      - Run a headless bot match

Examples:
  blockfall list
  blockfall play versus
  blockfall play campaign --level 3
  blockfall menu
  blockfall serve --ssh :2222
  blockfall scores marathon`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q", flagLogLevel)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	_ = godotenv.Load()

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", getEnv("BLOCKFALL_DB", storage.DefaultDBPath), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", getEnv("BLOCKFALL_CONFIG", ""), "Path to custom blockfall.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", getEnv("BLOCKFALL_LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
