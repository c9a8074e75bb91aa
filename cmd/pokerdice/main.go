// pokerdice is a poker dice table for the terminal.
//
// Usage:
//
//	pokerdice play           - Play at a local table
//	pokerdice serve          - Start SSH server for remote play
//	pokerdice scores         - Show the best recorded rounds
//	pokerdice sim            - Autoplay rounds and log every hand
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible throws
//	--db <path>      - Set database path (default: ~/.pokerdice/rounds.db)
//	--config <path>  - Use a custom table config YAML
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pokerdice/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pokerdice",
	Short: "Poker dice - throw five dice onto a table in your terminal",
	Long: `Poker dice finds a table surface, lets you aim at it, and throws
dice with a swipe. Each die lands on a face (9, 10, J, Q, K or A) and the
five faces are scored as a poker hand.

Available commands:
  play     - Play at a local table
  serve    - Start SSH server for remote play
  scores   - View the best rounds
  sim      - Headless autoplay

Examples:
  pokerdice play
  pokerdice play --seed 42
  pokerdice serve --ssh :2222
  pokerdice sim --rounds 20`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pokerdice/rounds.db", "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom table config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pokerdice",
	})
}

// loadConfig loads the table config or exits with the reason.
func loadConfig() config.PokerDiceConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
