package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/platform/tui"
	"github.com/vovakirdan/pokerdice/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play at a local table",
	Long: `Start a poker dice table in the terminal.

The table is scanned first. Once it is found, aim at it and press Enter
to start. Then throw up to five dice; a hand is scored when every die
has settled.

Controls:
  Enter        - Start
  Space        - Throw a die
  C            - Change dice style
  X            - Pick up the dice for another round
  Arrows/WASD  - Aim
  L            - Lose surface tracking
  R            - Reset
  Q/Ctrl+C     - Quit

Examples:
  pokerdice play
  pokerdice play --player alice
  pokerdice play --config ./my-table.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with each round (default: current user)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed

	player := flagPlayer
	if player == "" {
		if u, err := user.Current(); err == nil {
			player = u.Username
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		// Continue without storage - the table still works
		store = nil
	}

	runErr := tui.Run(cfg, store, rc, player)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running table: %v\n", runErr)
		os.Exit(1)
	}
}
