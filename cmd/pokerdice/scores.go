package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/platform/tui"
	"github.com/vovakirdan/pokerdice/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded rounds",
	Long: `Display the best recorded rounds, ordered by points.

Examples:
  pokerdice scores
  pokerdice scores --limit 25
  pokerdice scores -i          # Scrollable table
  pokerdice scores --clear     # Delete every recorded round`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Show a scrollable scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded round")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rounds database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All rounds deleted.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rounds, err := store.TopRounds(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pokerdice play' to score the first hand!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-16s  %-5s  %-8s  %s\n", "Rank", "Hand", "Dice", "Pts", "Style", "Date")
	fmt.Printf("  %-4s  %-16s  %-16s  %-5s  %-8s  %s\n", "----", "----", "----", "---", "-----", "----")

	for i, r := range rounds {
		fmt.Printf("  %-4d  %-16s  %-16s  %-5d  %-8s  %s\n",
			i+1, r.Hand, dice.FormatValues(r.Values), r.Points, r.Style, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Best: %d (%s) over %d rounds\n", stats.HighScore, stats.BestHand, stats.Rounds)
	}
}
