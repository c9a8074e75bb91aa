package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/engine"
	"github.com/vovakirdan/pokerdice/internal/session"
	"github.com/vovakirdan/pokerdice/internal/storage"
)

var (
	flagRounds   int
	flagSave     bool
	flagVerbose  bool
	flagMaxSteps int
	flagJitter   float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Autoplay rounds without a terminal UI",
	Long: `Run a table headless: find the surface, start, throw every die and
log the scored hand. Repeats for --rounds rounds and prints a summary.

The same --seed yields the same rounds.

Examples:
  pokerdice sim
  pokerdice sim --rounds 100 --seed 7
  pokerdice sim --save --verbose`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRounds, "rounds", 10, "Number of rounds to play")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the rounds in the database")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every throw and settle")
	simCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 2000, "Ticks allowed per round before giving up")
	simCmd.Flags().Float64Var(&flagJitter, "jitter", 0.2, "Random camera offset from the table center before each throw, in radians")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger()
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []session.Option{session.WithLogger(logger), session.WithPlayer("sim")}
	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Error("could not open rounds database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		opts = append(opts, session.WithRecorder(store))
	}

	ctrl := dice.New(cfg.DiceOptions(seed))
	sess := session.New(ctrl, engine.NewScripted(cfg.ScriptedEngine()), opts...)

	rng := rand.New(rand.NewSource(seed))
	aim := func(s *session.Session) {
		s.AimAt((rng.Float64()-0.5)*flagJitter, session.DefaultPitch+(rng.Float64()-0.5)*flagJitter/2)
	}

	logger.Info("simulation started", "rounds", flagRounds, "seed", seed, "max_dice", ctrl.MaxDice())

	tally := make(map[dice.Category]int)
	var best dice.Hand
	played := 0
	for i := range flagRounds {
		hand, err := sess.PlayRound(flagMaxSteps, aim)
		if err != nil {
			logger.Error("round failed", "round", i+1, "error", err)
			break
		}
		played++
		tally[hand.Category]++
		if hand.Points > best.Points {
			best = hand
		}
		if i%5 == 4 {
			ctrl.ChangeStyle()
		}
	}

	fmt.Printf("\n%d rounds played (seed %d)\n\n", played, seed)
	for c := dice.CategoryFiveOfAKind; c >= dice.CategoryBust; c-- {
		if tally[c] == 0 {
			continue
		}
		fmt.Printf("  %-16s %d\n", c, tally[c])
	}
	if played > 0 {
		fmt.Printf("\nBest: %s  %s  (%d pts)\n", dice.FormatValues(best.Values), best.Category, best.Points)
	}
}
