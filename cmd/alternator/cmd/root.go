// Package cmd implements the alternator example program: three-way mutual
// exclusion with the added rule that the same process cannot re-enter its
// critical section twice in a row, expressed entirely as a Petri net and
// driven through petrinet.Net.Fire.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	petrinet "github.com/ksztenderski/PetriNet"
)

type place string

const (
	placeA place = "A"
	placeB place = "B"
	placeC place = "C"

	pastA place = "PA"
	pastB place = "PB"
	pastC place = "PC"
)

var runFor time.Duration
var fair bool

var rootCmd = &cobra.Command{
	Use:   "alternator",
	Short: "Run the three-way alternation / mutual-exclusion example net",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), runFor, fair)
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().DurationVar(&runFor, "duration", 5*time.Second, "how long to run the alternation before cancelling every worker")
	rootCmd.Flags().BoolVar(&fair, "fair", false, "use the FIFO ticket lock instead of the default unordered lock")
}

func enterTransition(x place, past place, other1, other2 place) *petrinet.Transition[place] {
	return petrinet.NewTransition(
		"enter-"+string(x),
		nil,
		map[place]int{x: 1},
		[]place{placeA, placeB, placeC, past},
		[]place{other1, other2},
	)
}

func exitTransition(x place, past place) *petrinet.Transition[place] {
	return petrinet.NewTransition(
		"exit-"+string(x),
		map[place]int{x: 1},
		map[place]int{past: 1},
		[]place{past},
		nil,
	)
}

func run(ctx context.Context, runFor time.Duration, fair bool) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	net := petrinet.New(map[place]int{}, fair, petrinet.WithLogger[place](logger))

	transitions := map[place][2]*petrinet.Transition[place]{
		placeA: {enterTransition(placeA, pastA, pastB, pastC), exitTransition(placeA, pastA)},
		placeB: {enterTransition(placeB, pastB, pastA, pastC), exitTransition(placeB, pastB)},
		placeC: {enterTransition(placeC, pastC, pastA, pastB), exitTransition(placeC, pastC)},
	}

	all := make([]*petrinet.Transition[place], 0, 6)
	for _, pair := range transitions {
		all = append(all, pair[0], pair[1])
	}
	reached := net.Reachable(all)
	logger.Info("computed reachable markings before starting workers", zap.Int("count", len(reached)))
	for _, m := range reached {
		total := 0
		for _, w := range m {
			total += w
		}
		if total > 1 {
			logger.Warn("unsafe marking found before any worker ran", zap.Any("marking", m))
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, runFor)
	defer cancel()

	var wg sync.WaitGroup
	for name, pair := range transitions {
		wg.Add(1)
		go func(name place, enter, exit *petrinet.Transition[place]) {
			defer wg.Done()
			for {
				if _, err := net.Fire(runCtx, []*petrinet.Transition[place]{enter}); err != nil {
					return
				}
				fmt.Print(string(name) + ".")
				if _, err := net.Fire(runCtx, []*petrinet.Transition[place]{exit}); err != nil {
					return
				}
			}
		}(name, pair[0], pair[1])
	}

	wg.Wait()
	fmt.Println()
	return nil
}
