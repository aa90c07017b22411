// Package cmd implements the multiplier example program: a Petri net that
// multiplies two non-negative integers by repeated addition, fired
// concurrently by several worker goroutines while the main goroutine waits
// on the terminal transition.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	petrinet "github.com/ksztenderski/PetriNet"
)

type place string

const (
	placeToAdd place = "TO_ADD"
	placeB     place = "B"
	placeProd  place = "PRODUCT"
	placeMutex place = "MUTEX"
	placeA     place = "A"
	placeEnd   place = "END"
)

var operandA, operandB int
var workers int

var rootCmd = &cobra.Command{
	Use:   "multiplier",
	Short: "Multiply two non-negative integers using a Petri net",
	RunE: func(cmd *cobra.Command, args []string) error {
		product, err := run(cmd.Context(), operandA, operandB, workers)
		if err != nil {
			return err
		}
		fmt.Printf("%d * %d = %d\n", operandA, operandB, product)
		return nil
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
	rootCmd.Flags().IntVar(&operandA, "a", 0, "first non-negative operand")
	rootCmd.Flags().IntVar(&operandB, "b", 0, "second non-negative operand")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "number of goroutines racing to fire the non-terminal transitions")
}

// addingTransition moves value tokens from TO_ADD into both PRODUCT and A,
// as long as MUTEX and END are both empty.
func addingTransition(value int) *petrinet.Transition[place] {
	return petrinet.NewTransition(
		fmt.Sprintf("add-%d", value),
		map[place]int{placeToAdd: value},
		map[place]int{placeProd: value, placeA: value},
		[]place{placeMutex, placeEnd},
		nil,
	)
}

// fillingTransition moves value tokens from A into TO_ADD while MUTEX holds
// one token, as long as END is empty.
func fillingTransition(value int) *petrinet.Transition[place] {
	return petrinet.NewTransition(
		fmt.Sprintf("fill-%d", value),
		map[place]int{placeMutex: 1, placeA: value},
		map[place]int{placeMutex: 1, placeToAdd: value},
		[]place{placeEnd},
		nil,
	)
}

// restartTransition consumes one token from B and releases MUTEX, starting
// the next pass that adds A to PRODUCT, as long as MUTEX, TO_ADD and END
// are all empty.
func restartTransition() *petrinet.Transition[place] {
	return petrinet.NewTransition(
		"restart",
		map[place]int{placeB: 1},
		map[place]int{placeMutex: 1},
		[]place{placeMutex, placeToAdd, placeEnd},
		nil,
	)
}

// endFillingTransition consumes MUTEX once A and END are both empty,
// signalling that this pass is done refilling TO_ADD.
func endFillingTransition() *petrinet.Transition[place] {
	return petrinet.NewTransition(
		"end-filling",
		map[place]int{placeMutex: 1},
		nil,
		[]place{placeA, placeEnd},
		nil,
	)
}

// endingTransition fires once B, TO_ADD and MUTEX are all empty: the
// product is final.
func endingTransition() *petrinet.Transition[place] {
	return petrinet.NewTransition(
		"end",
		nil,
		map[place]int{placeEnd: 1, placeMutex: 1},
		[]place{placeToAdd, placeB, placeMutex},
		nil,
	)
}

// nonTerminalTransitions returns every transition except the ending one.
// Adding and filling transitions exist at every power-of-two weight up to
// 2^30, so any token count that fits in an int32 can be moved in O(log n)
// firings instead of one token at a time.
func nonTerminalTransitions() []*petrinet.Transition[place] {
	ts := []*petrinet.Transition[place]{restartTransition(), endFillingTransition()}
	for value := 1; value <= 1<<30; value *= 2 {
		ts = append(ts, addingTransition(value), fillingTransition(value))
	}
	return ts
}

func run(ctx context.Context, a, b, workerCount int) (int, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return 0, fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	initial := map[place]int{}
	if a > 0 {
		initial[placeA] = a
	}
	if b > 0 {
		initial[placeB] = b
	}

	net := petrinet.New(initial, false, petrinet.WithLogger[place](logger))

	nonTerminal := nonTerminalTransitions()
	terminal := []*petrinet.Transition[place]{endingTransition()}

	// Workers fire every non-terminal transition until cancelled. Once the
	// ending transition fires, every non-terminal transition becomes
	// permanently disabled (all of them inhibit on END), so there is
	// nothing left for a worker to do; cancelling workerCtx wakes any
	// worker still blocked in Fire instead of leaking it.
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, err := net.Fire(workerCtx, nonTerminal); err != nil {
					return
				}
			}
		}()
	}

	if _, err := net.Fire(ctx, terminal); err != nil {
		stopWorkers()
		wg.Wait()
		return 0, fmt.Errorf("waiting for multiplication to finish: %w", err)
	}
	stopWorkers()
	wg.Wait()

	return net.Marking()[placeProd], nil
}
