package cmd

import (
	"context"
	"testing"
	"time"
)

// TestRun_StopsAfterDuration runs the full alternation protocol briefly and
// checks that every worker goroutine exits cleanly once the run context
// expires.
func TestRun_StopsAfterDuration(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- run(context.Background(), 100*time.Millisecond, false)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after its duration elapsed")
	}
}

func TestRun_FairLock(t *testing.T) {
	if err := run(context.Background(), 50*time.Millisecond, true); err != nil {
		t.Fatalf("run with fair lock: %v", err)
	}
}
