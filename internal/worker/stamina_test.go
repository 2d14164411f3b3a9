package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeRestorer struct {
	mu      sync.Mutex
	amounts []int
	err     error
}

func (f *fakeRestorer) RestoreStamina(_ context.Context, amount int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amounts = append(f.amounts, amount)
	return 3, f.err
}

func (f *fakeRestorer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.amounts)
}

func TestRunPassesAmount(t *testing.T) {
	r := &fakeRestorer{}
	w, err := newStaminaWorker(r, time.Hour, 5, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	w.Run()
	if len(r.amounts) != 1 || r.amounts[0] != 5 {
		t.Fatalf("amounts = %v, want [5]", r.amounts)
	}

	r.err = errors.New("locked")
	w.Run()
	if r.calls() != 2 {
		t.Fatalf("calls = %d, want 2", r.calls())
	}
}

func TestSchedulerFires(t *testing.T) {
	r := &fakeRestorer{}
	w, err := newStaminaWorker(r, 20*time.Millisecond, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for r.calls() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduler ran %d times in 2s, want at least 2", r.calls())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
