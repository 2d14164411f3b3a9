package lock

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	k := NewKeyed[int64]()
	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(7)
			defer unlock()

			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			time.Sleep(100 * time.Microsecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("saw %d holders at once, want 1", maxSeen)
	}
	if n := k.Len(); n != 0 {
		t.Fatalf("entries left = %d, want 0", n)
	}
}

func TestKeyedIndependentKeys(t *testing.T) {
	k := NewKeyed[int64]()
	unlockA := k.Lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := k.Lock(2)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on key 2 blocked behind key 1")
	}
}

func TestKeyedUnlockIsIdempotent(t *testing.T) {
	k := NewKeyed[string]()
	unlock := k.Lock("a")
	unlock()
	unlock()

	if n := k.Len(); n != 0 {
		t.Fatalf("entries left = %d, want 0", n)
	}
	k.Lock("a")()
}
