package fractal

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBarrierSingleParty(t *testing.T) {
	b := NewBarrier(1)
	for i := 0; i < 100; i++ {
		if err := b.Wait(); err != nil {
			t.Fatalf("Wait #%d: %v", i, err)
		}
	}
}

func TestBarrierRounds(t *testing.T) {
	const (
		parties = 8
		rounds  = 200
	)
	b := NewBarrier(parties)
	var arrived atomic.Int64

	var wg sync.WaitGroup
	errs := make(chan error, parties)
	for range parties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := range rounds {
				arrived.Add(1)
				if err := b.Wait(); err != nil {
					errs <- err
					return
				}
				// nobody may start the next round before everyone finished this one
				if got, want := arrived.Load(), int64((round+1)*parties); got < want {
					errs <- errors.New("barrier released early")
					return
				}
				if err := b.Wait(); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("barrier deadlocked")
	}
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestBarrierBreak(t *testing.T) {
	b := NewBarrier(3)
	cause := errors.New("boom")

	waited := make(chan error, 2)
	for range 2 {
		go func() { waited <- b.Wait() }()
	}

	// the third party never arrives
	time.Sleep(10 * time.Millisecond)
	b.Break(cause)

	for range 2 {
		select {
		case err := <-waited:
			if !errors.Is(err, ErrBarrierBroken) || !errors.Is(err, cause) {
				t.Errorf("Wait = %v, want ErrBarrierBroken wrapping cause", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Break did not release waiters")
		}
	}

	if err := b.Wait(); !errors.Is(err, cause) {
		t.Errorf("Wait after Break = %v, want cause", err)
	}
	b.Break(errors.New("second"))
	if got := b.Cause(); got != cause {
		t.Errorf("Cause = %v, want first cause", got)
	}
}
