package fractal

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBarrierBroken is returned by Wait once a participant broke the barrier.
var ErrBarrierBroken = errors.New("barrier broken")

// Barrier is a reusable rendezvous for a fixed number of participants.
// Every Wait returns once all participants have called Wait for the same
// generation. Writes made before Wait are visible to every participant
// after it returns.
type Barrier struct {
	parties int

	mu         sync.Mutex
	cond       *sync.Cond
	arrived    int
	generation uint64
	cause      error
}

func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Parties returns the number of participants.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all participants arrived or the barrier got broken.
func (b *Barrier) Wait() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cause != nil {
		return b.brokenErr()
	}

	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return nil
	}

	for gen == b.generation && b.cause == nil {
		b.cond.Wait()
	}
	if gen == b.generation {
		return b.brokenErr()
	}
	return nil
}

func (b *Barrier) brokenErr() error {
	return fmt.Errorf("%w: %w", ErrBarrierBroken, b.cause)
}

// Break releases every waiter, current and future, with an error wrapping
// ErrBarrierBroken and cause. Only the first cause is kept.
func (b *Barrier) Break(cause error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cause != nil {
		return
	}
	if cause == nil {
		cause = errors.New("no cause given")
	}
	b.cause = cause
	b.cond.Broadcast()
}

// Cause returns the error the barrier was broken with, if any.
func (b *Barrier) Cause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cause
}
