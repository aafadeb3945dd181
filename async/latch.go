package async

import (
	"fmt"
	"sync"

	"github.com/tidewater-io/util/syncx"
)

// Latch is the poll-only deferred result variant, anchored to a [Subscribable] at construction.
// It records the first event or error delivered by the source and ignores every delivery after that,
// so a misbehaving producer can never overwrite an outcome that a reader may have already seen.
type Latch[T any] struct {
	mux sync.Mutex
	val T
	ok  bool
	err error
}

// FromSource subscribes a new [Latch] to src.
// The source's multiplicity doesn't matter; only its first callback invocation of either kind is kept.
func FromSource[T any](src Subscribable[T]) *Latch[T] {
	l := &Latch[T]{}
	src.Subscribe(l.accept, l.fail)
	return l
}

func (l *Latch[T]) accept(val T) {
	syncx.Locked(&l.mux, func() {
		if l.ok || l.err != nil {
			return
		}
		l.val, l.ok = val, true
	})
}

func (l *Latch[T]) fail(err error) {
	if err == nil {
		return
	}
	syncx.Locked(&l.mux, func() {
		if l.ok || l.err != nil {
			return
		}
		l.err = err
	})
}

// Value polls for the outcome without blocking.
// If the source reported an error, an error wrapping [ErrSourceFailed] and the cause is returned.
// Otherwise the value is returned with true, or the zero value with false when nothing has arrived yet.
func (l *Latch[T]) Value() (T, bool, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	var zero T
	if l.err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrSourceFailed, l.err)
	}
	if l.ok {
		return l.val, true, nil
	}
	return zero, false, nil
}

// State derives the lifecycle state from whichever outcome is present.
// A Latch has no explicit terminal flag and cannot be cancelled, so the state is never [Cancelled].
func (l *Latch[T]) State() State {
	return syncx.LockedT(&l.mux, func() State {
		switch {
		case l.err != nil:
			return Rejected
		case l.ok:
			return Fulfilled
		default:
			return Pending
		}
	})
}
