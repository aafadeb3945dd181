package async

import (
	"fmt"
	"sync"

	"github.com/tidewater-io/util/syncx"
)

// Deferred is a one-shot proxy for a value that will be produced by an asynchronous operation.
// The producer settles it with [Deferred.Resolve] or [Deferred.Reject], and consumers either register
// callbacks with [Deferred.Then] and [Deferred.Catch] or poll with [Deferred.Value].
//
// A Deferred settles at most once. The only state change allowed after settlement is [Deferred.Cancel],
// which stops all future notifications.
type Deferred[T any] struct {
	mux    sync.Mutex
	state  State
	value  T
	err    error
	onVal  []func(T)
	onErr  []func(error)
	report Reporter
}

// NewDeferred creates a [Pending] deferred result.
func NewDeferred[T any](opts ...Option) *Deferred[T] {
	conf := newConfig(opts)
	return &Deferred[T]{report: conf.report}
}

// Resolved creates a deferred result that is already [Fulfilled] with val.
func Resolved[T any](val T, opts ...Option) *Deferred[T] {
	conf := newConfig(opts)
	return &Deferred[T]{state: Fulfilled, value: val, report: conf.report}
}

// NewRejected creates a deferred result that is already [Rejected] with err.
// No unobserved-failure reporting happens here, since the caller is expected to hand the result to a consumer.
func NewRejected[T any](err error, opts ...Option) *Deferred[T] {
	conf := newConfig(opts)
	return &Deferred[T]{state: Rejected, err: err, report: conf.report}
}

// Compute runs fn synchronously and returns a deferred result settled with its outcome.
func Compute[T any](fn func() (T, error), opts ...Option) *Deferred[T] {
	val, err := fn()
	if err != nil {
		return NewRejected[T](err, opts...)
	}
	return Resolved(val, opts...)
}

// State reports the current lifecycle state.
func (d *Deferred[T]) State() State {
	return syncx.LockedT(&d.mux, func() State {
		return d.state
	})
}

// Value polls for the outcome without blocking.
// While [Pending] or [Cancelled] it returns the zero value, false, and no error.
// Once [Fulfilled] it returns the stored value, and once [Rejected] it returns the carried error verbatim.
func (d *Deferred[T]) Value() (T, bool, error) {
	d.mux.Lock()
	defer d.mux.Unlock()
	var zero T
	switch d.state {
	case Fulfilled:
		return d.value, true, nil
	case Rejected:
		return zero, false, d.err
	default:
		return zero, false, nil
	}
}

// Resolve fulfills the deferred result with val and fires every registered success callback in registration order.
// Resolving a [Fulfilled] or [Rejected] result returns [ErrAlreadySettled].
// Resolving a [Cancelled] result is accepted without error and has no observable effect,
// since the operation may legitimately finish after its consumer stopped listening.
func (d *Deferred[T]) Resolve(val T) error {
	var fire []func(T)
	err := syncx.LockedErr(&d.mux, func() error {
		switch d.state {
		case Cancelled:
			return nil
		case Fulfilled, Rejected:
			return fmt.Errorf("%w: cannot resolve a %s result", ErrAlreadySettled, d.state)
		}
		d.state = Fulfilled
		d.value = val
		fire = d.onVal
		d.onVal, d.onErr = nil, nil
		return nil
	})
	if err != nil {
		return err
	}
	for _, fn := range fire {
		fn(val)
	}
	return nil
}

// Reject settles the deferred result with rejectErr and fires every registered error callback in registration order.
// The same state rules as [Deferred.Resolve] apply.
// If no error callback was registered by the time of rejection, rejectErr goes to the reporter instead.
func (d *Deferred[T]) Reject(rejectErr error) error {
	var (
		fire       []func(error)
		unobserved bool
	)
	err := syncx.LockedErr(&d.mux, func() error {
		switch d.state {
		case Cancelled:
			return nil
		case Fulfilled, Rejected:
			return fmt.Errorf("%w: cannot reject a %s result", ErrAlreadySettled, d.state)
		}
		d.state = Rejected
		d.err = rejectErr
		fire = d.onErr
		unobserved = len(fire) == 0
		d.onVal, d.onErr = nil, nil
		return nil
	})
	if err != nil {
		return err
	}
	if unobserved {
		d.report(rejectErr)
		return nil
	}
	for _, fn := range fire {
		fn(rejectErr)
	}
	return nil
}

// Cancel unconditionally moves the deferred result to [Cancelled] and drops all registered callbacks.
// It does not stop the producing operation, and it does not notify anyone.
func (d *Deferred[T]) Cancel() {
	syncx.Locked(&d.mux, func() {
		d.state = Cancelled
		d.onVal, d.onErr = nil, nil
	})
}

// Then registers a success callback and, optionally, an error callback.
// When no error callback is given, failures are passed to the reporter so they can't be silently lost.
// If the result has already settled, the matching callback fires immediately on the calling goroutine.
// Then returns the same deferred result to allow chaining.
func (d *Deferred[T]) Then(onSuccess func(T), onError ...func(error)) *Deferred[T] {
	onErr := func(err error) {
		d.report(err)
	}
	if len(onError) > 0 && onError[0] != nil {
		onErr = onError[0]
	}
	var (
		fireVal, fireErr bool
		val              T
		err              error
	)
	syncx.Locked(&d.mux, func() {
		switch d.state {
		case Fulfilled:
			fireVal, val = true, d.value
		case Rejected:
			fireErr, err = true, d.err
		default:
			// Queued callbacks only ever fire from Pending. A Cancelled result keeps them but never drains them.
			if onSuccess != nil {
				d.onVal = append(d.onVal, onSuccess)
			}
			d.onErr = append(d.onErr, onErr)
		}
	})
	if fireVal && onSuccess != nil {
		onSuccess(val)
	}
	if fireErr {
		onErr(err)
	}
	return d
}

// Catch registers only an error callback, firing immediately if the result is already [Rejected].
// Catch returns the same deferred result to allow chaining.
func (d *Deferred[T]) Catch(onError func(error)) *Deferred[T] {
	if onError == nil {
		return d
	}
	var (
		fireErr bool
		err     error
	)
	syncx.Locked(&d.mux, func() {
		if d.state == Rejected {
			fireErr, err = true, d.err
			return
		}
		if d.state == Pending || d.state == Cancelled {
			d.onErr = append(d.onErr, onError)
		}
	})
	if fireErr {
		onError(err)
	}
	return d
}

// Map derives a new deferred result whose eventual value is transform applied to the source's value.
// A transform error rejects the derived result and never escapes this call.
// Rejection of the source is forwarded to the derived result unchanged, and cancellation of the source
// simply leaves the derived result pending.
func Map[T, U any](d *Deferred[T], transform func(T) (U, error)) *Deferred[U] {
	mapped := &Deferred[U]{report: d.report}
	d.Then(func(val T) {
		out, err := transform(val)
		if err != nil {
			_ = mapped.Reject(err)
			return
		}
		_ = mapped.Resolve(out)
	}, func(err error) {
		_ = mapped.Reject(err)
	})
	return mapped
}
