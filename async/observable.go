package async

import (
	"sync"

	"github.com/tidewater-io/util/syncx"
)

// Observable is a standing, reusable event bus for one producer and many consumers.
// Unlike a [Deferred], it has no terminal state; it re-broadcasts every emitted event
// to all subscribers for the lifetime of its owner.
//
// The zero value is ready to use.
type Observable[E any] struct {
	mux    sync.RWMutex
	nextID uint64
	subs   []registration[E]
}

type registration[E any] struct {
	id uint64
	fn func(E)
}

// Subscription identifies a single registration on an [Observable] so it can be removed later.
// Go function values are not comparable, so unsubscription goes through this handle rather than the callback itself.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the registration from its [Observable].
// Calling it more than once, or on a zero Subscription, does nothing.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

// NewObservable creates an empty [Observable].
func NewObservable[E any]() *Observable[E] {
	return &Observable[E]{}
}

// Subscribe registers fn to receive every event emitted after this call.
// Delivery order for a single emission is subscription order.
func (o *Observable[E]) Subscribe(fn func(E)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	id := syncx.LockedT(&o.mux, func() uint64 {
		o.nextID++
		o.subs = append(o.subs, registration[E]{id: o.nextID, fn: fn})
		return o.nextID
	})
	return Subscription{cancel: func() {
		o.remove(id)
	}}
}

// Attach registers a full [Subscriber] for its event path.
// The error and completion paths are unused here because an Observable carries neither.
func (o *Observable[E]) Attach(sub Subscriber[E]) Subscription {
	if sub == nil {
		return Subscription{}
	}
	return o.Subscribe(sub.OnEvent)
}

// Unsubscribe removes a previously returned [Subscription], equivalent to calling [Subscription.Unsubscribe].
func (o *Observable[E]) Unsubscribe(sub Subscription) {
	sub.Unsubscribe()
}

func (o *Observable[E]) remove(id uint64) {
	syncx.Locked(&o.mux, func() {
		for i, reg := range o.subs {
			if reg.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	})
}

// Len reports the number of current subscribers.
func (o *Observable[E]) Len() int {
	return syncx.RLockedT(&o.mux, func() int {
		return len(o.subs)
	})
}

// Emit delivers event to every subscriber registered at this moment, each exactly once, in subscription order.
// Delivery iterates a snapshot, so subscribing or unsubscribing from inside a callback
// only affects later emissions, never the one in progress.
func (o *Observable[E]) Emit(event E) {
	var snapshot []func(E)
	syncx.RLocked(&o.mux, func() {
		snapshot = make([]func(E), len(o.subs))
		for i, reg := range o.subs {
			snapshot[i] = reg.fn
		}
	})
	for _, fn := range snapshot {
		fn(event)
	}
}

// Source exposes the Observable as a [Subscribable] producer.
// The error callback is never invoked, since an Observable has no failure channel.
// This is the usual way to anchor a [Latch] to the next emitted event.
func (o *Observable[E]) Source() Subscribable[E] {
	return SubscribableFunc[E](func(onEvent func(E), _ func(error)) {
		o.Subscribe(onEvent)
	})
}
