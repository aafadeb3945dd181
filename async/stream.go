package async

// Subscribable is any producer that delivers results through a success/error callback pair.
// How many times the producer emits is a property of the producer, not of this contract:
// producers that emit exactly once pair naturally with a [Latch], while streams pair with a [Subscriber].
type Subscribable[E any] interface {
	Subscribe(onEvent func(E), onError func(error))
}

// SubscribableFunc adapts a plain function to the [Subscribable] interface.
type SubscribableFunc[E any] func(onEvent func(E), onError func(error))

func (f SubscribableFunc[E]) Subscribe(onEvent func(E), onError func(error)) {
	f(onEvent, onError)
}

// Subscriber consumes zero or more events, optionally a failure, and optionally a completion signal.
type Subscriber[E any] interface {
	// OnEvent receives the next event from the producer.
	OnEvent(event E)
	// OnError receives a failure from the producer.
	OnError(err error)
	// OnComplete signals that no further events will arrive.
	OnComplete()
}

// SubscriberFuncs adapts plain functions to the [Subscriber] interface.
// Only Event is usually needed. A nil Error handler hands failures to the [Reporter]
// (or the default logging reporter when none is set), and a nil Complete handler does nothing.
type SubscriberFuncs[E any] struct {
	Event    func(event E)
	Error    func(err error)
	Complete func()
	Report   Reporter
}

func (s SubscriberFuncs[E]) OnEvent(event E) {
	if s.Event != nil {
		s.Event(event)
	}
}

func (s SubscriberFuncs[E]) OnError(err error) {
	if s.Error != nil {
		s.Error(err)
		return
	}
	report := s.Report
	if report == nil {
		report = defaultReporter
	}
	report(err)
}

func (s SubscriberFuncs[E]) OnComplete() {
	if s.Complete != nil {
		s.Complete()
	}
}

// Pipe connects a [Subscribable] producer to a [Subscriber], wiring the event and error paths.
// Completion is not part of the Subscribable contract, so [Subscriber.OnComplete] is left to the caller.
func Pipe[E any](src Subscribable[E], sub Subscriber[E]) {
	src.Subscribe(sub.OnEvent, sub.OnError)
}
