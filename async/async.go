package async

import (
	"errors"
	"log/slog"
)

var (
	// ErrAlreadySettled is returned when resolving or rejecting a [Deferred] that has already been fulfilled or rejected.
	ErrAlreadySettled = errors.New("deferred already settled")
	// ErrSourceFailed wraps the cause reported by a [Latch] source when the value is read.
	ErrSourceFailed = errors.New("source reported an error")
)

// State is the lifecycle state of a deferred result.
type State int

const (
	Pending   State = iota // Pending means no outcome has been produced yet.
	Fulfilled              // Fulfilled means a value was produced.
	Rejected               // Rejected means an error was produced.
	Cancelled              // Cancelled means the consumer stopped listening before an outcome arrived.
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Completion is the read side shared by both deferred result variants.
// State reports the current lifecycle state, and Value polls for the outcome without blocking.
type Completion[T any] interface {
	State() State
	Value() (T, bool, error)
}

// Reporter receives failures that would otherwise go unobserved, like a rejection with no registered error callback.
// A Reporter must not panic.
type Reporter func(err error)

func defaultReporter(err error) {
	slog.Error("unhandled async failure", slog.Any("error", err))
}

type config struct {
	report Reporter
}

// Option customizes a primitive at construction time.
type Option func(conf *config)

// WithReporter injects the [Reporter] used for unobserved failures.
// A nil reporter keeps the default, which logs through [log/slog].
func WithReporter(report Reporter) Option {
	return func(conf *config) {
		if report != nil {
			conf.report = report
		}
	}
}

func newConfig(opts []Option) config {
	conf := config{report: defaultReporter}
	for _, opt := range opts {
		opt(&conf)
	}
	return conf
}
