/*
Package async provides the deferred-result and event-notification primitives used across this module.

# Design Priorities

Here are the design priorities of the implementation:

  - It should be deterministic: one winner for racing settlements, FIFO delivery for observers, and exactly-once callback invocation.
  - It should be safe to use from a single goroutine or many without the caller needing to know which case applies.
  - It should never let an unread failure crash unrelated code. Failures that nobody listens for are handed to a reporter instead.
  - It should keep critical sections short and non-recursive. Callbacks always run outside the lock, on the caller's goroutine.

# Deferred Results

A [Deferred] is a one-shot proxy for a value that will become available later.
It starts [Pending] and settles exactly once into [Fulfilled] or [Rejected] through [Deferred.Resolve] or [Deferred.Reject].
Settling an already settled Deferred returns [ErrAlreadySettled].

[Deferred.Cancel] unconditionally moves the Deferred to [Cancelled].
Cancellation doesn't stop the producing operation, it only deafens future notifications: a later Resolve or Reject is accepted without error and discarded without observable effect.

Callbacks registered with [Deferred.Then] or [Deferred.Catch] fire in registration order when the Deferred settles,
or immediately when it has already settled. A callback may run reentrantly inside the registering call, so callers
must not assume delivery is deferred to another goroutine.

[Map] derives a new Deferred by transforming the eventual value of another.
A transform error rejects the derived Deferred and never escapes the call that produced it.
Rejection of the source is forwarded to the derived Deferred as-is.

For producers that already expose a [Subscribable], a [Latch] is a poll-only alternative:
it records the first event or error delivered by the source and ignores everything after that.

Both variants satisfy [Completion], the shared read-side capability.

# Observables

An [Observable] is a standing, reusable event bus for one producer and many consumers.
[Observable.Emit] delivers the event to exactly the subscribers registered at that moment, each exactly once,
in subscription order. Subscriptions changed from inside a callback take effect for later emissions only.

# Reporting

Failures with no registered listener are passed to a [Reporter].
The default reporter logs through [log/slog]; use [WithReporter] to inject a different policy per instance
rather than relying on process-wide state.
*/
package async
