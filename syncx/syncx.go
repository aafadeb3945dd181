package syncx

import "sync"

// Locked runs fn while holding mux.
// This keeps lock scoping obvious at the call site, especially when the critical section is a small part of a larger function.
func Locked(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

// LockedT runs fn while holding mux and returns its result.
func LockedT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// LockedErr runs fn while holding mux and returns its error.
func LockedErr(mux sync.Locker, fn func() error) error {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// RLocker is the read-side locking surface of a [sync.RWMutex].
type RLocker interface {
	RLock()
	RUnlock()
}

// RLocked runs fn while holding the read side of mux.
func RLocked(mux RLocker, fn func()) {
	mux.RLock()
	defer mux.RUnlock()
	fn()
}

// RLockedT runs fn while holding the read side of mux and returns its result.
func RLockedT[T any](mux RLocker, fn func() T) T {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}
