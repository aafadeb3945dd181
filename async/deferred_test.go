package async

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeferred_Resolve(t *testing.T) {
	var got []int
	d := NewDeferred[int]()
	d.Then(func(val int) {
		got = append(got, val)
	})
	assert.Equal(t, Pending, d.State())

	assert.NoError(t, d.Resolve(5))
	assert.Equal(t, Fulfilled, d.State())
	assert.Equal(t, []int{5}, got)

	val, ok, err := d.Value()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, val)
}

func TestDeferred_Resolve_CallbackOrder(t *testing.T) {
	var order []string
	d := NewDeferred[string]()
	d.Then(func(string) { order = append(order, "first") })
	d.Then(func(string) { order = append(order, "second") })
	d.Then(func(string) { order = append(order, "third") })
	assert.NoError(t, d.Resolve("go"))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDeferred_ResolveTwice(t *testing.T) {
	d := NewDeferred[int]()
	assert.NoError(t, d.Resolve(1))
	err := d.Resolve(2)
	assert.ErrorIs(t, err, ErrAlreadySettled)

	val, ok, err := d.Value()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, val, "The first resolution should win")
}

func TestDeferred_Reject_LateSubscribers(t *testing.T) {
	var (
		boom        = errors.New("boom")
		first       int
		second      int
		quietReport = WithReporter(func(error) {})
	)
	d := NewDeferred[int](quietReport)
	assert.NoError(t, d.Reject(boom))
	assert.Equal(t, Rejected, d.State())

	d.Catch(func(err error) {
		first++
		assert.ErrorIs(t, err, boom)
	})
	d.Catch(func(err error) {
		second++
		assert.ErrorIs(t, err, boom)
	})
	assert.Equal(t, 1, first, "Late error callbacks should replay exactly once")
	assert.Equal(t, 1, second)

	_, ok, err := d.Value()
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestDeferred_RejectAfterResolve(t *testing.T) {
	d := NewDeferred[int]()
	assert.NoError(t, d.Resolve(1))
	assert.ErrorIs(t, d.Reject(errors.New("too late")), ErrAlreadySettled)
}

func TestDeferred_Cancel_ThenResolve(t *testing.T) {
	var called bool
	d := NewDeferred[int]()
	d.Then(func(int) { called = true })
	d.Cancel()
	assert.Equal(t, Cancelled, d.State())

	// The operation may still finish after cancellation, but nobody is listening any more.
	assert.NoError(t, d.Resolve(42))
	assert.False(t, called, "No callback should fire after cancellation")
	assert.Equal(t, Cancelled, d.State())

	_, ok, err := d.Value()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDeferred_Cancel_ThenReject(t *testing.T) {
	var reported bool
	d := NewDeferred[int](WithReporter(func(error) { reported = true }))
	d.Cancel()
	assert.NoError(t, d.Reject(errors.New("ignored")))
	assert.False(t, reported, "A rejection after cancellation should be dropped entirely")
}

func TestDeferred_Then_ImmediateReplay(t *testing.T) {
	var got int
	d := Resolved(7)
	same := d.Then(func(val int) { got = val })
	assert.Same(t, d, same, "Then should return the same result for chaining")
	assert.Equal(t, 7, got)
}

func TestDeferred_Then_DefaultErrorPath(t *testing.T) {
	var reported []error
	boom := errors.New("boom")
	d := NewDeferred[int](WithReporter(func(err error) { reported = append(reported, err) }))
	d.Then(func(int) { t.Error("Success callback should not fire") })
	assert.NoError(t, d.Reject(boom))
	assert.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
}

func TestDeferred_UnhandledRejection(t *testing.T) {
	var reported []error
	boom := errors.New("nobody listening")
	d := NewDeferred[int](WithReporter(func(err error) { reported = append(reported, err) }))
	assert.NoError(t, d.Reject(boom))
	assert.Len(t, reported, 1, "A rejection with no error callback should go to the reporter")
	assert.ErrorIs(t, reported[0], boom)
}

func TestDeferred_ReentrantThen(t *testing.T) {
	var inner int
	d := NewDeferred[int]()
	d.Then(func(val int) {
		// Registering from inside a callback must not deadlock.
		d.Then(func(replay int) {
			inner = replay
		})
	})
	assert.NoError(t, d.Resolve(3))
	assert.Equal(t, 3, inner, "The reentrant registration should replay immediately")
}

func TestCompute(t *testing.T) {
	d := Compute(func() (string, error) {
		return "done", nil
	})
	val, ok, err := d.Value()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "done", val)

	boom := errors.New("boom")
	failed := Compute(func() (string, error) {
		return "", boom
	})
	assert.Equal(t, Rejected, failed.State())
	_, _, err = failed.Value()
	assert.ErrorIs(t, err, boom)
}

func TestMap(t *testing.T) {
	d := NewDeferred[int]()
	mapped := Map(d, func(val int) (string, error) {
		return fmt.Sprintf("%d!", val), nil
	})
	assert.Equal(t, Pending, mapped.State())

	assert.NoError(t, d.Resolve(9))
	val, ok, err := mapped.Value()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "9!", val)
}

func TestMap_TransformError(t *testing.T) {
	var (
		boom        = errors.New("bad transform")
		quietReport = WithReporter(func(error) {})
	)
	d := NewDeferred[int](quietReport)
	mapped := Map(d, func(int) (string, error) {
		return "", boom
	})
	assert.NoError(t, d.Resolve(1))

	assert.Equal(t, Rejected, mapped.State())
	_, _, err := mapped.Value()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Fulfilled, d.State(), "The source result should be unaffected by a transform failure")
}

func TestMap_SourceRejectionForwarded(t *testing.T) {
	var (
		boom        = errors.New("source failed")
		quietReport = WithReporter(func(error) {})
	)
	d := NewDeferred[int](quietReport)
	mapped := Map(d, func(val int) (int, error) {
		t.Error("Transform should not run for a rejected source")
		return val, nil
	})
	assert.NoError(t, d.Reject(boom))

	assert.Equal(t, Rejected, mapped.State())
	_, _, err := mapped.Value()
	assert.ErrorIs(t, err, boom)
}

func TestDeferred_ConcurrentResolve(t *testing.T) {
	const racers = 32
	var (
		wg        sync.WaitGroup
		fired     int
		firedVal  int
		succeeded int
		mux       sync.Mutex
	)
	d := NewDeferred[int]()
	d.Then(func(val int) {
		mux.Lock()
		defer mux.Unlock()
		fired++
		firedVal = val
	})

	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(val int) {
			defer wg.Done()
			if err := d.Resolve(val); err == nil {
				mux.Lock()
				defer mux.Unlock()
				succeeded++
			} else {
				assert.ErrorIs(t, err, ErrAlreadySettled)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "Exactly one resolution should win")
	assert.Equal(t, 1, fired, "Callbacks should fire exactly once")

	val, ok, err := d.Value()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, firedVal, val, "The stored value should match the one delivered to callbacks")
}
