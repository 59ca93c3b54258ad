package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func trippedBreaker(t *testing.T, cfg Settings) *Breaker {
	t.Helper()
	b := New("backend", cfg)
	for i := uint32(0); i < b.cfg.FailureThreshold; i++ {
		err := b.Do(func() error { return errBoom })
		require.ErrorIs(t, err, errBoom)
	}
	require.Equal(t, StateOpen, b.State())
	return b
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	b := New("backend", Settings{})
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Do(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerSuccessResetsStreak(t *testing.T) {
	b := New("backend", Settings{FailureThreshold: 3})
	for i := 0; i < 5; i++ {
		_ = b.Do(func() error { return errBoom })
		_ = b.Do(func() error { return errBoom })
		require.NoError(t, b.Do(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerTripsAtThreshold(t *testing.T) {
	b := trippedBreaker(t, Settings{FailureThreshold: 3, Cooldown: time.Minute})

	called := false
	err := b.Do(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called, "open breaker must not invoke the call")
}

func TestBreakerProbesAfterCooldown(t *testing.T) {
	b := trippedBreaker(t, Settings{FailureThreshold: 2, Cooldown: 10 * time.Millisecond})

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Do(func() error { return nil }))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerReopensOnFailedProbe(t *testing.T) {
	b := trippedBreaker(t, Settings{FailureThreshold: 2, Cooldown: 10 * time.Millisecond})

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	err := b.Do(func() error { return errBoom })
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerProbeLimit(t *testing.T) {
	b := trippedBreaker(t, Settings{FailureThreshold: 1, Probes: 1, Cooldown: 10 * time.Millisecond})

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- b.Do(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// The single probe slot is occupied.
	err := b.Do(func() error { return nil })
	assert.ErrorIs(t, err, ErrProbes)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	b := New("backend", Settings{FailureThreshold: 1})

	require.Panics(t, func() {
		_ = b.Do(func() error { panic("kaput") })
	})
	assert.Equal(t, StateOpen, b.State())
}
