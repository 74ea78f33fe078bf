package fnar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/prun-pricer/internal/adapters/fnar"
	"github.com/andrescamacho/prun-pricer/internal/domain/shared"
)

var errUpstream = errors.New("upstream down")

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Time{})
	cb := fnar.NewCircuitBreaker(2, time.Minute, clock)
	fail := func() error { return errUpstream }

	// Act
	_ = cb.Call(fail)
	_ = cb.Call(fail)
	err := cb.Call(func() error { return nil })

	// Assert
	assert.ErrorIs(t, err, fnar.ErrCircuitOpen)
	assert.Equal(t, fnar.CircuitOpen, cb.State())
	assert.Equal(t, 2, cb.FailureCount())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	cb := fnar.NewCircuitBreaker(1, time.Minute, clock)
	_ = cb.Call(func() error { return errUpstream })
	assert.Equal(t, fnar.CircuitOpen, cb.State())

	// A failing probe after the cool-down reopens the circuit
	clock.Advance(time.Minute)
	assert.ErrorIs(t, cb.Call(func() error { return errUpstream }), errUpstream)
	assert.Equal(t, fnar.CircuitOpen, cb.State())

	// A successful probe closes it
	clock.Advance(time.Minute)
	assert.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, fnar.CircuitClosed, cb.State())
	assert.Zero(t, cb.FailureCount())
	assert.Equal(t, "CLOSED", cb.State().String())
}
