package shared

import "time"

// Clock abstracts time so retries and run timestamps can be driven by tests
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock uses the system clock
type RealClock struct{}

// Now returns the current time in UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// NewRealClock creates a RealClock
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock is a manually advanced clock; Sleep returns immediately
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock; a zero start means now
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Now()
	}
	return &MockClock{CurrentTime: startTime}
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Sleep advances the clock by d
func (m *MockClock) Sleep(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}
