package clock

import (
	"sync"
	"time"
)

// MockTime is a manually driven TimeSource for tests and headless runs.
type MockTime struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTime returns a source stopped at start.
func NewMockTime(start time.Time) *MockTime {
	return &MockTime{now: start}
}

// Now returns the current mock time.
func (m *MockTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the mock time to t.
func (m *MockTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the mock time forward by d.
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
