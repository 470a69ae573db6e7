package lua

import "sync"

// MockHost implements Host for testing.
type MockHost struct {
	mu sync.Mutex

	// Captured calls
	LogCalls     []string
	ChangedCalls []int
}

func NewMockHost() *MockHost {
	return &MockHost{}
}

func (m *MockHost) Log(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogCalls = append(m.LogCalls, msg)
}

func (m *MockHost) SectionChanged(section int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChangedCalls = append(m.ChangedCalls, section)
}

// DrainLogCalls returns and clears captured log messages.
func (m *MockHost) DrainLogCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := m.LogCalls
	m.LogCalls = nil
	return calls
}
