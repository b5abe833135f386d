package testutil

import (
	"sync"

	"github.com/arloliu/keyspace/types"
)

// TestMetricsCollector is a test implementation of types.MetricsCollector
// that tracks method calls for assertion.
type TestMetricsCollector struct {
	mu sync.RWMutex

	// Sessions
	SessionsCreated  map[string]int64
	SessionsReused   map[string]int64
	ConnectErrors    map[string]int64
	ConnectDurations map[string][]float64
	OpenSessions     int

	// Repositories, keyed by "alias/entity"
	RepositoriesCreated map[string]int64
	RepositoryErrors    map[string]int64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{
		SessionsCreated:     make(map[string]int64),
		SessionsReused:      make(map[string]int64),
		ConnectErrors:       make(map[string]int64),
		ConnectDurations:    make(map[string][]float64),
		RepositoriesCreated: make(map[string]int64),
		RepositoryErrors:    make(map[string]int64),
	}
}

// ----------------------
// Sessions
// ----------------------

// IncSessionCreated increments the created counter of alias.
func (m *TestMetricsCollector) IncSessionCreated(alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCreated[alias]++
}

// IncSessionReused increments the reused counter of alias.
func (m *TestMetricsCollector) IncSessionReused(alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsReused[alias]++
}

// IncConnectError increments the connect error counter of alias.
func (m *TestMetricsCollector) IncConnectError(alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConnectErrors[alias]++
}

// ObserveConnectDuration records a connect duration of alias.
func (m *TestMetricsCollector) ObserveConnectDuration(alias string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConnectDurations[alias] = append(m.ConnectDurations[alias], seconds)
}

// SetOpenSessions records the open session gauge.
func (m *TestMetricsCollector) SetOpenSessions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenSessions = n
}

// ----------------------
// Repositories
// ----------------------

// IncRepositoryCreated increments the created counter of alias/entity.
func (m *TestMetricsCollector) IncRepositoryCreated(alias, entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RepositoriesCreated[alias+"/"+entity]++
}

// IncRepositoryError increments the error counter of alias/entity.
func (m *TestMetricsCollector) IncRepositoryError(alias, entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RepositoryErrors[alias+"/"+entity]++
}

// ----------------------
// Accessors
// ----------------------

// GetSessionsCreated returns the created counter of alias.
func (m *TestMetricsCollector) GetSessionsCreated(alias string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SessionsCreated[alias]
}

// GetSessionsReused returns the reused counter of alias.
func (m *TestMetricsCollector) GetSessionsReused(alias string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SessionsReused[alias]
}

// GetConnectErrors returns the connect error counter of alias.
func (m *TestMetricsCollector) GetConnectErrors(alias string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ConnectErrors[alias]
}

// GetOpenSessions returns the last open session gauge value.
func (m *TestMetricsCollector) GetOpenSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.OpenSessions
}

// GetRepositoriesCreated returns the created counter of alias/entity.
func (m *TestMetricsCollector) GetRepositoriesCreated(alias, entity string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RepositoriesCreated[alias+"/"+entity]
}

// GetRepositoryErrors returns the error counter of alias/entity.
func (m *TestMetricsCollector) GetRepositoryErrors(alias, entity string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RepositoryErrors[alias+"/"+entity]
}
