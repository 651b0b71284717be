package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	matchesImported int
	matchesSkipped  int
	importsFailed   int
	importDurations []float64
	queriesFailed   int
	notifSent       int
	notifFailed     int
	startupTime     float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		importDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesImported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesImported++
}

func (m *Mock) IncMatchesSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesSkipped++
}

func (m *Mock) IncImportsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importsFailed++
}

func (m *Mock) ObserveImportDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importDurations = append(m.importDurations, seconds)
}

func (m *Mock) IncQueriesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queriesFailed++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesImported returns the number of times IncMatchesImported was called.
func (m *Mock) MatchesImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesImported
}

// MatchesSkipped returns the number of times IncMatchesSkipped was called.
func (m *Mock) MatchesSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesSkipped
}

// ImportsFailed returns the number of times IncImportsFailed was called.
func (m *Mock) ImportsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importsFailed
}

// ImportDurations returns every observed import duration.
func (m *Mock) ImportDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.importDurations...)
}

// QueriesFailed returns the number of times IncQueriesFailed was called.
func (m *Mock) QueriesFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queriesFailed
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
