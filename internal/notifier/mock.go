package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendImportNotificationFunc func(ctx context.Context, match *MatchImported, dryRun bool) error
	SendPlayerSummaryFunc      func(ctx context.Context, summary *PlayerSummary, dryRun bool) error

	// Call records
	SendImportNotificationCalls []*MatchImported
	SendPlayerSummaryCalls      []*PlayerSummary
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendImportNotificationCalls = nil
	m.SendPlayerSummaryCalls = nil
}

func (m *Mock) SendImportNotification(ctx context.Context, match *MatchImported, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendImportNotificationCalls = append(m.SendImportNotificationCalls, match)
	if m.SendImportNotificationFunc != nil {
		return m.SendImportNotificationFunc(ctx, match, dryRun)
	}
	return nil
}

func (m *Mock) SendPlayerSummary(ctx context.Context, summary *PlayerSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerSummaryCalls = append(m.SendPlayerSummaryCalls, summary)
	if m.SendPlayerSummaryFunc != nil {
		return m.SendPlayerSummaryFunc(ctx, summary, dryRun)
	}
	return nil
}
