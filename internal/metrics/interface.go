package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesImported()
	IncMatchesSkipped()
	IncImportsFailed()
	ObserveImportDuration(seconds float64)
	IncQueriesFailed()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
