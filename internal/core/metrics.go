package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Password strategy outcomes; outcome is success, failure or error.
	RecordAuthAttempt(method, outcome string, duration time.Duration)
	RecordExternalAPICall(provider string, duration time.Duration)
	RecordClientCacheLookup(hit bool)

	// Token Operations
	RecordTokenIssued(tokenType, grantType string, generationTime time.Duration)
	RecordTokenValidation(result string, duration time.Duration)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}
