package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
type NoopMetrics struct{}

var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(method, outcome string, duration time.Duration) {}
func (n *NoopMetrics) RecordExternalAPICall(provider string, duration time.Duration)     {}
func (n *NoopMetrics) RecordClientCacheLookup(hit bool)                                  {}

func (n *NoopMetrics) RecordTokenIssued(tokenType, grantType string, generationTime time.Duration) {
}
func (n *NoopMetrics) RecordTokenValidation(result string, duration time.Duration) {}

func (n *NoopMetrics) RecordDatabaseQueryError(operation string) {}
