package drain

import "time"

// NoOpDrainer is a no-op implementation of Drainer.
// It drains nothing and reports zero metrics.
type NoOpDrainer struct{}

// ForceDrain does nothing and returns nil immediately.
func (NoOpDrainer) ForceDrain(timeout time.Duration) error {
	return nil
}

// Metrics always returns zero values.
func (NoOpDrainer) Metrics() (handled, errors, scans, hits, misses int64) {
	return 0, 0, 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpDrainer) Close() error {
	return nil
}
