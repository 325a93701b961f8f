package snapshot

import "context"

// NoOpSnapshotter is used when persistence is disabled.
type NoOpSnapshotter struct{}

func NewNoOp() *NoOpSnapshotter { return &NoOpSnapshotter{} }

// Dump reports that persistence is disabled.
func (s *NoOpSnapshotter) Dump(_ context.Context) error { return ErrNotEnabled }

// Load reports that persistence is disabled.
func (s *NoOpSnapshotter) Load(_ context.Context) error { return ErrNotEnabled }

// Close does nothing.
func (s *NoOpSnapshotter) Close() error { return nil }
