package telemetry

// Sample holds cumulative queue counters (monotonic).
type Sample struct {
	Enqueued     int64
	Dequeued     int64
	RejectedFull int64
	EmptyMisses  int64

	Scans       int64
	ScanUpdated int64
	ScanSkipped int64
	Resets      int64
}

// deltaSample converts cumulative samples to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSample(prev, cur Sample) Sample {
	return Sample{
		Enqueued:     delta(prev.Enqueued, cur.Enqueued),
		Dequeued:     delta(prev.Dequeued, cur.Dequeued),
		RejectedFull: delta(prev.RejectedFull, cur.RejectedFull),
		EmptyMisses:  delta(prev.EmptyMisses, cur.EmptyMisses),

		Scans:       delta(prev.Scans, cur.Scans),
		ScanUpdated: delta(prev.ScanUpdated, cur.ScanUpdated),
		ScanSkipped: delta(prev.ScanSkipped, cur.ScanSkipped),
		Resets:      delta(prev.Resets, cur.Resets),
	}
}

func delta(prev, cur int64) int64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
