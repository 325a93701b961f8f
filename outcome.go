package ringfifo

// Outcome is the result of a ScanAndUpdate pass.
type Outcome int

const (
	// Unchanged: the entry was left intact, the scan moves to the next one.
	// Also the neutral result of scanning an empty queue or passing invalid
	// arguments.
	Unchanged Outcome = iota

	// Updated: the callback rewrote the current entry in place; the scan stops.
	Updated

	// Skipped: the callback stopped the scan without modifying anything.
	Skipped
)

// VisitFunc inspects one queued entry during ScanAndUpdate. The entry slice
// aliases live queue storage, so writes through it modify the queued entry
// directly. The slice is valid only for the duration of the call; the callback
// must not retain it and must not invoke any operation on the same queue
// (the queue lock is held and is not reentrant).
type VisitFunc func(in any, entry []byte) Outcome
