package ringfifo

import "errors"

var (
	// ErrInvalidArgument reports a nil queue, a nil or wrong-sized buffer,
	// or bad construction geometry. Always a caller bug.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacityExceeded reports an enqueue against a full queue.
	// Expected and recoverable: the producer should retry or drop.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotFound reports a dequeue against an empty queue.
	// Expected and recoverable: the consumer has nothing to do.
	ErrNotFound = errors.New("entry not found")
)
