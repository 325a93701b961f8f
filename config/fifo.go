package config

// LockMode selects the mutual-exclusion primitive guarding the queue.
type LockMode string

const (
	// LockModeMutex guards the queue with a standard sync.Mutex.
	LockModeMutex LockMode = "mutex"

	// LockModeSpin guards the queue with a busy-wait spin lock. Prefer it for
	// very short critical sections under low contention.
	LockModeSpin LockMode = "spin"
)

type FifoCfg struct {
	// Capacity is the number of fixed-size slots the queue holds.
	// Set once, immutable afterwards. The queue never grows.
	Capacity int `yaml:"capacity"`

	// EntrySize is the byte size of one logical entry. Every enqueue, dequeue
	// and in-place update transfers exactly this many bytes.
	EntrySize int `yaml:"entry_size"`

	// LockMode selects the lock implementation.
	// Supported values:
	//   - "mutex": standard mutex (default)
	//   - "spin":  busy-wait spin lock
	LockMode LockMode `yaml:"lock_mode"`

	// StorageBytes is derived during initialization from Capacity and EntrySize.
	// It is not read from YAML.
	StorageBytes int64 // virtual: computed during init (bytes)
}
