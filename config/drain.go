package config

const defaultDrainRate = 1000

type DrainCfg struct {
	// Rate limits how many entries per second the drain worker consumes.
	// Example: 1000.
	Rate int `yaml:"rate"`

	// Handler receives each drained entry. The slice is valid only for the
	// duration of the call. A non-nil error is counted, the entry is not
	// re-queued. This field cannot come from YAML and must be assigned in code
	// before the queue is built.
	Handler func(entry []byte) error `yaml:"-"` // virtual: assigned in code
}

// Enabled reports whether the drain worker should run. A section without a
// handler has nowhere to deliver entries and counts as disabled.
func (cfg *DrainCfg) Enabled() bool {
	return cfg != nil && cfg.Handler != nil
}
