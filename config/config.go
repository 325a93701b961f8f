package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config groups configuration of the queue and its background subsystems.
// Each subsystem can be configured independently or disabled by setting it to nil.
type Config struct {
	Fifo FifoCfg `yaml:"fifo"`

	// Telemetry configures periodic structured log lines with queue counters.
	// If nil, telemetry logging is disabled.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// Drain configures the background consumer that hands queued entries to a
	// handler at a limited rate. If nil, no entries are drained automatically.
	Drain *DrainCfg `yaml:"drain"`

	// Persistence configures dumping queue contents to disk and restoring them.
	// If nil, persistence is disabled.
	Persistence *PersistenceCfg `yaml:"persistence"`
}

func (cfg *Config) AdjustConfig() {
	if cfg.Fifo.LockMode == "" {
		cfg.Fifo.LockMode = LockModeMutex
	}
	cfg.Fifo.StorageBytes = int64(cfg.Fifo.Capacity) * int64(cfg.Fifo.EntrySize)

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = defaultTelemetryInterval
	}

	if cfg.Drain != nil && cfg.Drain.Rate <= 0 {
		cfg.Drain.Rate = defaultDrainRate
	}

	if cfg.Persistence.Enabled() && cfg.Persistence.Name == "" {
		cfg.Persistence.Name = defaultDumpName
	}
}

func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("empty config %s", path)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
