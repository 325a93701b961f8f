package config

import "time"

const defaultTelemetryInterval = 5 * time.Second

type TelemetryCfg struct {
	// Interval between telemetry log lines. Example: "5s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}

// LogsInterval returns the configured interval, zero when telemetry is disabled.
func (cfg *TelemetryCfg) LogsInterval() time.Duration {
	if cfg == nil {
		return 0
	}
	return cfg.Interval
}
