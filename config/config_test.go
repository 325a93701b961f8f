package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoadConfig_FromYaml verifies parsing and the post-load adjustments.
func TestLoadConfig_FromYaml(t *testing.T) {
	raw := `
fifo:
  capacity: 1024
  entry_size: 16
  lock_mode: "spin"
telemetry: {}
drain:
  rate: 250
persistence:
  dump_dir: "/tmp/ring"
  gzip: true
`
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 1024, cfg.Fifo.Capacity)
	require.Equal(t, 16, cfg.Fifo.EntrySize)
	require.Equal(t, LockModeSpin, cfg.Fifo.LockMode)
	require.Equal(t, int64(1024*16), cfg.Fifo.StorageBytes)

	require.True(t, cfg.Telemetry.Enabled())
	require.Equal(t, defaultTelemetryInterval, cfg.Telemetry.Interval)

	require.NotNil(t, cfg.Drain)
	require.Equal(t, 250, cfg.Drain.Rate)
	require.False(t, cfg.Drain.Enabled(), "no handler was assigned yet")

	require.True(t, cfg.Persistence.Enabled())
	require.Equal(t, "/tmp/ring", cfg.Persistence.Dir)
	require.Equal(t, defaultDumpName, cfg.Persistence.Name)
	require.True(t, cfg.Persistence.Gzip)
}

// TestAdjustConfig_Defaults verifies the in-code defaulting without a file.
func TestAdjustConfig_Defaults(t *testing.T) {
	cfg := &Config{
		Fifo:        FifoCfg{Capacity: 8, EntrySize: 32},
		Drain:       &DrainCfg{Handler: func(entry []byte) error { return nil }},
		Persistence: &PersistenceCfg{Dir: t.TempDir()},
	}
	cfg.AdjustConfig()

	require.Equal(t, LockModeMutex, cfg.Fifo.LockMode)
	require.Equal(t, int64(256), cfg.Fifo.StorageBytes)
	require.Equal(t, defaultDrainRate, cfg.Drain.Rate)
	require.True(t, cfg.Drain.Enabled())
	require.Equal(t, defaultDumpName, cfg.Persistence.Name)

	require.False(t, cfg.Telemetry.Enabled())
	require.Equal(t, time.Duration(0), cfg.Telemetry.LogsInterval())
}

// TestLoadConfig_MissingFile verifies the stat error path.
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoadConfig_EmptyDocument verifies that an empty or null document is an error, not a panic.
func TestLoadConfig_EmptyDocument(t *testing.T) {
	for name, raw := range map[string][]byte{
		"empty.yaml": nil,
		"null.yaml":  []byte("null\n"),
	} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err := LoadConfig(path)
		require.ErrorContains(t, err, "empty config", name)
	}
}

// TestLoadConfig_BadYaml verifies the unmarshal error path.
func TestLoadConfig_BadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fifo: ["), 0o644))

	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "unmarshal")
}
