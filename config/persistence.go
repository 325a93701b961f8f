package config

import "time"

const defaultDumpName = "fifo.dump"

type PersistenceCfg struct {
	// Dir specifies the directory where queue dump files are stored.
	// It is created on the first dump when missing.
	Dir string `yaml:"dump_dir"`

	// Name defines the base name of the dump file.
	// The final file name gains a ".gz" extension when Gzip is enabled.
	Name string `yaml:"dump_name"`

	// Gzip enables gzip compression for dump files.
	// Dumps are then written and read in compressed form, trading CPU for disk.
	Gzip bool `yaml:"gzip"`

	// Interval between periodic dumps. Zero disables the ticker; dumps then
	// happen only on Close or on an explicit ForceDump call.
	Interval time.Duration `yaml:"interval"`

	// LoadOnStart restores the latest dump into the queue while it is built.
	// A missing dump file is not an error on the first run.
	LoadOnStart bool `yaml:"load_on_start"`
}

func (cfg *PersistenceCfg) Enabled() bool {
	return cfg != nil
}
