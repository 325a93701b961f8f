package help

import (
	"time"

	"github.com/Borislavv/go-ring-fifo/config"
)

func Cfg() *config.Config {
	c := &config.Config{
		Fifo: config.FifoCfg{
			Capacity:  64,
			EntrySize: 8,
			LockMode:  config.LockModeMutex,
		},
		Telemetry: &config.TelemetryCfg{
			Interval: time.Second * 5,
		},
	}
	c.AdjustConfig()
	return c
}

func SpinCfg() *config.Config {
	c := Cfg()
	c.Fifo.LockMode = config.LockModeSpin
	return c
}

func DrainCfg(handler func(entry []byte) error) *config.Config {
	c := Cfg()
	c.Drain = &config.DrainCfg{
		Rate:    1_000_000, // завышенный rate, чтобы тесты не ждали лимитер
		Handler: handler,
	}
	return c
}

func SlowDrainCfg(handler func(entry []byte) error) *config.Config {
	c := DrainCfg(handler)
	c.Drain.Rate = 1
	return c
}

func PersistenceCfg(dir string) *config.Config {
	c := Cfg()
	c.Persistence = &config.PersistenceCfg{
		Dir:         dir,
		Name:        "ring.dump",
		Gzip:        false,
		LoadOnStart: true,
	}
	return c
}
