// Package snapshot persists the ring contents to disk and restores them on start.
//
// The dump is a single binary file: a fixed header carrying the queue geometry,
// then one record per occupied slot in queue order. Records are read back until
// EOF, so a dump never needs an upfront entry count.
package snapshot

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Borislavv/go-ring-fifo/config"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
)

const (
	dumpMagic   uint32 = 0x4F464952 // "RIFO" on disk
	dumpVersion uint32 = 1

	headerLen = 16 // magic + version + capacity + entry size, u32 each
	metaLen   = 12 // entry size u32 + xxh3 sum u64
)

// ErrNotEnabled is returned by the no-op snapshotter when persistence is off.
var ErrNotEnabled = errors.New("persistence is not enabled")

// Source is the queue surface the snapshotter reads and refills.
// Snapshot walks occupied slots oldest to newest under the queue lock,
// stopping when visit returns false. Restore appends one entry and
// reports whether it fit. Clear empties the queue before a restore.
type Source interface {
	Capacity() int
	EntrySize() int
	Snapshot(visit func(entry []byte) bool)
	Restore(entry []byte) bool
	Clear()
}

type Snapshotter interface {
	Dump(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
}

// Snapshot writes and reads dump files for a single queue. When the config
// carries an interval it also dumps periodically until the context dies.
type Snapshot struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.PersistenceCfg
	src    Source
}

func New(ctx context.Context, cfg *config.PersistenceCfg, src Source) Snapshotter {
	if !cfg.Enabled() {
		return NewNoOp()
	}
	ctx, cancel := context.WithCancel(ctx)
	return (&Snapshot{ctx: ctx, cancel: cancel, cfg: cfg, src: src}).run()
}

func (s *Snapshot) run() *Snapshot {
	if s.cfg.Interval > 0 {
		go s.loop()
	}
	return s
}

func (s *Snapshot) loop() {
	t := time.NewTicker(s.cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
			if err := s.Dump(s.ctx); err != nil {
				log.Error().Err(err).Msg("periodic dump failed")
			}
		}
	}
}

// Dump writes the current queue contents into the configured file. The data
// lands in a temp file first and is renamed over the previous dump only when
// every record was written, so a failed dump never clobbers a good one.
func (s *Snapshot) Dump(ctx context.Context) error {
	start := time.Now()

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create dump dir: %w", err)
	}

	name := s.path()
	tmp := name + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}
	var (
		writer io.Writer = f
		gw     *gzip.Writer
	)
	if s.cfg.Gzip {
		gw = gzip.NewWriter(f)
		writer = gw
	}
	bw := bufio.NewWriterSize(writer, 512*1024)

	var header [headerLen]byte
	binary.LittleEndian.PutUint32(header[0:4], dumpMagic)
	binary.LittleEndian.PutUint32(header[4:8], dumpVersion)
	binary.LittleEndian.PutUint32(header[8:12], uint32(s.src.Capacity()))
	binary.LittleEndian.PutUint32(header[12:16], uint32(s.src.EntrySize()))
	if _, err = bw.Write(header[:]); err != nil {
		_ = f.Close()
		return fmt.Errorf("write dump header: %w", err)
	}

	var written, failures int
	s.src.Snapshot(func(entry []byte) bool {
		select {
		case <-ctx.Done():
			failures++
			return false
		default:
		}

		var metaBuf [metaLen]byte
		binary.LittleEndian.PutUint32(metaBuf[0:4], uint32(len(entry)))
		binary.LittleEndian.PutUint64(metaBuf[4:12], xxh3.Hash(entry))
		if _, err := bw.Write(metaBuf[:]); err != nil {
			failures++
			return false
		}
		if _, err := bw.Write(entry); err != nil {
			failures++
			return false
		}
		written++
		return true
	})

	// Close errors count as failures too: the gzip writer flushes its final
	// block on Close, so a short write there still means a truncated file.
	if err = bw.Flush(); err != nil {
		failures++
	}
	if gw != nil {
		if err = gw.Close(); err != nil {
			failures++
		}
	}
	if err = f.Close(); err != nil {
		failures++
	}

	if failures > 0 {
		_ = os.Remove(tmp)
	} else if err = os.Rename(tmp, name); err != nil {
		return fmt.Errorf("rename dump file: %w", err)
	}

	log.Info().
		Int("written", written).
		Int("fails", failures).
		Str("elapsed", time.Since(start).String()).
		Msg("dumping finished")

	if failures > 0 {
		return fmt.Errorf("dump finished with %d errors", failures)
	}
	return nil
}

// Load empties the queue and refills it from the configured dump file.
// The dump geometry must match the live queue exactly.
func (s *Snapshot) Load(ctx context.Context) error {
	start := time.Now()

	name := s.path()
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		gzr, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return fmt.Errorf("open gzip dump: %w", gzErr)
		}
		defer gzr.Close()
		reader = gzr
	}

	br := bufio.NewReaderSize(reader, 512*1024)

	var header [headerLen]byte
	if _, err = io.ReadFull(br, header[:]); err != nil {
		return fmt.Errorf("read dump header: %w", err)
	}
	if magic := binary.LittleEndian.Uint32(header[0:4]); magic != dumpMagic {
		return fmt.Errorf("bad dump magic: 0x%08x", magic)
	}
	if version := binary.LittleEndian.Uint32(header[4:8]); version != dumpVersion {
		return fmt.Errorf("unsupported dump version: %d", version)
	}
	if capacity := int(binary.LittleEndian.Uint32(header[8:12])); capacity != s.src.Capacity() {
		return fmt.Errorf("dump capacity %d does not match queue capacity %d", capacity, s.src.Capacity())
	}
	entrySize := int(binary.LittleEndian.Uint32(header[12:16]))
	if entrySize != s.src.EntrySize() {
		return fmt.Errorf("dump entry size %d does not match queue entry size %d", entrySize, s.src.EntrySize())
	}

	s.src.Clear()

	var restored, failures int
	var metaBuf [metaLen]byte
	for {
		if _, err := io.ReadFull(br, metaBuf[:]); err == io.EOF {
			break
		} else if err != nil {
			log.Error().Err(err).Str("file", name).Msg("read dump meta failed")
			failures++
			break
		}

		sz := int(binary.LittleEndian.Uint32(metaBuf[0:4]))
		sum := binary.LittleEndian.Uint64(metaBuf[4:12])
		if sz != entrySize {
			log.Error().Str("file", name).Int("size", sz).Msg("dump record size mismatch")
			failures++
			break
		}
		buf := make([]byte, sz)
		if _, err := io.ReadFull(br, buf); err != nil {
			log.Error().Err(err).Str("file", name).Msg("read dump entry failed")
			failures++
			break
		}
		if xxh3.Hash(buf) != sum {
			log.Error().Str("file", name).Msg("dump entry checksum mismatch")
			failures++
			continue
		}
		if !s.src.Restore(buf) {
			log.Error().Str("file", name).Msg("queue is full, dump truncated")
			break
		}
		restored++

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	log.Info().
		Int("restored", restored).
		Int("fails", failures).
		Str("elapsed", time.Since(start).String()).
		Msg("restoring dump")

	if failures > 0 {
		return fmt.Errorf("load finished with %d errors", failures)
	}
	return nil
}

func (s *Snapshot) Close() error {
	s.cancel()
	return nil
}

func (s *Snapshot) path() string {
	name := filepath.Join(s.cfg.Dir, s.cfg.Name)
	if s.cfg.Gzip {
		name += ".gz"
	}
	return name
}
