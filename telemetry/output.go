package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/spectrogrid/config"
)

// Files written into the output directory.
const (
	ConfigFile    = "config.yaml"
	BandsFile     = "bands.csv"
	PerfFile      = "perf.csv"
	BookmarksFile = "bookmarks.csv"
)

// recordFiles lists the CSV record kinds, one file each, in write order.
var recordFiles = []string{BandsFile, PerfFile, BookmarksFile}

// csvStream appends gocsv rows to a file. The header goes out with the
// first non-empty batch.
type csvStream struct {
	f      *os.File
	header bool
}

func (s *csvStream) append(rows any) error {
	if s.header {
		return gocsv.MarshalWithoutHeaders(rows, s.f)
	}
	if err := gocsv.Marshal(rows, s.f); err != nil {
		return err
	}
	s.header = true
	return nil
}

// OutputManager writes a run's output directory: the config snapshot and,
// per stats window, a bands row, a perf row and any bookmarks. A nil
// manager is valid and writes nothing.
type OutputManager struct {
	dir     string
	streams map[string]*csvStream
}

// NewOutputManager creates dir and the CSV files in it.
// Returns nil, nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, streams: make(map[string]*csvStream, len(recordFiles))}
	for _, name := range recordFiles {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		om.streams[name] = &csvStream{f: f}
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteWindow appends one flushed stats window: its bands row, the perf
// row ending at the same frame and the bookmarks it raised.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfStats, bookmarks []Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.write(BandsFile, []WindowStats{stats}); err != nil {
		return err
	}
	if err := om.write(PerfFile, []PerfStatsCSV{perf.ToCSV(stats.WindowEndFrame)}); err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		return nil
	}
	return om.write(BookmarksFile, bookmarks)
}

func (om *OutputManager) write(name string, rows any) error {
	if err := om.streams[name].append(rows); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open CSV file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, name := range recordFiles {
		if s, ok := om.streams[name]; ok {
			if err := s.f.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
