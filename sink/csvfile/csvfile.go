package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"lakegen/sink"
	"os"
	"path/filepath"
)

type CsvConfig struct {
	// DataDir is the root the per-entity directories are created under,
	// mirroring the volume layout the downstream pipelines read from.
	DataDir string
}

// CsvSink writes each record to a per-table CSV file under the data root.
// A file is created lazily on the first record routed to it, with a header
// row, and truncated if it already exists so every run is idempotent per
// file.
type CsvSink struct {
	cfg     CsvConfig
	files   map[string]*os.File
	writers map[string]*csv.Writer
}

func OpenCsvSink(cfg CsvConfig) (*CsvSink, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("csv sink requires a data directory")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data root %s: %w", cfg.DataDir, err)
	}
	return &CsvSink{
		cfg:     cfg,
		files:   make(map[string]*os.File),
		writers: make(map[string]*csv.Writer),
	}, nil
}

func (p *CsvSink) Prepare(topics []string) error {
	return nil
}

func (p *CsvSink) WriteRecord(ctx context.Context, format string, record sink.SinkRecord) error {
	path, header, row := record.ToCsv()
	w, ok := p.writers[path]
	if !ok {
		full := filepath.Join(p.cfg.DataDir, path+".csv")
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", full, err)
		}
		f, err := os.Create(full)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", full, err)
		}
		w = csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("failed to write header to %s: %w", full, err)
		}
		p.files[path] = f
		p.writers[path] = w
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write row to %s: %w", path, err)
	}
	return nil
}

func (p *CsvSink) Close() error {
	var firstErr error
	for path, w := range p.writers {
		w.Flush()
		if err := w.Error(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to flush %s: %w", path, err)
		}
	}
	for path, f := range p.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s: %w", path, err)
		}
	}
	return firstErr
}
