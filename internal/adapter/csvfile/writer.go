// Package csvfile appends position records to a cumulative CSV dataset.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
)

// Writer appends one row per record to a CSV file, writing domain.Header
// when it creates the file. Existing files are never validated or rewritten.
// It implements pipeline.RecordWriter.
//
// The existence check and the append are separate steps, so two processes
// writing the same new path may both emit a header. Callers run one writer
// per path at a time.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer for path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

func (w *Writer) Name() string {
	return "csv"
}

// Path returns the dataset file location.
func (w *Writer) Path() string {
	return w.path
}

// Write appends rec, creating the file with a header first if it is absent.
func (w *Writer) Write(_ context.Context, rec domain.PositionRecord) error {
	writeHeader, err := w.needsHeader()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.path, err)
	}

	if err := appendRows(f, writeHeader, rec); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}

	w.logger.Info("saved cleaned data", "path", w.path, "created", writeHeader)
	return nil
}

func (w *Writer) needsHeader() (bool, error) {
	_, err := os.Stat(w.path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, fmt.Errorf("stat %s: %w", w.path, err)
	}
}

func appendRows(f *os.File, writeHeader bool, rec domain.PositionRecord) error {
	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(domain.Header); err != nil {
			return err
		}
	}
	if err := cw.Write(rec.CSVRow()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
