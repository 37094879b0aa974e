// Package audit persists the untransformed API response for traceability.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// DerivePath returns the audit file that accompanies a CSV output path:
// a trailing ".csv" is replaced by ".json", any other name gets ".json" appended.
func DerivePath(csvPath string) string {
	return strings.TrimSuffix(csvPath, ".csv") + ".json"
}

// FileWriter writes a pretty-printed copy of a raw response to a fixed path.
// It implements pipeline.AuditWriter.
type FileWriter struct {
	path   string
	logger *slog.Logger
}

// NewFileWriter creates a writer targeting path.
func NewFileWriter(path string, logger *slog.Logger) *FileWriter {
	return &FileWriter{path: path, logger: logger}
}

// Path returns the audit file location.
func (w *FileWriter) Path() string {
	return w.path
}

// WriteAudit indents body with two spaces and replaces any previous content at the path.
func (w *FileWriter) WriteAudit(_ context.Context, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		return fmt.Errorf("indent audit copy: %w", err)
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(w.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write audit file: %w", err)
	}

	w.logger.Info("extracted raw data", "path", w.path, "bytes", buf.Len())
	return nil
}
