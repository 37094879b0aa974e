package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
)

// RecordWriter is the port for a destination of position records.
type RecordWriter interface {
	Name() string
	Write(ctx context.Context, rec domain.PositionRecord) error
}

// SinkLoader implements Loader by writing to each sink in order,
// stopping at the first failure.
type SinkLoader struct {
	writers []RecordWriter
	logger  *slog.Logger
}

// NewLoader creates a SinkLoader. The primary sink comes first.
func NewLoader(logger *slog.Logger, writers ...RecordWriter) *SinkLoader {
	return &SinkLoader{writers: writers, logger: logger}
}

func (l *SinkLoader) Load(ctx context.Context, rec domain.PositionRecord) error {
	for _, w := range l.writers {
		if err := w.Write(ctx, rec); err != nil {
			return fmt.Errorf("%s sink: %w", w.Name(), err)
		}
		l.logger.Debug("record written", "sink", w.Name())
	}
	return nil
}
