package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
	"github.com/couchcryptid/iss-position-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor fetches a single raw response from the source.
type Extractor interface {
	Extract(ctx context.Context) ExtractResult
}

// Transformer converts a raw response into a flat record.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawResponse) (domain.PositionRecord, error)
}

// Loader writes a flat record to its destinations.
type Loader interface {
	Load(ctx context.Context, rec domain.PositionRecord) error
}

// Pipeline runs one extract-transform-load pass.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// Run executes the stages once, in order. An extraction failure is returned
// as *ExtractError and stops the run before transform; a transform failure
// stops it before load, so no partial row is ever written.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.clock.Now()
	defer func() {
		p.metrics.RunDuration.Observe(p.clock.Since(start).Seconds())
	}()

	raw, err := p.extractor.Extract(ctx).Value()
	if err != nil {
		var failure *ExtractError
		if errors.As(err, &failure) {
			p.metrics.ExtractFailures.WithLabelValues(string(failure.Reason)).Inc()
		}
		return err
	}

	rec, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		p.metrics.TransformErrors.Inc()
		return fmt.Errorf("transform: %w", err)
	}

	if err := p.loader.Load(ctx, rec); err != nil {
		p.metrics.LoadErrors.Inc()
		return fmt.Errorf("load: %w", err)
	}

	p.metrics.RecordsLoaded.Inc()
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))
	p.logger.Info("pipeline run complete",
		"timestamp", rec.Timestamp.Format(domain.TimestampLayout),
		"latitude", rec.Latitude,
		"longitude", rec.Longitude,
	)
	return nil
}
