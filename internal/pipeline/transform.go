package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
)

// PositionTransformer implements Transformer using domain transform functions.
type PositionTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a PositionTransformer.
func NewTransformer(logger *slog.Logger) *PositionTransformer {
	return &PositionTransformer{logger: logger}
}

func (t *PositionTransformer) Transform(_ context.Context, raw domain.RawResponse) (domain.PositionRecord, error) {
	t.logger.Info("cleaning and organizing data")
	return domain.TransformPosition(raw)
}
