package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/iss-position-etl/internal/config"
	"github.com/couchcryptid/iss-position-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer mirrors position records to a Kafka topic.
// It implements pipeline.RecordWriter.
type Writer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured mirror topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, topic: cfg.KafkaTopic, logger: logger}
}

func (w *Writer) Name() string {
	return "kafka"
}

// Write publishes rec as JSON, keyed by its timestamp.
func (w *Writer) Write(ctx context.Context, rec domain.PositionRecord) error {
	msg, err := mapRecordToMessage(rec)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", w.topic, err)
	}
	w.logger.Info("published record", "topic", w.topic, "key", string(msg.Key))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func mapRecordToMessage(rec domain.PositionRecord) (kafkago.Message, error) {
	value, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize position record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Timestamp.UTC().Format(time.RFC3339)),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("open-notify")},
			{Key: "message", Value: []byte(rec.Message)},
		},
	}, nil
}
