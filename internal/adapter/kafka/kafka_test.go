package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/iss-position-etl/internal/config"
	"github.com/couchcryptid/iss-position-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeMessageWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeMessageWriter) Close() error {
	f.closed = true
	return nil
}

func testRecord() domain.PositionRecord {
	return domain.PositionRecord{
		Timestamp: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Latitude:  "10.00",
		Longitude: "20.00",
		Message:   "success",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMapRecordToMessage(t *testing.T) {
	msg, err := mapRecordToMessage(testRecord())
	require.NoError(t, err)

	assert.Equal(t, []byte("2021-01-01T00:00:00Z"), msg.Key)
	assert.JSONEq(t, `{"timestamp":"2021-01-01T00:00:00Z","latitude":"10.00","longitude":"20.00","message":"success"}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "source", msg.Headers[0].Key)
	assert.Equal(t, []byte("open-notify"), msg.Headers[0].Value)
	assert.Equal(t, "message", msg.Headers[1].Key)
	assert.Equal(t, []byte("success"), msg.Headers[1].Value)

	var roundtrip domain.PositionRecord
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))
	assert.Equal(t, testRecord(), roundtrip)
}

func TestWriter_Write(t *testing.T) {
	fake := &fakeMessageWriter{}
	w := &Writer{writer: fake, topic: "iss-positions", logger: discardLogger()}

	require.NoError(t, w.Write(context.Background(), testRecord()))
	require.Len(t, fake.msgs, 1)
	assert.Equal(t, []byte("2021-01-01T00:00:00Z"), fake.msgs[0].Key)

	require.NoError(t, w.Close())
	assert.True(t, fake.closed)
	assert.Equal(t, "kafka", w.Name())
}

func TestWriter_WriteError(t *testing.T) {
	fake := &fakeMessageWriter{err: errors.New("leader not available")}
	w := &Writer{writer: fake, topic: "iss-positions", logger: discardLogger()}

	err := w.Write(context.Background(), testRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish to iss-positions")
	assert.Contains(t, err.Error(), "leader not available")
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "positions"}
	w := NewWriter(cfg, discardLogger())

	kw, ok := w.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "positions", kw.Topic)
	assert.Equal(t, kafkago.RequireAll, kw.RequiredAcks)
	require.NoError(t, w.Close())
}
