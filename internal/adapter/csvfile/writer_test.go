package csvfile_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/iss-position-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/iss-position-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func record(sec int64, lat, lon string) domain.PositionRecord {
	return domain.PositionRecord{
		Timestamp: time.Unix(sec, 0).UTC(),
		Latitude:  lat,
		Longitude: lon,
		Message:   "success",
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestWrite_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := csvfile.NewWriter(path, discardLogger())

	require.NoError(t, w.Write(context.Background(), record(1609459200, "10.00", "20.00")))

	assert.Equal(t, []string{
		"timestamp,latitude,longitude,message",
		"2021-01-01 00:00:00,10.00,20.00,success",
	}, readLines(t, path))
}

func TestWrite_SequentialRecordsKeepOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := csvfile.NewWriter(path, discardLogger())

	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, w.Write(context.Background(), record(int64(i*60), fmt.Sprintf("%d.5", i), "0.0")))
	}

	lines := readLines(t, path)
	require.Len(t, lines, n+1)
	assert.Equal(t, "timestamp,latitude,longitude,message", lines[0])
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("1970-01-01 00:%02d:00,%d.5,0.0,success", i, i)
		assert.Equal(t, want, lines[i+1])
	}
}

func TestWrite_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	existing := "timestamp,latitude,longitude,message\n2020-12-31 23:59:00,1.00,2.00,success\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	w := csvfile.NewWriter(path, discardLogger())
	require.NoError(t, w.Write(context.Background(), record(1609459200, "10.00", "20.00")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), existing), "prior lines unmodified")
	assert.Len(t, readLines(t, path), 3)
}

func TestWrite_DoesNotValidateExistingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	w := csvfile.NewWriter(path, discardLogger())
	require.NoError(t, w.Write(context.Background(), record(0, "1", "2")))

	assert.Equal(t, []string{"a,b", "1970-01-01 00:00:00,1,2,success"}, readLines(t, path))
}

func TestWrite_QuotesFieldsWithCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := csvfile.NewWriter(path, discardLogger())

	rec := record(0, "1", "2")
	rec.Message = "partial, degraded"
	require.NoError(t, w.Write(context.Background(), rec))

	assert.Equal(t, `1970-01-01 00:00:00,1,2,"partial, degraded"`, readLines(t, path)[1])
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.csv")
	w := csvfile.NewWriter(path, discardLogger())

	err := w.Write(context.Background(), record(0, "1", "2"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
	assert.Equal(t, path, w.Path())
	assert.Equal(t, "csv", w.Name())
}
