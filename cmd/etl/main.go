// etl fetches the current ISS position, keeps a pretty-printed copy of the
// raw response next to the dataset, and appends one row to a CSV file.
//
// Usage:
//
//	etl <output.csv>
//
// The audit copy is written to the output path with ".csv" replaced by ".json".
// A path beginning with "-" must follow "--", as in "etl -- -positions.csv".
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	"github.com/couchcryptid/iss-position-etl/internal/adapter/audit"
	"github.com/couchcryptid/iss-position-etl/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/iss-position-etl/internal/adapter/kafka"
	"github.com/couchcryptid/iss-position-etl/internal/adapter/opennotify"
	"github.com/couchcryptid/iss-position-etl/internal/config"
	"github.com/couchcryptid/iss-position-etl/internal/observability"
	"github.com/couchcryptid/iss-position-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], cfg, logger, os.Stderr)
	stop()

	os.Exit(code)
}

// run executes one ETL pass and returns the process exit code.
func run(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger, stderr io.Writer) int {
	flagSet := pflag.NewFlagSet("etl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintln(stderr, "Usage: etl [--] <output_file>")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		logger.Error("invalid arguments", "error", err, "hint", "put -- before an output path that starts with -")
		return 1
	}
	if flagSet.NArg() < 1 {
		logger.Error("usage: etl <output_file>")
		return 1
	}

	output := flagSet.Arg(0)

	metrics := observability.NewMetrics()
	defer writeMetrics(cfg, metrics, logger)

	csvWriter := csvfile.NewWriter(output, logger)
	auditWriter := audit.NewFileWriter(audit.DerivePath(output), logger)
	source := opennotify.NewClient(cfg.ISSAPIURL, cfg.HTTPTimeout, logger)

	writers := []pipeline.RecordWriter{csvWriter}
	if cfg.KafkaEnabled() {
		kw := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := kw.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		writers = append(writers, kw)
	}

	logger.Info("starting run",
		"endpoint", source.Endpoint(),
		"output", csvWriter.Path(),
		"audit", auditWriter.Path(),
		"kafka", cfg.KafkaEnabled(),
	)

	extractor := pipeline.NewExtractor(source, auditWriter, logger)
	transformer := pipeline.NewTransformer(logger)
	loader := pipeline.NewLoader(logger, writers...)

	p := pipeline.New(extractor, transformer, loader, logger, metrics, clockwork.NewRealClock())

	if err := p.Run(ctx); err != nil {
		var extractErr *pipeline.ExtractError
		if errors.As(err, &extractErr) {
			logger.Error("extraction failed, exiting", "reason", extractErr.Reason)
			return 1
		}
		logger.Error("pipeline failed", "error", err)
		return 1
	}
	return 0
}

func writeMetrics(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Warn("metrics textfile write failed", "path", cfg.MetricsTextfile, "error", err)
	}
}
