// events prints a one-line summary of a GitHub user's most recent public
// activity. The user is taken from GITHUB_USER.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/iss-position-etl/internal/adapter/github"
	"github.com/couchcryptid/iss-position-etl/internal/config"
	"github.com/couchcryptid/iss-position-etl/internal/domain"
	"github.com/couchcryptid/iss-position-etl/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger, os.Stdout)
	stop()

	if err != nil {
		logger.Error("event summary failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	if err := cfg.ValidateEvents(); err != nil {
		return err
	}

	client := github.NewClient(cfg.GitHubAPIURL, cfg.HTTPTimeout, logger)
	fmt.Fprintln(stdout, client.UserEventsURL(cfg.GitHubUser))

	events, err := client.UserEvents(ctx, cfg.GitHubUser)
	if err != nil {
		return err
	}

	for _, line := range domain.SummarizeEvents(events, cfg.EventLimit) {
		fmt.Fprintln(stdout, line)
	}
	return nil
}
