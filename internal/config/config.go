package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all command settings, populated from environment variables.
type Config struct {
	ISSAPIURL   string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string

	// MetricsTextfile, when set, receives the run's metrics in the
	// Prometheus text exposition format.
	MetricsTextfile string

	// Optional Kafka mirror of every loaded record.
	KafkaBrokers []string
	KafkaTopic   string

	// GitHub event summary configuration. Only the events command reads
	// these; it calls ValidateEvents before use.
	GitHubUser    string
	GitHubAPIURL  string
	EventLimit    int
	eventLimitErr error
}

// Load reads configuration from environment variables, applying defaults where unset.
// Variables from ENV_FILE (default ".env") are applied first without
// overriding ones already present in the environment.
func Load() (*Config, error) {
	if err := loadEnvFile(envOrDefault("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	httpTimeout, err := time.ParseDuration(envOrDefault("HTTP_TIMEOUT", "0s"))
	if err != nil || httpTimeout < 0 {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	eventLimit, eventLimitErr := parseEventLimit()

	cfg := &Config{
		ISSAPIURL:       envOrDefault("ISS_API_URL", "http://api.open-notify.org/iss-now.json"),
		HTTPTimeout:     httpTimeout,
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		KafkaBrokers:    parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      envOrDefault("KAFKA_TOPIC", "iss-positions"),
		GitHubUser:      os.Getenv("GITHUB_USER"),
		GitHubAPIURL:    strings.TrimRight(envOrDefault("GITHUB_API_URL", "https://api.github.com"), "/"),
		EventLimit:      eventLimit,
		eventLimitErr:   eventLimitErr,
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, errors.New("invalid LOG_FORMAT: must be json or text")
	}

	return cfg, nil
}

// KafkaEnabled reports whether records should also be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// ValidateEvents checks the settings the events command depends on.
func (c *Config) ValidateEvents() error {
	if c.eventLimitErr != nil {
		return c.eventLimitErr
	}
	if c.GitHubUser == "" {
		return errors.New("GITHUB_USER is required")
	}
	return nil
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseEventLimit() (int, error) {
	s := os.Getenv("EVENT_LIMIT")
	if s == "" {
		return 5, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 100 {
		return 0, errors.New("invalid EVENT_LIMIT: must be 1-100")
	}
	return n, nil
}

func parseBrokers(value string) []string {
	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
