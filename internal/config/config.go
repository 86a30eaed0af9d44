package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/premtable/matchday/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the reconciliation engine
// and its adapters. Everything comes from the environment; the magic
// numbers of the matchweek heuristics live here on purpose so a league
// of a different size is an env change, not a code change.
type Config struct {
	AppEnv      string `validate:"oneof=dev prod"`
	ServiceName string `validate:"required"`

	SourceDir string `validate:"required"`
	DBURL     string

	CacheEnabled bool
	CacheTTL     time.Duration `validate:"min=0"`

	FetchTimeout         time.Duration `validate:"min=0"`
	MaxConcurrentFetches int           `validate:"min=1"`

	MatchweekCompletionThreshold int           `validate:"min=1"`
	MatchweekRoundGap            time.Duration `validate:"gt=0"`

	SourceCircuitEnabled        bool
	SourceCircuitFailureCount   int
	SourceCircuitOpenTimeout    time.Duration
	SourceCircuitHalfOpenMaxReq int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}

	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	fetchTimeout, err := getEnvAsDuration("FETCH_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, err
	}

	maxFetches, err := getEnvAsInt("MAX_CONCURRENT_FETCHES", 4)
	if err != nil {
		return Config{}, err
	}

	completionThreshold, err := getEnvAsInt("MATCHWEEK_COMPLETION_THRESHOLD", 8)
	if err != nil {
		return Config{}, err
	}

	roundGap, err := getEnvAsDuration("MATCHWEEK_ROUND_GAP", 72*time.Hour)
	if err != nil {
		return Config{}, err
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("SOURCE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_ENABLED: %w", err)
	}

	circuitFailures, err := getEnvAsInt("SOURCE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, err
	}

	circuitOpenTimeout, err := getEnvAsDuration("SOURCE_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	circuitHalfOpenMax, err := getEnvAsInt("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("SERVICE_NAME", "matchday"),
		SourceDir:                    getEnv("SOURCE_DIR", "./sources"),
		DBURL:                        strings.TrimSpace(getEnv("DB_URL", "")),
		CacheEnabled:                 cacheEnabled,
		CacheTTL:                     cacheTTL,
		FetchTimeout:                 fetchTimeout,
		MaxConcurrentFetches:         maxFetches,
		MatchweekCompletionThreshold: completionThreshold,
		MatchweekRoundGap:            roundGap,
		SourceCircuitEnabled:         circuitEnabled,
		SourceCircuitFailureCount:    circuitFailures,
		SourceCircuitOpenTimeout:     circuitOpenTimeout,
		SourceCircuitHalfOpenMaxReq:  circuitHalfOpenMax,
		LogLevel:                     logLevel,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseAppEnv(value string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(value))
	switch env {
	case EnvDev, EnvProd:
		return env, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: expected %q or %q", value, EnvDev, EnvProd)
	}
}

func parseLogLevel(value string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info", "":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return logging.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", value)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
