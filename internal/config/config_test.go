package config

import (
	"testing"
	"time"

	"github.com/premtable/matchday/internal/platform/logging"
)

var allKeys = []string{
	"APP_ENV", "LOG_LEVEL", "SERVICE_NAME", "SOURCE_DIR", "DB_URL",
	"CACHE_ENABLED", "CACHE_TTL",
	"FETCH_TIMEOUT", "MAX_CONCURRENT_FETCHES",
	"MATCHWEEK_COMPLETION_THRESHOLD", "MATCHWEEK_ROUND_GAP",
	"SOURCE_CIRCUIT_ENABLED", "SOURCE_CIRCUIT_FAILURE_COUNT",
	"SOURCE_CIRCUIT_OPEN_TIMEOUT", "SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load with defaults: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %q, want dev", cfg.AppEnv)
	}
	if cfg.ServiceName != "matchday" {
		t.Fatalf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.SourceDir != "./sources" {
		t.Fatalf("SourceDir = %q", cfg.SourceDir)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.MatchweekCompletionThreshold != 8 || cfg.MatchweekRoundGap != 72*time.Hour {
		t.Fatalf("matchweek defaults: threshold=%d gap=%s",
			cfg.MatchweekCompletionThreshold, cfg.MatchweekRoundGap)
	}
	if cfg.MaxConcurrentFetches != 4 || cfg.FetchTimeout != 20*time.Second {
		t.Fatalf("fetch defaults: max=%d timeout=%s", cfg.MaxConcurrentFetches, cfg.FetchTimeout)
	}
	if !cfg.SourceCircuitEnabled || cfg.SourceCircuitFailureCount != 5 {
		t.Fatalf("circuit defaults: enabled=%v failures=%d",
			cfg.SourceCircuitEnabled, cfg.SourceCircuitFailureCount)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SOURCE_DIR", "/var/lib/matchday/sources")
	t.Setenv("DB_URL", " postgres://localhost/matchday ")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("MATCHWEEK_COMPLETION_THRESHOLD", "9")
	t.Setenv("MATCHWEEK_ROUND_GAP", "96h")
	t.Setenv("MAX_CONCURRENT_FETCHES", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvProd || cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("env/level overrides lost: %q %v", cfg.AppEnv, cfg.LogLevel)
	}
	if cfg.SourceDir != "/var/lib/matchday/sources" {
		t.Fatalf("SourceDir = %q", cfg.SourceDir)
	}
	if cfg.DBURL != "postgres://localhost/matchday" {
		t.Fatalf("DBURL must be trimmed, got %q", cfg.DBURL)
	}
	if cfg.CacheEnabled {
		t.Fatalf("CacheEnabled override lost")
	}
	if cfg.MatchweekCompletionThreshold != 9 || cfg.MatchweekRoundGap != 96*time.Hour {
		t.Fatalf("matchweek overrides lost: threshold=%d gap=%s",
			cfg.MatchweekCompletionThreshold, cfg.MatchweekRoundGap)
	}
	if cfg.MaxConcurrentFetches != 2 {
		t.Fatalf("MaxConcurrentFetches = %d", cfg.MaxConcurrentFetches)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown app env", "APP_ENV", "staging"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"non-bool cache flag", "CACHE_ENABLED", "yes please"},
		{"non-duration ttl", "CACHE_TTL", "five minutes"},
		{"non-int threshold", "MATCHWEEK_COMPLETION_THRESHOLD", "eight"},
		{"zero fetch concurrency", "MAX_CONCURRENT_FETCHES", "0"},
		{"zero round gap", "MATCHWEEK_ROUND_GAP", "0s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%q to be rejected", tc.key, tc.value)
			}
		})
	}
}
