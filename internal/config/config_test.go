package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_ProviderDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.NBA.Enabled {
		t.Fatalf("expected NBA enabled by default")
	}
	if cfg.NBA.BaseURL != "https://cdn.nba.com" {
		t.Fatalf("unexpected NBA base url: %q", cfg.NBA.BaseURL)
	}
	if !cfg.ESPN.Enabled {
		t.Fatalf("expected ESPN enabled by default")
	}
	if cfg.ESPN.Timeout != 10*time.Second {
		t.Fatalf("unexpected ESPN timeout: %s", cfg.ESPN.Timeout)
	}
	if cfg.FootballData.Enabled {
		t.Fatalf("expected FootballData disabled without a token")
	}
	if cfg.PandaScore.Enabled {
		t.Fatalf("expected PandaScore disabled without a token")
	}
	if !cfg.Polymarket.CircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
	if cfg.Polymarket.CircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit failure count: %d", cfg.Polymarket.CircuitFailureCount)
	}
}

func TestLoad_TokenEnablesSecondaryProviders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FOOTBALLDATA_ENABLED", "true")
	t.Setenv("FOOTBALLDATA_TOKEN", "fd-token")
	t.Setenv("PANDASCORE_ENABLED", "true")
	t.Setenv("PANDASCORE_TOKEN", "ps-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FootballData.Enabled || cfg.FootballData.Token != "fd-token" {
		t.Fatalf("unexpected footballdata config: %+v", cfg.FootballData)
	}
	if !cfg.PandaScore.Enabled || cfg.PandaScore.Token != "ps-token" {
		t.Fatalf("unexpected pandascore config: %+v", cfg.PandaScore)
	}
}

func TestLoad_ProviderBlockParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ESPN_TIMEOUT", "3s")
		t.Setenv("ESPN_MAX_RETRIES", "2")
		t.Setenv("ESPN_CIRCUIT_FAILURE_COUNT", "7")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ESPN.Timeout != 3*time.Second {
			t.Fatalf("unexpected timeout: %s", cfg.ESPN.Timeout)
		}
		if cfg.ESPN.MaxRetries != 2 {
			t.Fatalf("unexpected max retries: %d", cfg.ESPN.MaxRetries)
		}
		if cfg.ESPN.CircuitFailureCount != 7 {
			t.Fatalf("unexpected circuit failure count: %d", cfg.ESPN.CircuitFailureCount)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("ESPN_TIMEOUT", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid ESPN_TIMEOUT")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("ESPN_TIMEOUT", "10s")
		t.Setenv("ESPN_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative ESPN_MAX_RETRIES")
		}
	})
}

func TestLoad_EsportsHeuristicDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.EsportsLiveCutoff != 8*time.Hour {
		t.Fatalf("unexpected esports live cutoff: %s", cfg.EsportsLiveCutoff)
	}
	if cfg.EsportsMaxAge != 168*time.Hour {
		t.Fatalf("unexpected esports max age: %s", cfg.EsportsMaxAge)
	}
	if cfg.FootballWindowDays != 7 {
		t.Fatalf("unexpected football window days: %d", cfg.FootballWindowDays)
	}
	if cfg.DefaultRefreshInterval != 10*time.Minute {
		t.Fatalf("unexpected default refresh interval: %s", cfg.DefaultRefreshInterval)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_DBURLOptional(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DBURL by default, got %q", cfg.DBURL)
	}
}
