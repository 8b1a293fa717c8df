package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leyuan/sportdesk/internal/platform/logging"
)

// Provider stores the connection settings for one upstream data source.
type Provider struct {
	Enabled               bool
	BaseURL               string
	Token                 string
	Timeout               time.Duration
	MaxRetries            int
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	NBA          Provider
	ESPN         Provider
	FootballData Provider
	Polymarket   Provider
	PandaScore   Provider
	CoinGecko    Provider
	Sina         Provider
	FundGZ       Provider

	SinaReferer string

	// Esports classification heuristics. A series that started more than
	// EsportsLiveCutoff ago is forced to finished; events older than
	// EsportsMaxAge are discarded.
	EsportsLiveCutoff time.Duration
	EsportsMaxAge     time.Duration

	// Days of upcoming fixtures requested from the football schedule feed.
	FootballWindowDays int

	DefaultRefreshInterval time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	nba, err := loadProvider("NBA", Provider{
		Enabled: true,
		BaseURL: "https://cdn.nba.com",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	espn, err := loadProvider("ESPN", Provider{
		Enabled: true,
		BaseURL: "https://site.api.espn.com/apis/site/v2/sports/soccer",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	footballData, err := loadProvider("FOOTBALLDATA", Provider{
		BaseURL: "https://api.football-data.org",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}
	// The paid schedule API is useless without a token, regardless of the flag.
	if footballData.Token == "" {
		footballData.Enabled = false
	}

	polymarket, err := loadProvider("POLYMARKET", Provider{
		Enabled: true,
		BaseURL: "https://gamma-api.polymarket.com",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	pandaScore, err := loadProvider("PANDASCORE", Provider{
		BaseURL: "https://api.pandascore.co",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}
	if pandaScore.Token == "" {
		pandaScore.Enabled = false
	}

	coinGecko, err := loadProvider("COINGECKO", Provider{
		Enabled: true,
		BaseURL: "https://api.coingecko.com/api/v3",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	sina, err := loadProvider("SINA", Provider{
		Enabled: true,
		BaseURL: "https://hq.sinajs.cn",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	fundGZ, err := loadProvider("FUNDGZ", Provider{
		Enabled: true,
		BaseURL: "https://fundgz.1234567.com.cn",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	esportsLiveCutoff, err := time.ParseDuration(getEnv("ESPORTS_LIVE_CUTOFF", "8h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPORTS_LIVE_CUTOFF: %w", err)
	}
	if esportsLiveCutoff <= 0 {
		return Config{}, fmt.Errorf("ESPORTS_LIVE_CUTOFF must be > 0")
	}
	esportsMaxAge, err := time.ParseDuration(getEnv("ESPORTS_MAX_AGE", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPORTS_MAX_AGE: %w", err)
	}
	if esportsMaxAge <= 0 {
		return Config{}, fmt.Errorf("ESPORTS_MAX_AGE must be > 0")
	}

	footballWindowDays, err := getEnvAsInt("FOOTBALL_WINDOW_DAYS", 7)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_WINDOW_DAYS: %w", err)
	}
	if footballWindowDays < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_WINDOW_DAYS must be >= 1")
	}

	defaultRefreshInterval, err := time.ParseDuration(getEnv("DEFAULT_REFRESH_INTERVAL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_REFRESH_INTERVAL: %w", err)
	}
	if defaultRefreshInterval <= 0 {
		return Config{}, fmt.Errorf("DEFAULT_REFRESH_INTERVAL must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "sportdesk-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        betterStackEndpoint,
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        betterStackMinLevel,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		NBA:                        nba,
		ESPN:                       espn,
		FootballData:               footballData,
		Polymarket:                 polymarket,
		PandaScore:                 pandaScore,
		CoinGecko:                  coinGecko,
		Sina:                       sina,
		FundGZ:                     fundGZ,
		SinaReferer:                getEnv("SINA_REFERER", "https://finance.sina.com.cn"),
		EsportsLiveCutoff:          esportsLiveCutoff,
		EsportsMaxAge:              esportsMaxAge,
		FootballWindowDays:         footballWindowDays,
		DefaultRefreshInterval:     defaultRefreshInterval,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

// loadProvider reads the standard <PREFIX>_* block shared by every upstream.
func loadProvider(prefix string, defaults Provider) (Provider, error) {
	enabledDefault := "false"
	if defaults.Enabled {
		enabledDefault = "true"
	}
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", enabledDefault))
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}

	timeoutDefault := defaults.Timeout
	if timeoutDefault <= 0 {
		timeoutDefault = 10 * time.Second
	}
	timeout, err := time.ParseDuration(getEnv(prefix+"_TIMEOUT", timeoutDefault.String()))
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_TIMEOUT: %w", prefix, err)
	}
	if timeout <= 0 {
		return Provider{}, fmt.Errorf("%s_TIMEOUT must be > 0", prefix)
	}

	maxRetries, err := getEnvAsInt(prefix+"_MAX_RETRIES", 1)
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_MAX_RETRIES: %w", prefix, err)
	}
	if maxRetries < 0 {
		return Provider{}, fmt.Errorf("%s_MAX_RETRIES must be >= 0", prefix)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	circuitFailureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if circuitFailureCount < 1 {
		return Provider{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if circuitOpenTimeout <= 0 {
		return Provider{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Provider{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Provider{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return Provider{
		Enabled:               enabled,
		BaseURL:               strings.TrimSpace(getEnv(prefix+"_BASE_URL", defaults.BaseURL)),
		Token:                 strings.TrimSpace(getEnv(prefix+"_TOKEN", defaults.Token)),
		Timeout:               timeout,
		MaxRetries:            maxRetries,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
