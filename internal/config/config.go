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
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level
	LogFormat      logging.Format

	CORSAllowedOrigins []string
	SwaggerEnabled     bool

	StoreBackend string
	StoreTimeout time.Duration

	UpstashURL                   string
	UpstashToken                 string
	UpstashCircuitEnabled        bool
	UpstashCircuitFailureCount   int
	UpstashCircuitOpenTimeout    time.Duration
	UpstashCircuitHalfOpenMaxReq int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DBURL                   string
	DBDisablePreparedBinary bool

	CacheEnabled bool
	CacheTTL     time.Duration

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendUpstash  = "upstash"
	BackendPostgres = "postgres"
)

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("APP_DOTENV_PATH", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := parsePositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := parsePositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	upstashURL := strings.TrimSpace(getEnv("UPSTASH_REDIS_REST_URL", ""))
	upstashToken := strings.TrimSpace(getEnv("UPSTASH_REDIS_REST_TOKEN", ""))

	defaultBackend := BackendMemory
	if upstashURL != "" {
		defaultBackend = BackendUpstash
	}
	storeBackend, err := parseBackend(getEnv("STORE_BACKEND", defaultBackend))
	if err != nil {
		return Config{}, err
	}
	storeTimeout, err := parsePositiveDuration("STORE_TIMEOUT", "3s")
	if err != nil {
		return Config{}, err
	}

	upstashCircuitEnabled, err := strconv.ParseBool(getEnv("UPSTASH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTASH_CIRCUIT_ENABLED: %w", err)
	}
	upstashCircuitFailureCount, err := getEnvAsInt("UPSTASH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTASH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if upstashCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("UPSTASH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	upstashCircuitOpenTimeout, err := parsePositiveDuration("UPSTASH_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	upstashCircuitHalfOpenMaxReq, err := getEnvAsInt("UPSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTASH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if upstashCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("UPSTASH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if redisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be >= 0")
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	switch storeBackend {
	case BackendUpstash:
		if upstashURL == "" || upstashToken == "" {
			return Config{}, fmt.Errorf("UPSTASH_REDIS_REST_URL and UPSTASH_REDIS_REST_TOKEN are required when STORE_BACKEND=upstash")
		}
	case BackendRedis:
		if redisAddr == "" {
			return Config{}, fmt.Errorf("REDIS_ADDR is required when STORE_BACKEND=redis")
		}
	case BackendPostgres:
		if dbURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when STORE_BACKEND=postgres")
		}
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "30s")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", strconv.FormatBool(appEnv == EnvDev)))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := parsePositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "whalecast-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		LogLevel:                     logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                    logging.ParseFormat(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON))),
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:               swaggerEnabled,
		StoreBackend:                 storeBackend,
		StoreTimeout:                 storeTimeout,
		UpstashURL:                   upstashURL,
		UpstashToken:                 upstashToken,
		UpstashCircuitEnabled:        upstashCircuitEnabled,
		UpstashCircuitFailureCount:   upstashCircuitFailureCount,
		UpstashCircuitOpenTimeout:    upstashCircuitOpenTimeout,
		UpstashCircuitHalfOpenMaxReq: upstashCircuitHalfOpenMaxReq,
		RedisAddr:                    redisAddr,
		RedisPassword:                getEnv("REDIS_PASSWORD", ""),
		RedisDB:                      redisDB,
		DBURL:                        dbURL,
		DBDisablePreparedBinary:      dbDisablePreparedBinary,
		CacheEnabled:                 cacheEnabled,
		CacheTTL:                     cacheTTL,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if pprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
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

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return d, nil
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case BackendMemory, BackendRedis, BackendUpstash, BackendPostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORE_BACKEND %q: valid values are %s, %s, %s, %s", v, BackendMemory, BackendRedis, BackendUpstash, BackendPostgres)
	}
}
