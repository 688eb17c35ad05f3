package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"homehub/pkg/db"
)

const (
	SchemaReset   = "reset"
	SchemaMigrate = "migrate"
)

type Config struct {
	// HTTP
	Addr            string
	CORSOrigins     []string
	IngestRateLimit int
	StaticDir       string
	TemplatesDir    string

	// DB
	DB         db.Config
	SchemaMode string

	// Sessions / sensors
	SessionTTL          time.Duration
	SensorDefaultWindow time.Duration

	// AI completion upstream
	AIBaseURL string
	AIEmail   string
	AIPID     string
	AITimeout time.Duration

	Environment string
	LogLevel    string
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("config: could not read .env", "error", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	schema := strings.ToLower(getenv("SCHEMA_MODE", SchemaReset))
	if schema != SchemaReset && schema != SchemaMigrate {
		slog.Warn("config: unknown schema mode, using default", "value", schema, "default", SchemaReset)
		schema = SchemaReset
	}

	rate := getint("INGEST_RATE_LIMIT", 600)
	if rate < 0 {
		slog.Warn("config: invalid ingest rate limit, disabling", "value", rate)
		rate = 0
	}

	return Config{
		Addr:            getenv("ADDR", ":8000"),
		CORSOrigins:     getlist("CORS_ORIGINS"),
		IngestRateLimit: rate,
		StaticDir:       getenv("STATIC_DIR", "web/static"),
		TemplatesDir:    getenv("TEMPLATES_DIR", "web/templates"),

		DB: db.Config{
			DSN:             os.Getenv("DATABASE_URL"),
			Host:            getenv("DB_HOST", "localhost"),
			Port:            getint("DB_PORT", 5432),
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            os.Getenv("DB_NAME"),
			SSLMode:         os.Getenv("DB_SSLMODE"),
			SSLCA:           os.Getenv("DB_SSL_CA"),
			MaxRetries:      getint("DB_MAX_RETRIES", 12),
			RetryDelay:      getdur("DB_RETRY_DELAY", 5*time.Second),
			MaxOpenConns:    getint("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getint("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getdur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			LogSQL:          getbool("DB_LOG_SQL", false),
		},
		SchemaMode: schema,

		SessionTTL:          getdur("SESSION_TTL", 24*time.Hour),
		SensorDefaultWindow: getdur("SENSOR_DEFAULT_WINDOW", 7*24*time.Hour),

		AIBaseURL: strings.TrimRight(os.Getenv("AI_BASE_URL"), "/"),
		AIEmail:   os.Getenv("AI_EMAIL"),
		AIPID:     os.Getenv("AI_PID"),
		AITimeout: getdur("AI_TIMEOUT", 30*time.Second),

		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("config: invalid bool, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("config: invalid int, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("config: invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getlist(k string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(k), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
