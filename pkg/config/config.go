package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	Timezone  string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Timetable TimetableConfig
	Routing   RoutingConfig
	Refresh   RefreshConfig
	Export    ExportConfig
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig protects the planner API with a single passphrase-issued token.
type AuthConfig struct {
	Secret         string
	Expiration     time.Duration
	PassphraseHash string
	Issuer         string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TimetableConfig points at the university timetable feed.
type TimetableConfig struct {
	FeedURL      string
	Referer      string
	FetchTimeout time.Duration
	CacheTTL     time.Duration
	MaxAge       time.Duration
}

// RoutingConfig tunes route caching.
type RoutingConfig struct {
	CacheMaxAge time.Duration
}

// RefreshConfig sizes the background timetable refresh queue.
type RefreshConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// ExportConfig configures schedule exports.
type ExportConfig struct {
	PDFFontPath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Timezone = v.GetString("TIMEZONE")

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		SQLitePath:   v.GetString("SQLITE_PATH"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_CACHE"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Secret:         v.GetString("JWT_SECRET"),
		Expiration:     parseDuration(v.GetString("JWT_EXPIRATION"), 30*24*time.Hour),
		PassphraseHash: v.GetString("AUTH_PASSPHRASE_HASH"),
		Issuer:         v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Timetable = TimetableConfig{
		FeedURL:      v.GetString("TIMETABLE_FEED_URL"),
		Referer:      v.GetString("TIMETABLE_REFERER"),
		FetchTimeout: parseDuration(v.GetString("TIMETABLE_FETCH_TIMEOUT"), 10*time.Second),
		CacheTTL:     parseDuration(v.GetString("TIMETABLE_CACHE_TTL"), time.Hour),
		MaxAge:       parseDuration(v.GetString("TIMETABLE_MAX_AGE"), 12*time.Hour),
	}

	cfg.Routing = RoutingConfig{
		CacheMaxAge: parseDuration(v.GetString("ROUTE_CACHE_MAX_AGE"), 30*time.Minute),
	}

	cfg.Refresh = RefreshConfig{
		Workers:    v.GetInt("REFRESH_WORKERS"),
		Retries:    v.GetInt("REFRESH_RETRIES"),
		RetryDelay: parseDuration(v.GetString("REFRESH_RETRY_DELAY"), 5*time.Second),
	}

	cfg.Export = ExportConfig{
		PDFFontPath: v.GetString("EXPORT_PDF_FONT_PATH"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("TIMEZONE", "Europe/Moscow")

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "wakeup_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "wakeup.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "720h")
	v.SetDefault("JWT_ISSUER", "wakeup-planner")
	v.SetDefault("AUTH_PASSPHRASE_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TIMETABLE_FEED_URL", "")
	v.SetDefault("TIMETABLE_REFERER", "")
	v.SetDefault("TIMETABLE_FETCH_TIMEOUT", "10s")
	v.SetDefault("TIMETABLE_CACHE_TTL", "1h")
	v.SetDefault("TIMETABLE_MAX_AGE", "12h")

	v.SetDefault("ROUTE_CACHE_MAX_AGE", "30m")

	v.SetDefault("REFRESH_WORKERS", 1)
	v.SetDefault("REFRESH_RETRIES", 3)
	v.SetDefault("REFRESH_RETRY_DELAY", "5s")

	v.SetDefault("EXPORT_PDF_FONT_PATH", "")
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
