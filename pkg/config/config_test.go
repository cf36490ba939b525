package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "wakeup.db", cfg.Database.SQLitePath)
	assert.Equal(t, time.Hour, cfg.Timetable.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Routing.CacheMaxAge)
	assert.Equal(t, 1, cfg.Refresh.Workers)
	assert.False(t, cfg.Redis.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("TIMETABLE_CACHE_TTL", "15m")
	t.Setenv("ROUTE_CACHE_MAX_AGE", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Timetable.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Routing.CacheMaxAge)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
