package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENVIRONMENT", "SERVER_PORT", "SERVER_HOST", "USE_TLS", "BEHIND_PROXY",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_TIMEOUT", "DB_WATCH_CHANGES", "LOG_LEVEL", "LOG_COLOR",
	"JWT_SECRET", "JWT_EXPIRY", "LEAGUE_TIMEZONE", "FINAL_WEEK",
	"REDIS_ADDR", "REDIS_DB", "REDIS_PREFIX", "LEADERBOARD_CACHE_TTL", "SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every key FromEnv reads so defaults apply
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.False(t, cfg.Server.UseTLS)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "pickem", cfg.Database.Database)
	assert.False(t, cfg.Database.WatchChanges)
	assert.Equal(t, "America/Los_Angeles", cfg.League.Location.String())
	assert.Equal(t, 18, cfg.League.FinalWeek)
	assert.False(t, cfg.UseRedis())
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	book := cfg.RuleBook()
	assert.Equal(t, "final-week", book.ForWeek(18).Name)
	assert.Equal(t, "standard", book.ForWeek(17).Name)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LEAGUE_TIMEZONE", "America/New_York")
	t.Setenv("FINAL_WEEK", "0")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LEADERBOARD_CACHE_TTL", "30s")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("DB_WATCH_CHANGES", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "America/New_York", cfg.League.Location.String())
	assert.Equal(t, "standard", cfg.RuleBook().ForWeek(18).Name, "final week rules disabled")
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiry)
	assert.True(t, cfg.Database.WatchChanges)

	redis := cfg.ToRedisConfig()
	assert.Equal(t, "localhost:6379", redis.Addr)
	assert.Equal(t, 2, redis.DB)
	assert.Equal(t, "pickem", redis.Prefix)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown time zone", map[string]string{"LEAGUE_TIMEZONE": "Mars/Olympus_Mons"}},
		{"negative final week", map[string]string{"FINAL_WEEK": "-1"}},
		{"default secret in production", map[string]string{"ENVIRONMENT": "production"}},
		{"negative cache ttl", map[string]string{"LEADERBOARD_CACHE_TTL": "-1m"}},
		{"tls without cert files", map[string]string{"USE_TLS": "true", "TLS_CERT_FILE": "/nonexistent.crt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Adapters(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_HOST", "mongo")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.ToLoggingConfig().Level)
	assert.Equal(t, "mongo", cfg.ToDatabaseConfig().Host)
}
