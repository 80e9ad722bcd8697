package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datatests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATATESTS_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("DATATESTS_DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, SinkLog, cfg.Events.Sink)
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns env defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Driver)
	})

	t.Run("yaml overrides env", func(t *testing.T) {
		path := writeConfig(t, `
server:
  addr: ":7070"
database:
  driver: pgx
  url: postgres://localhost/datatests
redis:
  url: redis://localhost:6379/0
  dial_timeout: 2s
events:
  sink: redis
log:
  format: json
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.Server.Addr)
		assert.Equal(t, "pgx", cfg.Database.Driver)
		assert.Equal(t, 2*time.Second, cfg.Redis.DialTimeout)
		assert.Equal(t, SinkRedis, cfg.Events.Sink)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("unknown keys fail schema validation", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 80\n")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("unknown sink fails schema validation", func(t *testing.T) {
		path := writeConfig(t, "events:\n  sink: carrier-pigeon\n")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("kafka sink without brokers is rejected", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "")
		path := writeConfig(t, "events:\n  sink: kafka\n")
		_, err := Load(path)
		require.ErrorContains(t, err, "kafka.brokers")
	})
}
