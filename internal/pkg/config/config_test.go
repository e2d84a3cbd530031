package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabase = "projects/test-project/instances/test-instance/databases/prices"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvSpannerDatabase, testDatabase)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, ":50051", cfg.App.GRPCAddr)
	assert.Equal(t, ":8080", cfg.App.AdminAddr)
	assert.Equal(t, 5*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "RON", cfg.Engine.DefaultCurrency)
	assert.Equal(t, 5, cfg.Engine.SubstituteLimit)
	assert.Equal(t, 10, cfg.Engine.BestDiscountsLimit)
	assert.Equal(t, 90, cfg.Engine.HistoryLookbackDays)
	assert.Equal(t, "price-alerts", cfg.PubSub.AlertsTopic)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Equal(t, time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, 5, cfg.Outbox.MaxAttempts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvSpannerDatabase, testDatabase)
	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvDefaultCurrency, "EUR")
	t.Setenv(EnvOutboxPollInterval, "250ms")
	t.Setenv(EnvOutboxMaxAttempts, "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "EUR", cfg.Engine.DefaultCurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.Outbox.PollInterval)
	assert.Zero(t, cfg.Outbox.MaxAttempts)
}

func TestLoad_MissingDatabase(t *testing.T) {
	require.NoError(t, os.Unsetenv(EnvSpannerDatabase))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedDatabase(t *testing.T) {
	t.Setenv(EnvSpannerDatabase, "prices")

	_, err := Load()
	assert.ErrorContains(t, err, EnvSpannerDatabase)
}

func TestLoad_InvalidLookback(t *testing.T) {
	t.Setenv(EnvSpannerDatabase, testDatabase)
	t.Setenv(EnvHistoryLookbackDays, "0")

	_, err := Load()
	assert.ErrorContains(t, err, EnvHistoryLookbackDays)
}
