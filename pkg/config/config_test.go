package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, "Europe/Kyiv", cfg.Timezone)
		assert.Equal(t, "0 18 * * 5", cfg.AssignCron)
		assert.Equal(t, "0 0 * * 1", cfg.RolloverCron)
		assert.Equal(t, "0 0 1 * *", cfg.ResetCron)
		assert.False(t, cfg.AssignLastWeekdayOnly)
		assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
		assert.Equal(t, 50, cfg.OutboxBatchSize)
		assert.Empty(t, cfg.AdminIDs)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("GROUP_ID", "-1001234567890")
		t.Setenv("ROTA_ADMIN_IDS", "100, 200,300")
		t.Setenv("ROTA_ASSIGN_LAST_WEEKDAY_ONLY", "true")
		t.Setenv("OUTBOX_POLL_INTERVAL", "2s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.False(t, cfg.IsDevelopment())
		assert.Equal(t, int64(-1001234567890), cfg.GroupID)
		assert.Equal(t, []int64{100, 200, 300}, cfg.AdminIDs)
		assert.True(t, cfg.AssignLastWeekdayOnly)
		assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	})

	t.Run("rejects malformed admin list", func(t *testing.T) {
		t.Setenv("ROTA_ADMIN_IDS", "100,not-a-number")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{100, 200}}

	assert.True(t, cfg.IsAdmin(100))
	assert.True(t, cfg.IsAdmin(200))
	assert.False(t, cfg.IsAdmin(300))

	empty := &Config{}
	assert.False(t, empty.IsAdmin(100))
}

func TestConfig_Location(t *testing.T) {
	t.Run("resolves valid timezone", func(t *testing.T) {
		cfg := &Config{Timezone: "Europe/Kyiv"}
		assert.Equal(t, "Europe/Kyiv", cfg.Location().String())
	})

	t.Run("falls back to UTC for unknown timezone", func(t *testing.T) {
		cfg := &Config{Timezone: "Not/AZone"}
		assert.Equal(t, time.UTC, cfg.Location())
	})
}

func TestParseIDList(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		ids, err := parseIDList("")
		require.NoError(t, err)
		assert.Nil(t, ids)
	})

	t.Run("skips blank entries", func(t *testing.T) {
		ids, err := parseIDList("1,,2, ,3")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids)
	})
}
