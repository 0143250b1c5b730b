package configs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LAB_TEST_VALUE", "abc")
	assert.Equal(t, "abc", GetEnv("LAB_TEST_VALUE"))
	assert.Equal(t, "fallback", GetEnv("LAB_TEST_MISSING", "fallback"))
	assert.Equal(t, "", GetEnv("LAB_TEST_MISSING"))

	// set but empty wins over the default
	t.Setenv("LAB_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("LAB_TEST_EMPTY", "fallback"))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("LAB_FLAG", "true")
	assert.True(t, GetEnvBool("LAB_FLAG", false))

	t.Setenv("LAB_FLAG", "nope")
	assert.True(t, GetEnvBool("LAB_FLAG", true))
	assert.False(t, GetEnvBool("LAB_FLAG_UNSET", false))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", "console", "labsuite")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = NewLogger("warn", "json", "")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestGormLoggerLogModeCopies(t *testing.T) {
	base := NewGormLogger(zap.NewNop())
	silent := base.LogMode(gormLogger.Silent)

	assert.Equal(t, gormLogger.Warn, base.(*GormLogger).LogLevel)
	assert.Equal(t, gormLogger.Silent, silent.(*GormLogger).LogLevel)

	// must not panic on any path
	base.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 1", 1 }, nil)
	base.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormLogger.ErrRecordNotFound)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LAB_INT", "42")
	assert.Equal(t, 42, GetEnvInt("LAB_INT", 1))
	t.Setenv("LAB_INT", "x")
	assert.Equal(t, 1, GetEnvInt("LAB_INT", 1))
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "lab", Password: "p@ss", Name: "labsuite", SSLMode: "disable"}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://lab:p%40ss@db:5432/labsuite?")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "statement_timeout")
}
