package gormlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestShortCaller(t *testing.T) {
	require.Equal(t, "internal/platform/db/postgres.go:38", shortCaller("/home/ci/src/mollie-ideal/internal/platform/db/postgres.go:38"))
	require.Equal(t, "pkg/gormlog/zap.go:12", shortCaller("/go/pkg/gormlog/zap.go:12"))
	require.Equal(t, "b/c/d.go:7", shortCaller("/a/b/c/d.go:7"))
	require.Equal(t, "x.go:1", shortCaller("/x.go:1"))
	require.Equal(t, "", shortCaller(""))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, gormlogger.Silent, ParseLevel("silent"))
	require.Equal(t, gormlogger.Error, ParseLevel("ERROR"))
	require.Equal(t, gormlogger.Info, ParseLevel(" info "))
	require.Equal(t, gormlogger.Warn, ParseLevel(""))
	require.Equal(t, gormlogger.Warn, ParseLevel("verbose"))
}

func TestTrace_LevelsAndRecordNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	z := New(zap.New(core).Sugar(), gormlogger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }
	ctx := context.Background()

	z.Trace(ctx, time.Now(), sql, nil)
	require.Zero(t, logs.Len())

	z.Trace(ctx, time.Now(), sql, gormlogger.ErrRecordNotFound)
	require.Zero(t, logs.Len())

	z.Trace(ctx, time.Now(), sql, errors.New("boom"))
	require.Equal(t, 1, logs.FilterMessage("gorm_trace").Len())

	z.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	require.Equal(t, 1, logs.FilterMessage("gorm_slow").Len())

	z.LogMode(gormlogger.Info).Trace(ctx, time.Now(), sql, nil)
	require.Equal(t, 1, logs.FilterMessage("gorm").Len())
}
