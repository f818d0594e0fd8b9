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
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fatflowers/bankgate/pkg/logctx"
)

func TestShortCaller(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"/Users/alex/repo/internal/platform/db/postgres.go:38", "internal/platform/db/postgres.go:38"},
		{`C:\repo\project\pkg\x\y.go:12`, "pkg/x/y.go:12"},
		{"/a/b/c/d.go:7", "b/c/d.go:7"},
		{"/x/y.go:3", "x/y.go:3"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, shortCaller(tc.in), tc.in)
	}
}

func TestParamsFilter_DropsValues(t *testing.T) {
	l := New(zap.NewNop().Sugar())
	sql, params := l.ParamsFilter(context.Background(), "INSERT INTO t VALUES ($1)", "0912345678")
	require.Equal(t, "INSERT INTO t VALUES ($1)", sql)
	require.Nil(t, params)
}

func TestTrace_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core).Sugar())
	ctx := logctx.WithTraceID(context.Background(), "trace-1")
	fc := func() (string, int64) { return "SELECT 1", 1 }

	// fast success is below the default Warn level
	l.Trace(ctx, time.Now(), fc, nil)
	require.Zero(t, logs.Len())

	l.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	require.Zero(t, logs.Len())

	l.Trace(ctx, time.Now(), fc, errors.New("conn refused"))
	require.Equal(t, 1, logs.Len())
	entry := logs.TakeAll()[0]
	require.Equal(t, "gorm_trace", entry.Message)
	require.Equal(t, "trace-1", entry.ContextMap()["trace_id"])
	require.Equal(t, "SELECT 1", entry.ContextMap()["sql"])

	l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	require.Equal(t, "gorm_slow", logs.TakeAll()[0].Message)

	l.LogMode(gormlogger.Info).Trace(ctx, time.Now(), fc, nil)
	require.Equal(t, "gorm", logs.TakeAll()[0].Message)

	l.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), fc, errors.New("ignored"))
	require.Zero(t, logs.Len())
}
