package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"usersvc/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	_ logger.Interface  = (*gormSlogLogger)(nil)
	_ gorm.ParamsFilter = (*gormSlogLogger)(nil)
)

// gormSlogLogger routes gorm's query log into slog. Only the SQL text with
// placeholders is logged; bound values are filtered out because the users
// table stores password hashes.
type gormSlogLogger struct {
	out       *slog.Logger
	threshold logger.LogLevel
	slow      time.Duration
}

func newGormSlogLogger(out *slog.Logger, cfg *config.Config) logger.Interface {
	threshold := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		threshold = logger.Info
	}

	return &gormSlogLogger{
		out:       out,
		threshold: threshold,
		slow:      slowQueryThreshold,
	}
}

// ParamsFilter implements gorm.ParamsFilter.
func (l *gormSlogLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	next := *l
	next.threshold = level

	return &next
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) printf(ctx context.Context, atLeast logger.LogLevel, level slog.Level, msg string, args []any) {
	if !l.enabled(atLeast) {
		return
	}

	l.out.LogAttrs(ctx, level, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed queries at error, slow ones at warn, and everything else
// only in debug. A missing row is a normal lookup miss and is not logged.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.out == nil || l.threshold <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	queryAttrs := func(extra ...slog.Attr) []slog.Attr {
		sql, rows := sqlAndRowsFn()

		return append([]slog.Attr{
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		}, extra...)
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.enabled(logger.Error):
		l.out.LogAttrs(ctx, slog.LevelError, "GORM query failed", queryAttrs(slog.String("error", err.Error()))...)
	case l.slow > 0 && elapsed > l.slow && l.enabled(logger.Warn):
		l.out.LogAttrs(ctx, slog.LevelWarn, "GORM slow query", queryAttrs(slog.Duration("slowThreshold", l.slow))...)
	case l.enabled(logger.Info):
		l.out.LogAttrs(ctx, slog.LevelInfo, "GORM query", queryAttrs()...)
	}
}

func (l *gormSlogLogger) enabled(atLeast logger.LogLevel) bool {
	return l.out != nil && l.threshold >= atLeast
}
