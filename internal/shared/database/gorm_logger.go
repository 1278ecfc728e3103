package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cineops/pkg/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's query log through the application logger.
type GormLogger struct {
	log   *logger.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

func NewGormLogger(l *logger.Logger, slow time.Duration, verbose bool) *GormLogger {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	return &GormLogger{log: l, slow: slow, level: level}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormlogger.Error:
		sql, _ := fc()
		g.log.LogDBQuery(ctx, sql, elapsed, err)
	case g.slow > 0 && elapsed > g.slow && g.level >= gormlogger.Warn:
		sql, _ := fc()
		g.log.LogSlowQuery(ctx, sql, elapsed)
	case g.level >= gormlogger.Info:
		sql, _ := fc()
		g.log.LogDBQuery(ctx, sql, elapsed, nil)
	}
}
