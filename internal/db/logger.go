package db

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// gormLogger sends gorm output to logrus at the matching level.
type gormLogger struct {
	log   logrus.FieldLogger
	level logger.LogLevel
	slow  time.Duration
}

func newGormLogger(log logrus.FieldLogger, level logger.LogLevel, slow time.Duration) *gormLogger {
	return &gormLogger{log: log, level: level, slow: slow}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.WithField("source", utils.FileWithLineNum()).Infof(msg, args...)
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.WithField("source", utils.FileWithLineNum()).Warnf(msg, args...)
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.WithField("source", utils.FileWithLineNum()).Errorf(msg, args...)
	}
}

// Trace logs failed statements as errors, slow ones as warnings and, in
// debug mode, every statement at info.
func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	fields := func() logrus.Fields {
		sql, rows := fc()
		return logrus.Fields{
			"sql":        sql,
			"rows":       rows,
			"elapsed_ms": elapsed.Milliseconds(),
			"source":     utils.FileWithLineNum(),
		}
	}
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.WithFields(fields()).WithError(err).Error("query failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		l.log.WithFields(fields()).Warnf("slow query over %s", l.slow)
	case l.level >= logger.Info:
		l.log.WithFields(fields()).Info("query")
	}
}
