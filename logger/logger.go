/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides logging functionality for tsindex.
// Supports different log levels and pluggable backends; the default backend is zap.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines log levels
type Level int32

const (
	// DEBUG debug level, displays detailed debug information
	DEBUG Level = iota
	// INFO info level, displays general information
	INFO
	// WARN warning level, displays warning information
	WARN
	// ERROR error level, only displays error information
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger interface defines basic methods for logging
type Logger interface {
	// Debug records debug level logs
	Debug(format string, args ...interface{})
	// Info records info level logs
	Info(format string, args ...interface{})
	// Warn records warning level logs
	Warn(format string, args ...interface{})
	// Error records error level logs
	Error(format string, args ...interface{})
	// SetLevel sets the log level
	SetLevel(level Level)
}

// zapLogger filters by Level and forwards to a zap SugaredLogger.
// The level is atomic so SetLevel may race with logging goroutines.
type zapLogger struct {
	level *atomic.Int32
	sugar *zap.SugaredLogger
}

// NewLogger creates a new logger writing to output
// Parameters:
//   - level: log level
//   - output: output destination, such as os.Stdout, os.Stderr, or file
//
// Example:
//
//	logger := NewLogger(INFO, os.Stdout)
//	logger.Info("index build started")
func NewLogger(level Level, output io.Writer) Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeLevel:      bracketLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(output)), zapcore.DebugLevel)
	return NewZapLogger(zap.New(core).Sugar(), level)
}

// NewZapLogger wraps an existing zap logger, e.g. one shared with the host application
func NewZapLogger(sugar *zap.SugaredLogger, level Level) Logger {
	return &zapLogger{
		level: atomic.NewInt32(int32(level)),
		sugar: sugar,
	}
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("[%s]", l.CapitalString()))
}

func (l *zapLogger) enabled(level Level) bool {
	current := Level(l.level.Load())
	return current != OFF && current <= level
}

// Debug 记录调试级别的日志
func (l *zapLogger) Debug(format string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.sugar.Debugf(format, args...)
	}
}

// Info 记录信息级别的日志
func (l *zapLogger) Info(format string, args ...interface{}) {
	if l.enabled(INFO) {
		l.sugar.Infof(format, args...)
	}
}

// Warn 记录警告级别的日志
func (l *zapLogger) Warn(format string, args ...interface{}) {
	if l.enabled(WARN) {
		l.sugar.Warnf(format, args...)
	}
}

// Error 记录错误级别的日志
func (l *zapLogger) Error(format string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.sugar.Errorf(format, args...)
	}
}

// SetLevel 设置日志级别
func (l *zapLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// discardLogger is a logger that discards all log output
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
// Used in scenarios where log output is not needed
func NewDiscardLogger() Logger {
	return &discardLogger{}
}

func (d *discardLogger) Debug(format string, args ...interface{}) {}
func (d *discardLogger) Info(format string, args ...interface{})  {}
func (d *discardLogger) Warn(format string, args ...interface{})  {}
func (d *discardLogger) Error(format string, args ...interface{}) {}
func (d *discardLogger) SetLevel(level Level)                     {}

// holder lets loggers of different concrete types share one atomic pointer
type holder struct {
	Logger
}

// Global default logger, safe to replace while other goroutines log
var defaultInstance = atomic.NewPointer(&holder{NewLogger(INFO, os.Stdout)})

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	defaultInstance.Store(&holder{logger})
}

// DiscardDefault replaces the global default logger with a discard logger
func DiscardDefault() {
	SetDefault(NewDiscardLogger())
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	return defaultInstance.Load().Logger
}

// 便捷的全局日志方法

// Debug uses the default logger to record debug information
func Debug(format string, args ...interface{}) {
	GetDefault().Debug(format, args...)
}

// Info uses the default logger to record information
func Info(format string, args ...interface{}) {
	GetDefault().Info(format, args...)
}

// Warn uses the default logger to record warnings
func Warn(format string, args ...interface{}) {
	GetDefault().Warn(format, args...)
}

// Error uses the default logger to record errors
func Error(format string, args ...interface{}) {
	GetDefault().Error(format, args...)
}
