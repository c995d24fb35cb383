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

package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLevel_String 测试日志级别的字符串表示
func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(999), "UNKNOWN"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	logger.Info("window %d of %s", 3, "cpu")
	line := strings.TrimSpace(buf.String())

	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} \[INFO\] window 3 of cpu$`), line)
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level    Level
		expected []string
		absent   []string
	}{
		{DEBUG, []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}, nil},
		{INFO, []string{"[INFO]", "[WARN]", "[ERROR]"}, []string{"[DEBUG]"}},
		{WARN, []string{"[WARN]", "[ERROR]"}, []string{"[DEBUG]", "[INFO]"}},
		{ERROR, []string{"[ERROR]"}, []string{"[DEBUG]", "[INFO]", "[WARN]"}},
		{OFF, nil, []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}},
	}

	for _, test := range tests {
		t.Run(test.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(test.level, &buf)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			output := buf.String()
			for _, s := range test.expected {
				assert.Contains(t, output, s)
			}
			for _, s := range test.absent {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestNewLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ERROR, &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(INFO)
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger.SetLevel(OFF)
	logger.Error("hidden")
	assert.Empty(t, buf.String())
}

func TestNewZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core).Sugar(), WARN)

	logger.Info("dropped")
	logger.Warn("flush failed: %v", "sink closed")
	logger.Error("boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "flush failed: sink closed", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("concurrent message from goroutine %d", id)
			logger.SetLevel(INFO)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "concurrent message"))
}

func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Debug("debug")
		logger.Info("info %d", 1)
		logger.Warn("warn")
		logger.Error("error")
		logger.SetLevel(DEBUG)
	})
}

func TestGlobalLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	testLogger := NewLogger(DEBUG, &buf)
	SetDefault(testLogger)
	assert.Same(t, testLogger, GetDefault())

	Debug("global debug")
	Info("global info")
	Warn("global warn")
	Error("global error")

	output := buf.String()
	for _, s := range []string{"global debug", "global info", "global warn", "global error"} {
		assert.Contains(t, output, s)
	}
}

// TestSetDefaultWhileLogging 替换默认日志器时其他协程仍在记录日志
func TestSetDefaultWhileLogging(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)
	SetDefault(NewDiscardLogger())

	var buf bytes.Buffer
	replacement := NewLogger(INFO, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				Info("worker %d message %d", id, j)
			}
		}(i)
	}
	for i := 0; i < 50; i++ {
		SetDefault(replacement)
		SetDefault(NewDiscardLogger())
	}
	SetDefault(replacement)
	wg.Wait()

	Info("after swap")
	assert.Same(t, replacement, GetDefault())
	assert.Contains(t, buf.String(), "after swap")
}
