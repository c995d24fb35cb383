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

package tsindex

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rulego/tsindex/logger"
	"github.com/rulego/tsindex/types"
)

// Option 表示对 Builder 默认行为的修改配置。
// 选项在配置校验之前应用，因此可以覆盖 Config 中的字段。
// 日志相关选项修改全局日志器，只在 New 成功时按顺序生效。
type Option func(*Builder)

// WithLogger 设置自定义日志记录器。
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	b, err := tsindex.New(src, cfg, WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(b *Builder) {
		b.onCreated(func() { logger.SetDefault(log) })
	}
}

// WithLogLevel 设置日志级别，可选值：DEBUG, INFO, WARN, ERROR, OFF
func WithLogLevel(level logger.Level) Option {
	return func(b *Builder) {
		b.onCreated(func() { logger.GetDefault().SetLevel(level) })
	}
}

// WithLogOutput 设置日志输出目标。
//
// 示例:
//
//	logFile, _ := os.OpenFile("tsindex.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	b, err := tsindex.New(src, cfg, WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(b *Builder) {
		b.onCreated(func() { logger.SetDefault(logger.NewLogger(level, output)) })
	}
}

// WithDiscardLog 禁用所有日志输出
func WithDiscardLog() Option {
	return func(b *Builder) {
		b.onCreated(logger.DiscardDefault)
	}
}

// WithSink 设置窗口特征的接收者。未设置时特征在投递时被丢弃。
func WithSink(sink Sink) Option {
	return func(b *Builder) {
		b.sink = sink
	}
}

// WithPolicy 覆盖配置中的窗口策略
func WithPolicy(policy types.WindowPolicy) Option {
	return func(b *Builder) {
		b.cfg.Policy = policy
	}
}

// WithFilter 设置窗口过滤表达式，例如 `windowLength >= 3 && duration < 60`。
// 可用变量：startTime, endTime, windowLength, duration, offset。
func WithFilter(expression string) Option {
	return func(b *Builder) {
		b.cfg.Filter = expression
	}
}

// WithBatchSize 设置每次投递的窗口数
func WithBatchSize(size int) Option {
	return func(b *Builder) {
		b.cfg.BatchSize = size
	}
}

// WithCacheSize 设置窗口原始值缓存的条目数，0 表示不缓存
func WithCacheSize(size int) Option {
	return func(b *Builder) {
		b.cfg.CacheSize = size
	}
}

// WithFlushSchedule 设置定时 Drain 的 cron 表达式，例如 "@every 30s" 或 "*/5 * * * *"
func WithFlushSchedule(schedule string) Option {
	return func(b *Builder) {
		b.cfg.FlushSchedule = schedule
	}
}

// WithRegisterer 设置 prometheus 指标注册器，默认为 prometheus.DefaultRegisterer
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(b *Builder) {
		b.registerer = reg
	}
}
