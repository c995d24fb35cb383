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
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/rulego/tsindex/condition"
	"github.com/rulego/tsindex/logger"
	"github.com/rulego/tsindex/metrics"
	"github.com/rulego/tsindex/preprocess"
	"github.com/rulego/tsindex/source"
	"github.com/rulego/tsindex/types"
	"github.com/rulego/tsindex/utils/table"
)

// Feature 一个窗口的索引特征：标识符和窗口在序列中的起始下标
type Feature struct {
	Identifier types.Identifier `json:"identifier"`
	Offset     int64            `json:"offset"`
}

// Row 返回特征的表格行，字段与过滤表达式的变量一致
func (f Feature) Row() map[string]interface{} {
	return condition.Fields(f.Identifier, f.Offset)
}

// Key 返回特征的 64 位键，同一序列中不同窗口的键不同，可作为 Sink 写入时的幂等键
func (f Feature) Key() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], f.Identifier.Hash())
	binary.LittleEndian.PutUint64(buf[8:16], uint64(f.Offset))
	return xxhash.Sum64(buf[:])
}

// featureColumns 输出特征表格时的列顺序
var featureColumns = []string{
	condition.VarOffset,
	condition.VarStartTime,
	condition.VarEndTime,
	condition.VarWindowLength,
	condition.VarDuration,
}

// WriteFeatures 以表格形式输出特征
func WriteFeatures(w io.Writer, features []Feature) error {
	rows := make([]map[string]interface{}, len(features))
	for i, f := range features {
		rows[i] = f.Row()
	}
	return table.Write(w, rows, featureColumns)
}

// Sink 接收一批通过过滤的窗口特征。
// 返回错误时本批次不会被清除，下次 Drain 会重新投递。
type Sink func(ctx context.Context, features []Feature) error

// cachedWindow 缓存的窗口原始值，命中时核对位置以排除键冲突
type cachedWindow struct {
	offset int64
	length int32
	values []float64
}

// Builder 驱动一个序列的滑动窗口预处理，并把窗口特征分批交给 Sink。
// 所有对预处理器的访问都在同一把锁下进行。
type Builder struct {
	mu sync.Mutex

	cfg    types.Config
	series source.Series
	pre    *preprocess.SlidingPreprocessor
	filter *condition.ExprCondition
	sink   Sink

	// 已产生但尚未成功投递的窗口数
	pending int

	cache      *lru.Cache[uint64, cachedWindow]
	stats      *metrics.StatsCollector
	metrics    *metrics.Metrics
	registerer prometheus.Registerer

	cron    *cron.Cron
	running bool

	// 构建成功后执行的全局设置
	created []func()
}

// New 为 series 创建索引构建器。
// cfg 先经过 opts 修改，再整体校验。
//
// 示例:
//
//	src := source.NewRange(1000, 0, 10)
//	cfg := types.NewConfig()
//	cfg.Policy = types.DefaultWindowPolicy(32)
//	b, err := tsindex.New(src, cfg, tsindex.WithSink(func(ctx context.Context, fs []tsindex.Feature) error {
//		return store.Save(ctx, fs)
//	}))
//	if err != nil {
//		return err
//	}
//	n, err := b.Drain(ctx)
func New(series source.Series, cfg types.Config, opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg:        cfg,
		series:     series,
		stats:      metrics.NewStatsCollector(),
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(b)
	}
	if series == nil {
		return nil, types.NewError(types.ErrorTypeInvalidConfiguration, "series must not be nil")
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	pre, err := preprocess.New(series, b.cfg.Policy)
	if err != nil {
		return nil, err
	}
	b.pre = pre

	if b.cfg.Filter != "" {
		b.filter, err = condition.NewExprCondition(b.cfg.Filter)
		if err != nil {
			return nil, err
		}
	}
	if b.cfg.FlushSchedule != "" {
		if _, err := cron.ParseStandard(b.cfg.FlushSchedule); err != nil {
			return nil, types.WrapError(types.ErrorTypeInvalidConfiguration, err, "invalid flush schedule %q", b.cfg.FlushSchedule)
		}
	}
	if b.cfg.CacheSize > 0 {
		b.cache, err = lru.New[uint64, cachedWindow](b.cfg.CacheSize)
		if err != nil {
			return nil, types.WrapError(types.ErrorTypeInvalidConfiguration, err, "create value cache")
		}
	}
	if b.registerer == nil {
		b.registerer = prometheus.NewRegistry()
	}
	b.metrics, err = metrics.NewMetrics(b.registerer, b.cfg.Series)
	if err != nil {
		return nil, fmt.Errorf("register metrics of series %s: %w", b.cfg.Series, err)
	}

	for _, fn := range b.created {
		fn()
	}
	b.created = nil

	logger.Info("index builder for series %s created: type=%s range=%d step=%d batch=%d",
		b.cfg.Series, b.cfg.Policy.Type, b.cfg.Policy.WindowRange, b.cfg.Policy.SlideStep, b.cfg.BatchSize)
	return b, nil
}

func (b *Builder) onCreated(fn func()) {
	b.created = append(b.created, fn)
}

// Drain 处理当前所有可用窗口，每 BatchSize 个窗口及结束时投递一次。
// 返回本次调用新产生的窗口数。ctx 在窗口之间检查。
func (b *Builder) Drain(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	produced := 0
	for b.pre.HasNext() {
		if err := ctx.Err(); err != nil {
			return produced, err
		}
		if err := b.pre.ProcessNext(); err != nil {
			return produced, err
		}
		produced++
		b.pending++
		b.stats.IncrementProcessed()
		b.metrics.WindowsProcessed.Inc()

		if b.pending >= b.cfg.BatchSize {
			if err := b.flushLocked(ctx); err != nil {
				return produced, err
			}
		}
	}
	if b.pending > 0 {
		if err := b.flushLocked(ctx); err != nil {
			return produced, err
		}
	}
	return produced, nil
}

func (b *Builder) flushLocked(ctx context.Context) error {
	defer b.updatePending()

	features := b.latestLocked(b.pending)
	kept := features[:0]
	for _, f := range features {
		if b.filter == nil {
			kept = append(kept, f)
			continue
		}
		ok, err := b.filter.Match(f.Identifier, f.Offset)
		if err != nil {
			b.stats.IncrementFilterErrors()
			logger.Warn("filter %s failed on window %s: %v", b.filter, f.Identifier, err)
			continue
		}
		if ok {
			kept = append(kept, f)
		}
	}
	filtered := len(features) - len(kept)

	if b.sink != nil && len(kept) > 0 {
		if err := b.sink(ctx, kept); err != nil {
			b.stats.IncrementSinkErrors()
			b.metrics.SinkErrors.Inc()
			logger.Error("sink of series %s failed on %d windows: %v", b.cfg.Series, len(kept), err)
			return fmt.Errorf("flush %d windows of series %s: %w", len(kept), b.cfg.Series, err)
		}
	}

	b.pre.Clear()
	b.pending = 0
	b.stats.IncrementBatches()
	b.stats.AddFlushed(len(kept))
	b.stats.AddFiltered(filtered)
	b.metrics.WindowsFlushed.Add(float64(len(kept)))
	b.metrics.WindowsFiltered.Add(float64(filtered))
	logger.Debug("series %s flushed %d windows, %d filtered", b.cfg.Series, len(kept), filtered)
	return nil
}

func (b *Builder) updatePending() {
	b.stats.SetPending(b.pending)
	b.metrics.PendingWindows.Set(float64(b.pending))
}

// latestLocked pairs the latest identifiers with their offsets, newest last.
// After a clear the stored identifiers can be fewer than the offsets, so both are aligned at the tail.
func (b *Builder) latestLocked(n int) []Feature {
	ids := b.pre.LatestIdentifiers(n)
	offsets := b.pre.LatestAlignedOffsets(n)
	m := min(len(ids), len(offsets))
	ids = ids[len(ids)-m:]
	offsets = offsets[len(offsets)-m:]

	features := make([]Feature, m)
	for i := range features {
		features[i] = Feature{Identifier: ids[i], Offset: offsets[i]}
	}
	return features
}

// Latest 返回最近 n 个窗口的特征，按时间正序
func (b *Builder) Latest(n int) ([]Feature, error) {
	if n < 0 {
		return nil, types.NewError(types.ErrorTypeIndexOutOfRange, "n must not be negative, got: %d", n)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latestLocked(n), nil
}

// WindowValues 返回特征对应窗口的原始值。
// 结果会被缓存，调用方不应修改返回的切片。
func (b *Builder) WindowValues(f Feature) ([]float64, error) {
	key := f.Key()
	if b.cache != nil {
		if w, ok := b.cache.Get(key); ok && w.offset == f.Offset && w.length == f.Identifier.WindowLength {
			b.stats.IncrementCacheHits()
			return w.values, nil
		}
		b.stats.IncrementCacheMisses()
	}
	start := int(f.Offset)
	values, err := source.ReadValues(b.series, start, start+int(f.Identifier.WindowLength))
	if err != nil {
		return nil, err
	}
	if b.cache != nil {
		b.cache.Add(key, cachedWindow{offset: f.Offset, length: f.Identifier.WindowLength, values: values})
	}
	return values, nil
}

// Start 按 FlushSchedule 周期性执行 Drain。未配置调度时什么也不做。
func (b *Builder) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cfg.FlushSchedule == "" || b.running {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(b.cfg.FlushSchedule, b.scheduledDrain); err != nil {
		return types.WrapError(types.ErrorTypeInvalidConfiguration, err, "invalid flush schedule %q", b.cfg.FlushSchedule)
	}
	c.Start()
	b.cron = c
	b.running = true
	logger.Info("series %s scheduled drain started: %s", b.cfg.Series, b.cfg.FlushSchedule)
	return nil
}

func (b *Builder) scheduledDrain() {
	n, err := b.Drain(context.Background())
	if err != nil {
		logger.Error("scheduled drain of series %s failed after %d windows: %v", b.cfg.Series, n, err)
		return
	}
	if n > 0 {
		logger.Debug("scheduled drain of series %s produced %d windows", b.cfg.Series, n)
	}
}

// Stop 停止调度并等待正在执行的 Drain 结束
func (b *Builder) Stop() {
	b.mu.Lock()
	c := b.cron
	b.cron = nil
	b.running = false
	b.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	logger.Info("series %s scheduled drain stopped", b.cfg.Series)
}

// Stats 返回构建器的统计信息
func (b *Builder) Stats() map[string]int64 {
	return b.stats.GetStats()
}

// Config 返回生效的配置
func (b *Builder) Config() types.Config {
	return b.cfg
}

// Pending 返回已产生但尚未投递的窗口数
func (b *Builder) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Processed 返回已产生的窗口总数
func (b *Builder) Processed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pre.ProcessedCount()
}
