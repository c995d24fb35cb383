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

// Package metrics collects index builder statistics, both as in-process
// counters and as prometheus collectors.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// Statistics field constants
const (
	ProcessedCount   = "processed_count"
	FlushedCount     = "flushed_count"
	FilteredCount    = "filtered_count"
	BatchCount       = "batch_count"
	SinkErrorCount   = "sink_error_count"
	FilterErrorCount = "filter_error_count"
	CacheHitCount    = "cache_hit_count"
	CacheMissCount   = "cache_miss_count"
	PendingWindows   = "pending_windows"
)

// StatsCollector statistics information collector
// Provides thread-safe statistics collection functionality
type StatsCollector struct {
	processed    *atomic.Int64
	flushed      *atomic.Int64
	filtered     *atomic.Int64
	batches      *atomic.Int64
	sinkErrors   *atomic.Int64
	filterErrors *atomic.Int64
	cacheHits    *atomic.Int64
	cacheMisses  *atomic.Int64
	pending      *atomic.Int64
}

// NewStatsCollector creates a new statistics collector
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		processed:    atomic.NewInt64(0),
		flushed:      atomic.NewInt64(0),
		filtered:     atomic.NewInt64(0),
		batches:      atomic.NewInt64(0),
		sinkErrors:   atomic.NewInt64(0),
		filterErrors: atomic.NewInt64(0),
		cacheHits:    atomic.NewInt64(0),
		cacheMisses:  atomic.NewInt64(0),
		pending:      atomic.NewInt64(0),
	}
}

func (sc *StatsCollector) IncrementProcessed()    { sc.processed.Inc() }
func (sc *StatsCollector) AddFlushed(n int)       { sc.flushed.Add(int64(n)) }
func (sc *StatsCollector) AddFiltered(n int)      { sc.filtered.Add(int64(n)) }
func (sc *StatsCollector) IncrementBatches()      { sc.batches.Inc() }
func (sc *StatsCollector) IncrementSinkErrors()   { sc.sinkErrors.Inc() }
func (sc *StatsCollector) IncrementFilterErrors() { sc.filterErrors.Inc() }
func (sc *StatsCollector) IncrementCacheHits()    { sc.cacheHits.Inc() }
func (sc *StatsCollector) IncrementCacheMisses()  { sc.cacheMisses.Inc() }
func (sc *StatsCollector) SetPending(n int)       { sc.pending.Store(int64(n)) }

// Reset resets statistics information
func (sc *StatsCollector) Reset() {
	sc.processed.Store(0)
	sc.flushed.Store(0)
	sc.filtered.Store(0)
	sc.batches.Store(0)
	sc.sinkErrors.Store(0)
	sc.filterErrors.Store(0)
	sc.cacheHits.Store(0)
	sc.cacheMisses.Store(0)
	sc.pending.Store(0)
}

// GetStats gets a snapshot of all counters
func (sc *StatsCollector) GetStats() map[string]int64 {
	return map[string]int64{
		ProcessedCount:   sc.processed.Load(),
		FlushedCount:     sc.flushed.Load(),
		FilteredCount:    sc.filtered.Load(),
		BatchCount:       sc.batches.Load(),
		SinkErrorCount:   sc.sinkErrors.Load(),
		FilterErrorCount: sc.filterErrors.Load(),
		CacheHitCount:    sc.cacheHits.Load(),
		CacheMissCount:   sc.cacheMisses.Load(),
		PendingWindows:   sc.pending.Load(),
	}
}

// CacheHitRate returns hits / (hits + misses) in percent, 0 without lookups
func (sc *StatsCollector) CacheHitRate() float64 {
	hits, misses := sc.cacheHits.Load(), sc.cacheMisses.Load()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}

const (
	Namespace   = "tsindex"
	LabelSeries = "series"
)

// Metrics holds the prometheus collectors of one series
type Metrics struct {
	WindowsProcessed prometheus.Counter
	WindowsFlushed   prometheus.Counter
	WindowsFiltered  prometheus.Counter
	SinkErrors       prometheus.Counter
	PendingWindows   prometheus.Gauge
}

// NewMetrics registers the collectors on reg, reusing collectors another
// series already registered, and returns the ones labeled with series.
func NewMetrics(reg prometheus.Registerer, series string) (*Metrics, error) {
	processed, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "windows_processed_total",
		Help:      "Total number of sliding windows produced",
	}, []string{LabelSeries}))
	if err != nil {
		return nil, err
	}
	flushed, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "windows_flushed_total",
		Help:      "Total number of window features handed to the sink",
	}, []string{LabelSeries}))
	if err != nil {
		return nil, err
	}
	filtered, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "windows_filtered_total",
		Help:      "Total number of window features rejected by the filter",
	}, []string{LabelSeries}))
	if err != nil {
		return nil, err
	}
	sinkErrors, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "sink_errors_total",
		Help:      "Total number of failed sink calls",
	}, []string{LabelSeries}))
	if err != nil {
		return nil, err
	}
	pending, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "pending_windows",
		Help:      "Windows produced but not yet flushed",
	}, []string{LabelSeries}))
	if err != nil {
		return nil, err
	}
	return &Metrics{
		WindowsProcessed: processed.WithLabelValues(series),
		WindowsFlushed:   flushed.WithLabelValues(series),
		WindowsFiltered:  filtered.WithLabelValues(series),
		SinkErrors:       sinkErrors.WithLabelValues(series),
		PendingWindows:   pending.WithLabelValues(series),
	}, nil
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerGaugeVec(reg prometheus.Registerer, g *prometheus.GaugeVec) (*prometheus.GaugeVec, error) {
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return g, nil
}
