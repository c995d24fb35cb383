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

package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCollector(t *testing.T) {
	sc := NewStatsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sc.IncrementProcessed()
			}
		}()
	}
	wg.Wait()

	sc.AddFlushed(30)
	sc.AddFiltered(5)
	sc.IncrementBatches()
	sc.IncrementSinkErrors()
	sc.IncrementFilterErrors()
	sc.IncrementCacheHits()
	sc.IncrementCacheHits()
	sc.IncrementCacheHits()
	sc.IncrementCacheMisses()
	sc.SetPending(12)

	stats := sc.GetStats()
	assert.Equal(t, int64(800), stats[ProcessedCount])
	assert.Equal(t, int64(30), stats[FlushedCount])
	assert.Equal(t, int64(5), stats[FilteredCount])
	assert.Equal(t, int64(1), stats[BatchCount])
	assert.Equal(t, int64(1), stats[SinkErrorCount])
	assert.Equal(t, int64(1), stats[FilterErrorCount])
	assert.Equal(t, int64(12), stats[PendingWindows])
	assert.InDelta(t, 75.0, sc.CacheHitRate(), 0.001)

	sc.Reset()
	for name, v := range sc.GetStats() {
		assert.Zero(t, v, name)
	}
	assert.Zero(t, sc.CacheHitRate())
}

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	cpu, err := NewMetrics(reg, "cpu")
	require.NoError(t, err)
	memory, err := NewMetrics(reg, "memory")
	require.NoError(t, err, "a second series reuses the registered collectors")

	cpu.WindowsProcessed.Add(3)
	memory.WindowsProcessed.Inc()
	cpu.PendingWindows.Set(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(cpu.WindowsProcessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(memory.WindowsProcessed))
	assert.Equal(t, 2.0, testutil.ToFloat64(cpu.PendingWindows))

	again, err := NewMetrics(reg, "cpu")
	require.NoError(t, err)
	again.WindowsProcessed.Inc()
	assert.Equal(t, 4.0, testutil.ToFloat64(cpu.WindowsProcessed))

	count, err := testutil.GatherAndCount(reg, "tsindex_windows_processed_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetricsConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "windows_processed_total",
		Help:      "conflicting collector",
	}))
	_, err := NewMetrics(reg, "cpu")
	assert.Error(t, err)
}
