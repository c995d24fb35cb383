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

package source

import (
	"github.com/rulego/tsindex/types"
)

var _ Series = (*Fixed)(nil)

// Fixed is an immutable series whose size is known at construction.
type Fixed struct {
	times  []int64
	values []float64
}

// NewFixed copies times and values into a new Fixed series.
// values may be nil, in which case every value reads as zero.
func NewFixed(times []int64, values []float64) (*Fixed, error) {
	if values != nil && len(values) != len(times) {
		return nil, types.NewError(types.ErrorTypeInvalidConfiguration, "got %d timestamps but %d values", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if err := checkOrder(times[i-1], times[i], i); err != nil {
			return nil, err
		}
	}
	f := &Fixed{
		times:  make([]int64, len(times)),
		values: make([]float64, len(times)),
	}
	copy(f.times, times)
	copy(f.values, values)
	return f, nil
}

// NewRange creates a fixed series of n points with timestamps start, start+interval, ...
// and values equal to their index.
func NewRange(n int, start, interval int64) *Fixed {
	f := &Fixed{
		times:  make([]int64, n),
		values: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		f.times[i] = start + int64(i)*interval
		f.values[i] = float64(i)
	}
	return f
}

func (f *Fixed) TimeAt(i int) int64 {
	return f.times[i]
}

func (f *Fixed) ValueAt(i int) float64 {
	return f.values[i]
}

func (f *Fixed) LastTime() int64 {
	if len(f.times) == 0 {
		return 0
	}
	return f.times[len(f.times)-1]
}

func (f *Fixed) Size() int {
	return len(f.times)
}
