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
	"sync"
)

var (
	_ Series     = (*Variable)(nil)
	_ Appendable = (*Variable)(nil)
)

// Variable is an append-only series that an ingest goroutine may grow while
// a preprocessor reads it. Elements below Size() never change once visible.
type Variable struct {
	mu     sync.RWMutex
	times  []int64
	values []float64
}

// NewVariable creates an empty series with the given initial capacity
func NewVariable(capacity int) *Variable {
	return &Variable{
		times:  make([]int64, 0, capacity),
		values: make([]float64, 0, capacity),
	}
}

// Append adds a point. Timestamps must not go backwards.
func (v *Variable) Append(t int64, value float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n := len(v.times); n > 0 {
		if err := checkOrder(v.times[n-1], t, n); err != nil {
			return err
		}
	}
	v.times = append(v.times, t)
	v.values = append(v.values, value)
	return nil
}

func (v *Variable) TimeAt(i int) int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.times[i]
}

func (v *Variable) ValueAt(i int) float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.values[i]
}

func (v *Variable) LastTime() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if len(v.times) == 0 {
		return 0
	}
	return v.times[len(v.times)-1]
}

func (v *Variable) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.times)
}
