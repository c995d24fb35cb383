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

// Package source defines the read interface the preprocessor consumes and
// provides fixed and growing in-memory time-value series behind it.
package source

import (
	"sort"

	"github.com/rulego/tsindex/types"
)

// Source is a read-only view over an ordered time-value sequence.
// Timestamps are non-decreasing with the index.
type Source interface {
	// TimeAt returns the timestamp of the element at index i
	TimeAt(i int) int64
	// LastTime returns the timestamp of the last element
	LastTime() int64
	// Size returns the current number of elements
	Size() int
}

// Series is a Source that also exposes the values, so raw window
// contents can be read back for exact distance computation.
type Series interface {
	Source
	ValueAt(i int) float64
}

// Appendable marks a source that may grow between processing calls.
type Appendable interface {
	Source
	Append(t int64, v float64) error
}

// IsVariable reports whether src may grow after construction
func IsVariable(src Source) bool {
	_, ok := src.(Appendable)
	return ok
}

// SearchTime returns the smallest index whose timestamp is >= t, or
// src.Size() when no such element exists.
func SearchTime(src Source, t int64) int {
	return sort.Search(src.Size(), func(i int) bool {
		return src.TimeAt(i) >= t
	})
}

// ReadValues copies the values in [start, end) out of s
func ReadValues(s Series, start, end int) ([]float64, error) {
	size := s.Size()
	if start < 0 || end > size || start > end {
		return nil, types.NewError(types.ErrorTypeIndexOutOfRange, "range [%d, %d) out of range [0, %d)", start, end, size)
	}
	res := make([]float64, end-start)
	for i := start; i < end; i++ {
		res[i-start] = s.ValueAt(i)
	}
	return res, nil
}

func checkOrder(prev, t int64, idx int) error {
	if t < prev {
		return types.NewError(types.ErrorTypeInvalidConfiguration, "timestamp %d at index %d is before previous timestamp %d", t, idx, prev)
	}
	return nil
}
