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

// Package primitive provides append-only, densely packed numeric buffers
// used to accumulate derived values without per-element boxing.
package primitive

import (
	"github.com/rulego/tsindex/types"
)

// Integer is the element kind an Array can hold
type Integer interface {
	~int32 | ~int64
}

const defaultCapacity = 32

// Array is an append-only growable buffer of a single integer width.
// It is not safe for concurrent mutation.
type Array[T Integer] struct {
	data []T
}

type (
	Int64Array = Array[int64]
	Int32Array = Array[int32]
)

// NewArray 创建指定初始容量的数组
func NewArray[T Integer](capacity int) *Array[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Array[T]{data: make([]T, 0, capacity)}
}

func NewInt64Array(capacity int) *Int64Array {
	return NewArray[int64](capacity)
}

func NewInt32Array(capacity int) *Int32Array {
	return NewArray[int32](capacity)
}

// Append 向尾部添加一个元素
func (a *Array[T]) Append(v T) {
	a.data = append(a.data, v)
}

// Get returns the element at i or an IndexOutOfRange error
func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(a.data) {
		var zero T
		return zero, types.NewError(types.ErrorTypeIndexOutOfRange, "index %d out of range [0, %d)", i, len(a.data))
	}
	return a.data[i], nil
}

// MustGet is Get for callers that already checked the bounds.
// An out of range index means an invariant was broken elsewhere, so it panics.
func (a *Array[T]) MustGet(i int) T {
	v, err := a.Get(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Len 返回元素个数
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Cap 返回当前容量
func (a *Array[T]) Cap() int {
	return cap(a.data)
}

// Clear resets the length to zero and keeps the backing capacity for reuse
func (a *Array[T]) Clear() {
	a.data = a.data[:0]
}

// Tail returns a copy of the last n elements in insertion order
func (a *Array[T]) Tail(n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(a.data) {
		n = len(a.data)
	}
	res := make([]T, n)
	copy(res, a.data[len(a.data)-n:])
	return res
}
