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

package preprocess

import (
	"github.com/rulego/tsindex/source"
	"github.com/rulego/tsindex/types"
	"github.com/rulego/tsindex/utils/primitive"
)

// boundary supplies the window layout for one WindowType.
// Windows are numbered from 0; window k spans source elements [start, end).
type boundary interface {
	// window locates window k. ok is false when the window does not fully fit in src.
	window(src source.Source, k int) (start, end int, ok bool)
	// total is the number of windows that fit in src as it is now
	total(src source.Source) int
	// length is the WindowLength recorded in the identifier of [start, end)
	length(start, end int) int32
	// validate checks the layout against the source at construction time
	validate(src source.Source) error
	// advance records that the window starting at start has been produced
	advance(start int)
}

// newBoundary picks the layout for policy. For a growing source a window only
// counts once the element one past its end exists, so its identifier never changes.
func newBoundary(policy types.WindowPolicy, variable bool) (boundary, error) {
	switch policy.Type {
	case types.CountFixed:
		return &countBoundary{
			windowRange: int(policy.WindowRange),
			slideStep:   int(policy.SlideStep),
			closed:      variable,
		}, nil
	case types.TimeFixed:
		return &timeBoundary{
			windowRange: int64(policy.WindowRange),
			slideStep:   int64(policy.SlideStep),
			starts:      primitive.NewInt64Array(0),
		}, nil
	default:
		return nil, types.NewError(types.ErrorTypeInvalidConfiguration, "unsupported window type: %s", policy.Type)
	}
}

// countBoundary places window k at element k*slideStep, windowRange elements wide.
type countBoundary struct {
	windowRange int
	slideStep   int
	// closed requires the end element to exist
	closed bool
}

func (b *countBoundary) window(src source.Source, k int) (int, int, bool) {
	start := k * b.slideStep
	end := start + b.windowRange
	if b.closed {
		return start, end, k >= 0 && end < src.Size()
	}
	return start, end, k >= 0 && end <= src.Size()
}

func (b *countBoundary) total(src source.Source) int {
	size := src.Size()
	if b.closed {
		size--
	}
	if size < b.windowRange {
		return 0
	}
	return (size-b.windowRange)/b.slideStep + 1
}

func (b *countBoundary) advance(int) {}

func (b *countBoundary) length(_, _ int) int32 {
	return int32(b.windowRange)
}

func (b *countBoundary) validate(src source.Source) error {
	if size := src.Size(); b.windowRange > size {
		return types.NewError(types.ErrorTypeInvalidConfiguration, "window range %d exceeds source size %d", b.windowRange, size)
	}
	return nil
}

// timeBoundary measures range and step in time units. The first window starts
// at element 0. A window's end element is the first whose timestamp is at least
// windowRange past the window's start time, and the next window starts at the
// first element at least slideStep past it. A window fits once its end element
// exists, after which later points cannot move either element.
//
// Starts depend on every previous window, so the starts of produced windows are
// kept to answer window(k) without replaying from element 0.
type timeBoundary struct {
	windowRange int64
	slideStep   int64
	starts      *primitive.Int64Array
}

func (b *timeBoundary) window(src source.Source, k int) (int, int, bool) {
	if k < 0 {
		return 0, 0, false
	}
	size := src.Size()
	var start, from int
	if n := b.starts.Len(); k < n {
		start, from = int(b.starts.MustGet(k)), k
	} else if n > 0 {
		start, from = int(b.starts.MustGet(n-1)), n-1
	}
	for ; from < k && start < size; from++ {
		start = b.next(src, start)
	}
	if start >= size {
		return 0, 0, false
	}
	end := b.end(src, start)
	return start, end, end < size
}

func (b *timeBoundary) advance(start int) {
	b.starts.Append(int64(start))
}

// end finds the end element of the window starting at start
func (b *timeBoundary) end(src source.Source, start int) int {
	return source.SearchTime(src, src.TimeAt(start)+b.windowRange)
}

// next finds the start of the window after the one starting at start
func (b *timeBoundary) next(src source.Source, start int) int {
	return source.SearchTime(src, src.TimeAt(start)+b.slideStep)
}

func (b *timeBoundary) total(src source.Source) int {
	size := src.Size()
	count := 0
	for start := 0; start < size && b.end(src, start) < size; start = b.next(src, start) {
		count++
	}
	return count
}

func (b *timeBoundary) length(start, end int) int32 {
	return int32(end - start)
}

func (b *timeBoundary) validate(src source.Source) error {
	if span := src.LastTime() - src.TimeAt(0); b.windowRange > span {
		return types.NewError(types.ErrorTypeInvalidConfiguration, "window range %d exceeds source time span %d", b.windowRange, span)
	}
	return nil
}
