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
	"math"

	"github.com/rulego/tsindex/logger"
	"github.com/rulego/tsindex/source"
	"github.com/rulego/tsindex/types"
	"github.com/rulego/tsindex/utils/primitive"
)

// Preprocessor advances a sliding window over a source and produces an
// identifier and an aligned offset for every window position.
type Preprocessor interface {
	// HasNext reports whether another full window is available
	HasNext() bool
	// ProcessNext produces the next window, or fails with types.ErrNoMoreWindows
	ProcessNext() error
	// LatestIdentifiers returns up to n identifiers of the most recent windows, oldest first
	LatestIdentifiers(n int) []types.Identifier
	// LatestAlignedOffsets returns up to n aligned offsets of the most recent windows, oldest first
	LatestAlignedOffsets(n int) []int64
	// Clear releases stored identifiers without rewinding the cursor
	Clear()
	// Source returns the underlying accessor
	Source() source.Source
}

var _ Preprocessor = (*SlidingPreprocessor)(nil)

// SlidingPreprocessor is the Preprocessor for both window types.
// It has a single writer: HasNext, ProcessNext and Clear must not run
// concurrently with each other or with the Latest* queries.
type SlidingPreprocessor struct {
	src      source.Source
	policy   types.WindowPolicy
	bound    boundary
	variable bool

	// index of the last produced window, -1 before the first one
	currentProcessedIdx int
	// number of windows in a fixed source, -1 for a variable one
	totalProcessedCount int
	// position in src of the first element of the current window
	currentStartTimeIdx int
	currentStartTime    int64
	currentEndTime      int64

	identifiers identifierStore
	aligned     *primitive.Int32Array
}

// New creates a preprocessor over src. The preprocessor does not own src;
// src must outlive it.
func New(src source.Source, policy types.WindowPolicy) (*SlidingPreprocessor, error) {
	if src == nil {
		return nil, types.NewError(types.ErrorTypeInvalidConfiguration, "source cannot be nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if src.Size() == 0 {
		return nil, types.NewError(types.ErrorTypeEmptySource, "cannot build %s windows over an empty source", policy.Type)
	}
	variable := source.IsVariable(src)
	bound, err := newBoundary(policy, variable)
	if err != nil {
		return nil, err
	}
	if err := bound.validate(src); err != nil {
		return nil, err
	}

	p := &SlidingPreprocessor{
		src:                 src,
		policy:              policy,
		bound:               bound,
		variable:            variable,
		currentProcessedIdx: -1,
		totalProcessedCount: -1,
		currentStartTimeIdx: -int(policy.SlideStep),
	}
	capacity := 0
	if !p.variable {
		p.totalProcessedCount = bound.total(src)
		capacity = p.totalProcessedCount
	}
	if policy.StoreIdentifier {
		p.identifiers = newMaterializedStore(capacity)
	} else {
		p.identifiers = derivedStore{}
	}
	if policy.StoreAligned {
		p.aligned = primitive.NewInt32Array(capacity)
	}

	logger.Debug("created %s preprocessor: range=%d step=%d variable=%v windows=%d",
		policy.Type, policy.WindowRange, policy.SlideStep, p.variable, p.totalProcessedCount)
	return p, nil
}

// NewCountFixed creates a preprocessor whose range and step are element counts
func NewCountFixed(src source.Source, windowRange, slideStep int32, storeIdentifier, storeAligned bool) (*SlidingPreprocessor, error) {
	return New(src, types.WindowPolicy{
		Type:            types.CountFixed,
		WindowRange:     windowRange,
		SlideStep:       slideStep,
		StoreIdentifier: storeIdentifier,
		StoreAligned:    storeAligned,
	})
}

// NewTimeFixed creates a preprocessor whose range and step are time units
func NewTimeFixed(src source.Source, windowRange, slideStep int32, storeIdentifier, storeAligned bool) (*SlidingPreprocessor, error) {
	return New(src, types.WindowPolicy{
		Type:            types.TimeFixed,
		WindowRange:     windowRange,
		SlideStep:       slideStep,
		StoreIdentifier: storeIdentifier,
		StoreAligned:    storeAligned,
	})
}

func (p *SlidingPreprocessor) HasNext() bool {
	if p.variable {
		_, _, ok := p.bound.window(p.src, p.currentProcessedIdx+1)
		return ok
	}
	return p.currentProcessedIdx+1 < p.totalProcessedCount
}

func (p *SlidingPreprocessor) ProcessNext() error {
	if !p.HasNext() {
		return types.NewError(types.ErrorTypeNoMoreWindows, "%d windows already produced", p.currentProcessedIdx+1)
	}
	start, end, _ := p.bound.window(p.src, p.currentProcessedIdx+1)
	if p.aligned != nil && start > math.MaxInt32 {
		return types.NewError(types.ErrorTypeIndexOutOfRange, "aligned offset %d exceeds int32 storage", start)
	}
	id := p.identifierOf(start, end)

	p.currentProcessedIdx++
	p.currentStartTimeIdx = start
	p.currentStartTime = id.StartTime
	p.currentEndTime = id.EndTime

	p.bound.advance(start)
	p.identifiers.record(id)
	if p.aligned != nil {
		p.aligned.Append(int32(start))
	}
	return nil
}

// identifierOf builds the identifier of the window [start, end).
// A window ending exactly at the end of a fixed source takes the last timestamp as its end time.
func (p *SlidingPreprocessor) identifierOf(start, end int) types.Identifier {
	var endTime int64
	if end < p.src.Size() {
		endTime = p.src.TimeAt(end)
	} else {
		endTime = p.src.LastTime()
	}
	return types.NewIdentifier(p.src.TimeAt(start), endTime, p.bound.length(start, end))
}

func (p *SlidingPreprocessor) LatestIdentifiers(n int) []types.Identifier {
	return p.identifiers.latest(p, n)
}

// LatestAlignedOffsets is always derived from the cursor, whether or not
// aligned storage is enabled.
func (p *SlidingPreprocessor) LatestAlignedOffsets(n int) []int64 {
	if n <= 0 || p.currentProcessedIdx < 0 {
		return []int64{}
	}
	count := min(n, p.currentProcessedIdx+1)
	res := make([]int64, count)
	for i := 0; i < count; i++ {
		k := p.currentProcessedIdx - (count - 1) + i
		start, _, _ := p.bound.window(p.src, k)
		res[i] = int64(start)
	}
	return res
}

// Clear empties identifier storage. The cursor and aligned storage are untouched.
func (p *SlidingPreprocessor) Clear() {
	p.identifiers.clear()
	logger.Debug("cleared identifiers of %s preprocessor at window %d", p.policy.Type, p.currentProcessedIdx)
}

func (p *SlidingPreprocessor) Source() source.Source {
	return p.src
}

func (p *SlidingPreprocessor) Policy() types.WindowPolicy {
	return p.policy
}

// ProcessedCount returns how many windows have been produced
func (p *SlidingPreprocessor) ProcessedCount() int {
	return p.currentProcessedIdx + 1
}

// TotalCount returns the number of windows of a fixed source, or -1 for a variable one
func (p *SlidingPreprocessor) TotalCount() int {
	return p.totalProcessedCount
}

// Current returns the identifier and aligned offset of the last produced window.
// ok is false before the first ProcessNext.
func (p *SlidingPreprocessor) Current() (id types.Identifier, offset int, ok bool) {
	if p.currentProcessedIdx < 0 {
		return types.Identifier{}, 0, false
	}
	start, end, _ := p.bound.window(p.src, p.currentProcessedIdx)
	return types.NewIdentifier(p.currentStartTime, p.currentEndTime, p.bound.length(start, end)), p.currentStartTimeIdx, true
}

// StoredIdentifierLen returns how many identifiers are held in storage
func (p *SlidingPreprocessor) StoredIdentifierLen() int {
	return p.identifiers.len()
}

// StoredAligned exposes the aligned offsets recorded so far, or nil when
// aligned storage is disabled. Callers must not modify it.
// Offsets are stored as int32: with aligned storage enabled, ProcessNext fails
// with IndexOutOfRange for a window starting past math.MaxInt32.
func (p *SlidingPreprocessor) StoredAligned() *primitive.Int32Array {
	return p.aligned
}
