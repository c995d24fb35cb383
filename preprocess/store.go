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
	"slices"

	"github.com/rulego/tsindex/types"
	"github.com/rulego/tsindex/utils/primitive"
)

// identifierStore is how a preprocessor answers LatestIdentifiers: either from
// a materialized array or by recomputing from the source. The variant is fixed
// at construction.
type identifierStore interface {
	record(id types.Identifier)
	latest(p *SlidingPreprocessor, n int) []types.Identifier
	clear()
	len() int
}

// materializedStore keeps flattened (startTime, endTime, windowLength) triples.
type materializedStore struct {
	arr *primitive.Int64Array
}

func newMaterializedStore(capacity int) *materializedStore {
	return &materializedStore{arr: primitive.NewInt64Array(capacity * 3)}
}

func (s *materializedStore) record(id types.Identifier) {
	s.arr.Append(id.StartTime)
	s.arr.Append(id.EndTime)
	s.arr.Append(int64(id.WindowLength))
}

// latest reads the tail of the array. After clear only the windows recorded
// since then are available.
func (s *materializedStore) latest(_ *SlidingPreprocessor, n int) []types.Identifier {
	stored := s.len()
	if n > stored {
		n = stored
	}
	if n <= 0 {
		return []types.Identifier{}
	}
	res := make([]types.Identifier, 0, n)
	for i := stored - n; i < stored; i++ {
		res = append(res, types.NewIdentifier(
			s.arr.MustGet(i*3),
			s.arr.MustGet(i*3+1),
			int32(s.arr.MustGet(i*3+2)),
		))
	}
	return res
}

func (s *materializedStore) clear() {
	s.arr.Clear()
}

func (s *materializedStore) len() int {
	return s.arr.Len() / 3
}

// derivedStore keeps nothing and rebuilds identifiers from the source.
type derivedStore struct{}

// latest walks backwards from the current window, one slide at a time, and
// then restores increasing window order.
func (derivedStore) latest(p *SlidingPreprocessor, n int) []types.Identifier {
	if n <= 0 || p.currentProcessedIdx < 0 {
		return []types.Identifier{}
	}
	res := make([]types.Identifier, 0, min(n, p.currentProcessedIdx+1))
	for k := p.currentProcessedIdx; k >= 0 && len(res) < n; k-- {
		start, end, ok := p.bound.window(p.src, k)
		if !ok {
			break
		}
		res = append(res, p.identifierOf(start, end))
	}
	slices.Reverse(res)
	return res
}

func (derivedStore) record(types.Identifier) {}
func (derivedStore) clear()                  {}
func (derivedStore) len() int                { return 0 }
