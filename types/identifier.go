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

package types

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Identifier summarizes the temporal extent of one sliding window.
// EndTime is the timestamp of the element one past the window, or the
// source's last timestamp when the window reaches the end of the source.
type Identifier struct {
	StartTime    int64 `json:"startTime"`
	EndTime      int64 `json:"endTime"`
	WindowLength int32 `json:"windowLength"`
}

func NewIdentifier(startTime, endTime int64, windowLength int32) Identifier {
	return Identifier{
		StartTime:    startTime,
		EndTime:      endTime,
		WindowLength: windowLength,
	}
}

// Duration returns EndTime - StartTime
func (id Identifier) Duration() int64 {
	return id.EndTime - id.StartTime
}

// Hash generates identifier hash value
func (id Identifier) Hash() uint64 {
	var buf [20]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(id.StartTime))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(id.EndTime))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(id.WindowLength))
	return xxhash.Sum64(buf[:])
}

// Contains checks if given timestamp is within [StartTime, EndTime)
func (id Identifier) Contains(t int64) bool {
	return t >= id.StartTime && t < id.EndTime
}

func (id Identifier) String() string {
	return fmt.Sprintf("{start=%d, end=%d, length=%d}", id.StartTime, id.EndTime, id.WindowLength)
}
