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
	"testing"

	"github.com/rulego/tsindex/source"
	"github.com/rulego/tsindex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	src := source.NewRange(10, 0, 1)

	p, err := Create(src, map[string]interface{}{
		"type":            "count_fixed",
		"range":           "3",
		"step":            2,
		"storeIdentifier": "false",
	})
	require.NoError(t, err)
	assert.Equal(t, types.CountFixed, p.Policy().Type)
	assert.False(t, p.Policy().StoreIdentifier)
	assert.True(t, p.Policy().StoreAligned)
	assert.Equal(t, 4, p.TotalCount())

	p, err = Create(src, map[string]interface{}{"type": "time", "range": 4})
	require.NoError(t, err)
	assert.Equal(t, types.TimeFixed, p.Policy().Type)
	assert.Equal(t, int32(1), p.Policy().SlideStep)
	assert.Equal(t, 6, p.TotalCount())
}

func TestCreateBadParams(t *testing.T) {
	src := source.NewRange(10, 0, 1)
	tests := []map[string]interface{}{
		{},
		{"range": 0},
		{"range": "abc"},
		{"range": 3, "type": "session"},
		{"range": 3, "step": -2},
		{"range": 30},
	}
	for _, params := range tests {
		_, err := Create(src, params)
		assert.ErrorIs(t, err, types.ErrInvalidConfiguration, "params=%v", params)
	}
}
