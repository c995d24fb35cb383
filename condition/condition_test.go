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

package condition

import (
	"testing"

	"github.com/rulego/tsindex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewExprCondition 测试创建表达式条件
func TestNewExprCondition(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{"simple comparison", "duration <= 1000", false},
		{"logical expression", "windowLength > 2 && offset % 2 == 0", false},
		{"function call", "between(startTime, 0, 100)", false},
		{"window membership", "contains(1700000000000)", false},
		{"syntax error", "duration >", true},
		{"unknown variable", "temperature > 3", true},
		{"non boolean result", "startTime + 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := NewExprCondition(tt.expression)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
				assert.Nil(t, cond)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expression, cond.String())
			}
		})
	}
}

func TestExprConditionMatch(t *testing.T) {
	id := types.NewIdentifier(100, 160, 4)

	tests := []struct {
		expression string
		offset     int64
		expected   bool
	}{
		{"duration == 60", 0, true},
		{"duration < 60", 0, false},
		{"windowLength == 4 && startTime >= 100", 0, true},
		{"endTime - startTime == duration", 0, true},
		{"offset > 10", 12, true},
		{"offset > 10", 8, false},
		{"between(startTime, 50, 100)", 0, true},
		{"between(endTime, 50, 100)", 0, false},
		{"contains(100)", 0, true},
		{"contains(159)", 0, true},
		{"contains(160)", 0, false},
		{"contains(startTime + offset)", 30, true},
		{`contains("soon")`, 0, false},
	}
	for _, tt := range tests {
		cond, err := NewExprCondition(tt.expression)
		require.NoError(t, err, tt.expression)

		ok, err := cond.Match(id, tt.offset)
		require.NoError(t, err, tt.expression)
		assert.Equal(t, tt.expected, ok, tt.expression)
		assert.Equal(t, tt.expected, cond.Evaluate(NewEnv(id, tt.offset)), tt.expression)
	}
}

func TestExprConditionRuntimeError(t *testing.T) {
	cond, err := NewExprCondition(`between(startTime, "low", 100)`)
	require.NoError(t, err)

	ok, err := cond.Match(types.NewIdentifier(1, 2, 1), 0)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, cond.Evaluate(NewEnv(types.NewIdentifier(1, 2, 1), 0)))
}

func TestFields(t *testing.T) {
	fields := Fields(types.NewIdentifier(100, 160, 4), 7)
	assert.Equal(t, map[string]interface{}{
		VarStartTime:    int64(100),
		VarEndTime:      int64(160),
		VarWindowLength: int64(4),
		VarDuration:     int64(60),
		VarOffset:       int64(7),
	}, fields)
	assert.NotContains(t, fields, FuncContains)
	assert.Contains(t, NewEnv(types.NewIdentifier(100, 160, 4), 7), FuncContains)
}
