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
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestErrorMatching(t *testing.T) {
	err := NewError(ErrorTypeNoMoreWindows, "%d windows already produced", 4)
	assert.Equal(t, "[NO_MORE_WINDOWS] 4 windows already produced", err.Error())
	assert.True(t, errors.Is(err, ErrNoMoreWindows))
	assert.False(t, errors.Is(err, ErrEmptySource))

	wrapped := fmt.Errorf("build cpu index: %w", err)
	assert.ErrorIs(t, wrapped, ErrNoMoreWindows)

	var target *Error
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, ErrorTypeNoMoreWindows, target.Type)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("bad input")
	err := WrapError(ErrorTypeInvalidConfiguration, cause, "invalid policy")
	assert.Equal(t, "[INVALID_CONFIGURATION] invalid policy: bad input", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(42).String())
}

func TestIdentifier(t *testing.T) {
	a := NewIdentifier(0, 3, 3)
	b := NewIdentifier(0, 3, 3)
	c := NewIdentifier(0, 3, 4)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.NotEqual(t, NewIdentifier(3, 0, 3).Hash(), a.Hash())

	assert.Equal(t, int64(3), a.Duration())
	assert.True(t, a.Contains(0))
	assert.True(t, a.Contains(2))
	assert.False(t, a.Contains(3))
	assert.Equal(t, "{start=0, end=3, length=3}", a.String())

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startTime":0,"endTime":3,"windowLength":3}`, string(data))
}

func TestParseWindowType(t *testing.T) {
	tests := []struct {
		input    string
		expected WindowType
		ok       bool
	}{
		{"count_fixed", CountFixed, true},
		{"COUNT_FIXED", CountFixed, true},
		{"count", CountFixed, true},
		{"", CountFixed, true},
		{"time_fixed", TimeFixed, true},
		{" Time ", TimeFixed, true},
		{"session", CountFixed, false},
	}
	for _, test := range tests {
		got, err := ParseWindowType(test.input)
		if test.ok {
			require.NoError(t, err, test.input)
			assert.Equal(t, test.expected, got, test.input)
		} else {
			assert.ErrorIs(t, err, ErrInvalidConfiguration, test.input)
		}
	}
	assert.Equal(t, "WindowType(9)", WindowType(9).String())
}

func TestWindowPolicyJSON(t *testing.T) {
	policy := WindowPolicy{Type: TimeFixed, WindowRange: 60, SlideStep: 10, StoreIdentifier: true}
	data, err := json.Marshal(policy)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"time_fixed"`)

	var decoded WindowPolicy
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, policy, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"hopping"}`), &decoded))
}

func TestWindowPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultWindowPolicy(3).Validate())

	err := WindowPolicy{Type: WindowType(5), WindowRange: 0, SlideStep: 0}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Len(t, multierr.Errors(typed.Cause), 3)
}

func TestNewWindowPolicy(t *testing.T) {
	policy, err := NewWindowPolicy(map[string]interface{}{
		"type":         "TIME_FIXED",
		"range":        int64(100),
		"step":         "20",
		"storeAligned": 0,
	})
	require.NoError(t, err)
	assert.Equal(t, WindowPolicy{
		Type:            TimeFixed,
		WindowRange:     100,
		SlideStep:       20,
		StoreIdentifier: true,
		StoreAligned:    false,
	}, policy)

	_, err = NewWindowPolicy(map[string]interface{}{"range": []int{1}, "step": "x"})
	require.Error(t, err)
	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Len(t, multierr.Errors(typed.Cause), 2)
}
