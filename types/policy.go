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
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// WindowType decides how window boundaries are measured
type WindowType int

const (
	// CountFixed measures window range and slide step in element counts
	CountFixed WindowType = iota
	// TimeFixed measures window range and slide step in elapsed time units
	TimeFixed
)

func (t WindowType) String() string {
	switch t {
	case CountFixed:
		return "count_fixed"
	case TimeFixed:
		return "time_fixed"
	default:
		return fmt.Sprintf("WindowType(%d)", int(t))
	}
}

// ParseWindowType parses names such as "count_fixed", "COUNT_FIXED", "count" or "time"
func ParseWindowType(s string) (WindowType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "count_fixed", "countfixed", "count", "":
		return CountFixed, nil
	case "time_fixed", "timefixed", "time":
		return TimeFixed, nil
	default:
		return CountFixed, NewError(ErrorTypeInvalidConfiguration, "unsupported window type: %s", s)
	}
}

func (t WindowType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *WindowType) UnmarshalText(text []byte) error {
	v, err := ParseWindowType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *WindowType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// WindowPolicy 窗口配置
type WindowPolicy struct {
	Type WindowType `json:"type" yaml:"type"`
	// WindowRange is the window width, in elements for CountFixed and in time units for TimeFixed
	WindowRange int32 `json:"windowRange" yaml:"windowRange"`
	// SlideStep is the distance between consecutive window starts, same unit as WindowRange
	SlideStep int32 `json:"slideStep" yaml:"slideStep"`
	// StoreIdentifier materializes every identifier instead of recomputing them from the source
	StoreIdentifier bool `json:"storeIdentifier" yaml:"storeIdentifier"`
	// StoreAligned records the aligned offset of every window
	StoreAligned bool `json:"storeAligned" yaml:"storeAligned"`
}

// DefaultWindowPolicy returns a count fixed policy sliding one element at a time
// with both identifier and aligned storage enabled.
func DefaultWindowPolicy(windowRange int32) WindowPolicy {
	return WindowPolicy{
		Type:            CountFixed,
		WindowRange:     windowRange,
		SlideStep:       1,
		StoreIdentifier: true,
		StoreAligned:    true,
	}
}

// NewWindowPolicy builds a policy from loosely typed parameters.
// Recognized keys: type, range, step, storeIdentifier, storeAligned.
// Missing keys keep the values of DefaultWindowPolicy.
func NewWindowPolicy(params map[string]interface{}) (WindowPolicy, error) {
	policy := DefaultWindowPolicy(0)
	var errs error
	if v, ok := params["type"]; ok {
		s, err := cast.ToStringE(v)
		if err == nil {
			policy.Type, err = ParseWindowType(s)
		}
		errs = multierr.Append(errs, wrapParam("type", err))
	}
	if v, ok := params["range"]; ok {
		r, err := cast.ToInt32E(v)
		policy.WindowRange = r
		errs = multierr.Append(errs, wrapParam("range", err))
	} else {
		errs = multierr.Append(errs, fmt.Errorf("window policy requires 'range' parameter"))
	}
	if v, ok := params["step"]; ok {
		s, err := cast.ToInt32E(v)
		policy.SlideStep = s
		errs = multierr.Append(errs, wrapParam("step", err))
	}
	if v, ok := params["storeIdentifier"]; ok {
		b, err := cast.ToBoolE(v)
		policy.StoreIdentifier = b
		errs = multierr.Append(errs, wrapParam("storeIdentifier", err))
	}
	if v, ok := params["storeAligned"]; ok {
		b, err := cast.ToBoolE(v)
		policy.StoreAligned = b
		errs = multierr.Append(errs, wrapParam("storeAligned", err))
	}
	if errs != nil {
		return policy, WrapError(ErrorTypeInvalidConfiguration, errs, "invalid window parameters")
	}
	return policy, policy.Validate()
}

func wrapParam(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("invalid %s: %w", name, err)
}

// Validate checks the policy without looking at any source
func (p WindowPolicy) Validate() error {
	var errs error
	if p.Type != CountFixed && p.Type != TimeFixed {
		errs = multierr.Append(errs, fmt.Errorf("unsupported window type: %s", p.Type))
	}
	if p.WindowRange <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("window range must be a positive integer, got: %d", p.WindowRange))
	}
	if p.SlideStep <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("slide step must be a positive integer, got: %d", p.SlideStep))
	}
	if errs != nil {
		return WrapError(ErrorTypeInvalidConfiguration, errs, "invalid window policy")
	}
	return nil
}
