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

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config 索引构建配置
type Config struct {
	// Series names the indexed series in logs and metrics
	Series string       `json:"series" yaml:"series"`
	Policy WindowPolicy `json:"policy" yaml:"policy"`
	// BatchSize is how many windows are handed to the sink at once
	BatchSize int `json:"batchSize" yaml:"batchSize"`
	// Filter is an optional expr condition over identifier fields
	Filter string `json:"filter" yaml:"filter"`
	// FlushSchedule is an optional cron expression for periodic drains
	FlushSchedule string `json:"flushSchedule" yaml:"flushSchedule"`
	// CacheSize bounds the raw window value cache, 0 disables it
	CacheSize int `json:"cacheSize" yaml:"cacheSize"`
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		Series:    "default",
		Policy:    DefaultWindowPolicy(16),
		BatchSize: 256,
		CacheSize: 1024,
	}
}

// Validate checks every field and reports all problems at once
func (c Config) Validate() error {
	var errs error
	if err := c.Policy.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.BatchSize <= 0 {
		errs = multierr.Append(errs, NewError(ErrorTypeInvalidConfiguration, "batch size must be positive, got: %d", c.BatchSize))
	}
	if c.CacheSize < 0 {
		errs = multierr.Append(errs, NewError(ErrorTypeInvalidConfiguration, "cache size must not be negative, got: %d", c.CacheSize))
	}
	return errs
}

// LoadConfigs parses a YAML document mapping series names to configs.
// Fields a series leaves out keep their NewConfig defaults.
//
//	cpu:
//	  policy: {type: count_fixed, windowRange: 32, slideStep: 4}
//	  filter: "duration < 1000"
func LoadConfigs(data []byte) (map[string]Config, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, WrapError(ErrorTypeInvalidConfiguration, err, "malformed config document")
	}
	configs := make(map[string]Config, len(raw))
	var errs error
	for name, node := range raw {
		cfg := NewConfig()
		cfg.Series = name
		if err := node.Decode(&cfg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("series %s: %w", name, err))
			continue
		}
		if err := cfg.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("series %s: %w", name, err))
			continue
		}
		configs[name] = cfg
	}
	if errs != nil {
		return nil, WrapError(ErrorTypeInvalidConfiguration, errs, "invalid config document")
	}
	return configs, nil
}
