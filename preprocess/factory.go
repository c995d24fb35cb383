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
)

// Create builds a preprocessor from loosely typed window parameters, e.g.
//
//	Create(src, map[string]interface{}{"type": "count_fixed", "range": 32, "step": "4"})
func Create(src source.Source, params map[string]interface{}) (*SlidingPreprocessor, error) {
	policy, err := types.NewWindowPolicy(params)
	if err != nil {
		return nil, err
	}
	return New(src, policy)
}
