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

/*
Package types provides the shared data types of tsindex.

# Identifier

An Identifier summarizes one sliding window:

	type Identifier struct {
		StartTime    int64 // timestamp of the first element
		EndTime      int64 // timestamp of the element one past the window
		WindowLength int32 // elements in the window
	}

Identifiers are plain values; two are equal when all three fields are equal.
Hash returns an xxhash of the fields for use as a compact index key.

# Window Policy

	policy := types.WindowPolicy{
		Type:            types.CountFixed, // or types.TimeFixed
		WindowRange:     32,
		SlideStep:       4,
		StoreIdentifier: true,
		StoreAligned:    true,
	}
	err := policy.Validate()

NewWindowPolicy accepts loosely typed parameters (strings, any integer kind)
and coerces them.

# Configuration

Config bundles a policy with the settings of the index builder. LoadConfigs
reads a YAML document of per-series configs; fields a series leaves out keep
the NewConfig defaults.

# Errors

Every component returns *Error. Match error kinds with errors.Is against
ErrInvalidConfiguration, ErrEmptySource, ErrNoMoreWindows and ErrIndexOutOfRange.
*/
package types
