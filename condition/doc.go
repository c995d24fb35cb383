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
Package condition filters window features with expr-lang expressions.

Expressions see the fields of one window:

	startTime     int64  timestamp of the first element
	endTime       int64  timestamp one past the window
	windowLength  int64  elements in the window
	duration      int64  endTime - startTime
	offset        int64  aligned offset of the first element

plus the helper between(v, lo, hi). Expressions are type checked at compile
time and must evaluate to a boolean:

	cond, err := condition.NewExprCondition("duration <= 1000 && windowLength >= 8")
	keep, err := cond.Match(id, offset)
*/
package condition
