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

// Package condition compiles expr-lang expressions that decide which window
// features an index builder keeps.
package condition

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rulego/tsindex/types"
	"github.com/spf13/cast"
)

// Variables available to an expression
const (
	VarStartTime    = "startTime"
	VarEndTime      = "endTime"
	VarWindowLength = "windowLength"
	VarDuration     = "duration"
	VarOffset       = "offset"

	FuncContains = "contains"
)

var _ Condition = (*ExprCondition)(nil)

type Condition interface {
	Evaluate(env interface{}) bool
}

// ExprCondition is a compiled boolean expression, e.g.
//
//	duration <= 1000 && windowLength > 2
//	between(startTime, 1700000000000, 1700003600000)
//	contains(1700000030000)
type ExprCondition struct {
	expression string
	program    *vm.Program
}

// NewExprCondition compiles expression against the identifier variables.
// Unknown variables and non-boolean results are compile errors.
func NewExprCondition(expression string) (*ExprCondition, error) {
	options := []expr.Option{
		expr.Env(NewEnv(types.Identifier{}, 0)),
		expr.Function("between", func(params ...any) (any, error) {
			if len(params) != 3 {
				return false, fmt.Errorf("between function requires 3 parameters")
			}
			v, err := cast.ToInt64E(params[0])
			if err != nil {
				return false, err
			}
			lo, err := cast.ToInt64E(params[1])
			if err != nil {
				return false, err
			}
			hi, err := cast.ToInt64E(params[2])
			if err != nil {
				return false, err
			}
			return v >= lo && v <= hi, nil
		}),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeInvalidConfiguration, err, "invalid filter %q", expression)
	}
	return &ExprCondition{expression: expression, program: program}, nil
}

// Fields returns the variables of one window
func Fields(id types.Identifier, offset int64) map[string]interface{} {
	return map[string]interface{}{
		VarStartTime:    id.StartTime,
		VarEndTime:      id.EndTime,
		VarWindowLength: int64(id.WindowLength),
		VarDuration:     id.Duration(),
		VarOffset:       offset,
	}
}

// NewEnv builds the evaluation environment of one window: its Fields plus
// contains(t), true when t falls in [startTime, endTime).
func NewEnv(id types.Identifier, offset int64) map[string]interface{} {
	env := Fields(id, offset)
	env[FuncContains] = func(t interface{}) bool {
		v, err := cast.ToInt64E(t)
		return err == nil && id.Contains(v)
	}
	return env
}

// Evaluate runs the program against env; a runtime error counts as false.
func (ec *ExprCondition) Evaluate(env interface{}) bool {
	result, err := expr.Run(ec.program, env)
	if err != nil {
		return false
	}
	return result.(bool)
}

// Match evaluates the condition for one window and reports runtime errors
func (ec *ExprCondition) Match(id types.Identifier, offset int64) (bool, error) {
	result, err := expr.Run(ec.program, NewEnv(id, offset))
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (ec *ExprCondition) String() string {
	return ec.expression
}
