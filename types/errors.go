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
)

// ErrorType 定义错误类型
type ErrorType int

const (
	// ErrorTypeInvalidConfiguration non-positive window range or slide step, or a window
	// wider than the source at construction time.
	ErrorTypeInvalidConfiguration ErrorType = iota
	// ErrorTypeEmptySource the source held no points at construction time.
	ErrorTypeEmptySource
	// ErrorTypeNoMoreWindows ProcessNext was called while HasNext reported false.
	ErrorTypeNoMoreWindows
	// ErrorTypeIndexOutOfRange an array access fell outside [0, length).
	ErrorTypeIndexOutOfRange
)

// String returns the name used in error messages
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeInvalidConfiguration:
		return "INVALID_CONFIGURATION"
	case ErrorTypeEmptySource:
		return "EMPTY_SOURCE"
	case ErrorTypeNoMoreWindows:
		return "NO_MORE_WINDOWS"
	case ErrorTypeIndexOutOfRange:
		return "INDEX_OUT_OF_RANGE"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is the error returned by every tsindex component.
// Two errors match under errors.Is when their types are equal, so the
// package level sentinels can be used as match targets.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidConfiguration = &Error{Type: ErrorTypeInvalidConfiguration}
	ErrEmptySource          = &Error{Type: ErrorTypeEmptySource}
	ErrNoMoreWindows        = &Error{Type: ErrorTypeNoMoreWindows}
	ErrIndexOutOfRange      = &Error{Type: ErrorTypeIndexOutOfRange}
)

// NewError creates an error of the given type with a formatted message
func NewError(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an error of the given type caused by err
func WrapError(errType ErrorType, err error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// Error 实现 error 接口
func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString("[")
	builder.WriteString(e.Type.String())
	builder.WriteString("]")
	if e.Message != "" {
		builder.WriteString(" ")
		builder.WriteString(e.Message)
	}
	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}
	return builder.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}
