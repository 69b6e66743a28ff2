// Copyright 2024 The Xec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xec

import (
	"errors"
	"fmt"
)

var (
	// ErrConsumed is the panic value raised when a receiver's completion
	// channel is invoked a second time after it has already settled —
	// the exactly-once contract every operation-state must uphold.
	ErrConsumed = errors.New("xec: operation already consumed")

	// ErrCancelled is the dedicated cancellation error produced by
	// StoppedAsError when a sender completes via set_done.
	ErrCancelled = errors.New("xec: operation was cancelled")
)

// ErrorHandle is the opaque error type every typed sender advertises by
// default in its error shapes: the one error shape guaranteed to exist
// is an erased handle. It wraps whatever error value actually flowed
// through SetError, including a captured panic.
type ErrorHandle struct {
	err error
}

// NewErrorHandle wraps err as an ErrorHandle. If err is already an
// *ErrorHandle, it is returned unchanged rather than double-wrapped.
func NewErrorHandle(err error) *ErrorHandle {
	if h, ok := err.(*ErrorHandle); ok {
		return h
	}
	return &ErrorHandle{err: err}
}

func (h *ErrorHandle) Error() string {
	if h.err == nil {
		return "xec: empty error handle"
	}
	return h.err.Error()
}

// Unwrap exposes the wrapped error to errors.Is/errors.As.
func (h *ErrorHandle) Unwrap() error { return h.err }

// UncaughtPanic wraps a panic value recovered from a sender's work
// function and routed to SetError by the nearest enclosing adapter.
type UncaughtPanic struct {
	V any
}

func (e *UncaughtPanic) Error() string {
	return fmt.Sprintf("xec: uncaught panic: %v", e.V)
}

func newUncaughtPanic(v any) *UncaughtPanic {
	return &UncaughtPanic{V: v}
}
