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

// Package state implements the exactly-once completion latch used by the
// synchronous waiter's result slot and by the WhenAll joins.
//
// A connect/start operation has exactly one transition worth guarding —
// pending to settled — so this package tracks only that transition, as a
// single lock-free CompareAndSwap word.
package state

import "sync/atomic"

// Outcome identifies which completion channel settled an operation.
type Outcome uint32

const (
	// Pending means no completion channel has fired yet.
	Pending Outcome = iota
	// Value means SetValue fired.
	Value
	// Error means SetError fired.
	Error
	// Done means SetDone fired.
	Done
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Value:
		return "value"
	case Error:
		return "error"
	case Done:
		return "done"
	default:
		return "<unknown>"
	}
}

// Latch guards the at-most-one-completion invariant for a single
// operation. The zero value is a pending latch.
type Latch struct {
	v atomic.Uint32
}

// Settle attempts to transition the latch from Pending to outcome. It
// returns true if this call performed the transition, false if some
// earlier call already settled the latch (a re-entry, which is an
// invariant violation the caller must treat as fatal).
func (l *Latch) Settle(outcome Outcome) bool {
	return l.v.CompareAndSwap(uint32(Pending), uint32(outcome))
}

// Load returns the latch's current outcome.
func (l *Latch) Load() Outcome {
	return Outcome(l.v.Load())
}

// IsSettled reports whether some completion channel has already fired.
func (l *Latch) IsSettled() bool {
	return l.Load() != Pending
}
