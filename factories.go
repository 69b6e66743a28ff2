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

// justSender is the straight-from-a-captured-value sender: no
// goroutine runs, it just redelivers v.
type justSender[T any] struct {
	v T
}

// Just returns a sender whose sole value shape is v. On Start, it
// calls SetValue with the captured value; if that panics, the panic is
// caught and routed to SetError instead of escaping Start.
func Just[T any](v T) Sender[T] {
	return justSender[T]{v: v}
}

// Just2 is the Pair-arity convenience: Just2(3, 4) delivers a
// Pair[int, int]{First: 3, Second: 4}.
func Just2[A, B any](a A, b B) Sender[Pair[A, B]] {
	return Just(Pair[A, B]{First: a, Second: b})
}

// Just3 is the Triple-arity convenience.
func Just3[A, B, C any](a A, b B, c C) Sender[Triple[A, B, C]] {
	return Just(Triple[A, B, C]{First: a, Second: b, Third: c})
}

func (s justSender[T]) Traits() Traits {
	return TypedTraits[T](false)
}

func (s justSender[T]) Connect(r Receiver[T]) OperationState {
	return NewOperationState(func() {
		defer func() {
			if v := recover(); v != nil {
				r.SetError(NewErrorHandle(newUncaughtPanic(v)))
			}
		}()
		r.SetValue(s.v)
	})
}

// justErrorSender always fails with the captured error, never
// producing a value.
type justErrorSender[T any] struct {
	err error
}

// JustError returns a sender that, on Start, calls SetError with err
// wrapped in an ErrorHandle (errors.Is still matches err). It has no
// value shape, its single error shape is ErrorHandle rather than err's
// own type, and it never cancels. T is a phantom type parameter:
// it names what a downstream receiver would have received had this
// sender produced a value, which is required for it to compose with
// typed adapters even though SetValue never fires.
func JustError[T any](err error) Sender[T] {
	return justErrorSender[T]{err: err}
}

func (s justErrorSender[T]) Traits() Traits {
	t := TypedTraits[T](false)
	t.ValueShapes = nil
	return t
}

func (s justErrorSender[T]) Connect(r Receiver[T]) OperationState {
	return NewOperationState(func() {
		r.SetError(NewErrorHandle(s.err))
	})
}

// justDoneSender unconditionally cancels.
type justDoneSender[T any] struct{}

// JustDone returns a sender with no value shape, no error shape, and
// sends_done=true: on Start it unconditionally calls SetDone.
func JustDone[T any]() Sender[T] {
	return justDoneSender[T]{}
}

func (s justDoneSender[T]) Traits() Traits {
	return Traits{SendsDone: true}
}

func (s justDoneSender[T]) Connect(r Receiver[T]) OperationState {
	return NewOperationState(func() {
		r.SetDone()
	})
}

// Schedule obtains a scheduler-supplied sender. Semantics are entirely
// delegated to sch; the core imposes no requirement beyond "eventually
// fires SetValue() on a context sch determines".
func Schedule(sch Scheduler) Sender[struct{}] {
	return sch.Schedule()
}
