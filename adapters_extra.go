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

// This file adds a handful of composition adapters beyond Then and
// WhenAll: LetValue, UponError, UponDone, StoppedAsOptional and
// StoppedAsError. They are additive: each adapter here is a small
// sender/receiver pair written directly against the three completion
// entry points defined elsewhere in the package, in the same shape as
// Then.
package xec

import "reflect"

// letValueSender is grounded on the adaptor pattern Then already
// establishes; the only difference is that f returns a new Sender[R]
// instead of a plain R, so its completion is spliced into the downstream
// receiver instead of being delivered directly.
type letValueSender[T, R any] struct {
	upstream Sender[T]
	f        func(T) Sender[R]
}

// LetValue runs s and, on its value completion, calls f to obtain a new
// sender; that sender's own completion (value, error, or done) becomes
// the result of the whole expression. It is the monadic bind the adapter
// algebra needs to express "do A, then depending on A's result launch
// B" without leaving the sender algebra.
func LetValue[T, R any](s Sender[T], f func(T) Sender[R]) Sender[R] {
	return letValueSender[T, R]{upstream: s, f: f}
}

func (s letValueSender[T, R]) Traits() Traits {
	ut := s.upstream.Traits()
	return Traits{
		ValueShapes: TypedTraits[R](false).ValueShapes,
		ErrorShapes: ut.ErrorShapes,
		SendsDone:   true, // f's sender may cancel even if upstream never does
	}
}

func (s letValueSender[T, R]) Connect(r Receiver[R]) OperationState {
	return s.upstream.Connect(letValueReceiver[T, R]{downstream: r, f: s.f})
}

type letValueReceiver[T, R any] struct {
	downstream Receiver[R]
	f          func(T) Sender[R]
}

func (lr letValueReceiver[T, R]) SetValue(v T) {
	next, err := letValueNext(lr.f, v)
	if err != nil {
		lr.downstream.SetError(err)
		return
	}
	Connect(next, lr.downstream).Start()
}

func letValueNext[T, R any](f func(T) Sender[R], v T) (s Sender[R], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = NewErrorHandle(newUncaughtPanic(p))
		}
	}()
	return f(v), nil
}

func (lr letValueReceiver[T, R]) SetError(err error) { lr.downstream.SetError(err) }
func (lr letValueReceiver[T, R]) SetDone()             { lr.downstream.SetDone() }
func (lr letValueReceiver[T, R]) Env() Env             { return lr.downstream.Env() }

// uponErrorSender consumes the error channel instead of passing it
// through, turning a failure into a value completion.
type uponErrorSender[T any] struct {
	upstream Sender[T]
	f        func(error) T
}

// UponError runs s; on SetError, invokes f with the error and completes
// downstream with SetValue(f(err)) instead of propagating the failure.
func UponError[T any](s Sender[T], f func(error) T) Sender[T] {
	return uponErrorSender[T]{upstream: s, f: f}
}

func (s uponErrorSender[T]) Traits() Traits {
	t := s.upstream.Traits()
	// Upstream errors are consumed; the only error left is a panic from
	// f, delivered as an ErrorHandle.
	t.ErrorShapes = []reflect.Type{errorHandleType}
	return t
}

func (s uponErrorSender[T]) Connect(r Receiver[T]) OperationState {
	return s.upstream.Connect(uponErrorReceiver[T]{downstream: r, f: s.f})
}

type uponErrorReceiver[T any] struct {
	downstream Receiver[T]
	f          func(error) T
}

func (r uponErrorReceiver[T]) SetValue(v T) { r.downstream.SetValue(v) }
func (r uponErrorReceiver[T]) SetError(err error) {
	res, cerr := callSafely(r.f, err)
	if cerr != nil {
		r.downstream.SetError(cerr)
		return
	}
	r.downstream.SetValue(res)
}
func (r uponErrorReceiver[T]) SetDone() { r.downstream.SetDone() }
func (r uponErrorReceiver[T]) Env() Env { return r.downstream.Env() }

// uponDoneSender consumes the done channel instead of passing it
// through, turning a cancellation into a value completion.
type uponDoneSender[T any] struct {
	upstream Sender[T]
	f        func() T
}

// UponDone runs s; on SetDone, invokes f and completes downstream with
// SetValue(f()) instead of propagating the cancellation.
func UponDone[T any](s Sender[T], f func() T) Sender[T] {
	return uponDoneSender[T]{upstream: s, f: f}
}

func (s uponDoneSender[T]) Traits() Traits {
	t := s.upstream.Traits()
	t.SendsDone = false
	return t
}

func (s uponDoneSender[T]) Connect(r Receiver[T]) OperationState {
	return s.upstream.Connect(uponDoneReceiver[T]{downstream: r, f: s.f})
}

type uponDoneReceiver[T any] struct {
	downstream Receiver[T]
	f          func() T
}

func (r uponDoneReceiver[T]) SetValue(v T)     { r.downstream.SetValue(v) }
func (r uponDoneReceiver[T]) SetError(err error) { r.downstream.SetError(err) }
func (r uponDoneReceiver[T]) SetDone() {
	res, err := callSafely(func(struct{}) T { return r.f() }, struct{}{})
	if err != nil {
		r.downstream.SetError(err)
		return
	}
	r.downstream.SetValue(res)
}
func (r uponDoneReceiver[T]) Env() Env { return r.downstream.Env() }

// StoppedAsOptional converts a SetDone completion into a value
// completion of Optional[T]'s empty case, and a value completion v into
// Some(v); errors pass through unchanged. This is the adapter every
// direct caller of sync_wait-shaped code reaches for, spelled out as a
// sender-level combinator instead of being baked into SyncWait itself.
func StoppedAsOptional[T any](s Sender[T]) Sender[Optional[T]] {
	return stoppedAsOptionalSender[T]{upstream: s}
}

type stoppedAsOptionalSender[T any] struct {
	upstream Sender[T]
}

func (s stoppedAsOptionalSender[T]) Traits() Traits {
	ut := s.upstream.Traits()
	return Traits{
		ValueShapes: TypedTraits[Optional[T]](false).ValueShapes,
		ErrorShapes: ut.ErrorShapes,
		SendsDone:   false,
	}
}

func (s stoppedAsOptionalSender[T]) Connect(r Receiver[Optional[T]]) OperationState {
	return s.upstream.Connect(stoppedAsOptionalReceiver[T]{downstream: r})
}

type stoppedAsOptionalReceiver[T any] struct {
	downstream Receiver[Optional[T]]
}

func (r stoppedAsOptionalReceiver[T]) SetValue(v T)       { r.downstream.SetValue(Some(v)) }
func (r stoppedAsOptionalReceiver[T]) SetError(err error) { r.downstream.SetError(err) }
func (r stoppedAsOptionalReceiver[T]) SetDone()           { r.downstream.SetValue(None[T]()) }
func (r stoppedAsOptionalReceiver[T]) Env() Env           { return r.downstream.Env() }

// StoppedAsError converts a SetDone completion into a SetError(ErrCancelled)
// completion; value and error completions pass through unchanged.
func StoppedAsError[T any](s Sender[T]) Sender[T] {
	return UponDoneError[T]{upstream: s}
}

// UponDoneError is the sender returned by StoppedAsError. Unlike the
// other adapters' sender types in this file it is exported, so callers
// can name it.
type UponDoneError[T any] struct {
	upstream Sender[T]
}

func (s UponDoneError[T]) Traits() Traits {
	t := s.upstream.Traits()
	t.SendsDone = false
	return t
}

func (s UponDoneError[T]) Connect(r Receiver[T]) OperationState {
	return s.upstream.Connect(uponDoneErrorReceiver[T]{downstream: r})
}

type uponDoneErrorReceiver[T any] struct {
	downstream Receiver[T]
}

func (r uponDoneErrorReceiver[T]) SetValue(v T)       { r.downstream.SetValue(v) }
func (r uponDoneErrorReceiver[T]) SetError(err error) { r.downstream.SetError(err) }
func (r uponDoneErrorReceiver[T]) SetDone()           { r.downstream.SetError(NewErrorHandle(ErrCancelled)) }
func (r uponDoneErrorReceiver[T]) Env() Env           { return r.downstream.Env() }
