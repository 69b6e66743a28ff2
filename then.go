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

// Then lifts a plain function into the adapter algebra: it composes
// through Pipe as a free function rather than a method, since the
// sender types here aren't built around a single chainable receiver.

// callSafely invokes f(v), catching any panic and reporting it as an
// error instead of letting it escape — isolated to just this call so a
// panic from a downstream receiver is never mistaken for one from f.
func callSafely[T, R any](f func(T) R, v T) (res R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = NewErrorHandle(newUncaughtPanic(p))
		}
	}()
	res = f(v)
	return res, nil
}

type thenSender[T, R any] struct {
	upstream Sender[T]
	f        func(T) R
}

// Then produces a sender that runs s and, on its value completion,
// invokes f and forwards the result to the downstream receiver's
// SetValue. SetError and SetDone pass through unchanged. If f
// panics, the panic is routed to SetError instead.
func Then[T, R any](s Sender[T], f func(T) R) Sender[R] {
	return thenSender[T, R]{upstream: s, f: f}
}

func (s thenSender[T, R]) Traits() Traits {
	ut := s.upstream.Traits()
	return Traits{
		ValueShapes: TypedTraits[R](false).ValueShapes,
		ErrorShapes: ut.ErrorShapes,
		SendsDone:   ut.SendsDone,
	}
}

func (s thenSender[T, R]) Connect(r Receiver[R]) OperationState {
	return s.upstream.Connect(thenReceiver[T, R]{downstream: r, f: s.f})
}

type thenReceiver[T, R any] struct {
	downstream Receiver[R]
	f          func(T) R
}

func (tr thenReceiver[T, R]) SetValue(v T) {
	res, err := callSafely(tr.f, v)
	if err != nil {
		tr.downstream.SetError(err)
		return
	}
	tr.downstream.SetValue(res)
}

func (tr thenReceiver[T, R]) SetError(err error) { tr.downstream.SetError(err) }
func (tr thenReceiver[T, R]) SetDone()            { tr.downstream.SetDone() }
func (tr thenReceiver[T, R]) Env() Env            { return tr.downstream.Env() }

// ThenEffect is the "f returns nothing" branch of Then: f runs for its
// side effect and the downstream is completed with Unit.
func ThenEffect[T any](s Sender[T], f func(T)) Sender[Unit] {
	return Then(s, func(v T) Unit {
		f(v)
		return Unit{}
	})
}

// Then2 lifts a two-argument function over a Pair-shaped sender, the
// arity Go's lack of variadic generics requires spelling out explicitly
// (see tuples.go). This is what "just(3, 4) | then((a, b) -> a + b)"
// compiles down to.
func Then2[A, B, R any](s Sender[Pair[A, B]], f func(A, B) R) Sender[R] {
	return Then(s, func(p Pair[A, B]) R { return f(p.First, p.Second) })
}

// Then3 lifts a three-argument function over a Triple-shaped sender.
func Then3[A, B, C, R any](s Sender[Triple[A, B, C]], f func(A, B, C) R) Sender[R] {
	return Then(s, func(t Triple[A, B, C]) R { return f(t.First, t.Second, t.Third) })
}
