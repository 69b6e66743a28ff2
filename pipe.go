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

// AdaptorClosure is a callable taking a sender and returning a sender.
// Go has no operator overloading, so "S | C" is spelled Pipe(S, C); it
// generalizes fluent ".Then().Catch()"-style chaining into a standalone,
// composable value rather than a method tied to one concrete type.
type AdaptorClosure[T, R any] func(Sender[T]) Sender[R]

// Pipe applies closure c to sender s: Pipe(s, c) ≡ c(s), the Go spelling
// of "S | C".
func Pipe[T, R any](s Sender[T], c AdaptorClosure[T, R]) Sender[R] {
	return c(s)
}

// ComposeClosures composes two adaptor closures into one: applying the
// result to s is equivalent to applying a then b in sequence
// (S | (A | B) ≡ (S | A) | B).
func ComposeClosures[T, M, R any](a AdaptorClosure[T, M], b AdaptorClosure[M, R]) AdaptorClosure[T, R] {
	return func(s Sender[T]) Sender[R] {
		return b(a(s))
	}
}

// ThenClosure partially applies Then, yielding a closure suitable for
// Pipe/ComposeClosures.
func ThenClosure[T, R any](f func(T) R) AdaptorClosure[T, R] {
	return func(s Sender[T]) Sender[R] { return Then(s, f) }
}

// ThenClosure2 is the Pair-arity partial application of Then2.
func ThenClosure2[A, B, R any](f func(A, B) R) AdaptorClosure[Pair[A, B], R] {
	return func(s Sender[Pair[A, B]]) Sender[R] { return Then2(s, f) }
}

// ThenClosure3 is the Triple-arity partial application of Then3.
func ThenClosure3[A, B, C, R any](f func(A, B, C) R) AdaptorClosure[Triple[A, B, C], R] {
	return func(s Sender[Triple[A, B, C]]) Sender[R] { return Then3(s, f) }
}
