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

// Package coro is the suspendable bridge between the sender/receiver
// protocol and ordinary Go control flow.
//
// Go has no first-class coroutine frame to hang a yield point off of, so
// this package uses a goroutine to stand in for the suspendable's
// frame, with a channel handoff standing in for the frame's "yield"
// point. A coro.Go body is an ordinary stackful goroutine; this bridge
// only ever has one frame alive per operation and no executor to
// multiplex it against others.
//
// Two directions are supported:
//
//   - Go adapts a suspendable body into a Sender[T]: the body runs to
//     completion on its own goroutine, and the result is delivered to
//     the receiver only after the body has finished — a receiver must
//     never be invoked while the operation-state driving it is still
//     mid-execution on the stack.
//   - Await adapts a single-valued sender into something awaitable
//     from inside such a body, forwarding the host's ambient queries
//     into the awaited sender's receiver automatically.
package coro

import (
	"github.com/arkgrid/xec"
)

// Ctx is the suspendable's frame, passed to every body run by Go or
// GoCancellable. A body passes it to Await, the only suspension point
// this bridge defines, and can call its Env method to read the ambient
// queries its own receiver was given without needing its own copy
// threaded through.
type Ctx struct {
	env Env
}

// Env returns the ambient-query environment the enclosing sender's
// receiver exposed, unchanged.
func (c *Ctx) Env() Env { return c.env }

// Env is a narrow, package-local alias for xec.Env, kept distinct so a
// caller reading coro's API surface does not need to import xec just to
// name the type of Ctx.Env()'s return value.
type Env = xec.Env

type outcomeKind int

const (
	outcomeValue outcomeKind = iota
	outcomeError
	outcomeDone
)

type outcome[T any] struct {
	kind  outcomeKind
	value T
	err   error
}

// chanReceiver is the receiver Await connects the awaited sender to: it
// has no completion logic of its own beyond handing the outcome back
// across a channel to the blocked body goroutine.
type chanReceiver[T any] struct {
	ch  chan outcome[T]
	env Env
}

func (r chanReceiver[T]) SetValue(v T)     { r.ch <- outcome[T]{kind: outcomeValue, value: v} }
func (r chanReceiver[T]) SetError(err error) { r.ch <- outcome[T]{kind: outcomeError, err: err} }
func (r chanReceiver[T]) SetDone()          { r.ch <- outcome[T]{kind: outcomeDone} }
func (r chanReceiver[T]) Env() xec.Env      { return r.env }

// awaitError and awaitDone are the unwind values Await panics with; they
// are recovered only by the Go/GoCancellable trampoline that started the
// body's goroutine, never meant to cross that boundary, which is why
// they are unexported.
type awaitError struct{ err error }
type awaitDone struct{}

// Await connects s to an internal receiver, starts it, and blocks the
// calling body's goroutine until s completes. On a value completion it
// returns the value; on an error completion it unwinds the body via
// panic/recover, which the enclosing Go/GoCancellable call turns into
// the outer sender's SetError; on a done completion it unwinds the same
// way, turned into SetDone only if the body was started with
// GoCancellable — a plain Go body that receives a done unwind is not
// caught here and crashes the process, since a suspendable that did not
// opt into cancellation has no other way to report it.
func Await[T any](ctx *Ctx, s xec.Sender[T]) T {
	ch := make(chan outcome[T], 1)
	r := chanReceiver[T]{ch: ch, env: ctx.env}
	op := xec.Connect(s, r)
	op.Start()
	out := <-ch
	switch out.kind {
	case outcomeValue:
		return out.value
	case outcomeError:
		panic(awaitError{err: out.err})
	default:
		panic(awaitDone{})
	}
}

type goSender[T any] struct {
	fn          func(*Ctx) T
	cancellable bool
}

// Go adapts a suspendable body into a Sender[T]. The body runs
// on its own goroutine; Start blocks the caller's goroutine until
// the body either returns a value, panics, or unwinds through an Await
// that received a done completion — in which last case, since this body
// was built with Go and not GoCancellable, the unwind is not caught and
// the process terminates.
func Go[T any](fn func(*Ctx) T) xec.Sender[T] {
	return goSender[T]{fn: fn}
}

// GoCancellable is Go's opt-in counterpart: a done unwind from Await
// completes the returned sender's receiver with SetDone instead of
// terminating the process.
func GoCancellable[T any](fn func(*Ctx) T) xec.Sender[T] {
	return goSender[T]{fn: fn, cancellable: true}
}

func (s goSender[T]) Traits() xec.Traits {
	return xec.Traits{
		ValueShapes: xec.TypedTraits[T](false).ValueShapes,
		ErrorShapes: xec.TypedTraits[T](false).ErrorShapes,
		SendsDone:   s.cancellable,
	}
}

func (s goSender[T]) Connect(r xec.Receiver[T]) xec.OperationState {
	return xec.NewOperationState(func() {
		ctx := &Ctx{env: r.Env()}
		done := make(chan struct{})
		var (
			val        T
			completion func()
		)

		go func() {
			defer func() {
				p := recover()
				switch v := p.(type) {
				case nil:
					completion = func() { r.SetValue(val) }
				case awaitError:
					completion = func() { r.SetError(v.err) }
				case awaitDone:
					if !s.cancellable {
						// Re-panic without signaling done: an uncaught
						// panic in a goroutine crashes the whole
						// process, which is exactly the "program
						// terminates" behavior for a
						// suspendable that did not opt in. The blocked
						// Start goroutine never gets to observe this
						// receiver at all.
						panic(v)
					}
					completion = func() { r.SetDone() }
				default:
					completion = func() {
						r.SetError(xec.NewErrorHandle(&xec.UncaughtPanic{V: v}))
					}
				}
				close(done)
			}()
			val = s.fn(ctx)
		}()

		<-done
		completion()
	})
}
