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

import "reflect"

// Traits is the value-level sender metadata: the set of
// possible value-completion shapes, the set of possible error shapes, and
// whether cancellation can be signalled. Every adapter recomputes Traits
// deterministically from its input senders' Traits.
//
// Go's generic Sender[T] already pins the value shape to the single type
// T at compile time (see tuples.go), so ValueShapes here carries at most
// one entry: one for a sender that can complete with a value, none for
// one that never does (JustError, JustDone). It is kept as a slice, not
// a single field, so a multi-shape adapter could report several without
// a shape change. AnySender has no Traits method at all.
type Traits struct {
	ValueShapes []reflect.Type
	ErrorShapes []reflect.Type
	SendsDone   bool
}

// errorHandleType is the default error shape every typed sender advertises
// unless it declares a narrower one.
var errorHandleType = reflect.TypeOf((*ErrorHandle)(nil)).Elem()

// TypedTraits builds the Traits for a concretely-typed sender producing
// values of type T, using the default opaque error shape.
func TypedTraits[T any](sendsDone bool) Traits {
	return Traits{
		ValueShapes: []reflect.Type{reflect.TypeOf((*T)(nil)).Elem()},
		ErrorShapes: []reflect.Type{errorHandleType},
		SendsDone:   sendsDone,
	}
}

// Sender is an immutable, movable description of deferred work producing
// a value of type T. Connect binds it to a receiver, returning an
// operation-state; Traits reports its statically-known completion shapes.
//
// This is the Go rendition of the "trait-per-verb interface" redesign
// openness comes from Go's structural typing (any type with this
// method set is a Sender[T]) rather than from unqualified-lookup
// customization points.
type Sender[T any] interface {
	Connect(r Receiver[T]) OperationState
	Traits() Traits
}

// AnyReceiver is the type-erased counterpart of Receiver[T], used by
// AnySender (a sender that claims to be a sender via a marker but
// whose metadata is left unknown).
type AnyReceiver interface {
	SetValue(v any)
	SetError(err error)
	SetDone()
	Env() Env
}

// AnySender is a sender whose value type is not known at the call site.
// A Sender[T] is always convertible to an AnySender via Erase; there is
// no conversion back, since the value Erase returns does not implement
// Sender[T].
type AnySender interface {
	ConnectAny(r AnyReceiver) OperationState
}

type erasedReceiver[T any] struct {
	inner AnyReceiver
}

func (r erasedReceiver[T]) SetValue(v T)     { r.inner.SetValue(v) }
func (r erasedReceiver[T]) SetError(e error) { r.inner.SetError(e) }
func (r erasedReceiver[T]) SetDone()         { r.inner.SetDone() }
func (r erasedReceiver[T]) Env() Env         { return r.inner.Env() }

type erasedSender[T any] struct {
	inner Sender[T]
}

func (s erasedSender[T]) ConnectAny(r AnyReceiver) OperationState {
	return s.inner.Connect(erasedReceiver[T]{inner: r})
}

// Erase converts a typed Sender[T] into an AnySender, discarding its
// static Traits: once erased, the sender is typed-erased and its
// metadata is unknown to callers that only hold the AnySender view.
func Erase[T any](s Sender[T]) AnySender {
	return erasedSender[T]{inner: s}
}

// funcReceiverAny adapts three untyped callbacks into an AnyReceiver.
type funcReceiverAny struct {
	onValue func(any)
	onError func(error)
	onDone  func()
	env     Env
}

func (r funcReceiverAny) SetValue(v any)    { r.onValue(v) }
func (r funcReceiverAny) SetError(e error)  { r.onError(e) }
func (r funcReceiverAny) SetDone()          { r.onDone() }
func (r funcReceiverAny) Env() Env          { return r.env }

// NewFuncReceiverAny builds an AnyReceiver from individual callbacks.
func NewFuncReceiverAny(onValue func(any), onError func(error), onDone func(), env Env) AnyReceiver {
	if env == nil {
		env = EmptyEnv{}
	}
	return funcReceiverAny{onValue: onValue, onError: onError, onDone: onDone, env: env}
}
