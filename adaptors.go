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

// ReceiverAdaptor is the base-forwarding adaptor template for receivers.
// Embedding Receiver[T] in a struct promotes every method — SetValue,
// SetError, SetDone, Env — to the struct for free; a derived type
// overrides exactly the methods it cares about by defining its own
// method of the same name, which shadows the promoted one. This is the
// single mechanism custom adapters use to compose without
// re-implementing query forwarding, realized with Go's ordinary
// interface embedding instead of a bespoke base class.
//
// Example: a receiver that only wants to intercept SetDone and forward
// everything else untouched:
//
//	type onlyDone[T any] struct {
//		xec.ReceiverAdaptor[T]
//		onDone func()
//	}
//	func (r onlyDone[T]) SetDone() { r.onDone() }
type ReceiverAdaptor[T any] struct {
	Receiver[T]
}

// SenderAdaptor is the analogous base-forwarding template for senders:
// embed Sender[T] and override Connect and/or Traits.
type SenderAdaptor[T any] struct {
	Sender[T]
}

// OperationStateAdaptor is the analogous base-forwarding template for
// operation-states: embed OperationState and override Start.
type OperationStateAdaptor struct {
	OperationState
}

// SchedulerAdaptor is the analogous base-forwarding template for
// schedulers: embed Scheduler and override Schedule.
type SchedulerAdaptor struct {
	Scheduler
}

// envWriteReceiver is the env-write adapter: it wraps a
// downstream receiver so that a chosen query returns an injected value
// while every other query, and every completion, passes through
// unchanged. It is how ambient context (a scheduler, a stop token) is
// injected into a subtree without the subtree's sender needing to know
// about it.
type envWriteReceiver[T any] struct {
	ReceiverAdaptor[T]
	env Env
}

func (r envWriteReceiver[T]) Env() Env { return r.env }

// envWriter overrides exactly one query on top of a base Env, forwarding
// every other query to base unchanged.
type envWriter struct {
	base            Env
	scheduler       Scheduler
	hasScheduler    bool
	allocator       Allocator
	hasAllocator    bool
	stopToken       StopToken
	hasStopToken    bool
}

func (w envWriter) GetScheduler() (Scheduler, bool) {
	if w.hasScheduler {
		return w.scheduler, true
	}
	return w.base.GetScheduler()
}

func (w envWriter) GetAllocator() (Allocator, bool) {
	if w.hasAllocator {
		return w.allocator, true
	}
	return w.base.GetAllocator()
}

func (w envWriter) GetStopToken() StopToken {
	if w.hasStopToken {
		return w.stopToken
	}
	return w.base.GetStopToken()
}

// WithScheduler wraps r so that its Env's GetScheduler returns sch,
// leaving every other query and every completion untouched.
func WithScheduler[T any](r Receiver[T], sch Scheduler) Receiver[T] {
	base := r.Env()
	env := envWriter{base: base, scheduler: sch, hasScheduler: true}
	return envWriteReceiver[T]{ReceiverAdaptor: ReceiverAdaptor[T]{Receiver: r}, env: env}
}

// WithStopToken wraps r so that its Env's GetStopToken returns tok,
// leaving every other query and every completion untouched.
func WithStopToken[T any](r Receiver[T], tok StopToken) Receiver[T] {
	base := r.Env()
	env := envWriter{base: base, stopToken: tok, hasStopToken: true}
	return envWriteReceiver[T]{ReceiverAdaptor: ReceiverAdaptor[T]{Receiver: r}, env: env}
}

// WithAllocator wraps r so that its Env's GetAllocator returns alloc,
// leaving every other query and every completion untouched.
func WithAllocator[T any](r Receiver[T], alloc Allocator) Receiver[T] {
	base := r.Env()
	env := envWriter{base: base, allocator: alloc, hasAllocator: true}
	return envWriteReceiver[T]{ReceiverAdaptor: ReceiverAdaptor[T]{Receiver: r}, env: env}
}
