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

// Package xec provides a generic, scheduler-agnostic asynchronous
// execution core built around senders and receivers.
//
// A Sender[T] is an immutable description of deferred work that produces
// a value of type T. A Receiver[T] is a continuation with three
// completion entry points: SetValue, SetError, SetDone. Connect binds a
// sender to a receiver, returning an OperationState; Start on that
// operation-state drives the work to exactly one completion.
//
// A Sender carries static Traits describing the shapes of its possible
// completions, computed at composition time rather than dispatched at
// runtime. Adapters (Then, LetValue, UponError, UponDone, ...) recompute
// Traits deterministically from the senders they wrap.
//
// Sender[T] values compose through ordinary function application and
// through AdaptorClosure values piped with Pipe; SyncWait drives a
// single sender to completion on the calling goroutine; package coro
// bridges the sender protocol to goroutine-based suspendable
// computations; package schedulers provides the concrete Scheduler
// implementations the core itself deliberately does not.
//
// Completion rules, for the lifetime of a single operation:
//
//   - exactly one of SetValue, SetError, SetDone fires exactly once
//   - SetError and SetDone must never panic
//   - once a receiver has completed, it must not be used again
//
// The package owns no threads, performs no I/O, and defines no task
// queue; all scheduling is delegated to a caller-supplied Scheduler.
package xec
