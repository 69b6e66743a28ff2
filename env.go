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

// Scheduler is the external contract a concrete scheduler must
// satisfy. It is deliberately minimal: the core never creates one, never
// inspects its internals, and only ever calls Schedule.
//
// A Scheduler value must be copyable and comparable with ==; two values
// compare equal iff they dispatch to the same execution context. Concrete
// schedulers (an inline scheduler, a goroutine pool, ...) live in package
// xec/schedulers, outside the core.
type Scheduler interface {
	// Schedule returns a sender that, when started, eventually fires
	// SetValue (no args) on a context this scheduler determines.
	Schedule() Sender[struct{}]
}

// Allocator is the ambient allocation contract a receiver may expose via
// GetAllocator. The core places no requirement on what an
// allocator does beyond the query contract; it never allocates through
// one itself.
type Allocator interface {
	// Alloc returns n bytes of scratch storage. Implementations may pool,
	// arena, or simply make([]byte, n); the core never interprets the
	// contents.
	Alloc(n int) []byte
}

// StopToken is the cancellation-observation handle returned by
// GetStopToken. A sender SHOULD poll or subscribe to its
// receiver's stop token at well-defined waiting boundaries and route its
// completion through SetDone once stop is requested.
type StopToken interface {
	// StopRequested reports whether cancellation has been requested.
	// Cooperative: a true result means the holder SHOULD stop "soon",
	// not immediately.
	StopRequested() bool
	// Subscribe registers fn to run at most once, the first time stop is
	// requested (synchronously, if already requested). It returns a
	// function that cancels the subscription; callers that no longer
	// care about the notification should call it to release resources.
	Subscribe(fn func()) (unsubscribe func())
}

// neverStopToken is the synthetic token handed out when a receiver
// provides no GetStopToken query: cancellation is a no-op.
type neverStopToken struct{}

func (neverStopToken) StopRequested() bool            { return false }
func (neverStopToken) Subscribe(func()) func()        { return func() {} }

// NeverStopToken is the package-wide singleton never-stopping token. It
// is stateless and comparable, so the framework hands out this one value
// rather than allocating a fresh token per query.
var NeverStopToken StopToken = neverStopToken{}

// Env is the ambient-query environment carried by every receiver: a
// lookup from a query tag to a value. Each method is optional in
// spirit — an Env that has nothing to offer for a given query returns the
// documented default (ok=false for scheduler/allocator, NeverStopToken
// for the stop token, which never reports "absent" since it has no
// failure mode to report).
type Env interface {
	// GetScheduler returns the ambient scheduler, if any. Must not panic.
	GetScheduler() (Scheduler, bool)
	// GetAllocator returns the ambient allocator, if any. Must not panic.
	GetAllocator() (Allocator, bool)
	// GetStopToken returns the ambient stop token, defaulting to
	// NeverStopToken when the receiver provides none. Must not panic.
	GetStopToken() StopToken
}

// EmptyEnv answers every query with its absent/default value. It is the
// base environment for receivers that expose no ambient services, and the
// innermost link in every env-write adaptor chain.
type EmptyEnv struct{}

func (EmptyEnv) GetScheduler() (Scheduler, bool) { return nil, false }
func (EmptyEnv) GetAllocator() (Allocator, bool) { return nil, false }
func (EmptyEnv) GetStopToken() StopToken         { return NeverStopToken }
