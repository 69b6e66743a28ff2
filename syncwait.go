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

import (
	"sync"

	"github.com/arkgrid/xec/internal/state"
	"github.com/arkgrid/xec/internal/trace"
)

// Optional is the value-or-empty result SyncWait returns on a value or
// done completion. It uses an explicit "ok" flag alongside the value,
// rather than a pointer or a sentinel zero value, since T's zero value
// can be a legitimate result.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps v as a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None is the absent Optional, used for SyncWait(JustDone[T]()).
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the wrapped value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether the Optional holds a value.
func (o Optional[T]) IsSome() bool { return o.ok }

// syncSlot is the mutex+condition-variable guarded slot (pending, value,
// error or done)
// that is this package's only internal multi-threaded synchronization
// point. Instead of only unblocking a waiter that re-reads a separately
// stored result field, it carries the completion payload itself (value,
// error, or nothing), guarded by internal/state's exactly-once latch
// since a condition variable needs an explicit predicate anyway.
type syncSlot[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	latch   state.Latch
	value   T
	err     error
}

func newSyncSlot[T any]() *syncSlot[T] {
	s := &syncSlot[T]{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *syncSlot[T]) SetValue(v T) {
	s.mu.Lock()
	if !s.latch.Settle(state.Value) {
		s.mu.Unlock()
		panic(ErrConsumed)
	}
	s.value = v
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *syncSlot[T]) SetError(err error) {
	s.mu.Lock()
	if !s.latch.Settle(state.Error) {
		s.mu.Unlock()
		panic(ErrConsumed)
	}
	s.err = err
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *syncSlot[T]) SetDone() {
	s.mu.Lock()
	if !s.latch.Settle(state.Done) {
		s.mu.Unlock()
		panic(ErrConsumed)
	}
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *syncSlot[T]) Env() Env { return EmptyEnv{} }

// wait blocks the calling goroutine until the slot transitions out of
// Pending, then returns the settled outcome.
func (s *syncSlot[T]) wait() state.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.latch.Load() == state.Pending {
		s.cond.Wait()
	}
	return s.latch.Load()
}

// syncWaitOverride lets a sender type customize SyncWait's behavior
// instead of going through Connect/Start directly. Go's dispatch is
// structural, so a sender opts in simply by implementing this optional
// interface.
type syncWaitOverride[T any] interface {
	SyncWaitOverride() (Optional[T], error)
}

// SyncWait connects s to an inline receiver, starts it, and blocks the
// calling goroutine until it completes. It returns Some(value) on
// a value completion, None on a done completion, and the error itself
// (not wrapped) on an error completion — SyncWait never returns a
// non-nil error together with a present Optional.
func SyncWait[T any](s Sender[T]) (Optional[T], error) {
	if ov, ok := s.(syncWaitOverride[T]); ok {
		return ov.SyncWaitOverride()
	}

	slot := newSyncSlot[T]()
	op := Connect(s, slot)
	op.Start()

	switch slot.wait() {
	case state.Value:
		trace.Emit(0, trace.Completed, "outcome", "value")
		return Some(slot.value), nil
	case state.Done:
		trace.Emit(0, trace.Completed, "outcome", "done")
		return None[T](), nil
	case state.Error:
		trace.Emit(0, trace.Completed, "outcome", "error")
		return Optional[T]{}, slot.err
	default:
		panic("xec: sync_wait slot settled to an unknown outcome")
	}
}
