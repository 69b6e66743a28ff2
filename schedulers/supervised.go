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

package schedulers

import (
	"sync"

	"github.com/arkgrid/xec"
)

// treeStopToken is a StopToken shared by everything a Supervised
// schedules: one failing child cancels the rest of the tree. It speaks
// the core's own StopToken contract directly, since that is the
// cancellation surface every sender built on this library already
// knows how to observe.
type treeStopToken struct {
	mu        sync.Mutex
	requested bool
	subs      []func()
}

func (t *treeStopToken) StopRequested() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requested
}

func (t *treeStopToken) Subscribe(fn func()) (unsubscribe func()) {
	t.mu.Lock()
	if t.requested {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	t.subs = append(t.subs, fn)
	idx := len(t.subs) - 1
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		if !t.requested {
			t.subs[idx] = nil
		}
		t.mu.Unlock()
	}
}

func (t *treeStopToken) requestStop() {
	t.mu.Lock()
	if t.requested {
		t.mu.Unlock()
		return
	}
	t.requested = true
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn()
		}
	}
}

// Supervised wraps another Scheduler and adds one policy on top: the
// first failure reported by Fail (or by a Go-submitted function
// returning a non-nil error) requests cancellation of a shared
// StopToken that every sender it schedules is given via GetStopToken.
// Any error from a supervised child is treated as toxic, cancelling
// the rest of the tree.
//
// Supervised does not itself decide what "the other children" are — it
// only hands out the shared token; it is up to the senders scheduled
// through it to poll or subscribe to GetStopToken at their own waiting
// boundaries.
type Supervised struct {
	inner xec.Scheduler
	stop  *treeStopToken

	mu      sync.Mutex
	wg      sync.WaitGroup
	firstEr error
}

// NewSupervised builds a Supervised scheduler delegating the actual
// execution context to inner.
func NewSupervised(inner xec.Scheduler) *Supervised {
	return &Supervised{inner: inner, stop: &treeStopToken{}}
}

// StopToken returns the StopToken shared by every sender this Supervised
// has scheduled or will schedule.
func (s *Supervised) StopToken() xec.StopToken { return s.stop }

// Fail records err as (if it is the first) the supervisor's failure and
// requests cancellation of the shared StopToken.
func (s *Supervised) Fail(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	if s.firstEr == nil {
		s.firstEr = err
	}
	s.mu.Unlock()
	s.stop.requestStop()
}

// Err returns the first error reported to this Supervised, if any.
func (s *Supervised) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstEr
}

// Wait blocks until every function submitted through Go has returned.
func (s *Supervised) Wait() {
	s.wg.Wait()
}

// Go runs fn on its own goroutine, tracked by Wait, and calls Fail if fn
// returns a non-nil error — submitting a task to the supervisor that
// reports failure into the shared stop token.
func (s *Supervised) Go(fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				s.Fail(&xec.UncaughtPanic{V: v})
			}
		}()
		if err := fn(); err != nil {
			s.Fail(err)
		}
	}()
}

// Schedule delegates to the wrapped scheduler, but the returned sender
// completes a receiver whose GetStopToken answers with the shared,
// tree-wide StopToken instead of whatever token the caller's
// receiver already carried — this is how cancellation propagates to
// every sender scheduled through a given Supervised end to end.
func (s *Supervised) Schedule() xec.Sender[struct{}] {
	return supervisedSender{s: s}
}

type supervisedSender struct {
	s *Supervised
}

func (supervisedSender) Traits() xec.Traits {
	return xec.TypedTraits[struct{}](false)
}

func (sc supervisedSender) Connect(r xec.Receiver[struct{}]) xec.OperationState {
	wrapped := xec.WithStopToken[struct{}](r, sc.s.stop)
	return sc.s.inner.Schedule().Connect(wrapped)
}
