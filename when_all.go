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

// WhenAll2 and WhenAll3 are the one non-linear composition: they start a
// fixed set of senders and join on all of them, with no implicit barrier
// forcing completion order across the parallel chains. The children are
// started one after another on the goroutine that calls Start; no
// goroutine is spawned here, so children run concurrently only if they
// complete asynchronously. The join is a mutex plus the exactly-once
// latch from internal/state.
package xec

import (
	"reflect"
	"sync"

	"github.com/arkgrid/xec/internal/state"
)

// cancelSignal is a minimal StopToken a join injects into each child, so
// that a cooperative child can notice its sibling failed and stop early:
// one failure cancels the rest of the tree.
type cancelSignal struct {
	mu        sync.Mutex
	requested bool
	subs      []func()
}

func (c *cancelSignal) StopRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requested
}

func (c *cancelSignal) Subscribe(fn func()) func() {
	c.mu.Lock()
	if c.requested {
		c.mu.Unlock()
		fn()
		return func() {}
	}
	c.subs = append(c.subs, fn)
	idx := len(c.subs) - 1
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		if !c.requested {
			c.subs[idx] = nil
		}
		c.mu.Unlock()
	}
}

func (c *cancelSignal) requestStop() {
	c.mu.Lock()
	if c.requested {
		c.mu.Unlock()
		return
	}
	c.requested = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn()
		}
	}
}

// WhenAll2 runs sa and sb, completing with Pair(a, b) once both complete
// with a value, or with the first error/done observed by either,
// requesting cancellation of the other via its stop token.
func WhenAll2[A, B any](sa Sender[A], sb Sender[B]) Sender[Pair[A, B]] {
	return whenAllSender2[A, B]{sa: sa, sb: sb}
}

type whenAllSender2[A, B any] struct {
	sa Sender[A]
	sb Sender[B]
}

func (s whenAllSender2[A, B]) Traits() Traits {
	ta, tb := s.sa.Traits(), s.sb.Traits()
	errs := append(append([]reflect.Type{}, ta.ErrorShapes...), tb.ErrorShapes...)
	return Traits{
		ValueShapes: TypedTraits[Pair[A, B]](false).ValueShapes,
		ErrorShapes: errs,
		SendsDone:   ta.SendsDone || tb.SendsDone,
	}
}

func (s whenAllSender2[A, B]) Connect(r Receiver[Pair[A, B]]) OperationState {
	return NewOperationState(func() {
		j := &whenAllJoin2[A, B]{downstream: r}
		cancel := &cancelSignal{}

		ra := whenAllChildReceiverA[A, B]{join: j, cancel: cancel}
		rb := whenAllChildReceiverB[A, B]{join: j, cancel: cancel}

		opA := Connect(s.sa, WithStopToken[A](ra, cancel))
		opB := Connect(s.sb, WithStopToken[B](rb, cancel))
		opA.Start()
		opB.Start()
	})
}

type whenAllJoin2[A, B any] struct {
	mu         sync.Mutex
	downstream Receiver[Pair[A, B]]
	latch      state.Latch
	haveA      bool
	haveB      bool
	valA       A
	valB       B
}

func (j *whenAllJoin2[A, B]) onValueA(v A, cancel *cancelSignal) {
	j.mu.Lock()
	if j.latch.IsSettled() {
		j.mu.Unlock()
		return
	}
	j.valA, j.haveA = v, true
	ready := j.haveA && j.haveB
	var pair Pair[A, B]
	if ready {
		pair = Pair[A, B]{First: j.valA, Second: j.valB}
	}
	j.mu.Unlock()
	if ready && j.latch.Settle(state.Value) {
		j.downstream.SetValue(pair)
	}
}

func (j *whenAllJoin2[A, B]) onValueB(v B, cancel *cancelSignal) {
	j.mu.Lock()
	if j.latch.IsSettled() {
		j.mu.Unlock()
		return
	}
	j.valB, j.haveB = v, true
	ready := j.haveA && j.haveB
	var pair Pair[A, B]
	if ready {
		pair = Pair[A, B]{First: j.valA, Second: j.valB}
	}
	j.mu.Unlock()
	if ready && j.latch.Settle(state.Value) {
		j.downstream.SetValue(pair)
	}
}

func (j *whenAllJoin2[A, B]) onError(err error, cancel *cancelSignal) {
	cancel.requestStop()
	if j.latch.Settle(state.Error) {
		j.downstream.SetError(err)
	}
}

func (j *whenAllJoin2[A, B]) onDone(cancel *cancelSignal) {
	cancel.requestStop()
	if j.latch.Settle(state.Done) {
		j.downstream.SetDone()
	}
}

type whenAllChildReceiverA[A, B any] struct {
	join   *whenAllJoin2[A, B]
	cancel *cancelSignal
}

func (r whenAllChildReceiverA[A, B]) SetValue(v A)     { r.join.onValueA(v, r.cancel) }
func (r whenAllChildReceiverA[A, B]) SetError(err error) { r.join.onError(err, r.cancel) }
func (r whenAllChildReceiverA[A, B]) SetDone()         { r.join.onDone(r.cancel) }
func (r whenAllChildReceiverA[A, B]) Env() Env         { return r.join.downstream.Env() }

type whenAllChildReceiverB[A, B any] struct {
	join   *whenAllJoin2[A, B]
	cancel *cancelSignal
}

func (r whenAllChildReceiverB[A, B]) SetValue(v B)     { r.join.onValueB(v, r.cancel) }
func (r whenAllChildReceiverB[A, B]) SetError(err error) { r.join.onError(err, r.cancel) }
func (r whenAllChildReceiverB[A, B]) SetDone()         { r.join.onDone(r.cancel) }
func (r whenAllChildReceiverB[A, B]) Env() Env         { return r.join.downstream.Env() }

// WhenAll3 is the Triple-arity generalization of WhenAll2.
func WhenAll3[A, B, C any](sa Sender[A], sb Sender[B], sc Sender[C]) Sender[Triple[A, B, C]] {
	return whenAllSender3[A, B, C]{sa: sa, sb: sb, sc: sc}
}

type whenAllSender3[A, B, C any] struct {
	sa Sender[A]
	sb Sender[B]
	sc Sender[C]
}

func (s whenAllSender3[A, B, C]) Traits() Traits {
	ta, tb, tc := s.sa.Traits(), s.sb.Traits(), s.sc.Traits()
	errs := append(append(append([]reflect.Type{}, ta.ErrorShapes...), tb.ErrorShapes...), tc.ErrorShapes...)
	return Traits{
		ValueShapes: TypedTraits[Triple[A, B, C]](false).ValueShapes,
		ErrorShapes: errs,
		SendsDone:   ta.SendsDone || tb.SendsDone || tc.SendsDone,
	}
}

func (s whenAllSender3[A, B, C]) Connect(r Receiver[Triple[A, B, C]]) OperationState {
	return NewOperationState(func() {
		j := &whenAllJoin3[A, B, C]{downstream: r}
		cancel := &cancelSignal{}

		ra := whenAllChildReceiver3A[A, B, C]{join: j, cancel: cancel}
		rb := whenAllChildReceiver3B[A, B, C]{join: j, cancel: cancel}
		rc := whenAllChildReceiver3C[A, B, C]{join: j, cancel: cancel}

		opA := Connect(s.sa, WithStopToken[A](ra, cancel))
		opB := Connect(s.sb, WithStopToken[B](rb, cancel))
		opC := Connect(s.sc, WithStopToken[C](rc, cancel))
		opA.Start()
		opB.Start()
		opC.Start()
	})
}

type whenAllJoin3[A, B, C any] struct {
	mu         sync.Mutex
	downstream Receiver[Triple[A, B, C]]
	latch      state.Latch
	haveA      bool
	haveB      bool
	haveC      bool
	valA       A
	valB       B
	valC       C
}

func (j *whenAllJoin3[A, B, C]) tryDeliver() {
	if !(j.haveA && j.haveB && j.haveC) {
		j.mu.Unlock()
		return
	}
	triple := Triple[A, B, C]{First: j.valA, Second: j.valB, Third: j.valC}
	j.mu.Unlock()
	if j.latch.Settle(state.Value) {
		j.downstream.SetValue(triple)
	}
}

func (j *whenAllJoin3[A, B, C]) onValueA(v A, cancel *cancelSignal) {
	j.mu.Lock()
	if j.latch.IsSettled() {
		j.mu.Unlock()
		return
	}
	j.valA, j.haveA = v, true
	j.tryDeliver()
}

func (j *whenAllJoin3[A, B, C]) onValueB(v B, cancel *cancelSignal) {
	j.mu.Lock()
	if j.latch.IsSettled() {
		j.mu.Unlock()
		return
	}
	j.valB, j.haveB = v, true
	j.tryDeliver()
}

func (j *whenAllJoin3[A, B, C]) onValueC(v C, cancel *cancelSignal) {
	j.mu.Lock()
	if j.latch.IsSettled() {
		j.mu.Unlock()
		return
	}
	j.valC, j.haveC = v, true
	j.tryDeliver()
}

func (j *whenAllJoin3[A, B, C]) onError(err error, cancel *cancelSignal) {
	cancel.requestStop()
	if j.latch.Settle(state.Error) {
		j.downstream.SetError(err)
	}
}

func (j *whenAllJoin3[A, B, C]) onDone(cancel *cancelSignal) {
	cancel.requestStop()
	if j.latch.Settle(state.Done) {
		j.downstream.SetDone()
	}
}

type whenAllChildReceiver3A[A, B, C any] struct {
	join   *whenAllJoin3[A, B, C]
	cancel *cancelSignal
}

func (r whenAllChildReceiver3A[A, B, C]) SetValue(v A)       { r.join.onValueA(v, r.cancel) }
func (r whenAllChildReceiver3A[A, B, C]) SetError(err error) { r.join.onError(err, r.cancel) }
func (r whenAllChildReceiver3A[A, B, C]) SetDone()           { r.join.onDone(r.cancel) }
func (r whenAllChildReceiver3A[A, B, C]) Env() Env           { return r.join.downstream.Env() }

type whenAllChildReceiver3B[A, B, C any] struct {
	join   *whenAllJoin3[A, B, C]
	cancel *cancelSignal
}

func (r whenAllChildReceiver3B[A, B, C]) SetValue(v B)       { r.join.onValueB(v, r.cancel) }
func (r whenAllChildReceiver3B[A, B, C]) SetError(err error) { r.join.onError(err, r.cancel) }
func (r whenAllChildReceiver3B[A, B, C]) SetDone()           { r.join.onDone(r.cancel) }
func (r whenAllChildReceiver3B[A, B, C]) Env() Env           { return r.join.downstream.Env() }

type whenAllChildReceiver3C[A, B, C any] struct {
	join   *whenAllJoin3[A, B, C]
	cancel *cancelSignal
}

func (r whenAllChildReceiver3C[A, B, C]) SetValue(v C)       { r.join.onValueC(v, r.cancel) }
func (r whenAllChildReceiver3C[A, B, C]) SetError(err error) { r.join.onError(err, r.cancel) }
func (r whenAllChildReceiver3C[A, B, C]) SetDone()           { r.join.onDone(r.cancel) }
func (r whenAllChildReceiver3C[A, B, C]) Env() Env           { return r.join.downstream.Env() }
