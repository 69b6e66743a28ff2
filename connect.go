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

import "github.com/arkgrid/xec/internal/trace"

// Connect binds sender s to receiver r, returning an operation-state.
// Neither s nor r is used by the caller again: both have been
// moved into the returned operation-state, which owns them for the
// duration of the operation.
//
// Connect itself must never invoke any of r's completion channels — the
// corresponding completion only fires after Start is called on the
// returned operation-state.
func Connect[T any](s Sender[T], r Receiver[T]) OperationState {
	id := trace.NewOpID()
	trace.Emit(id, trace.Connected)
	op := s.Connect(r)
	return tracedOp{id: id, inner: op}
}

type tracedOp struct {
	id    int
	inner OperationState
}

func (o tracedOp) Start() {
	trace.Emit(o.id, trace.Started)
	o.inner.Start()
}

// selfOwningOp is the heap-detached operation-state wrapper Submit uses:
// it holds the inner operation-state, which is connected to a
// forwardingReceiver. Start releases the wrapper's reference to the
// inner op; on any completion the forwarding receiver forwards to the
// caller's receiver and then clears its reference to the wrapper, so
// nothing outlives the completion it guards.
type selfOwningOp struct {
	inner OperationState
}

func (o *selfOwningOp) Start() {
	inner := o.inner
	o.inner = nil
	inner.Start()
}

type forwardingReceiver[T any] struct {
	downstream Receiver[T]
	owner      **selfOwningOp
}

func (r forwardingReceiver[T]) SetValue(v T) {
	r.downstream.SetValue(v)
	*r.owner = nil
}

func (r forwardingReceiver[T]) SetError(err error) {
	r.downstream.SetError(err)
	*r.owner = nil
}

func (r forwardingReceiver[T]) SetDone() {
	r.downstream.SetDone()
	*r.owner = nil
}

func (r forwardingReceiver[T]) Env() Env { return r.downstream.Env() }

// Submit is a fire-and-forget convenience equivalent in effect to
// starting a heap-allocated self-owning operation-state wrapping
// Connect(s, r): it heap-allocates a
// wrapper that keeps the connected operation alive for exactly as long
// as it takes to complete, without requiring the caller to hold on to
// the returned operation-state itself.
func Submit[T any](s Sender[T], r Receiver[T]) {
	owner := new(*selfOwningOp)
	fr := forwardingReceiver[T]{downstream: r, owner: owner}
	op := &selfOwningOp{inner: Connect(s, fr)}
	*owner = op
	op.Start()
}
