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

package xec_test

import (
	"testing"

	"github.com/arkgrid/xec"
)

type countingAllocator struct{}

func (countingAllocator) Alloc(n int) []byte { return make([]byte, n) }

type fixedScheduler struct{}

func (fixedScheduler) Schedule() xec.Sender[struct{}] { return xec.Just(struct{}{}) }

// onlyDoneReceiver overrides only SetDone; every other tag must still
// forward identically to the embedded base.
type onlyDoneReceiver[T any] struct {
	xec.ReceiverAdaptor[T]
	onDone func()
}

func (r onlyDoneReceiver[T]) SetDone() { r.onDone() }

func TestReceiverAdaptorForwardsUnoverriddenTags(t *testing.T) {
	var gotValue int
	var gotErr error
	var sawDone bool

	base := xec.NewFuncReceiver[int](
		func(v int) { gotValue = v },
		func(err error) { gotErr = err },
		func() {},
		nil,
	)

	wrapped := onlyDoneReceiver[int]{
		ReceiverAdaptor: xec.ReceiverAdaptor[int]{Receiver: base},
		onDone:          func() { sawDone = true },
	}

	wrapped.SetValue(5)
	if gotValue != 5 {
		t.Fatalf("SetValue not forwarded to base: got %d", gotValue)
	}

	wrapped2 := onlyDoneReceiver[int]{
		ReceiverAdaptor: xec.ReceiverAdaptor[int]{Receiver: base},
		onDone:          func() { sawDone = true },
	}
	wrapped2.SetError(errBoom)
	if gotErr != errBoom {
		t.Fatalf("SetError not forwarded to base: got %v", gotErr)
	}

	wrapped.SetDone()
	if !sawDone {
		t.Fatal("overridden SetDone was not invoked")
	}
}

var errBoom = &testErr{}

type testErr struct{}

func (*testErr) Error() string { return "boom" }

func TestWithSchedulerInjectsQueryOnly(t *testing.T) {
	base := xec.NewFuncReceiver[int](func(int) {}, func(error) {}, func() {}, nil)
	sch := fixedScheduler{}

	wrapped := xec.WithScheduler[int](base, sch)
	got, ok := wrapped.Env().GetScheduler()
	if !ok || got != sch {
		t.Fatal("WithScheduler did not inject the scheduler query")
	}
	if _, ok := wrapped.Env().GetAllocator(); ok {
		t.Fatal("WithScheduler must leave other queries untouched")
	}
	if wrapped.Env().GetStopToken() != xec.NeverStopToken {
		t.Fatal("WithScheduler must leave the stop-token query untouched")
	}
}

func TestWithAllocatorInjectsQueryOnly(t *testing.T) {
	base := xec.NewFuncReceiver[int](func(int) {}, func(error) {}, func() {}, nil)
	alloc := countingAllocator{}

	wrapped := xec.WithAllocator[int](base, alloc)
	got, ok := wrapped.Env().GetAllocator()
	if !ok || got != alloc {
		t.Fatal("WithAllocator did not inject the allocator query")
	}
}

func TestWithStopTokenInjectsQueryOnly(t *testing.T) {
	base := xec.NewFuncReceiver[int](func(int) {}, func(error) {}, func() {}, nil)
	tok := xec.NeverStopToken

	wrapped := xec.WithStopToken[int](base, tok)
	if wrapped.Env().GetStopToken() != tok {
		t.Fatal("WithStopToken did not inject the stop-token query")
	}
}
