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

// TestConnectDoesNotCompleteBeforeStart checks that Connect(s, r) never
// invokes any completion channel on r before Start is called on the
// returned op-state.
func TestConnectDoesNotCompleteBeforeStart(t *testing.T) {
	fired := false
	r := xec.NewFuncReceiver[int](
		func(int) { fired = true },
		func(error) { fired = true },
		func() { fired = true },
		nil,
	)

	op := xec.Connect(xec.Just(1), r)
	if fired {
		t.Fatal("Connect invoked a completion channel before Start")
	}

	op.Start()
	if !fired {
		t.Fatal("Start did not invoke any completion channel")
	}
}

func TestSubmitDeliversWithoutCallerHoldingOpState(t *testing.T) {
	got := make(chan int, 1)
	r := xec.NewFuncReceiver[int](
		func(v int) { got <- v },
		func(error) {},
		func() {},
		nil,
	)
	xec.Submit(xec.Just(9), r)

	select {
	case v := <-got:
		if v != 9 {
			t.Fatalf("got %d, want 9", v)
		}
	default:
		t.Fatal("Submit did not deliver synchronously for a synchronously-completing sender")
	}
}

func TestEmptyEnvDefaults(t *testing.T) {
	env := xec.EmptyEnv{}
	if _, ok := env.GetScheduler(); ok {
		t.Fatal("EmptyEnv.GetScheduler should report absent")
	}
	if _, ok := env.GetAllocator(); ok {
		t.Fatal("EmptyEnv.GetAllocator should report absent")
	}
	if env.GetStopToken() != xec.NeverStopToken {
		t.Fatal("EmptyEnv.GetStopToken should default to NeverStopToken")
	}
}

// TestNeverStopTokenIsNoop checks the default never-stopping token:
// StopRequested is always false and Subscribe never fires.
func TestNeverStopTokenIsNoop(t *testing.T) {
	if xec.NeverStopToken.StopRequested() {
		t.Fatal("NeverStopToken must never report stop requested")
	}
	called := false
	unsub := xec.NeverStopToken.Subscribe(func() { called = true })
	unsub()
	if called {
		t.Fatal("NeverStopToken.Subscribe must never invoke its callback")
	}
}
