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

package state

import (
	"sync"
	"testing"
)

func TestLatchSettleOnce(t *testing.T) {
	var l Latch

	if l.IsSettled() {
		t.Fatalf("zero-value latch must start pending")
	}

	if !l.Settle(Value) {
		t.Fatalf("first Settle call must succeed")
	}
	if l.Load() != Value {
		t.Fatalf("Load() = %v, want Value", l.Load())
	}
	if l.Settle(Error) {
		t.Fatalf("second Settle call must fail")
	}
	if l.Load() != Value {
		t.Fatalf("Load() changed after failed Settle: %v", l.Load())
	}
}

func TestLatchSettleConcurrent(t *testing.T) {
	var l Latch
	var wg sync.WaitGroup
	wins := make(chan Outcome, 3)

	for _, o := range []Outcome{Value, Error, Done} {
		wg.Add(1)
		go func(o Outcome) {
			defer wg.Done()
			if l.Settle(o) {
				wins <- o
			}
		}(o)
	}
	wg.Wait()
	close(wins)

	n := 0
	var winner Outcome
	for o := range wins {
		n++
		winner = o
	}
	if n != 1 {
		t.Fatalf("exactly one Settle call must win, got %d", n)
	}
	if l.Load() != winner {
		t.Fatalf("Load() = %v, want %v", l.Load(), winner)
	}
}
