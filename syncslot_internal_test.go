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
	"errors"
	"testing"
)

func expectErrConsumedPanic(t *testing.T, f func()) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic, got none")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrConsumed) {
			t.Fatalf("expected panic value wrapping ErrConsumed, got %v", r)
		}
	}()
	f()
}

func TestSyncSlotPanicsOnDoubleSetValue(t *testing.T) {
	s := newSyncSlot[int]()
	s.SetValue(1)
	expectErrConsumedPanic(t, func() { s.SetValue(2) })
}

func TestSyncSlotPanicsOnSetErrorAfterSetValue(t *testing.T) {
	s := newSyncSlot[int]()
	s.SetValue(1)
	expectErrConsumedPanic(t, func() { s.SetError(errors.New("boom")) })
}

func TestSyncSlotPanicsOnDoubleSetDone(t *testing.T) {
	s := newSyncSlot[int]()
	s.SetDone()
	expectErrConsumedPanic(t, func() { s.SetDone() })
}
