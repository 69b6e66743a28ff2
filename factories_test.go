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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkgrid/xec"
)

func TestJustDeliversCapturedValue(t *testing.T) {
	opt, err := xec.SyncWait(xec.Just(42))
	require.NoError(t, err)
	v, ok := opt.Get()
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestJustTraits(t *testing.T) {
	tr := xec.Just("x").Traits()
	assert.Len(t, tr.ValueShapes, 1)
	assert.False(t, tr.SendsDone)
}

func TestJustErrorDeliversError(t *testing.T) {
	boom := errors.New("boom")
	_, err := xec.SyncWait(xec.JustError[int](boom))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestJustDoneDeliversNone(t *testing.T) {
	opt, err := xec.SyncWait(xec.JustDone[int]())
	require.NoError(t, err)
	assert.False(t, opt.IsSome())
}

func TestJust2AndJust3(t *testing.T) {
	opt, err := xec.SyncWait(xec.Just2(3, 4))
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, xec.Pair[int, int]{First: 3, Second: 4}, v)

	opt3, err := xec.SyncWait(xec.Just3(1, 2, 3))
	require.NoError(t, err)
	v3, _ := opt3.Get()
	assert.Equal(t, xec.Triple[int, int, int]{First: 1, Second: 2, Third: 3}, v3)
}

// TestJustPanicRoutesToSetError checks that a panic raised while
// delivering Just's value (here, by the receiver it was connected to) is
// caught by Start and routed to SetError instead of escaping Start.
func TestJustPanicRoutesToSetError(t *testing.T) {
	var errOut error
	r := xec.NewFuncReceiver[int](
		func(int) { panic("boom") },
		func(err error) { errOut = err },
		func() {},
		nil,
	)
	op := xec.Connect(xec.Just(1), r)
	op.Start()

	require.Error(t, errOut)
	var up *xec.UncaughtPanic
	assert.True(t, errors.As(errOut, &up))
}
