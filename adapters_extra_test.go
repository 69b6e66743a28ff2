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

func TestLetValueSplicesNextSenderCompletion(t *testing.T) {
	s := xec.LetValue(xec.Just(2), func(v int) xec.Sender[int] {
		return xec.Just(v * 10)
	})
	opt, err := xec.SyncWait(s)
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, 20, v)
}

func TestLetValuePropagatesNextSenderError(t *testing.T) {
	boom := errors.New("boom")
	s := xec.LetValue(xec.Just(2), func(int) xec.Sender[int] {
		return xec.JustError[int](boom)
	})
	_, err := xec.SyncWait(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestUponErrorTurnsFailureIntoValue(t *testing.T) {
	boom := errors.New("boom")
	s := xec.UponError(xec.JustError[int](boom), func(err error) int { return -1 })
	opt, err := xec.SyncWait(s)
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, -1, v)
}

func TestUponErrorPassesValueThrough(t *testing.T) {
	s := xec.UponError(xec.Just(7), func(error) int { return -1 })
	opt, err := xec.SyncWait(s)
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, 7, v)
}

func TestUponDoneTurnsCancellationIntoValue(t *testing.T) {
	s := xec.UponDone(xec.JustDone[int](), func() int { return 99 })
	opt, err := xec.SyncWait(s)
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, 99, v)
}

func TestStoppedAsOptional(t *testing.T) {
	optOfOpt, err := xec.SyncWait(xec.StoppedAsOptional(xec.JustDone[int]()))
	require.NoError(t, err)
	v, ok := optOfOpt.Get()
	require.True(t, ok)
	assert.False(t, v.IsSome())

	optOfOpt2, err := xec.SyncWait(xec.StoppedAsOptional(xec.Just(3)))
	require.NoError(t, err)
	v2, ok2 := optOfOpt2.Get()
	require.True(t, ok2)
	inner, ok3 := v2.Get()
	require.True(t, ok3)
	assert.Equal(t, 3, inner)
}

func TestStoppedAsError(t *testing.T) {
	_, err := xec.SyncWait(xec.StoppedAsError(xec.JustDone[int]()))
	require.Error(t, err)
	assert.ErrorIs(t, err, xec.ErrCancelled)
}
