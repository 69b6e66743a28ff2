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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkgrid/xec"
)

func TestPipeAppliesClosure(t *testing.T) {
	c := xec.ThenClosure(func(v int) int { return v + 1 })
	s := xec.Pipe(xec.Just(1), c)
	opt, err := xec.SyncWait(s)
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, 2, v)
}

// TestComposeClosuresAssociativity checks that
// S | (A | B) == (S | A) | B, and S | A == A(S).
func TestComposeClosuresAssociativity(t *testing.T) {
	a := xec.ThenClosure(func(v int) int { return v + 1 })
	b := xec.ThenClosure(func(v int) int { return v * 2 })

	s := xec.Just(3)

	composed := xec.ComposeClosures(a, b)
	lhs, err := xec.SyncWait(xec.Pipe(s, composed))
	require.NoError(t, err)

	rhs, err := xec.SyncWait(b(a(s)))
	require.NoError(t, err)

	lv, _ := lhs.Get()
	rv, _ := rhs.Get()
	assert.Equal(t, rv, lv)
	assert.Equal(t, 8, lv)

	direct, err := xec.SyncWait(a(s))
	require.NoError(t, err)
	piped, err := xec.SyncWait(xec.Pipe(s, a))
	require.NoError(t, err)
	dv, _ := direct.Get()
	pv, _ := piped.Get()
	assert.Equal(t, dv, pv)
}

func TestThenClosure2And3(t *testing.T) {
	c2 := xec.ThenClosure2(func(a, b int) int { return a + b })
	opt, err := xec.SyncWait(xec.Pipe(xec.Just2(2, 3), c2))
	require.NoError(t, err)
	v, _ := opt.Get()
	assert.Equal(t, 5, v)

	c3 := xec.ThenClosure3(func(a, b, c int) int { return a + b + c })
	opt3, err := xec.SyncWait(xec.Pipe(xec.Just3(1, 2, 3), c3))
	require.NoError(t, err)
	v3, _ := opt3.Get()
	assert.Equal(t, 6, v3)
}
