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

// PoolConfig configures a Pool: a small option struct passed once, at
// construction.
type PoolConfig struct {
	// Size bounds the number of goroutines the Pool will run
	// concurrently. Zero or negative means unbounded.
	Size int

	// UncaughtPanicHandler, if set, is invoked with the recovered value
	// whenever scheduled work panics; the panic is then still routed to
	// the receiver's SetError as an UncaughtPanic.
	UncaughtPanicHandler func(v any)
}

// Pool is a goroutine-budgeted scheduler: a buffered channel is
// acquired before spawning a goroutine and released when it finishes, so
// no more than Size goroutines run scheduled work at once.
//
// A Pool must be used through a pointer; its zero value (via &Pool{}) is
// a valid unbounded pool. Two *Pool values compare equal iff they are
// the same pool, matching a scheduler's shallow-identity equality rule.
type Pool struct {
	reserve chan struct{}
	wg      sync.WaitGroup
	onPanic func(v any)
}

// NewPool builds a Pool from the given configuration.
func NewPool(cfg PoolConfig) *Pool {
	p := &Pool{onPanic: cfg.UncaughtPanicHandler}
	if cfg.Size > 0 {
		p.reserve = make(chan struct{}, cfg.Size)
	}
	return p
}

func (p *Pool) reserveGoroutine() {
	p.wg.Add(1)
	if p.reserve != nil {
		p.reserve <- struct{}{}
	}
}

func (p *Pool) freeGoroutine() {
	p.wg.Done()
	if p.reserve != nil {
		<-p.reserve
	}
}

// Wait blocks until every goroutine this Pool has spawned for scheduled
// work has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Schedule returns a sender that, when started, runs SetValue() on a
// freshly spawned goroutine bounded by the Pool's budget.
func (p *Pool) Schedule() xec.Sender[struct{}] {
	return poolSender{pool: p}
}

type poolSender struct {
	pool *Pool
}

func (poolSender) Traits() xec.Traits {
	return xec.TypedTraits[struct{}](false)
}

func (s poolSender) Connect(r xec.Receiver[struct{}]) xec.OperationState {
	return xec.NewOperationState(func() {
		s.pool.reserveGoroutine()
		go func() {
			defer s.pool.freeGoroutine()
			defer func() {
				if v := recover(); v != nil {
					if s.pool.onPanic != nil {
						s.pool.onPanic(v)
					}
					r.SetError(xec.NewErrorHandle(&xec.UncaughtPanic{V: v}))
				}
			}()
			r.SetValue(struct{}{})
		}()
	})
}
