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

// Package schedulers provides the concrete Scheduler implementations
// deliberately kept out of the core's scope: the core only defines what
// a scheduler is (xec.Scheduler), never how one runs work.
package schedulers

import (
	"github.com/arkgrid/xec"
)

// Inline is the trivial scheduler: its Schedule fires SetValue()
// synchronously, on the calling goroutine, from within Start itself.
//
// Two Inline values always compare equal, since there is no context to
// distinguish between them.
type Inline struct{}

// Schedule returns a sender that completes synchronously on the calling
// goroutine.
func (Inline) Schedule() xec.Sender[struct{}] {
	return inlineSender{}
}

type inlineSender struct{}

func (inlineSender) Traits() xec.Traits {
	return xec.TypedTraits[struct{}](false)
}

func (inlineSender) Connect(r xec.Receiver[struct{}]) xec.OperationState {
	return xec.NewOperationState(func() {
		r.SetValue(struct{}{})
	})
}
