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

// Package trace is the diagnostics rail for the sender/receiver protocol.
//
// It is a zero-cost call when built without the xec_debug build tag, and
// a structured log/slog emission when built with it. Nothing in the
// protocol depends on trace; it exists purely so a caller debugging a
// composition can rebuild with the tag and see each operation being
// connected and started, and the outcome each SyncWait observes. It is
// emitted at slog's Debug level.
package trace

import (
	"log/slog"

	"github.com/arkgrid/xec/internal/opid"
)

// Event names a point of interest in the protocol lifecycle.
type Event string

const (
	Connected   Event = "connected"
	Started     Event = "started"
	Completed   Event = "completed"
	Forwarded   Event = "forwarded"
	Reentrancy  Event = "reentrancy" // fatal: a receiver completed twice
)

// NewOpID allocates a trace id for a freshly connected operation-state.
// Enabled builds stamp every Event with it; disabled builds still hand
// one out so call sites don't need a build-tag-gated branch of their own,
// but Next() is cheap (a mutex-guarded bitset flip) so this is not a
// meaningful cost in the disabled build either.
func NewOpID() int {
	return opid.Next()
}

// Emit reports ev for the operation identified by id, with optional
// structured fields. It is a no-op unless built with -tags xec_debug.
func Emit(id int, ev Event, args ...any) {
	emit(id, ev, args...)
}

func log(id int, ev Event, args ...any) {
	fields := make([]any, 0, len(args)+2)
	fields = append(fields, slog.Int("op", id), slog.String("event", string(ev)))
	fields = append(fields, args...)
	slog.Debug("xec", fields...)
}
