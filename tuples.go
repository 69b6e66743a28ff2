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

// Go has no variadic generics, so a multi-value completion is realized
// here as a single generic answer type T per Sender, with plain structs
// standing in for multi-value tuples. Pair and Triple cover the arities
// the adapter algebra lifts functions of (see Then2, Then3); larger
// arities can be added the same way without touching the core protocol.

// Pair is a two-value completion tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a three-value completion tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Unit is the zero-value completion tuple, the Go rendition of an empty
// argument list to SetValue.
type Unit = struct{}
