// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preparser

import "github.com/thelilylang/lily-sub001/internal/token"

// state carries the ambient values the design notes call out as artefacts
// of single-threaded recursive descent in the source implementation —
// current visibility chief among them — as an explicit value threaded
// through the call tree instead of process-wide globals. Each routine
// receives a *state, may derive a modified copy for a nested call (see
// withVisibility), and the modification never leaks back to the caller
// because withVisibility returns a new *state rather than mutating the
// receiver.
type state struct {
	visibility Visibility
}

func newState() *state {
	return &state{visibility: Private}
}

// withVisibility returns a new state with the given visibility, leaving
// the receiver untouched — the mechanism that keeps a nested declaration's
// visibility from leaking back to its parent.
func (s *state) withVisibility(v Visibility) *state {
	return &state{visibility: v}
}

// openLocation begins tracking a construct's span at the given token
// location (already closed by the scanner, since tokens always hold closed
// locations — this call just marks "this is where the construct starts").
func (s *state) openLocation(loc token.Location) token.Location { return loc }

// closeLocation widens start out to end's closing position, producing the
// Decl-level span the invariants in §3.4 require: "every Decl.location
// spans from the first token consumed... through the token that closes the
// declaration."
func (s *state) closeLocation(start, end token.Location) token.Location {
	return start.Merge(end)
}
