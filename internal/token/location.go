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

// Package token defines the value types shared by the scanner and the
// preparser: source locations, token kinds and the Token itself.
package token

import "fmt"

// Location is a closed-open span of source: [start, end). It is "open"
// (end_* uninitialised) between a call to Start and the matching call to
// End; every Token the scanner emits holds a closed Location.
type Location struct {
	FileName string

	StartLine     int
	StartColumn   int
	StartPosition int

	EndLine     int
	EndColumn   int
	EndPosition int

	closed bool
}

// Start opens a new Location at the given line/column/byte position.
func Start(fileName string, line, column, position int) Location {
	return Location{
		FileName:      fileName,
		StartLine:     line,
		StartColumn:   column,
		StartPosition: position,
	}
}

// End closes the Location at the given line/column/byte position and
// returns the closed value; the receiver itself is left open, so callers
// write `loc = loc.End(...)`.
func (l Location) End(line, column, position int) Location {
	l.EndLine = line
	l.EndColumn = column
	l.EndPosition = position
	l.closed = true
	return l
}

// Closed reports whether End has been called on this Location.
func (l Location) Closed() bool { return l.closed }

// Merge returns a Location spanning from l's start to other's end. Both
// must already be closed. Used to widen a Decl's location out to the token
// that closed it.
func (l Location) Merge(other Location) Location {
	l.EndLine = other.EndLine
	l.EndColumn = other.EndColumn
	l.EndPosition = other.EndPosition
	l.closed = true
	return l
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.FileName, l.StartLine, l.StartColumn, l.EndLine, l.EndColumn)
}
