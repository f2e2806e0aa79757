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

package diagnostic

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/thelilylang/lily-sub001/internal/collections"
	"github.com/thelilylang/lily-sub001/internal/token"
)

// Kind distinguishes a Diagnostic that should increment a stage's error
// count from one that is merely informational.
type Kind int

const (
	Error Kind = iota
	Warning
)

func (k Kind) String() string {
	if k == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single structured record; the core never renders these
// itself, it only emits them to a Sink. Help/Notes/Detail are optional
// free-form strings a renderer downstream may choose to print.
type Diagnostic struct {
	Kind     Kind
	File     string
	Location token.Location
	Code     Code
	Help     string
	Notes    []string
	Detail   string
}

func (d Diagnostic) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", d.Location, d.Kind, d.Code)
	if d.Detail != "" {
		msg += ": " + d.Detail
	}
	return msg
}

// Less orders Diagnostics by start position, letting Collector.Sorted use a
// collections.PriorityQueue rather than sort.Slice.
func (d Diagnostic) Less(other Diagnostic) bool {
	return d.Location.StartPosition < other.Location.StartPosition
}

// Sink is the contract both the scanner and preparser emit through. It is
// single-threaded and ordering of emissions follows source order modulo
// lookahead; neither stage rethrows, it only ever emits and continues.
type Sink interface {
	// Emit records a diagnostic. Warnings never increment the error count;
	// everything else does.
	Emit(d Diagnostic)
	// ErrorCount returns the number of Error-kind diagnostics emitted so
	// far. Stages keep running after an error; a caller checks this once a
	// stage has finished to decide whether to stop.
	ErrorCount() int
}

// Collector is the concrete Sink every caller in this repository uses. It
// keeps every diagnostic in emission order and, via Err, can fold them into
// a single combined error for a caller that just wants one error value
// (e.g. a test assertion) rather than walking Diagnostics itself.
type Collector struct {
	Diagnostics []Diagnostic
	errorCount  int
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Emit(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
	if d.Kind == Error {
		c.errorCount++
	}
}

func (c *Collector) ErrorCount() int { return c.errorCount }

// Err folds every Error-kind diagnostic into a single *multierror.Error, or
// nil if none were emitted. Warnings are not included; callers that need
// them walk Diagnostics directly.
func (c *Collector) Err() error {
	var result *multierror.Error
	for _, d := range c.Diagnostics {
		if d.Kind == Error {
			result = multierror.Append(result, d)
		}
	}
	return result.ErrorOrNil()
}

// Warnings returns every Warning-kind diagnostic emitted so far, in source
// order, leaving Diagnostics itself untouched.
func (c *Collector) Warnings() []Diagnostic {
	return collections.FilterSlice(c.Diagnostics, func(d Diagnostic) bool { return d.Kind == Warning })
}

// Sorted returns every diagnostic ordered by start position. Emission order
// already tracks source order modulo lookahead, so this only matters for a
// caller (e.g. a diagnostic renderer merging scanner and preparser output)
// that can't assume the two stages interleaved cleanly.
func (c *Collector) Sorted() []Diagnostic {
	q := collections.NewPriorityQueue(append([]Diagnostic(nil), c.Diagnostics...))
	out := make([]Diagnostic, 0, len(c.Diagnostics))
	for !q.Empty() {
		out = append(out, q.Pop())
	}
	return out
}
