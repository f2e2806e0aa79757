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

// Package source holds the byte-oriented file and cursor types shared by the
// scanner and preparser.
package source

// NoByte is the sentinel returned by PeekAt/Current once the cursor has run
// past the end of the file's content.
const NoByte = 0

// File is the unit of compilation the scanner consumes. Content is the raw,
// byte-oriented source; the scanner and preparser never re-decode it.
type File struct {
	Name    string
	Content []byte
}

func NewFile(name string, content []byte) *File {
	return &File{Name: name, Content: content}
}

func (f *File) Len() int { return len(f.Content) }

// Cursor walks a File's bytes one byte at a time, tracking line/column/byte
// position. Newlines increment the line and reset the column; every other
// byte only advances the column. Advance is the only mutator; PeekAt never
// changes cursor state.
type Cursor struct {
	file        *File
	position    int
	line        int
	column      int
	currentByte byte
	atEOF       bool
}

func NewCursor(f *File) *Cursor {
	c := &Cursor{file: f, line: 1, column: 1}
	c.loadCurrent()
	return c
}

func (c *Cursor) Position() int { return c.position }
func (c *Cursor) Line() int     { return c.line }
func (c *Cursor) Column() int   { return c.column }
func (c *Cursor) Current() byte { return c.currentByte }
func (c *Cursor) AtEOF() bool   { return c.atEOF }

func (c *Cursor) loadCurrent() {
	if c.position >= c.file.Len() {
		c.atEOF = true
		c.currentByte = NoByte
		return
	}
	c.currentByte = c.file.Content[c.position]
}

// PeekAt returns the byte at position+n, or NoByte once that offset is past
// the end of the file.
func (c *Cursor) PeekAt(n int) byte {
	idx := c.position + n
	if idx < 0 || idx >= c.file.Len() {
		return NoByte
	}
	return c.file.Content[idx]
}

// Advance moves the cursor past the current byte, applying the newline rule,
// and loads the new current byte.
func (c *Cursor) Advance() {
	if c.atEOF {
		return
	}
	if c.currentByte == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.position++
	c.loadCurrent()
}

// AdvanceN calls Advance n times; the operator scanner uses it to move past
// all of an operator's bytes in one step before closing its location.
func (c *Cursor) AdvanceN(n int) {
	for i := 0; i < n; i++ {
		c.Advance()
	}
}
