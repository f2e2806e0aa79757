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

// Package preparser walks a token.Vector produced by the scanner and
// carves it into declaration/statement skeletons without fully parsing
// embedded expressions. It never re-reads source bytes; it reads only
// tokens and their attached locations.
package preparser

import "github.com/thelilylang/lily-sub001/internal/token"

// cursor is {position, current_token_ref} with next/jump/peek over an
// in-memory token.Vector rather than a bufio.Scanner over text — there is
// no I/O left to buffer, so peek(n) can simply index forward rather than
// keeping a one-token lookahead buffer.
type cursor struct {
	tokens   token.Vector
	position int
}

func newCursor(tokens token.Vector) *cursor {
	return &cursor{tokens: tokens}
}

// current returns the token at the cursor without consuming it.
func (c *cursor) current() token.Token {
	return c.peek(0)
}

// peek returns the token n positions ahead of the cursor, clamped to the
// trailing eof once n runs past the vector's end.
func (c *cursor) peek(n int) token.Token {
	idx := c.position + n
	if idx >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1] // eof
	}
	return c.tokens[idx]
}

// next consumes and returns the current token, advancing the cursor unless
// already positioned on eof.
func (c *cursor) next() token.Token {
	tok := c.current()
	if !tok.IsEOF() {
		c.position++
	}
	return tok
}

// jump advances the cursor by n tokens without inspecting them — used once
// a bracket-balanced span's extent is known, so the preparser can skip it
// in a single cursor move rather than re-walking and re-counting depth.
func (c *cursor) jump(n int) {
	c.position += n
	if c.position > len(c.tokens)-1 {
		c.position = len(c.tokens) - 1
	}
}

// previous returns the most recently consumed token — the one a closing
// construct just accepted — so callers can close a Location against it
// without threading an extra return value through every parse routine.
func (c *cursor) previous() token.Token {
	idx := c.position - 1
	if idx < 0 {
		idx = 0
	}
	return c.tokens[idx]
}

// atEOF reports whether the cursor sits on the trailing eof token.
func (c *cursor) atEOF() bool { return c.current().IsEOF() }

// is reports whether the current token has the given kind.
func (c *cursor) is(kind token.Kind) bool { return c.current().Kind == kind }

// isAhead reports whether the token n positions ahead has the given kind.
func (c *cursor) isAhead(n int, kind token.Kind) bool { return c.peek(n).Kind == kind }

// accept consumes and returns (token, true) if the current token has kind,
// otherwise returns (zero, false) without consuming anything.
func (c *cursor) accept(kind token.Kind) (token.Token, bool) {
	if c.is(kind) {
		return c.next(), true
	}
	return token.Token{}, false
}
