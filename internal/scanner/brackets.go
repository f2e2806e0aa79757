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

package scanner

import (
	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/token"
)

func matchingClose(open token.Kind) token.Kind {
	switch open {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.LBrace:
		return token.RBrace
	default:
		return token.EOF
	}
}

func openKindFor(c byte) token.Kind {
	switch c {
	case '(':
		return token.LParen
	case '[':
		return token.LBracket
	case '{':
		return token.LBrace
	default:
		return token.EOF
	}
}

func closeKindFor(c byte) token.Kind {
	switch c {
	case ')':
		return token.RParen
	case ']':
		return token.RBracket
	case '}':
		return token.RBrace
	default:
		return token.EOF
	}
}

// scanBracketOpen pushes the opening token and records a frame so that, if
// EOF is reached before the matching closer, the mismatch is reported at
// this opening position (per 4.2: "scanner pushes the opening token, then
// recursively scans... if EOF is reached first ⇒ MISMATCHED_CLOSING_DELIMITER
// at the opening position"). The "recursion" itself is just the ordinary
// scanOne loop in Run: because every L_* frame is tracked on s.brackets,
// nested groups balance without any extra call-stack depth.
func (s *Scanner) scanBracketOpen() {
	start := s.startLoc()
	kind := openKindFor(s.cursor.Current())
	s.cursor.Advance()
	loc := s.endLoc(start)
	tok := token.Token{Kind: kind, Location: loc}
	s.tokens = append(s.tokens, tok)
	s.brackets = append(s.brackets, bracketFrame{open: tok})
}

// scanBracketClose handles a closing delimiter byte. If it matches the
// innermost open frame, both are popped and a closing token is pushed. If
// no frame is open (a stray closer), MISMATCHED_CLOSING_DELIMITER is
// emitted, then the byte is consumed and pushed as an unmatched closing
// token without touching the frame stack, so each stray closer yields
// exactly one diagnostic.
func (s *Scanner) scanBracketClose() {
	closeKind := closeKindFor(s.cursor.Current())

	if len(s.brackets) == 0 {
		start := s.startLoc()
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.MismatchedClosingDelimiter, "remove this")
		// Stray closer: advance past it and push it as an ordinary
		// (unmatched) close token; no frame is pushed or popped.
		start2 := s.startLoc()
		s.cursor.Advance()
		loc2 := s.endLoc(start2)
		s.tokens = append(s.tokens, token.Token{Kind: closeKind, Location: loc2})
		return
	}

	top := s.brackets[len(s.brackets)-1]
	expected := matchingClose(top.open.Kind)
	if closeKind != expected {
		start := s.startLoc()
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.MismatchedClosingDelimiter, "remove this")
		start2 := s.startLoc()
		s.cursor.Advance()
		loc2 := s.endLoc(start2)
		s.tokens = append(s.tokens, token.Token{Kind: closeKind, Location: loc2})
		return
	}

	s.brackets = s.brackets[:len(s.brackets)-1]
	start := s.startLoc()
	s.cursor.Advance()
	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: closeKind, Location: loc})
}

// closeDanglingBrackets reports every still-open frame once EOF is reached,
// at each frame's opening position, per 4.2.
func (s *Scanner) closeDanglingBrackets() {
	for _, frame := range s.brackets {
		s.errorAt(frame.open.Location, diagnostic.MismatchedClosingDelimiter, "")
	}
	s.brackets = nil
}
