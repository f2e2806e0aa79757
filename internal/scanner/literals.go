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

// readCharacterUnit consumes one character unit (a non-backslash byte, or a
// recognised escape) at the current cursor position and returns its
// resolved value plus whether it was well-formed. An unrecognised escape
// emits INVALID_ESCAPE but still consumes the two bytes so scanning can
// continue.
func (s *Scanner) readCharacterUnit() (byte, bool) {
	if s.cursor.Current() != '\\' {
		b := s.cursor.Current()
		s.cursor.Advance()
		return b, true
	}
	escStart := s.startLoc()
	s.cursor.Advance() // backslash
	if s.cursor.AtEOF() {
		return 0, false
	}
	esc := s.cursor.Current()
	var v byte
	var ok bool
	switch esc {
	case 'n':
		v, ok = '\n', true
	case 't':
		v, ok = '\t', true
	case 'r':
		v, ok = '\r', true
	case 'b':
		v, ok = '\b', true
	case '\\':
		v, ok = '\\', true
	case '\'':
		v, ok = '\'', true
	case '"':
		v, ok = '"', true
	default:
		ok = false
	}
	s.cursor.Advance()
	if !ok {
		loc := s.endLoc(escStart)
		s.errorAt(loc, diagnostic.InvalidEscape, "")
	}
	return v, ok
}

// scanCharLiteral scans 'c' where c is one character unit.
func (s *Scanner) scanCharLiteral() {
	start := s.startLoc()
	s.cursor.Advance() // opening '

	if s.cursor.Current() == '\'' {
		s.cursor.Advance()
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.UnclosedCharLiteral, "unexpected '")
		s.tokens = append(s.tokens, token.Token{Kind: token.Char, Location: loc})
		return
	}

	if s.cursor.AtEOF() {
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.UnclosedCharLiteral, "")
		return
	}

	value, _ := s.readCharacterUnit()

	if s.cursor.AtEOF() || s.cursor.Current() != '\'' {
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.UnclosedCharLiteral, "")
		s.tokens = append(s.tokens, token.Token{Kind: token.Char, Location: loc, Value: string(value)})
		return
	}
	s.cursor.Advance() // closing '
	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: token.Char, Location: loc, Value: string(value)})
}

// scanStringLiteral scans "..." made of zero or more character units.
func (s *Scanner) scanStringLiteral() {
	start := s.startLoc()
	s.cursor.Advance() // opening "
	var value []byte
	for {
		if s.cursor.AtEOF() {
			loc := s.endLoc(start)
			s.errorAt(loc, diagnostic.UnclosedStringLiteral, "")
			s.tokens = append(s.tokens, token.Token{Kind: token.String, Location: loc, Value: string(value)})
			return
		}
		if s.cursor.Current() == '"' {
			s.cursor.Advance()
			loc := s.endLoc(start)
			s.tokens = append(s.tokens, token.Token{Kind: token.String, Location: loc, Value: string(value)})
			return
		}
		b, _ := s.readCharacterUnit()
		value = append(value, b)
	}
}

// scanBitLiteral scans b'...' or b"..." — a lowercase 'b' immediately
// followed by a quote produces a bit-char/bit-string literal; the 'b' is
// not itself part of an identifier in this position.
func (s *Scanner) scanBitLiteral() {
	start := s.startLoc()
	s.cursor.Advance() // 'b'
	quote := s.cursor.Current()

	if quote == '\'' {
		s.cursor.Advance()
		if s.cursor.AtEOF() {
			loc := s.endLoc(start)
			s.errorAt(loc, diagnostic.UnclosedCharLiteral, "")
			return
		}
		value, _ := s.readCharacterUnit()
		if s.cursor.AtEOF() || s.cursor.Current() != '\'' {
			loc := s.endLoc(start)
			s.errorAt(loc, diagnostic.UnclosedCharLiteral, "")
			s.tokens = append(s.tokens, token.Token{Kind: token.BitChar, Location: loc, Value: string(value)})
			return
		}
		s.cursor.Advance()
		loc := s.endLoc(start)
		s.tokens = append(s.tokens, token.Token{Kind: token.BitChar, Location: loc, Value: string(value)})
		return
	}

	// quote == '"'
	s.cursor.Advance()
	var value []byte
	for {
		if s.cursor.AtEOF() {
			loc := s.endLoc(start)
			s.errorAt(loc, diagnostic.UnclosedStringLiteral, "")
			s.tokens = append(s.tokens, token.Token{Kind: token.BitString, Location: loc, Value: string(value)})
			return
		}
		if s.cursor.Current() == '"' {
			s.cursor.Advance()
			loc := s.endLoc(start)
			s.tokens = append(s.tokens, token.Token{Kind: token.BitString, Location: loc, Value: string(value)})
			return
		}
		b, _ := s.readCharacterUnit()
		value = append(value, b)
	}
}
