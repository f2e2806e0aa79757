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

// scanIdentifier scans [A-Za-z_][A-Za-z0-9_]* then resolves it against the
// keyword table. The not=/xor= special case is handled right here, as a
// continuation of identifier resolution rather than as a separate operator
// branch, matching the original scanner's placement. An identifier
// immediately followed by '!' (no intervening whitespace) becomes a single
// MacroIdentifier token instead of Identifier+Bang.
func (s *Scanner) scanIdentifier() {
	start := s.startLoc()
	begin := s.cursor.Position()
	for !s.cursor.AtEOF() && isIdentCont(s.cursor.Current()) {
		s.cursor.Advance()
	}
	lexeme := string(s.file.Content[begin:s.cursor.Position()])

	if (lexeme == "not" || lexeme == "xor") && s.cursor.Current() == '=' {
		s.cursor.Advance()
		loc := s.endLoc(start)
		if lexeme == "not" {
			s.tokens = append(s.tokens, token.New(token.BangEqual, loc))
		} else {
			s.tokens = append(s.tokens, token.New(token.CaretEqual, loc))
		}
		return
	}

	if kind, ok := token.LookupIdentifier(lexeme); ok {
		loc := s.endLoc(start)
		s.tokens = append(s.tokens, token.New(kind, loc))
		return
	}

	if s.cursor.Current() == '!' {
		s.cursor.Advance()
		loc := s.endLoc(start)
		s.tokens = append(s.tokens, token.Token{Kind: token.MacroIdentifier, Location: loc, Literal: lexeme})
		return
	}

	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: token.Identifier, Location: loc, Literal: lexeme})
}

// scanStringFormIdentifier scans a backtick-delimited identifier, preserved
// verbatim between the backticks (no escape processing, unlike string
// literals).
func (s *Scanner) scanStringFormIdentifier() {
	start := s.startLoc()
	s.cursor.Advance() // opening `
	begin := s.cursor.Position()
	for !s.cursor.AtEOF() && s.cursor.Current() != '`' {
		s.cursor.Advance()
	}
	content := string(s.file.Content[begin:s.cursor.Position()])
	if s.cursor.AtEOF() {
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.UnclosedStringLiteral, "unterminated string-form identifier")
		s.tokens = append(s.tokens, token.Token{Kind: token.StringFormIdentifier, Location: loc, Literal: content})
		return
	}
	s.cursor.Advance() // closing `
	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: token.StringFormIdentifier, Location: loc, Literal: content})
}

// scanDollarIdentifier scans $name.
func (s *Scanner) scanDollarIdentifier() {
	start := s.startLoc()
	s.cursor.Advance() // $
	begin := s.cursor.Position()
	for !s.cursor.AtEOF() && isIdentCont(s.cursor.Current()) {
		s.cursor.Advance()
	}
	name := string(s.file.Content[begin:s.cursor.Position()])
	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: token.DollarIdentifier, Location: loc, Literal: name})
}
