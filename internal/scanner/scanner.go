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

// Package scanner turns a source.File's bytes into a flat token.Vector with
// bracket groupings recursively balanced. It never produces a declaration;
// it only ever produces tokens.
package scanner

import (
	"github.com/hashicorp/go-hclog"

	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/source"
	"github.com/thelilylang/lily-sub001/internal/token"
)

// bracketFrame records an open L_* token's kind and location so a mismatch
// can be reported at the opening position if EOF is reached before its
// matching closer.
type bracketFrame struct {
	open token.Token
}

// Scanner has no persistent modes beyond the bracket stack: comment
// handling is purely lexical, not stateful across calls to Run.
type Scanner struct {
	file   *source.File
	cursor *source.Cursor
	sink   diagnostic.Sink
	logger hclog.Logger

	debugComments bool

	tokens   token.Vector
	brackets []bracketFrame
}

// Option configures a Scanner at construction time; the scanner never
// introduces a config-file/flag layer, only constructor parameters.
type Option func(*Scanner)

// WithLogger overrides the default no-op logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithDebugComments enables recognising `/--` doc comments in addition to
// `///`. Off by default.
func WithDebugComments(enabled bool) Option {
	return func(s *Scanner) { s.debugComments = enabled }
}

// New returns a Scanner reading f, reporting through sink.
func New(f *source.File, sink diagnostic.Sink, opts ...Option) *Scanner {
	s := &Scanner{
		file:   f,
		cursor: source.NewCursor(f),
		sink:   sink,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run consumes all bytes of the file, appends a trailing eof token and
// returns the resulting token vector. It never aborts before EOF; on any
// lexical error it emits a diagnostic and keeps scanning.
func (s *Scanner) Run(dumpFlag bool) token.Vector {
	for !s.cursor.AtEOF() {
		s.scanOne()
	}
	s.closeDanglingBrackets()
	s.pushEOF()
	if dumpFlag {
		s.logger.Debug("scan complete", "tokens", len(s.tokens), "errors", s.sink.ErrorCount())
	}
	return s.tokens
}

func (s *Scanner) pushEOF() {
	tok := token.NewEOF(s.file.Name, s.cursor.Line(), s.cursor.Column(), s.cursor.Position())
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) startLoc() token.Location {
	return token.Start(s.file.Name, s.cursor.Line(), s.cursor.Column(), s.cursor.Position())
}

func (s *Scanner) endLoc(start token.Location) token.Location {
	return start.End(s.cursor.Line(), s.cursor.Column(), s.cursor.Position())
}

func (s *Scanner) emit(kind diagnostic.Kind, loc token.Location, code diagnostic.Code, detail string) {
	s.sink.Emit(diagnostic.Diagnostic{
		Kind:     kind,
		File:     s.file.Name,
		Location: loc,
		Code:     code,
		Detail:   detail,
	})
}

func (s *Scanner) errorAt(loc token.Location, code diagnostic.Code, detail string) {
	s.emit(diagnostic.Error, loc, code, detail)
}

// scanOne consumes exactly one lexical unit: whitespace/comment (no token
// produced), a bracket, an identifier/keyword, a literal, or an operator.
func (s *Scanner) scanOne() {
	c := s.cursor.Current()

	switch {
	case isSpace(c):
		s.cursor.Advance()
		return
	case c == '/' && s.cursor.PeekAt(1) == '/':
		s.scanLineComment()
		return
	case c == '/' && s.debugComments && matchPrefix(s.cursor, "/--"):
		s.scanLineComment()
		return
	case c == '/' && s.cursor.PeekAt(1) == '*':
		s.scanBlockComment()
		return
	case c == '(' || c == '[' || c == '{':
		s.scanBracketOpen()
		return
	case c == ')' || c == ']' || c == '}':
		s.scanBracketClose()
		return
	case c == '\'':
		s.scanCharLiteral()
		return
	case c == '"':
		s.scanStringLiteral()
		return
	case c == 'b' && (s.cursor.PeekAt(1) == '\'' || s.cursor.PeekAt(1) == '"'):
		s.scanBitLiteral()
		return
	case c == '`':
		s.scanStringFormIdentifier()
		return
	case c == '$':
		s.scanDollarIdentifier()
		return
	case isDigit(c):
		s.scanNumber()
		return
	case isIdentStart(c):
		s.scanIdentifier()
		return
	default:
		s.scanOperator()
		return
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

func (s *Scanner) scanLineComment() {
	start := s.startLoc()
	doc := matchPrefix(s.cursor, "///")
	debugDoc := s.debugComments && matchPrefix(s.cursor, "/--")
	s.cursor.Advance()
	s.cursor.Advance()
	if doc {
		s.cursor.Advance()
	} else if debugDoc {
		s.cursor.Advance()
	}
	textStart := s.cursor.Position()
	for !s.cursor.AtEOF() && s.cursor.Current() != '\n' {
		s.cursor.Advance()
	}
	loc := s.endLoc(start)
	if !doc && !debugDoc {
		return // ordinary // comment: discarded, no token
	}
	text := string(s.file.Content[textStart:s.cursor.Position()])
	s.tokens = append(s.tokens, token.Token{Kind: token.CommentDoc, Location: loc, Value: text})
}

func matchPrefix(c *source.Cursor, prefix string) bool {
	for i := 0; i < len(prefix); i++ {
		if c.PeekAt(i) != prefix[i] {
			return false
		}
	}
	return true
}

func (s *Scanner) scanBlockComment() {
	start := s.startLoc()
	s.cursor.Advance()
	s.cursor.Advance()
	for {
		if s.cursor.AtEOF() {
			loc := s.endLoc(start)
			s.errorAt(loc, diagnostic.UnclosedCommentBlock, "")
			return
		}
		if s.cursor.Current() == '*' && s.cursor.PeekAt(1) == '/' {
			s.cursor.Advance()
			s.cursor.Advance()
			return
		}
		s.cursor.Advance()
	}
}
