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

import (
	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/token"
)

func (p *Preparser) emit(kind diagnostic.Kind, loc token.Location, code diagnostic.Code, detail string) {
	p.sink.Emit(diagnostic.Diagnostic{
		Kind:     kind,
		File:     p.fileName,
		Location: loc,
		Code:     code,
		Detail:   detail,
	})
}

func (p *Preparser) errorAt(loc token.Location, code diagnostic.Code, detail string) {
	p.emit(diagnostic.Error, loc, code, detail)
}

func (p *Preparser) warnAt(loc token.Location, code diagnostic.Code, detail string) {
	p.emit(diagnostic.Warning, loc, code, detail)
}

// accept consumes and returns (token, true) if the current token has kind,
// otherwise emits EXPECTED_TOKEN and returns (zero, false) without
// consuming anything — the preparser-level wrapper around cursor.accept
// that also reports the miss, since most call sites want exactly that.
func (p *Preparser) accept(kind token.Kind) (token.Token, bool) {
	if tok, ok := p.cur.accept(kind); ok {
		return tok, true
	}
	p.errorAt(p.cur.current().Location, diagnostic.ExpectedToken, kind.String())
	return token.Token{}, false
}

// getName accepts a normal or string-form identifier, returning its
// literal text. On mismatch it emits EXPECTED_IDENTIFIER tagged with
// detail and returns the placeholder "__error__" so the caller can keep
// building a (partially wrong) declaration instead of unwinding.
func (p *Preparser) getName(st *state, detail string) string {
	tok := p.cur.current()
	if tok.Kind == token.Identifier || tok.Kind == token.StringFormIdentifier {
		p.cur.next()
		return tok.Literal
	}
	p.errorAt(tok.Location, diagnostic.ExpectedIdentifier, detail)
	return "__error__"
}

// textOf returns a String or StringFormIdentifier token's payload: String
// tokens carry their content in Value (normalized escapes), while
// StringFormIdentifier reuses the identifier convention and carries it in
// Literal. Every other kind's payload, if any, is in Literal.
func textOf(tok token.Token) string {
	if tok.Kind == token.String {
		return tok.Value
	}
	return tok.Literal
}

// newBlockStarters is the set of token kinds that can open a new top-level
// or block-level construct — used both by the dispatch table and by every
// recovery/boundary routine that needs to know "have I run off the end of
// the current item into the next one".
var newBlockStarters = map[token.Kind]bool{
	token.KwFun:    true,
	token.KwMacro:  true,
	token.KwModule: true,
	token.KwObject: true,
	token.KwPub:    true,
	token.KwType:   true,
	token.Hash:     true,
}

// isNewBlockStart reports whether the current token can open a new block,
// per §4.3: `fun, macro, module, object, pub, type, doc-comment, #,
// identifier!`.
func (p *Preparser) isNewBlockStart() bool {
	tok := p.cur.current()
	if newBlockStarters[tok.Kind] {
		return true
	}
	return tok.Kind == token.CommentDoc || tok.Kind == token.MacroIdentifier
}

// blockClosers is the set of kinds that close an enclosing block without
// themselves starting a new one — goToNextBlock stops just before these
// too, so the caller's own must_close check can still see them.
var blockClosers = map[token.Kind]bool{
	token.KwEnd:   true,
	token.KwElif:  true,
	token.KwElse:  true,
	token.KwCatch: true,
	token.RBrace:  true,
}

// goToNextBlock is the shared error-recovery routine: after a preparse
// routine fails to build a declaration or statement, it skips tokens until
// a new-block starter or a block-closer, so the caller can resynchronise
// on the next recognisable boundary instead of cascading further errors.
func (p *Preparser) goToNextBlock() {
	for !p.cur.atEOF() {
		if p.isNewBlockStart() {
			return
		}
		if blockClosers[p.cur.current().Kind] {
			return
		}
		p.cur.next()
	}
}

// preparseUntil copies token references into a Slice while stop does not
// hold, tracking paren/bracket/brace depth so a top-level separator inside
// a nested group never terminates early — the depth bookkeeping exists
// purely so stop's own checks (typically "is this a top-level `,`/`;`")
// don't have to reimplement it themselves.
func (p *Preparser) preparseUntil(stop func() bool) token.Slice {
	begin := p.cur.position
	depth := 0
	for !p.cur.atEOF() {
		if depth == 0 && stop() {
			break
		}
		switch p.cur.current().Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		p.cur.next()
	}
	return p.cur.tokens.Of(begin, p.cur.position)
}

// preparseUntilBalanced captures everything from the current `open` token
// through its matching `close`, inclusive, as a single Slice — used for
// `<generic-params>` spans and similar bracket-delimited runs where the
// scanner has already guaranteed balance.
func (p *Preparser) preparseUntilBalanced(open, close token.Kind) token.Slice {
	begin := p.cur.position
	if !p.cur.is(open) {
		return p.cur.tokens.Of(begin, begin)
	}
	depth := 0
	for !p.cur.atEOF() {
		switch p.cur.current().Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.cur.next()
				return p.cur.tokens.Of(begin, p.cur.position)
			}
		}
		p.cur.next()
	}
	return p.cur.tokens.Of(begin, p.cur.position)
}

// preparseCommaSep consumes a balanced `open ... close` delimited sequence
// and returns the items split at top-level commas. Inner brackets are
// captured wholesale into the current item since the scanner already
// guarantees balance. An empty `open close` returns an empty, non-nil
// slice so callers can distinguish "no parameter list at all" (nil) from
// "an explicit empty one" (len 0, non-nil) where that distinction matters.
func (p *Preparser) preparseCommaSep(open, close token.Kind) []token.Slice {
	if _, ok := p.accept(open); !ok {
		return nil
	}
	items := []token.Slice{}
	if p.cur.is(close) {
		p.cur.next()
		return items
	}
	for {
		item := p.preparseUntil(func() bool {
			return p.cur.is(token.Comma) || p.cur.is(close) || p.cur.atEOF()
		})
		items = append(items, item)
		if p.cur.is(token.Comma) {
			p.cur.next()
			continue
		}
		break
	}
	p.accept(close)
	return items
}

func (p *Preparser) preparseParenCommaSep() []token.Slice {
	return p.preparseCommaSep(token.LParen, token.RParen)
}

func (p *Preparser) preparseHookCommaSep() []token.Slice {
	return p.preparseCommaSep(token.LBracket, token.RBracket)
}

func (p *Preparser) preparseBraceCommaSep() []token.Slice {
	return p.preparseCommaSep(token.LBrace, token.RBrace)
}
