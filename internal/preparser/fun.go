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

// Fun is `fun [@<object-impl-path>] <name-or-operator> [[<generic-params>]]
// [(<params>)] [when ...] [req ...] [<return-type>] = <body> end`, or the
// same signature terminated by `;` when it is a trait/lib prototype
// (HasBody false).
type Fun struct {
	ObjectImplPath    string
	HasObjectImplPath bool

	Name       string
	IsOperator bool

	GenericParams    token.Slice
	HasGenericParams bool

	Params    []token.Slice
	HasParams bool

	WhenClauses  []token.Slice
	HasWhen      bool
	WhenComptime bool

	ReqClauses  []token.Slice
	HasReq      bool
	ReqComptime bool

	ReturnType    token.Slice
	HasReturnType bool

	Body    []FunBodyItem
	HasBody bool

	Visibility Visibility
	Location   token.Location
}

type FunDecl struct {
	Fun Fun
}

// isOperatorKind reports whether kind is one of the punctuation/operator
// kinds rather than an identifier, keyword or literal — the iota ordering
// in token.Kind places every operator before Identifier, so this is a
// single bound check rather than an enumerated set.
func isOperatorKind(kind token.Kind) bool {
	return kind < token.Identifier
}

// parseFun parses one function declaration or prototype.
func (p *Preparser) parseFun(st *state, vis Visibility) Fun {
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `fun`

	fn := Fun{Visibility: vis}

	if p.cur.is(token.At) {
		p.cur.next()
		fn.ObjectImplPath = p.getName(st, "object impl path")
		for p.cur.is(token.Dot) {
			p.cur.next()
			fn.ObjectImplPath += "." + p.getName(st, "object impl path")
		}
		fn.HasObjectImplPath = true
	}

	nameTok := p.cur.current()
	switch {
	case nameTok.Kind == token.Identifier || nameTok.Kind == token.StringFormIdentifier:
		fn.Name = nameTok.Literal
		p.cur.next()
	case isOperatorKind(nameTok.Kind):
		fn.Name = nameTok.Kind.String()
		fn.IsOperator = true
		p.cur.next()
	default:
		p.errorAt(nameTok.Location, diagnostic.ExpectedFunIdentifier, "")
	}

	if p.cur.is(token.Less) {
		fn.GenericParams = p.preparseUntilBalanced(token.Less, token.Greater)
		fn.HasGenericParams = true
	}

	if p.cur.is(token.LParen) {
		fn.Params = p.preparseParenCommaSep()
		fn.HasParams = true
	}

	for {
		comptime := false
		if p.cur.is(token.KwComptime) {
			p.cur.next()
			comptime = true
		}
		switch {
		case p.cur.is(token.KwWhen):
			p.cur.next()
			fn.WhenClauses = append(fn.WhenClauses, p.parseCondClauses()...)
			fn.HasWhen = true
			fn.WhenComptime = fn.WhenComptime || comptime
			continue
		case p.cur.is(token.KwReq):
			p.cur.next()
			fn.ReqClauses = append(fn.ReqClauses, p.parseCondClauses()...)
			fn.HasReq = true
			fn.ReqComptime = fn.ReqComptime || comptime
			continue
		}
		if comptime {
			p.errorAt(p.cur.current().Location, diagnostic.UnexpectedToken, "")
		}
		break
	}

	if !p.cur.is(token.Equal) && !p.cur.is(token.Semicolon) && !p.cur.atEOF() {
		fn.ReturnType = p.preparseUntil(func() bool {
			return p.cur.is(token.Equal) || p.cur.is(token.Semicolon) || p.cur.atEOF()
		})
		fn.HasReturnType = true
	}

	if end, ok := p.cur.accept(token.Semicolon); ok {
		// Trait/lib-style prototype: no body.
		fn.Location = st.closeLocation(start, end.Location)
		return fn
	}

	p.accept(token.Equal)
	fn.HasBody = true
	fn.Body = p.parseFunBody(mustCloseFunBlock)

	end := p.cur.current()
	if _, ok := p.accept(token.KwEnd); !ok {
		p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
	}
	fn.Location = st.closeLocation(start, end.Location)
	return fn
}

// parseCondClauses reads the `[<cond>]+...` list a `when`/`req` clause
// carries: each condition is a bracket-delimited token slice when the
// source writes it that way, otherwise a run up to the next separator: the
// two forms are folded into the same capture-until-boundary shape so a
// condition never needs its own expression grammar here.
func (p *Preparser) parseCondClauses() []token.Slice {
	var clauses []token.Slice
	for {
		if p.cur.is(token.LBracket) {
			clauses = append(clauses, p.preparseUntilBalanced(token.LBracket, token.RBracket))
		} else {
			clauses = append(clauses, p.preparseUntil(func() bool {
				return p.cur.is(token.Plus) || p.cur.is(token.Comma) ||
					p.cur.is(token.KwWhen) || p.cur.is(token.KwReq) || p.cur.is(token.KwComptime) ||
					p.cur.is(token.Equal) || p.cur.is(token.Semicolon) || p.cur.atEOF()
			}))
		}
		if p.cur.is(token.Plus) || p.cur.is(token.Comma) {
			p.cur.next()
			continue
		}
		return clauses
	}
}
