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

// closePredicate decides whether a function-body-item loop should stop
// without consuming the current token, leaving it for the caller that
// knows how to close the enclosing block.
type closePredicate func(p *Preparser) bool

func mustCloseEnd(p *Preparser) bool {
	return p.cur.is(token.KwEnd) || p.cur.atEOF()
}

func mustCloseEndElifElse(p *Preparser) bool {
	return p.cur.is(token.KwEnd) || p.cur.is(token.KwElif) || p.cur.is(token.KwElse) || p.cur.atEOF()
}

func mustCloseSemiEOF(p *Preparser) bool {
	return p.cur.is(token.Semicolon) || p.cur.atEOF()
}

func mustCloseEndCatch(p *Preparser) bool {
	return p.cur.is(token.KwEnd) || p.cur.is(token.KwCatch) || p.cur.atEOF()
}

func mustCloseRBrace(p *Preparser) bool {
	return p.cur.is(token.RBrace) || p.cur.atEOF()
}

// mustCloseFunBlock stops a function body at `end` or at a top-level
// declaration starter that can never also open a function-body item — a
// function whose closing `end` was dropped from the source still yields a
// bounded body instead of consuming the rest of the file. `fun` and a
// macro identifier are deliberately excluded from this set: both also
// open a legitimate body item (a lambda, a macro expansion statement), so
// treating them as a close would cut the body short on perfectly valid
// input.
func mustCloseFunBlock(p *Preparser) bool {
	if p.cur.is(token.KwEnd) || p.cur.atEOF() {
		return true
	}
	switch p.cur.current().Kind {
	case token.KwMacro, token.KwModule, token.KwObject, token.KwPub, token.KwType, token.Hash:
		return true
	default:
		return false
	}
}

// ConditionalBranch is one head of an if/elif chain: the guard expression,
// an optional `:>` capture, and the body it guards.
type ConditionalBranch struct {
	Expr       token.Slice
	Capture    token.Slice
	HasCapture bool
	Body       []FunBodyItem
}

type Lambda struct {
	Name    string
	HasName bool

	Params    []token.Slice
	HasParams bool

	ReturnType    token.Slice
	HasReturnType bool

	Item *FunBodyItem

	CallArgs    []token.Slice
	HasCallArgs bool
}

type AsmItem struct{ Args []token.Slice }
type AwaitItem struct{ Expr token.Slice }
type BlockItem struct{ Body []FunBodyItem }
type BreakItem struct {
	Name    string
	HasName bool
}
type DeferItem struct{ Item *FunBodyItem }
type DropItem struct{ Expr token.Slice }
type ForItem struct {
	Name       string
	HasName    bool
	Expr       token.Slice
	Capture    token.Slice
	HasCapture bool
	Body       []FunBodyItem
}
type IfItem struct {
	If      ConditionalBranch
	Elifs   []ConditionalBranch
	Else    []FunBodyItem
	HasElse bool
}
type MatchCase struct {
	Pattern token.Slice
	Cond    token.Slice
	HasCond bool
	Item    *FunBodyItem
}
type MatchItem struct {
	Expr  token.Slice
	Cases []MatchCase
}
type NextItem struct {
	Name    string
	HasName bool
}
type RaiseItem struct{ Expr token.Slice }
type ReturnItem struct {
	Expr    token.Slice
	HasExpr bool
}
type TryItem struct {
	Body      []FunBodyItem
	CatchExpr token.Slice
	HasCatch  bool
	CatchBody []FunBodyItem
}
type UnsafeItem struct{ Body []FunBodyItem }
type VarItem struct {
	Name        string
	DataType    token.Slice
	HasDataType bool
	Expr        token.Slice
	IsMut       bool
	IsTrace     bool
	IsRef       bool
	IsDrop      bool
}
type WhileItem struct {
	Expr token.Slice
	Body []FunBodyItem
}

// FunBodyItem is the sum type of every statement/expression-run a function
// body can contain. Exactly one of the pointer/value fields below is set;
// Exprs is the zero-cost default shape, which is why it is a plain Slice
// rather than a pointer.
type FunBodyItem struct {
	Location token.Location

	Exprs       token.Slice
	HasExprs    bool
	Lambda      *Lambda
	MacroExpand *MacroExpand
	Asm         *AsmItem
	Await       *AwaitItem
	Block       *BlockItem
	Break       *BreakItem
	Defer       *DeferItem
	Drop        *DropItem
	For         *ForItem
	If          *IfItem
	Match       *MatchItem
	Next        *NextItem
	Raise       *RaiseItem
	Return      *ReturnItem
	Try         *TryItem
	Unsafe      *UnsafeItem
	Var         *VarItem
	While       *WhileItem
}

// isBlockShaped reports whether item ends with an explicit closer (`end`
// or `}`) rather than a `;` — used by stmt_defer to decide whether a
// trailing `;` is superfluous.
func (item FunBodyItem) isBlockShaped() bool {
	return item.Block != nil || item.If != nil || item.For != nil || item.While != nil ||
		item.Try != nil || item.Unsafe != nil || item.Match != nil
}

// parseFunBody loops parseFunBodyItem until mustClose holds, without
// consuming the closing token itself.
func (p *Preparser) parseFunBody(mustClose closePredicate) []FunBodyItem {
	var items []FunBodyItem
	for !mustClose(p) {
		items = append(items, p.parseFunBodyItem())
	}
	return items
}

// isStatementStart reports whether the current token opens one of the
// named FunBodyItem variants rather than a bare expression run — the same
// token set doubles as the boundary an in-progress exprs run stops at.
func (p *Preparser) isStatementStart() bool {
	tok := p.cur.current()
	switch tok.Kind {
	case token.KwBegin, token.KwBreak, token.KwFor, token.KwFun, token.KwIf, token.KwMatch,
		token.KwNext, token.KwWhile, token.KwMut, token.KwVal, token.KwReturn,
		token.KwTry, token.KwAwait, token.KwAsm, token.KwRaise, token.KwDefer, token.KwUnsafe,
		token.MacroIdentifier, token.KwEnd, token.RBrace, token.Semicolon, token.EOF:
		return true
	case token.KwRef, token.KwTrace:
		return p.cur.isAhead(1, token.Colon)
	case token.KwDrop:
		return true
	case token.At:
		return p.cur.isAhead(1, token.LBrace)
	default:
		return false
	}
}

// parseFunBodyItem dispatches exactly one body item.
func (p *Preparser) parseFunBodyItem() FunBodyItem {
	tok := p.cur.current()
	switch {
	case tok.Kind == token.KwBegin:
		return p.parseBlockBeginEnd()
	case tok.Kind == token.At && p.cur.isAhead(1, token.LBrace):
		return p.parseBlockBrace()
	case tok.Kind == token.KwBreak:
		return p.parseBreakOrNext(true)
	case tok.Kind == token.KwNext:
		return p.parseBreakOrNext(false)
	case tok.Kind == token.KwFor:
		return p.parseFor()
	case tok.Kind == token.KwFun:
		return p.parseLambda()
	case tok.Kind == token.KwIf:
		return p.parseIf()
	case tok.Kind == token.KwMatch:
		return p.parseMatch()
	case tok.Kind == token.KwWhile:
		return p.parseWhile()
	case tok.Kind == token.KwReturn:
		return p.parseReturn()
	case tok.Kind == token.KwTry:
		return p.parseTry()
	case tok.Kind == token.KwAwait:
		return p.parseAwait()
	case tok.Kind == token.KwAsm:
		return p.parseAsm()
	case tok.Kind == token.KwRaise:
		return p.parseRaise()
	case tok.Kind == token.KwDefer:
		return p.parseDefer()
	case tok.Kind == token.KwUnsafe:
		return p.parseUnsafe()
	case tok.Kind == token.MacroIdentifier:
		start := tok.Location
		me := p.parseMacroExpandCore()
		return FunBodyItem{Location: start.Merge(me.Location), MacroExpand: me}
	case tok.Kind == token.KwRef && p.cur.isAhead(1, token.Colon):
		return p.parseVar(false, false, true, false)
	case tok.Kind == token.KwTrace && p.cur.isAhead(1, token.Colon):
		return p.parseVar(false, true, false, false)
	case tok.Kind == token.KwDrop && p.cur.isAhead(1, token.Colon):
		return p.parseVar(false, false, false, true)
	case tok.Kind == token.KwDrop:
		return p.parseDrop()
	case tok.Kind == token.KwMut || tok.Kind == token.KwVal:
		return p.parseVar(tok.Kind == token.KwMut, false, false, false)
	default:
		return p.parseExprs()
	}
}

func (p *Preparser) parseExprs() FunBodyItem {
	start := p.cur.current().Location
	begin := p.cur.position
	for !p.cur.atEOF() && !p.cur.is(token.Semicolon) && !p.cur.is(token.KwEnd) && !p.cur.is(token.RBrace) && !p.isStatementStart() {
		p.cur.next()
	}
	slice := p.cur.tokens.Of(begin, p.cur.position)
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Exprs: slice, HasExprs: true}
}

func (p *Preparser) parseBlockBeginEnd() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // begin
	body := p.parseFunBody(mustCloseEnd)
	end := p.cur.current()
	p.accept(token.KwEnd)
	return FunBodyItem{Location: start.Merge(end.Location), Block: &BlockItem{Body: body}}
}

func (p *Preparser) parseBlockBrace() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // '@'
	p.accept(token.LBrace)
	body := p.parseFunBody(mustCloseRBrace)
	end := p.cur.current()
	p.accept(token.RBrace)
	return FunBodyItem{Location: start.Merge(end.Location), Block: &BlockItem{Body: body}}
}

func (p *Preparser) parseBreakOrNext(isBreak bool) FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // break|next
	item := FunBodyItem{}
	name := ""
	hasName := false
	if p.cur.current().Kind == token.Identifier {
		name = p.cur.current().Literal
		hasName = true
		p.cur.next()
	}
	end := p.cur.current()
	p.accept(token.Semicolon)
	item.Location = start.Merge(end.Location)
	if isBreak {
		item.Break = &BreakItem{Name: name, HasName: hasName}
	} else {
		item.Next = &NextItem{Name: name, HasName: hasName}
	}
	return item
}

func (p *Preparser) parseDrop() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // drop
	expr := p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Drop: &DropItem{Expr: expr}}
}

func (p *Preparser) parseRaise() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // raise
	expr := p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Raise: &RaiseItem{Expr: expr}}
}

func (p *Preparser) parseAwait() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // await
	expr := p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Await: &AwaitItem{Expr: expr}}
}

func (p *Preparser) parseAsm() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // asm
	args := p.preparseParenCommaSep()
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Asm: &AsmItem{Args: args}}
}

func (p *Preparser) parseReturn() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // return
	item := ReturnItem{}
	if !p.cur.is(token.Semicolon) && !p.cur.atEOF() {
		item.Expr = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
		item.HasExpr = true
	}
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Return: &item}
}

func (p *Preparser) parseDefer() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // defer
	inner := p.parseFunBodyItem()
	if inner.isBlockShaped() && p.cur.is(token.Semicolon) {
		p.warnAt(p.cur.current().Location, diagnostic.UnusedSemicolon, "superfluous after block-shaped defer item")
		p.cur.next()
	}
	end := p.cur.previous()
	return FunBodyItem{Location: start.Merge(end.Location), Defer: &DeferItem{Item: &inner}}
}

func (p *Preparser) parseUnsafe() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // unsafe
	p.accept(token.Equal)
	body := p.parseFunBody(mustCloseEnd)
	end := p.cur.current()
	p.accept(token.KwEnd)
	return FunBodyItem{Location: start.Merge(end.Location), Unsafe: &UnsafeItem{Body: body}}
}

func (p *Preparser) parseVar(isMut, isTrace, isRef, isDrop bool) FunBodyItem {
	start := p.cur.current().Location
	if isTrace || isRef || isDrop {
		p.cur.next() // ref|trace|drop
		p.accept(token.Colon)
		isMut = p.cur.is(token.KwMut)
	}
	p.cur.next() // val|mut
	item := VarItem{IsMut: isMut, IsTrace: isTrace, IsRef: isRef, IsDrop: isDrop}
	item.Name = p.getName(newState(), "variable name")
	item.DataType = p.preparseUntil(func() bool { return p.cur.is(token.ColonEqual) || p.cur.is(token.Semicolon) || p.cur.atEOF() })
	item.HasDataType = !item.DataType.IsEmpty()
	p.accept(token.ColonEqual)
	item.Expr = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
	end := p.cur.current()
	p.accept(token.Semicolon)
	return FunBodyItem{Location: start.Merge(end.Location), Var: &item}
}

// parseConditionalHead reads `<expr> [:> <capture>]`, stopping the
// expression capture at `do`.
func (p *Preparser) parseConditionalHead() (token.Slice, token.Slice, bool) {
	expr := p.preparseUntil(func() bool {
		return p.cur.is(token.ColonGreater) || p.cur.is(token.KwDo) || p.cur.atEOF()
	})
	var capture token.Slice
	hasCapture := false
	if p.cur.is(token.ColonGreater) {
		p.cur.next()
		capture = p.preparseUntil(func() bool { return p.cur.is(token.KwDo) || p.cur.atEOF() })
		hasCapture = true
	}
	return expr, capture, hasCapture
}

func (p *Preparser) parseIf() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // if
	item := IfItem{}
	expr, capture, hasCapture := p.parseConditionalHead()
	p.accept(token.KwDo)
	body := p.parseFunBody(mustCloseEndElifElse)
	item.If = ConditionalBranch{Expr: expr, Capture: capture, HasCapture: hasCapture, Body: body}

	for p.cur.is(token.KwElif) {
		p.cur.next()
		e, c, hc := p.parseConditionalHead()
		p.accept(token.KwDo)
		b := p.parseFunBody(mustCloseEndElifElse)
		item.Elifs = append(item.Elifs, ConditionalBranch{Expr: e, Capture: c, HasCapture: hc, Body: b})
	}

	if p.cur.is(token.KwElse) {
		p.cur.next()
		item.Else = p.parseFunBody(mustCloseEnd)
		item.HasElse = true
	}

	end := p.cur.current()
	if _, ok := p.accept(token.KwEnd); !ok {
		p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
	}
	return FunBodyItem{Location: start.Merge(end.Location), If: &item}
}

func (p *Preparser) parseWhile() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // while
	expr := p.preparseUntil(func() bool { return p.cur.is(token.KwDo) || p.cur.atEOF() })
	p.accept(token.KwDo)
	body := p.parseFunBody(mustCloseEnd)
	end := p.cur.current()
	p.accept(token.KwEnd)
	return FunBodyItem{Location: start.Merge(end.Location), While: &WhileItem{Expr: expr, Body: body}}
}

func (p *Preparser) parseFor() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // for
	item := ForItem{}
	if p.cur.is(token.LParen) {
		p.cur.next()
		item.Name = p.getName(newState(), "for-loop name")
		item.HasName = true
		p.accept(token.RParen)
	}
	item.Expr = p.preparseUntil(func() bool {
		return p.cur.is(token.ColonGreater) || p.cur.is(token.KwDo) || p.cur.atEOF()
	})
	if p.cur.is(token.ColonGreater) {
		p.cur.next()
		item.Capture = p.preparseUntil(func() bool { return p.cur.is(token.KwDo) || p.cur.atEOF() })
		item.HasCapture = true
	}
	p.accept(token.KwDo)
	item.Body = p.parseFunBody(mustCloseEnd)
	end := p.cur.current()
	p.accept(token.KwEnd)
	return FunBodyItem{Location: start.Merge(end.Location), For: &item}
}

func (p *Preparser) parseTry() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // try
	p.accept(token.KwDo)
	item := TryItem{}
	item.Body = p.parseFunBody(mustCloseEndCatch)
	if p.cur.is(token.KwCatch) {
		p.cur.next()
		if !p.cur.is(token.KwDo) {
			item.CatchExpr = p.preparseUntil(func() bool { return p.cur.is(token.KwDo) || p.cur.atEOF() })
		}
		p.accept(token.KwDo)
		item.CatchBody = p.parseFunBody(mustCloseEnd)
		item.HasCatch = true
	}
	end := p.cur.current()
	if _, ok := p.accept(token.KwEnd); !ok {
		p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
	}
	return FunBodyItem{Location: start.Merge(end.Location), Try: &item}
}

func (p *Preparser) parseMatch() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // match
	item := MatchItem{}
	item.Expr = p.preparseUntil(func() bool { return p.cur.is(token.KwDo) || p.cur.atEOF() })
	p.accept(token.KwDo)
	p.accept(token.LBrace)

	for !p.cur.is(token.RBrace) && !p.cur.atEOF() {
		c := MatchCase{}
		c.Pattern = p.preparseUntil(func() bool {
			return p.cur.is(token.Question) || p.cur.is(token.FatArrow) || p.cur.atEOF()
		})
		if p.cur.is(token.Question) {
			p.cur.next()
			c.Cond = p.preparseUntil(func() bool { return p.cur.is(token.FatArrow) || p.cur.atEOF() })
			c.HasCond = true
		}
		p.accept(token.FatArrow)
		caseItem := p.parseFunBodyItem()
		c.Item = &caseItem
		item.Cases = append(item.Cases, c)
	}
	p.accept(token.RBrace)

	end := p.cur.current()
	if _, ok := p.accept(token.KwEnd); !ok {
		p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
	}
	return FunBodyItem{Location: start.Merge(end.Location), Match: &item}
}

// parseLambda parses `fun <name>? [(params)] [<ret>] -> <item> ; [\
// (<params-call>) ;]` when used as a function-body item (as opposed to a
// top-level `fun` declaration).
func (p *Preparser) parseLambda() FunBodyItem {
	start := p.cur.current().Location
	p.cur.next() // fun
	lam := Lambda{}
	if p.cur.current().Kind == token.Identifier {
		lam.Name = p.cur.current().Literal
		lam.HasName = true
		p.cur.next()
	}
	if p.cur.is(token.LParen) {
		lam.Params = p.preparseParenCommaSep()
		lam.HasParams = true
	}
	if !p.cur.is(token.Arrow) {
		lam.ReturnType = p.preparseUntil(func() bool { return p.cur.is(token.Arrow) || p.cur.atEOF() })
		lam.HasReturnType = !lam.ReturnType.IsEmpty()
	}
	if _, ok := p.accept(token.Arrow); !ok {
		p.errorAt(p.cur.current().Location, diagnostic.EOFNotExpected, "")
	}
	inner := p.parseFunBodyItem()
	lam.Item = &inner

	end := p.cur.previous()
	if p.cur.is(token.Backslash) {
		p.cur.next()
		lam.CallArgs = p.preparseParenCommaSep()
		lam.HasCallArgs = true
		end = p.cur.current()
		p.accept(token.Semicolon)
	}

	return FunBodyItem{Location: start.Merge(end.Location), Lambda: &lam}
}
