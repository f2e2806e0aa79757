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
	"github.com/hashicorp/go-hclog"

	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/token"
)

// PreparserInfo is the preparser's whole output: the public/private import
// and macro lists, at most one package declaration, and the ordered
// sequence of top-level declarations.
type PreparserInfo struct {
	PublicImports  []Import
	PrivateImports []Import

	PublicMacros  []Macro
	PrivateMacros []Macro

	Package    *Package
	HasPackage bool

	Decls []Decl
}

// Preparser walks a token.Vector produced by the scanner and carves it
// into declaration/statement skeletons. It never re-reads source bytes.
type Preparser struct {
	fileName string
	cur      *cursor
	sink     diagnostic.Sink
	logger   hclog.Logger

	defaultPackageAccess string

	info PreparserInfo

	// target is where the next dispatched declaration is appended. It is
	// &info.Decls at the top level; parseModule swaps it to &mod.Body for
	// the extent of its nested dispatch loop and restores it afterward, so
	// a module's contents land in the module instead of leaking into the
	// file's own declaration list.
	target *[]Decl
}

// Option configures a Preparser at construction time.
type Option func(*Preparser)

// WithLogger overrides the default no-op logger.
func WithLogger(l hclog.Logger) Option {
	return func(p *Preparser) { p.logger = l }
}

// WithDefaultPackageAccess sets the prefix joined onto every sub-package's
// dotted path to produce its global_name.
func WithDefaultPackageAccess(prefix string) Option {
	return func(p *Preparser) { p.defaultPackageAccess = prefix }
}

// New returns a Preparser reading tokens (the scanner's borrowed output),
// reporting through sink and attributing diagnostics to fileName.
func New(fileName string, tokens token.Vector, sink diagnostic.Sink, opts ...Option) *Preparser {
	p := &Preparser{
		fileName: fileName,
		cur:      newCursor(tokens),
		sink:     sink,
		logger:   hclog.NewNullLogger(),
	}
	p.target = &p.info.Decls
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// appendDecl adds d to whichever slice is currently the dispatch target —
// the file's own Decls list, or a module's Body while inside it.
func (p *Preparser) appendDecl(d Decl) {
	*p.target = append(*p.target, d)
}

// Run walks the whole token vector and returns the built PreparserInfo.
func (p *Preparser) Run() PreparserInfo {
	st := newState()
	for !p.cur.atEOF() {
		p.dispatchTopLevel(st)
	}
	p.logger.Debug("preparse complete", "decls", len(p.info.Decls), "errors", p.sink.ErrorCount())
	return p.info
}

// dispatchTopLevel consumes exactly one top-level construct per §4.3's
// dispatch table, then resets visibility back to private for the next
// iteration (a `pub`/`global` prefix only ever reaches forward one decl).
func (p *Preparser) dispatchTopLevel(st *state) {
	switch {
	case p.cur.is(token.KwImport):
		p.addImport(st, p.parseImport())
		return
	case p.cur.is(token.KwMacro):
		p.addMacro(st, p.parseMacro())
		return
	case p.cur.is(token.KwPackage):
		p.parsePackageTopLevel()
		return
	case p.cur.is(token.KwPub):
		p.cur.next()
		p.dispatchAfterPub(st.withVisibility(Public))
		return
	case p.cur.is(token.KwWhen):
		p.skipWhenCondition()
		p.dispatchAfterWhen(st)
		return
	case p.cur.is(token.Hash):
		p.skipPreprocessDirective()
		return
	case p.cur.current().Kind == token.CommentDoc:
		p.cur.next()
		return
	case p.cur.current().Kind == token.MacroIdentifier:
		p.appendDecl(MacroExpandDecl{Expand: *p.parseMacroExpandCore()})
		return
	default:
		p.dispatchDecl(st)
	}
}

// dispatchAfterPub re-dispatches on the token following a `pub` prefix,
// restricted to the subset §4.3 allows there.
func (p *Preparser) dispatchAfterPub(st *state) {
	switch {
	case p.cur.is(token.KwImport):
		p.addImport(st, p.parseImport())
	case p.cur.is(token.KwFun):
		p.appendDecl(FunDecl{Fun: p.parseFun(st, st.visibility)})
	case p.cur.is(token.KwVal):
		p.appendDecl(p.parseConstant(st))
	case p.cur.is(token.KwModule):
		p.appendDecl(p.parseModule(st))
	case p.cur.is(token.KwType):
		p.appendDecl(p.parseType(st))
	case p.cur.is(token.KwMacro):
		p.addMacro(st, p.parseMacro())
	case p.cur.is(token.KwObject):
		p.appendDecl(ObjectDecl{Object: p.parseObject(st, false)})
	default:
		if p.isCloseIdent() && p.cur.isAhead(1, token.KwObject) {
			p.cur.next()
			p.appendDecl(ObjectDecl{Object: p.parseObject(st, true)})
			return
		}
		p.errorAt(p.cur.current().Location, diagnostic.UnexpectedToken, "")
		p.cur.next()
	}
}

// isCloseIdent reports whether the current token is the contextual `close`
// identifier that precedes `object` — it is not a reserved keyword, so it
// is recognised by its literal text the same way the scanner leaves it: a
// plain Identifier token.
func (p *Preparser) isCloseIdent() bool {
	tok := p.cur.current()
	return tok.Kind == token.Identifier && tok.Literal == "close"
}

// dispatchAfterWhen re-dispatches after a skipped when-condition, which
// only ever guards a function declaration.
func (p *Preparser) dispatchAfterWhen(st *state) {
	if p.cur.is(token.KwPub) {
		p.cur.next()
		st = st.withVisibility(Public)
	}
	if p.cur.is(token.KwFun) {
		p.appendDecl(FunDecl{Fun: p.parseFun(st, st.visibility)})
		return
	}
	p.errorAt(p.cur.current().Location, diagnostic.UnexpectedToken, "")
	p.cur.next()
}

// dispatchDecl handles every bare (non-pub, non-when) top-level opener that
// produces a declaration directly, plus the catch-all error case.
func (p *Preparser) dispatchDecl(st *state) {
	switch {
	case p.cur.is(token.KwModule):
		p.appendDecl(p.parseModule(st))
	case p.cur.is(token.KwFun):
		p.appendDecl(FunDecl{Fun: p.parseFun(st, st.visibility)})
	case p.cur.is(token.KwVal):
		p.appendDecl(p.parseConstant(st))
	case p.cur.is(token.KwType):
		p.appendDecl(p.parseType(st))
	case p.cur.is(token.KwError):
		p.appendDecl(p.parseErrorDecl(st))
	case p.cur.is(token.KwUse):
		p.appendDecl(p.parseUse())
	case p.cur.is(token.KwInclude):
		p.appendDecl(p.parseInclude())
	case p.cur.is(token.KwObject):
		p.appendDecl(ObjectDecl{Object: p.parseObject(st, false)})
	case p.isCloseIdent() && p.cur.isAhead(1, token.KwObject):
		p.cur.next()
		p.appendDecl(ObjectDecl{Object: p.parseObject(st, true)})
	case p.cur.is(token.KwLib):
		p.appendDecl(p.parseLib())
	case p.cur.is(token.KwTest):
		// `test` blocks preparse like an ordinary function body item run;
		// out of scope for the declaration skeleton itself, skip past it.
		p.cur.next()
		p.goToNextBlock()
	default:
		p.errorAt(p.cur.current().Location, diagnostic.UnexpectedToken, "")
		p.cur.next()
	}
}

func (p *Preparser) addImport(st *state, imp Import) {
	if st.visibility == Public {
		p.info.PublicImports = append(p.info.PublicImports, imp)
	} else {
		p.info.PrivateImports = append(p.info.PrivateImports, imp)
	}
}

func (p *Preparser) addMacro(st *state, m Macro) {
	if st.visibility == Public {
		p.info.PublicMacros = append(p.info.PublicMacros, m)
	} else {
		p.info.PrivateMacros = append(p.info.PrivateMacros, m)
	}
}

// skipWhenCondition advances past `when <condition>` up to (and including)
// the `:` that separates it from the guarded declaration.
func (p *Preparser) skipWhenCondition() {
	p.cur.next() // `when`
	for !p.cur.is(token.Colon) && !p.cur.atEOF() && !p.isNewBlockStart() {
		p.cur.next()
	}
	p.accept(token.Colon)
}

// skipPreprocessDirective advances past a `#`-introduced directive; its
// body is unspecified by this layer, so it is treated as a single token
// run up to end of line equivalent (the next new-block starter or `;`).
func (p *Preparser) skipPreprocessDirective() {
	p.cur.next() // '#'
	for !p.cur.atEOF() && !p.isNewBlockStart() && !p.cur.is(token.Semicolon) {
		p.cur.next()
	}
	p.accept(token.Semicolon)
}
