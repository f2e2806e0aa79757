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
	"regexp"

	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/token"
)

// parseImport parses `import "<path>" [as <ident>] ;`.
func (p *Preparser) parseImport() Import {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `import`

	imp := Import{}
	tok := p.cur.current()
	if tok.Kind == token.String || tok.Kind == token.StringFormIdentifier {
		imp.Value = textOf(tok)
		p.cur.next()
	} else {
		p.errorAt(tok.Location, diagnostic.ExpectedImportValue, "")
	}

	if p.cur.is(token.KwAs) {
		p.cur.next()
		imp.As = p.getName(st, "import alias")
		imp.HasAs = true
	}

	end := p.cur.current()
	p.accept(token.Semicolon)
	imp.Location = st.closeLocation(start, end.Location)
	return imp
}

// parseMacro parses `macro <name> [(<param>, …)] = { <tokens> } ;`.
func (p *Preparser) parseMacro() Macro {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `macro`

	m := Macro{Name: p.getName(st, "macro name")}
	if p.cur.is(token.LParen) {
		m.Params = p.preparseParenCommaSep()
	}

	p.accept(token.Equal)

	var bodySlice token.Slice
	if _, ok := p.accept(token.LBrace); ok {
		bodyBegin := p.cur.position
		depth := 1
	capture:
		for !p.cur.atEOF() {
			switch p.cur.current().Kind {
			case token.LBrace:
				depth++
			case token.RBrace:
				depth--
				if depth == 0 {
					break capture
				}
			}
			p.cur.next()
		}
		bodySlice = p.cur.tokens.Of(bodyBegin, p.cur.position)
		p.accept(token.RBrace)
	}

	end := p.cur.previous()
	p.accept(token.Semicolon)

	if bodySlice.IsEmpty() { // `{}`, or no braces at all
		p.errorAt(start, diagnostic.MacroDoNothing, "")
	}

	body := bodySlice.AsVector()
	eofLoc := end.Location.End(end.Location.EndLine, end.Location.EndColumn, end.Location.EndPosition)
	body = append(body, token.NewEOF("", eofLoc.StartLine, eofLoc.StartColumn, eofLoc.StartPosition))
	m.Tokens = body

	m.Location = st.closeLocation(start, end.Location)
	return m
}

// parsePackageTopLevel parses `package [<name>] = { [pub] .<sub-path>; }*
// end`. A second package declaration reports DUPLICATE_PACKAGE_DECLARATION
// and is skipped to the next block.
func (p *Preparser) parsePackageTopLevel() {
	if p.info.HasPackage {
		p.errorAt(p.cur.current().Location, diagnostic.DuplicatePackageDeclaration, "")
		p.cur.next()
		p.goToNextBlock()
		return
	}
	pkg := p.parsePackage()
	p.info.Package = &pkg
	p.info.HasPackage = true
}

var subPathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

func (p *Preparser) parsePackage() Package {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `package`

	pkg := Package{}
	if p.cur.current().Kind == token.Identifier {
		pkg.Name = p.getName(st, "package name")
		pkg.HasName = true
	}

	p.accept(token.Equal)

	seenNames := map[string]bool{}
	for !p.cur.is(token.KwEnd) && !p.cur.atEOF() {
		vis := Private
		if p.cur.is(token.KwPub) {
			p.cur.next()
			vis = Public
		}
		p.accept(token.Dot)
		subLoc := p.cur.current().Location
		path := p.getName(st, "sub-package path")
		for p.cur.is(token.Dot) {
			p.cur.next()
			path += "." + p.getName(st, "sub-package path")
		}
		if !subPathPattern.MatchString(path) {
			p.errorAt(subLoc, diagnostic.UnexpectedCharacter, path)
		}
		if seenNames[path] {
			p.errorAt(subLoc, diagnostic.PackageNameAlreadyDefined, path)
		}
		seenNames[path] = true

		global := path
		if p.defaultPackageAccess != "" {
			global = p.defaultPackageAccess + "." + path
		}
		pkg.SubPackages = append(pkg.SubPackages, SubPackage{Visibility: vis, Name: path, GlobalName: global})
		p.accept(token.Semicolon)
	}

	end := p.cur.current()
	p.accept(token.KwEnd)
	pkg.Location = st.closeLocation(start, end.Location)
	return pkg
}

// parseModule parses `module <dotted-name> = <decl>* end`, recursively
// dispatching its body through the same top-level rules.
func (p *Preparser) parseModule(st *state) Decl {
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `module`

	mod := ModuleDecl{Visibility: st.visibility}
	mod.Name = p.getName(st, "module name")
	for p.cur.is(token.Dot) {
		p.cur.next()
		mod.Name += "." + p.getName(st, "module name")
	}

	p.accept(token.Equal)

	prevTarget := p.target
	p.target = &mod.Body
	inner := newState()
	for !p.cur.is(token.KwEnd) && !p.cur.atEOF() {
		p.dispatchTopLevel(inner)
	}
	p.target = prevTarget

	end := p.cur.current()
	if _, ok := p.accept(token.KwEnd); !ok {
		p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
	}
	mod.Location = st.closeLocation(start, end.Location)
	return mod
}

// parseConstant parses either constant shape of §4.4.5.
func (p *Preparser) parseConstant(st *state) Decl {
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `val`

	if p.cur.is(token.LParen) {
		return p.parseMultipleConstant(st, start)
	}
	return p.parseSimpleConstant(st, start)
}

func (p *Preparser) parseSimpleConstant(st *state, start token.Location) Decl {
	name := p.getName(st, "constant name")
	dt := p.preparseUntil(func() bool {
		return p.cur.is(token.ColonEqual) || p.cur.is(token.Semicolon) || p.cur.atEOF()
	})
	if dt.IsEmpty() {
		p.errorAt(p.cur.current().Location, diagnostic.ExpectedDataType, "")
	}
	p.accept(token.ColonEqual)
	expr := p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })

	end := p.cur.current()
	p.accept(token.Semicolon)

	info := ConstantInfo{Name: name, ExprTokens: expr, DataTypeTokens: dt, Visibility: st.visibility}
	return ConstantDecl{Simple: &info, Location: st.closeLocation(start, end.Location)}
}

func (p *Preparser) parseMultipleConstant(st *state, start token.Location) Decl {
	var names []string
	var dataTypes []token.Slice
	p.cur.next() // `(`
	for !p.cur.is(token.RParen) && !p.cur.atEOF() {
		names = append(names, p.getName(st, "constant name"))
		dt := p.preparseUntil(func() bool {
			return p.cur.is(token.Comma) || p.cur.is(token.RParen) || p.cur.atEOF()
		})
		dataTypes = append(dataTypes, dt)
		if p.cur.is(token.Comma) {
			p.cur.next()
		}
	}
	p.accept(token.RParen)
	p.accept(token.ColonEqual)

	var exprs []token.Slice
	if _, ok := p.accept(token.LParen); ok {
		for !p.cur.is(token.RParen) && !p.cur.atEOF() {
			e := p.preparseUntil(func() bool {
				return p.cur.is(token.Comma) || p.cur.is(token.RParen) || p.cur.atEOF()
			})
			exprs = append(exprs, e)
			if p.cur.is(token.Comma) {
				p.cur.next()
			}
		}
		p.accept(token.RParen)
	}

	if len(exprs) < len(names) {
		p.errorAt(p.cur.current().Location, diagnostic.MissOneOrManyExpressions, "")
		for len(exprs) < len(names) {
			exprs = append(exprs, token.Vector(nil).Of(0, 0))
		}
	} else if len(names) < len(exprs) {
		p.errorAt(p.cur.current().Location, diagnostic.MissOneOrManyIdentifiers, "")
		for len(names) < len(exprs) {
			names = append(names, "__error__")
			dataTypes = append(dataTypes, token.Vector(nil).Of(0, 0))
		}
	}

	infos := make([]ConstantInfo, len(names))
	for i, n := range names {
		infos[i] = ConstantInfo{Name: n, ExprTokens: exprs[i], DataTypeTokens: dataTypes[i], Visibility: st.visibility}
	}

	end := p.cur.current()
	p.accept(token.Semicolon)
	return ConstantDecl{Multiple: infos, Location: st.closeLocation(start, end.Location)}
}

// parseErrorDecl parses `error <name> [[<generic-params>]] [: <data-type-tokens>] ;`.
func (p *Preparser) parseErrorDecl(st *state) Decl {
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `error`

	decl := ErrorDecl{Visibility: st.visibility}
	decl.Name = p.getName(st, "error name")

	if p.cur.is(token.Less) {
		decl.GenericParams = p.preparseUntilBalanced(token.Less, token.Greater)
		decl.HasGenericParams = true
	}

	if p.cur.is(token.Colon) {
		p.cur.next()
		decl.DataTypeTokens = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
		decl.HasDataType = true
	}

	end := p.cur.current()
	p.accept(token.Semicolon)
	decl.Location = st.closeLocation(start, end.Location)
	return decl
}

// parseUse parses `use <path-tokens> ;`.
func (p *Preparser) parseUse() Decl {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `use`

	path := p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
	if path.IsEmpty() {
		p.errorAt(p.cur.current().Location, diagnostic.ExpectedIdentifier, "use path")
	}
	end := p.cur.current()
	p.accept(token.Semicolon)
	return UseDecl{PathTokens: path, Location: st.closeLocation(start, end.Location)}
}

// parseInclude parses `include <path-tokens> ;`.
func (p *Preparser) parseInclude() Decl {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `include`

	path := p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
	if path.IsEmpty() {
		p.errorAt(p.cur.current().Location, diagnostic.ExpectedIdentifier, "include path")
	}
	end := p.cur.current()
	p.accept(token.Semicolon)
	return IncludeDecl{PathTokens: path, Location: st.closeLocation(start, end.Location)}
}

// parseMacroExpandCore parses `<name>!( <arg>, … ) ;` shared by both the
// declaration position and the function-body-item position.
func (p *Preparser) parseMacroExpandCore() *MacroExpand {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	nameTok := p.cur.current()
	p.cur.next() // macro identifier, already fused with the trailing '!'

	me := &MacroExpand{Name: nameTok.Literal}
	if p.cur.is(token.LParen) {
		me.Args = p.preparseParenCommaSep()
		me.HasArgs = true
	}

	end := p.cur.current()
	p.accept(token.Semicolon)
	me.Location = st.closeLocation(start, end.Location)
	return me
}

// parseLib parses `lib ( "<C|CC|CPP>" ) <name>? = <body> end`.
func (p *Preparser) parseLib() Decl {
	st := newState()
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `lib`

	decl := LibDecl{}
	p.accept(token.LParen)
	fromTok := p.cur.current()
	fromText := textOf(fromTok)
	switch fromText {
	case "C", "CC":
		decl.From = LibCC
	case "CPP":
		decl.From = LibCPP
	default:
		p.errorAt(fromTok.Location, diagnostic.UnknownFromValueInLib, fromText)
	}
	if fromTok.Kind == token.String || fromTok.Kind == token.StringFormIdentifier {
		p.cur.next()
	}
	p.accept(token.RParen)

	if p.cur.current().Kind == token.Identifier {
		decl.Name = p.getName(st, "lib name")
		decl.HasName = true
	}

	p.accept(token.Equal)
	decl.Body = p.parseLibBody()

	end := p.cur.current()
	if _, ok := p.accept(token.KwEnd); !ok {
		p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
	}
	decl.Location = st.closeLocation(start, end.Location)
	return decl
}

func (p *Preparser) parseLibBody() []LibBodyItem {
	var items []LibBodyItem
	for !p.cur.is(token.KwEnd) && !p.cur.atEOF() {
		item, ok := p.parseLibBodyItem()
		if ok {
			items = append(items, item)
		}
	}
	return items
}

func (p *Preparser) parseLibBodyItem() (LibBodyItem, bool) {
	st := newState()
	start := st.openLocation(p.cur.current().Location)

	switch {
	case p.cur.is(token.KwVal):
		p.cur.next()
		item := LibBodyItem{}
		item.ConstName = p.getName(st, "lib constant name")
		item.ConstType = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
		end := p.cur.current()
		p.accept(token.Semicolon)
		item.Location = st.closeLocation(start, end.Location)
		return item, true
	case p.cur.is(token.KwFun):
		p.cur.next()
		item := LibBodyItem{IsFun: true}
		item.FunName = p.getName(st, "lib function name")
		if p.cur.is(token.LParen) {
			item.Params = p.preparseParenCommaSep()
			item.HasParams = true
		}
		item.ReturnType = p.preparseUntil(func() bool {
			return p.cur.is(token.ColonEqual) || p.cur.is(token.Semicolon) || p.cur.atEOF()
		})
		if p.cur.is(token.ColonEqual) {
			p.cur.next()
			item.NewName = p.getName(st, "lib new name")
			item.HasNewName = true
		}
		end := p.cur.current()
		p.accept(token.Semicolon)
		item.Location = st.closeLocation(start, end.Location)
		return item, true
	case p.cur.is(token.KwType) || p.cur.is(token.KwObject):
		// type and object members are reserved but not implemented for foreign lib bodies.
		p.cur.next()
		p.goToNextBlock()
		return LibBodyItem{}, false
	default:
		p.errorAt(p.cur.current().Location, diagnostic.UnexpectedToken, "")
		p.goToNextBlock()
		return LibBodyItem{}, false
	}
}
