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

// TypeKind distinguishes the three shapes `type <name> ... = <body>` can
// take.
type TypeKind int

const (
	TypeAlias TypeKind = iota
	TypeEnum
	TypeRecord
)

// EnumVariant is one member of an enum type body: `<name> [: <data-type-
// tokens>] ;`. Distinct from object.go's Variant, which belongs to an
// enum-object rather than a plain enum type, even though the grammar is
// identical — the two live in different Decl variants.
type EnumVariant struct {
	Name           string
	DataTypeTokens token.Slice
	HasDataType    bool
	Location       token.Location
}

// RecordField is one member of a record type body: `[pub] [mut] <name>
// <data-type-tokens> [ := <default-expr> ] ;`.
type RecordField struct {
	Name           string
	DataTypeTokens token.Slice
	DefaultExpr    token.Slice
	HasDefault     bool
	IsMut          bool
	Visibility     Visibility
	Location       token.Location
}

// Type is `type <name> [[<generic-params>]] (alias|enum|record) = <body>
// [end|;]`.
type Type struct {
	Kind TypeKind
	Name string

	GenericParams    token.Slice
	HasGenericParams bool

	AliasTokens token.Slice
	Variants    []EnumVariant
	Fields      []RecordField

	Visibility Visibility
	Location   token.Location
}

type TypeDecl struct {
	Type Type
}

// parseType parses a `type` declaration of any of the three kinds.
func (p *Preparser) parseType(st *state) Decl {
	start := st.openLocation(p.cur.current().Location)
	p.cur.next() // `type`

	t := Type{Visibility: st.visibility}
	t.Name = p.getName(st, "type name")

	if p.cur.is(token.Less) {
		t.GenericParams = p.preparseUntilBalanced(token.Less, token.Greater)
		t.HasGenericParams = true
	}

	switch {
	case p.cur.is(token.KwAlias):
		t.Kind = TypeAlias
		p.cur.next()
	case p.cur.is(token.KwEnum):
		t.Kind = TypeEnum
		p.cur.next()
	case p.cur.is(token.KwRecord):
		t.Kind = TypeRecord
		p.cur.next()
	default:
		p.errorAt(p.cur.current().Location, diagnostic.BadKindOfType, "")
	}

	p.accept(token.Equal)

	var end token.Token
	switch t.Kind {
	case TypeAlias:
		t.AliasTokens = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
		end = p.cur.current()
		p.accept(token.Semicolon)
	case TypeEnum:
		t.Variants = p.parseEnumBody()
		end = p.cur.current()
		if _, ok := p.accept(token.KwEnd); !ok {
			p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
		}
	case TypeRecord:
		t.Fields = p.parseRecordBody()
		end = p.cur.current()
		if _, ok := p.accept(token.KwEnd); !ok {
			p.errorAt(end.Location, diagnostic.EOFNotExpected, "")
		}
	default:
		end = p.cur.current()
		p.goToNextBlock()
	}

	t.Location = st.closeLocation(start, end.Location)
	return TypeDecl{Type: t}
}

func (p *Preparser) parseEnumBody() []EnumVariant {
	var variants []EnumVariant
	for !p.cur.is(token.KwEnd) && !p.cur.atEOF() {
		inner := newState()
		vStart := inner.openLocation(p.cur.current().Location)
		name := p.getName(inner, "enum variant name")
		v := EnumVariant{Name: name}
		if p.cur.is(token.Colon) {
			p.cur.next()
			v.DataTypeTokens = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
			v.HasDataType = true
		}
		p.accept(token.Semicolon)
		v.Location = inner.closeLocation(vStart, p.cur.previous().Location)
		variants = append(variants, v)
	}
	return variants
}

func (p *Preparser) parseRecordBody() []RecordField {
	var fields []RecordField
	for !p.cur.is(token.KwEnd) && !p.cur.atEOF() {
		inner := newState()
		fStart := inner.openLocation(p.cur.current().Location)
		f := RecordField{}
		if p.cur.is(token.KwPub) {
			p.cur.next()
			f.Visibility = Public
		}
		if p.cur.is(token.KwMut) {
			p.cur.next()
			f.IsMut = true
		}
		f.Name = p.getName(inner, "record field name")
		f.DataTypeTokens = p.preparseUntil(func() bool {
			return p.cur.is(token.ColonEqual) || p.cur.is(token.Semicolon) || p.cur.atEOF()
		})
		if p.cur.is(token.ColonEqual) {
			p.cur.next()
			f.DefaultExpr = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
			f.HasDefault = true
		}
		p.accept(token.Semicolon)
		f.Location = inner.closeLocation(fStart, p.cur.previous().Location)
		fields = append(fields, f)
	}
	return fields
}
