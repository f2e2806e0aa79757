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

// ObjectKind distinguishes the four object shapes `object ... (class |
// trait | record | enum) = ...` can take.
type ObjectKind int

const (
	ObjectClass ObjectKind = iota
	ObjectTrait
	ObjectRecordObject
	ObjectEnumObject
)

// Attribute is a class/record-object field: `[pub|global] val <name>
// <type> [:= <expr>] [:: get|set [, get|set]] ;`.
type Attribute struct {
	Name           string
	DataTypeTokens token.Slice
	DefaultExpr    token.Slice
	HasDefault     bool
	Get            bool
	Set            bool
	Visibility     Visibility
	Location       token.Location
}

// Prototype is a trait method signature: `fun <name> [[gen]] (<params>?)
// [<ret>] ;` — a Fun with no body.
type Prototype struct {
	Fun Fun
}

// Variant is one enum-object member: `<name> [: <data-type-tokens>] ;`.
type Variant struct {
	Name           string
	DataTypeTokens token.Slice
	HasDataType    bool
	Location       token.Location
}

// ObjectMember is any item a class/trait/record-object/enum-object body
// can contain.
type ObjectMember struct {
	Attribute   *Attribute
	Method      *Fun
	Prototype   *Prototype
	Variant     *Variant
	MacroExpand *MacroExpand
}

// Object is `object(...)`; the Impl and Inherit clauses are each optional
// and may each appear at most once (a repeat is diagnosed in object.go).
type Object struct {
	Kind ObjectKind

	Name             string
	GenericParams    token.Slice
	HasGenericParams bool

	ImplTokens    []token.Slice
	HasImpl       bool
	InheritTokens []token.Slice
	HasInherit    bool

	Close      bool
	Visibility Visibility

	Members []ObjectMember

	Location token.Location
}

type ObjectDecl struct {
	Object Object
}

// parseObject parses `[pub] [close] object [impl[<...>] in] [inherit[<...>]
// in] <name> [[<generic-params>]] (class|trait|record|enum) = <body> end`.
func (p *Preparser) parseObject(st *state, closeSeen bool) Object {
	start := st.openLocation(p.cur.current().Location)
	obj := Object{Visibility: st.visibility, Close: closeSeen}
	p.cur.next() // `object`

	for {
		if p.cur.is(token.KwImpl) {
			if obj.HasImpl {
				p.errorAt(p.cur.current().Location, diagnostic.ImplIsAlreadyDefined, "")
			}
			p.cur.next()
			obj.ImplTokens = append(obj.ImplTokens, p.parseClauseList()...)
			obj.HasImpl = true
			if p.cur.is(token.KwIn) {
				p.cur.next()
			}
			continue
		}
		if p.cur.is(token.KwInherit) {
			if obj.HasInherit {
				p.errorAt(p.cur.current().Location, diagnostic.InheritIsAlreadyDefined, "")
			}
			p.cur.next()
			obj.InheritTokens = append(obj.InheritTokens, p.parseClauseList()...)
			obj.HasInherit = true
			if p.cur.is(token.KwIn) {
				p.cur.next()
			}
			continue
		}
		break
	}

	obj.Name = p.getName(st, "object name")

	if p.cur.is(token.Less) {
		obj.GenericParams = p.preparseUntilBalanced(token.Less, token.Greater)
		obj.HasGenericParams = true
	}

	switch {
	case p.cur.is(token.KwClass):
		obj.Kind = ObjectClass
		p.cur.next()
	case p.cur.is(token.KwTrait):
		obj.Kind = ObjectTrait
		p.cur.next()
	case p.cur.is(token.KwRecord):
		obj.Kind = ObjectRecordObject
		p.cur.next()
	case p.cur.is(token.KwEnum):
		obj.Kind = ObjectEnumObject
		p.cur.next()
	default:
		p.errorAt(p.cur.current().Location, diagnostic.BadKindOfObject, "")
	}

	if obj.Kind == ObjectTrait && obj.HasImpl {
		p.errorAt(start, diagnostic.ImplIsNotExpected, "")
	}
	if (obj.Kind == ObjectEnumObject || obj.Kind == ObjectRecordObject) && obj.HasInherit {
		p.errorAt(start, diagnostic.InheritIsNotExpected, "")
	}

	p.accept(token.Equal)

	obj.Members = p.parseObjectBody(st, obj.Kind)

	endTok, ok := p.cur.accept(token.KwEnd)
	if !ok {
		p.errorAt(p.cur.current().Location, diagnostic.EOFNotExpected, "")
		endTok = p.cur.current()
	}

	obj.Location = st.closeLocation(start, endTok.Location)
	return obj
}

// parseClauseList reads one or more bracket-delimited token slices joined
// by '+', e.g. `impl Foo<Bar> + Baz in`.
func (p *Preparser) parseClauseList() []token.Slice {
	var clauses []token.Slice
	for {
		clause := p.preparseUntil(func() bool {
			return p.cur.is(token.Plus) || p.cur.is(token.KwIn) || p.cur.atEOF() || p.isNewBlockStart()
		})
		clauses = append(clauses, clause)
		if p.cur.is(token.Plus) {
			p.cur.next()
			continue
		}
		return clauses
	}
}

func (p *Preparser) parseObjectBody(st *state, kind ObjectKind) []ObjectMember {
	var members []ObjectMember
	for {
		if p.cur.is(token.KwEnd) || p.cur.atEOF() {
			return members
		}
		vis := Private
		if p.cur.is(token.KwPub) {
			p.cur.next()
			vis = Public
		} else if p.cur.is(token.KwGlobal) {
			p.cur.next()
			vis = Static
		}

		switch {
		case p.cur.is(token.KwVal) && kind != ObjectEnumObject:
			members = append(members, ObjectMember{Attribute: p.parseAttribute(st, vis)})
		case p.cur.is(token.KwFun):
			fn := p.parseFun(st, vis)
			if kind == ObjectTrait && fn.HasBody {
				// Trait members are prototypes; a body is tolerated but
				// unusual — no separate diagnostic code is defined for it.
			}
			if fn.HasBody {
				members = append(members, ObjectMember{Method: &fn})
			} else {
				members = append(members, ObjectMember{Prototype: &Prototype{Fun: fn}})
			}
		case kind == ObjectEnumObject && (p.cur.current().Kind == token.Identifier || p.cur.current().Kind == token.StringFormIdentifier):
			members = append(members, ObjectMember{Variant: p.parseVariant(st)})
		case p.cur.current().Kind == token.MacroIdentifier:
			members = append(members, ObjectMember{MacroExpand: p.parseMacroExpandCore()})
		default:
			p.errorAt(p.cur.current().Location, diagnostic.UnexpectedToken, "")
			p.goToNextBlock()
			if p.cur.is(token.KwEnd) || p.cur.atEOF() {
				return members
			}
		}
	}
}

func (p *Preparser) parseAttribute(st *state, vis Visibility) *Attribute {
	start := st.openLocation(p.cur.current().Location)
	p.accept(token.KwVal)
	name := p.getName(st, "attribute name")
	dt := p.preparseUntil(func() bool {
		return p.cur.is(token.ColonEqual) || p.cur.is(token.ColonColon) || p.cur.is(token.Semicolon) || p.cur.atEOF()
	})

	attr := &Attribute{Name: name, DataTypeTokens: dt, Visibility: vis}

	if p.cur.is(token.ColonEqual) {
		p.cur.next()
		attr.DefaultExpr = p.preparseUntil(func() bool {
			return p.cur.is(token.ColonColon) || p.cur.is(token.Semicolon) || p.cur.atEOF()
		})
		attr.HasDefault = true
	}

	if p.cur.is(token.ColonColon) {
		p.cur.next()
	flags:
		for {
			switch {
			case p.cur.is(token.KwGet):
				if attr.Get {
					p.errorAt(p.cur.current().Location, diagnostic.GetIsDuplicate, "")
				}
				attr.Get = true
				p.cur.next()
			case p.cur.is(token.KwSet):
				if attr.Set {
					p.errorAt(p.cur.current().Location, diagnostic.SetIsDuplicate, "")
				}
				attr.Set = true
				p.cur.next()
			default:
				break flags
			}
			if p.cur.is(token.Comma) {
				p.cur.next()
				continue
			}
			break
		}
	}

	p.accept(token.Semicolon)
	attr.Location = st.closeLocation(start, p.cur.previous().Location)
	return attr
}

func (p *Preparser) parseVariant(st *state) *Variant {
	start := st.openLocation(p.cur.current().Location)
	name := p.getName(st, "variant name")
	v := &Variant{Name: name}
	if p.cur.is(token.Colon) {
		p.cur.next()
		v.DataTypeTokens = p.preparseUntil(func() bool { return p.cur.is(token.Semicolon) || p.cur.atEOF() })
		v.HasDataType = true
	}
	p.accept(token.Semicolon)
	v.Location = st.closeLocation(start, p.cur.previous().Location)
	return v
}
