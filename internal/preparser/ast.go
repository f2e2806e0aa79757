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

import "github.com/thelilylang/lily-sub001/internal/token"

// Visibility is the three-way visibility a preparsed item can carry:
// private by default, public after a `pub` prefix, static after `global`
// inside a class/trait body.
type Visibility int

const (
	Private Visibility = iota
	Public
	Static
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Static:
		return "static"
	default:
		return "private"
	}
}

// Import is `import "<path>" [as <ident>] ;`.
type Import struct {
	Value    string
	As       string
	HasAs    bool
	Location token.Location
}

// Macro is `macro <name> [(<param>, ...)] = { <tokens> } ;`. Params is nil
// when no parameter list was written at all, distinct from an explicitly
// empty `()`, which is a non-nil empty slice.
type Macro struct {
	Name     string
	Params   []token.Slice
	Tokens   token.Vector // body, always terminated by a synthetic eof
	Location token.Location
}

// SubPackage is one `[pub] .<sub-path>;` entry of a package declaration.
type SubPackage struct {
	Visibility Visibility
	Name       string
	GlobalName string
}

// Package is `package [<name>] = { [pub] .<sub-path>; }* end`.
type Package struct {
	Name        string
	HasName     bool
	SubPackages []SubPackage
	Location    token.Location
}

// Decl is the sum type of every top-level (and module-nested) declaration
// variant, dispatched by an exhaustive type switch at every consumer.
type Decl interface {
	declLocation() token.Location
}

func (d ConstantDecl) declLocation() token.Location    { return d.Location }
func (d ErrorDecl) declLocation() token.Location       { return d.Location }
func (d FunDecl) declLocation() token.Location         { return d.Fun.Location }
func (d IncludeDecl) declLocation() token.Location     { return d.Location }
func (d UseDecl) declLocation() token.Location         { return d.Location }
func (d LibDecl) declLocation() token.Location         { return d.Location }
func (d MacroExpandDecl) declLocation() token.Location { return d.Expand.Location }
func (d ModuleDecl) declLocation() token.Location      { return d.Location }
func (d ObjectDecl) declLocation() token.Location      { return d.Object.Location }
func (d TypeDecl) declLocation() token.Location        { return d.Type.Location }

// DeclLocation returns d's location regardless of its concrete variant.
func DeclLocation(d Decl) token.Location { return d.declLocation() }

// ConstantInfo is a single `name <data-type-tokens> := <expr-tokens>`
// pairing, shared by the simple and multiple constant shapes.
type ConstantInfo struct {
	Name           string
	ExprTokens     token.Slice
	DataTypeTokens token.Slice
	Visibility     Visibility
}

// ConstantDecl is `constant(Constant)`; Multiple is used (Simple is the
// zero value) when the source declared the parenthesised multi-name form.
type ConstantDecl struct {
	Simple   *ConstantInfo
	Multiple []ConstantInfo
	Location token.Location
}

type ErrorDecl struct {
	Name             string
	DataTypeTokens   token.Slice
	HasDataType      bool
	GenericParams    token.Slice
	HasGenericParams bool
	Visibility       Visibility
	Location         token.Location
}

type IncludeDecl struct {
	PathTokens token.Slice
	Location   token.Location
}

type UseDecl struct {
	PathTokens token.Slice
	Location   token.Location
}

// LibFrom is the foreign-library calling convention a `lib` decl targets.
type LibFrom int

const (
	LibCC LibFrom = iota
	LibCPP
)

// LibBodyItem is one prototype inside a `lib ( "..." ) <name>? = ... end`
// body: a constant prototype or a function prototype.
type LibBodyItem struct {
	IsFun bool

	// Constant prototype.
	ConstName string
	ConstType token.Slice

	// Function prototype.
	FunName    string
	Params     []token.Slice
	HasParams  bool
	ReturnType token.Slice
	NewName    string
	HasNewName bool

	Location token.Location
}

type LibDecl struct {
	Name     string
	HasName  bool
	From     LibFrom
	Body     []LibBodyItem
	Location token.Location
}

// MacroExpand is `<name>!( <arg>, ... ) ;` used either as a declaration or
// as a function-body item.
type MacroExpand struct {
	Name     string
	Args     []token.Slice
	HasArgs  bool
	Location token.Location
}

type MacroExpandDecl struct {
	Expand MacroExpand
}

type ModuleDecl struct {
	Name       string
	Body       []Decl
	Visibility Visibility
	Location   token.Location
}
