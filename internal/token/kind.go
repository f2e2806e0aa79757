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

package token

// Kind discriminates a Token. The groups below mirror the exhaustive
// grouping of the token kinds: punctuation/operators, identifiers, keywords,
// literals, typed suffixes, comments and the EOF sentinel.
type Kind int

const (
	// Punctuation and operators.
	LParen Kind = iota
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	DotDot
	DotDotDot
	DotQuestion
	DotStar
	Semicolon
	Colon
	ColonColon
	ColonEqual
	Plus
	PlusPlus
	PlusEqual
	PlusPlusEqual
	Minus
	MinusMinus
	MinusEqual
	MinusMinusMinus
	Arrow     // ->
	LeftArrow // <-
	Star
	StarStar
	StarEqual
	StarStarEqual
	Slash
	SlashEqual
	Percent
	PercentEqual
	Equal
	EqualEqual
	FatArrow // =>
	Bang
	BangEqual
	Amp
	AmpEqual
	Pipe
	PipeEqual
	PipeGreater // |>
	Caret
	CaretEqual
	Tilde
	TildeEqual
	Less
	LessLess
	LessLessEqual
	LessEqual
	Greater
	GreaterGreater
	GreaterGreaterEqual
	GreaterEqual
	Question
	At
	Hash
	Dollar
	ColonGreater // :>
	Backslash    // \, the lambda call-site clause marker

	// Identifiers.
	Identifier           // [A-Za-z_][A-Za-z0-9_]*
	OperatorIdentifier   // reserved for operator-named functions
	MacroIdentifier      // name immediately followed by '!'
	StringFormIdentifier // backtick-delimited, preserved verbatim; there is no quote-delimited form
	DollarIdentifier     // $name

	// Keywords.
	KwAlias
	KwAnd
	KwAs
	KwAsm
	KwAsync
	KwAwait
	KwBegin
	KwBreak
	KwCast
	KwCatch
	KwClass
	KwComptime
	KwDefer
	KwDo
	KwDrop
	KwElif
	KwElse
	KwEnd
	KwEnum
	KwError
	KwFalse
	KwFor
	KwFun
	KwGet
	KwGlobal
	KwIf
	KwImpl
	KwImport
	KwIn
	KwInclude
	KwInherit
	KwIs
	KwLib
	KwMacro
	KwMatch
	KwModule
	KwMut
	KwNext
	KwNil
	KwNone
	KwNot
	KwObject
	KwObjectUpper // Object
	KwOr
	KwPackage
	KwPub
	KwRaise
	KwRecord
	KwRef
	KwReq
	KwReturn
	KwSelf
	KwSelfUpper // Self
	KwSet
	KwTest
	KwTrace
	KwTrait
	KwTrue
	KwTry
	KwType
	KwUndef
	KwUnsafe
	KwUse
	KwVal
	KwWhen
	KwWhile
	KwXor

	// Literals. The payload is carried in Token.Value, never Token.Literal;
	// arbitrary-precision values are never narrowed by the scanner itself.
	IntBase2
	IntBase8
	IntBase10
	IntBase16
	Float
	Char
	String
	BitChar
	BitString

	// Comments.
	CommentLine
	CommentBlock
	CommentDoc

	// Sentinel. Exactly one EOF token terminates every token vector.
	EOF
)

// Keywords maps every reserved word to its Kind. Built once; Scanner looks
// up a scanned identifier lexeme against it after the identifier has been
// fully consumed.
var Keywords = map[string]Kind{
	"alias":    KwAlias,
	"and":      KwAnd,
	"as":       KwAs,
	"asm":      KwAsm,
	"async":    KwAsync,
	"await":    KwAwait,
	"begin":    KwBegin,
	"break":    KwBreak,
	"cast":     KwCast,
	"catch":    KwCatch,
	"class":    KwClass,
	"comptime": KwComptime,
	"defer":    KwDefer,
	"do":       KwDo,
	"drop":     KwDrop,
	"elif":     KwElif,
	"else":     KwElse,
	"end":      KwEnd,
	"enum":     KwEnum,
	"error":    KwError,
	"false":    KwFalse,
	"for":      KwFor,
	"fun":      KwFun,
	"get":      KwGet,
	"global":   KwGlobal,
	"if":       KwIf,
	"impl":     KwImpl,
	"import":   KwImport,
	"in":       KwIn,
	"include":  KwInclude,
	"inherit":  KwInherit,
	"is":       KwIs,
	"lib":      KwLib,
	"macro":    KwMacro,
	"match":    KwMatch,
	"module":   KwModule,
	"mut":      KwMut,
	"next":     KwNext,
	"nil":      KwNil,
	"none":     KwNone,
	"not":      KwNot,
	"object":   KwObject,
	"Object":   KwObjectUpper,
	"or":       KwOr,
	"package":  KwPackage,
	"pub":      KwPub,
	"raise":    KwRaise,
	"record":   KwRecord,
	"ref":      KwRef,
	"req":      KwReq,
	"return":   KwReturn,
	"self":     KwSelf,
	"Self":     KwSelfUpper,
	"set":      KwSet,
	"test":     KwTest,
	"trace":    KwTrace,
	"trait":    KwTrait,
	"true":     KwTrue,
	"try":      KwTry,
	"type":     KwType,
	"undef":    KwUndef,
	"unsafe":   KwUnsafe,
	"use":      KwUse,
	"val":      KwVal,
	"when":     KwWhen,
	"while":    KwWhile,
	"xor":      KwXor,
}

// LookupIdentifier returns the keyword Kind for lexeme, or (Identifier,
// false) if lexeme is not reserved.
func LookupIdentifier(lexeme string) (Kind, bool) {
	if k, ok := Keywords[lexeme]; ok {
		return k, true
	}
	return Identifier, false
}

// SuffixKind tags the typed suffix attached to a numeric literal, if any.
type SuffixKind int

const (
	NoSuffix SuffixKind = iota
	SuffixI8
	SuffixI16
	SuffixI32
	SuffixI64
	SuffixIsize
	SuffixU8
	SuffixU16
	SuffixU32
	SuffixU64
	SuffixUsize
	SuffixF32
	SuffixF64
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Comma: ",", Dot: ".", DotDot: "..", DotDotDot: "...", DotQuestion: ".?", DotStar: ".*",
	Semicolon: ";", Colon: ":", ColonColon: "::", ColonEqual: ":=",
	Plus: "+", PlusPlus: "++", PlusEqual: "+=", PlusPlusEqual: "++=",
	Minus: "-", MinusMinus: "--", MinusEqual: "-=", MinusMinusMinus: "---",
	Arrow: "->", LeftArrow: "<-",
	Star: "*", StarStar: "**", StarEqual: "*=", StarStarEqual: "**=",
	Slash: "/", SlashEqual: "/=", Percent: "%", PercentEqual: "%=",
	Equal: "=", EqualEqual: "==", FatArrow: "=>",
	Bang: "!", BangEqual: "!=",
	Amp: "&", AmpEqual: "&=", Pipe: "|", PipeEqual: "|=", PipeGreater: "|>",
	Caret: "^", CaretEqual: "^=", Tilde: "~", TildeEqual: "~=",
	Less: "<", LessLess: "<<", LessLessEqual: "<<=", LessEqual: "<=",
	Greater: ">", GreaterGreater: ">>", GreaterGreaterEqual: ">>=", GreaterEqual: ">=",
	Question: "?", At: "@", Hash: "#", Dollar: "$", ColonGreater: ":>", Backslash: "\\",
	Identifier: "identifier", OperatorIdentifier: "operator identifier",
	MacroIdentifier: "macro identifier", StringFormIdentifier: "string-form identifier",
	DollarIdentifier: "dollar identifier",
	IntBase2:         "int_2", IntBase8: "int_8", IntBase10: "int_10", IntBase16: "int_16",
	Float: "float", Char: "char", String: "string", BitChar: "bit_char", BitString: "bit_string",
	CommentLine: "comment_line", CommentBlock: "comment_block", CommentDoc: "comment_doc",
	EOF: "eof",
}
