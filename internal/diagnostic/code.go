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

// Package diagnostic defines the flat error/warning enumeration and the
// sink contract shared by the scanner and preparser. Diagnostics are
// reported, not returned: a routine that hits a problem emits one and keeps
// going rather than unwinding the call stack.
package diagnostic

// Code enumerates every diagnostic the scanner and preparser can emit.
type Code int

const (
	UnexpectedCharacter Code = iota
	UnclosedCharLiteral
	UnclosedStringLiteral
	UnclosedCommentBlock
	InvalidEscape
	InvalidHexadecimalLiteral
	InvalidOctalLiteral
	InvalidBinLiteral
	InvalidFloatLiteral
	InvalidLiteralSuffix
	Int8OutOfRange
	Int16OutOfRange
	Int32OutOfRange
	Int64OutOfRange
	Uint8OutOfRange
	Uint16OutOfRange
	Uint32OutOfRange
	Uint64OutOfRange
	IsizeOutOfRange
	UsizeOutOfRange
	MismatchedClosingDelimiter
	ExpectedIdentifier
	ExpectedImportValue
	ExpectedModuleIdentifier
	ExpectedDataType
	ExpectedExpression
	ExpectedToken
	ExpectedFunIdentifier
	UnexpectedToken
	UnexpectedTokenInFunctionBody
	EOFNotExpected
	PackageNameAlreadyDefined
	DuplicatePackageDeclaration
	MacroDoNothing
	ImplIsAlreadyDefined
	InheritIsAlreadyDefined
	ImplIsNotExpected
	InheritIsNotExpected
	UnexpectedClose
	BadKindOfObject
	BadKindOfType
	GetIsDuplicate
	SetIsDuplicate
	MissOneOrManyExpressions
	MissOneOrManyIdentifiers
	UnknownFromValueInLib

	// Warnings.
	UnusedSemicolon
)

var codeNames = map[Code]string{
	UnexpectedCharacter:           "UNEXPECTED_CHARACTER",
	UnclosedCharLiteral:           "UNCLOSED_CHAR_LITERAL",
	UnclosedStringLiteral:         "UNCLOSED_STRING_LITERAL",
	UnclosedCommentBlock:          "UNCLOSED_COMMENT_BLOCK",
	InvalidEscape:                 "INVALID_ESCAPE",
	InvalidHexadecimalLiteral:     "INVALID_HEXADECIMAL_LITERAL",
	InvalidOctalLiteral:           "INVALID_OCTAL_LITERAL",
	InvalidBinLiteral:             "INVALID_BIN_LITERAL",
	InvalidFloatLiteral:           "INVALID_FLOAT_LITERAL",
	InvalidLiteralSuffix:          "INVALID_LITERAL_SUFFIX",
	Int8OutOfRange:                "INT8_OUT_OF_RANGE",
	Int16OutOfRange:               "INT16_OUT_OF_RANGE",
	Int32OutOfRange:               "INT32_OUT_OF_RANGE",
	Int64OutOfRange:               "INT64_OUT_OF_RANGE",
	Uint8OutOfRange:               "UINT8_OUT_OF_RANGE",
	Uint16OutOfRange:              "UINT16_OUT_OF_RANGE",
	Uint32OutOfRange:              "UINT32_OUT_OF_RANGE",
	Uint64OutOfRange:              "UINT64_OUT_OF_RANGE",
	IsizeOutOfRange:               "ISIZE_OUT_OF_RANGE",
	UsizeOutOfRange:               "USIZE_OUT_OF_RANGE",
	MismatchedClosingDelimiter:    "MISMATCHED_CLOSING_DELIMITER",
	ExpectedIdentifier:            "EXPECTED_IDENTIFIER",
	ExpectedImportValue:           "EXPECTED_IMPORT_VALUE",
	ExpectedModuleIdentifier:      "EXPECTED_MODULE_IDENTIFIER",
	ExpectedDataType:              "EXPECTED_DATA_TYPE",
	ExpectedExpression:            "EXPECTED_EXPRESSION",
	ExpectedToken:                 "EXPECTED_TOKEN",
	ExpectedFunIdentifier:         "EXPECTED_FUN_IDENTIFIER",
	UnexpectedToken:               "UNEXPECTED_TOKEN",
	UnexpectedTokenInFunctionBody: "UNEXPECTED_TOKEN_IN_FUNCTION_BODY",
	EOFNotExpected:                "EOF_NOT_EXPECTED",
	PackageNameAlreadyDefined:     "PACKAGE_NAME_ALREADY_DEFINED",
	DuplicatePackageDeclaration:   "DUPLICATE_PACKAGE_DECLARATION",
	MacroDoNothing:                "MACRO_DO_NOTHING",
	ImplIsAlreadyDefined:          "IMPL_IS_ALREADY_DEFINED",
	InheritIsAlreadyDefined:       "INHERIT_IS_ALREADY_DEFINED",
	ImplIsNotExpected:             "IMPL_IS_NOT_EXPECTED",
	InheritIsNotExpected:          "INHERIT_IS_NOT_EXPECTED",
	UnexpectedClose:               "UNEXPECTED_CLOSE",
	BadKindOfObject:               "BAD_KIND_OF_OBJECT",
	BadKindOfType:                 "BAD_KIND_OF_TYPE",
	GetIsDuplicate:                "GET_IS_DUPLICATE",
	SetIsDuplicate:                "SET_IS_DUPLICATE",
	MissOneOrManyExpressions:      "MISS_ONE_OR_MANY_EXPRESSIONS",
	MissOneOrManyIdentifiers:      "MISS_ONE_OR_MANY_IDENTIFIERS",
	UnknownFromValueInLib:         "UNKNOWN_FROM_VALUE_IN_LIB",
	UnusedSemicolon:               "UNUSED_SEMICOLON",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "UNKNOWN_CODE"
}

// IsWarning reports whether c is one of the warning-only codes. Everything
// else is an Error.
func (c Code) IsWarning() bool {
	return c == UnusedSemicolon
}
