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

package scanner

import (
	"math/big"
	"strings"

	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/token"
)

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }
func isBinDigit(b byte) bool   { return b == '0' || b == '1' }

// digitRun consumes underscores and bytes accepted by isValidDigit,
// returning the raw (underscore-included) text consumed.
func (s *Scanner) digitRun(isValidDigit func(byte) bool) string {
	begin := s.cursor.Position()
	for !s.cursor.AtEOF() && (isValidDigit(s.cursor.Current()) || s.cursor.Current() == '_') {
		s.cursor.Advance()
	}
	return string(s.file.Content[begin:s.cursor.Position()])
}

// normalizeDigits strips underscores, then collapses leading zeros (but
// never down to an empty string — "0000" normalises to "0").
func normalizeDigits(raw string) string {
	stripped := strings.ReplaceAll(raw, "_", "")
	trimmed := strings.TrimLeft(stripped, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// scanNumber scans a numeric literal in any of the four bases, followed by
// an optional typed suffix.
func (s *Scanner) scanNumber() {
	start := s.startLoc()

	if s.cursor.Current() == '0' && (s.cursor.PeekAt(1) == 'x' || s.cursor.PeekAt(1) == 'X') {
		s.cursor.Advance()
		s.cursor.Advance()
		s.scanBasedInteger(start, token.IntBase16, isHexDigit, diagnostic.InvalidHexadecimalLiteral, 16)
		return
	}
	if s.cursor.Current() == '0' && (s.cursor.PeekAt(1) == 'o' || s.cursor.PeekAt(1) == 'O') {
		s.cursor.Advance()
		s.cursor.Advance()
		s.scanBasedInteger(start, token.IntBase8, isOctalDigit, diagnostic.InvalidOctalLiteral, 8)
		return
	}
	if s.cursor.Current() == '0' && (s.cursor.PeekAt(1) == 'b' || s.cursor.PeekAt(1) == 'B') {
		s.cursor.Advance()
		s.cursor.Advance()
		s.scanBasedInteger(start, token.IntBase2, isBinDigit, diagnostic.InvalidBinLiteral, 2)
		return
	}
	s.scanDecimalOrFloat(start)
}

func (s *Scanner) scanBasedInteger(start token.Location, kind token.Kind, isValidDigit func(byte) bool, invalidCode diagnostic.Code, base int) {
	raw := s.digitRun(isValidDigit)
	if strings.ReplaceAll(raw, "_", "") == "" {
		loc := s.endLoc(start)
		s.errorAt(loc, invalidCode, "empty digit sequence")
		return
	}
	normalized := normalizeDigits(raw)
	suffix, overflowed := s.scanSuffix(start, normalized, base, false)
	if overflowed {
		return
	}
	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: kind, Location: loc, Value: normalized, Suffix: suffix})
}

// scanDecimalOrFloat scans base-10 digits, optionally a '.' fractional
// part (unless it's actually the start of the '..' range operator) and an
// optional exponent, then an optional suffix.
func (s *Scanner) scanDecimalOrFloat(start token.Location) {
	intPart := s.digitRun(isDigit)
	isFloat := false
	hasDot := false
	var fracPart, expPart string
	var expSign string

	if s.cursor.Current() == '.' && s.cursor.PeekAt(1) != '.' {
		isFloat = true
		hasDot = true
		s.cursor.Advance() // '.'
		fracPart = s.digitRun(isDigit)
	}

	if s.cursor.Current() == 'e' || s.cursor.Current() == 'E' {
		save := *s.cursor
		s.cursor.Advance()
		if s.cursor.Current() == '+' || s.cursor.Current() == '-' {
			expSign = string(s.cursor.Current())
			s.cursor.Advance()
		}
		expPart = s.digitRun(isDigit)
		if expPart == "" {
			// Not actually an exponent; back out.
			*s.cursor = save
		} else {
			isFloat = true
		}
	}

	// A second decimal point or a second exponent marker directly
	// following an already-completed float is malformed.
	if isFloat && ((s.cursor.Current() == '.' && s.cursor.PeekAt(1) != '.') ||
		((s.cursor.Current() == 'e' || s.cursor.Current() == 'E') && expPart != "")) {
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.InvalidFloatLiteral, "")
		if s.cursor.Current() == '.' {
			s.cursor.Advance()
		} else {
			s.cursor.Advance()
			if s.cursor.Current() == '+' || s.cursor.Current() == '-' {
				s.cursor.Advance()
			}
		}
		s.digitRun(isDigit)
		return
	}

	if !isFloat {
		normalized := normalizeDigits(intPart)
		suffix, overflowed := s.scanSuffix(start, normalized, 10, false)
		if overflowed {
			return
		}
		loc := s.endLoc(start)
		s.tokens = append(s.tokens, token.Token{Kind: token.IntBase10, Location: loc, Value: normalized, Suffix: suffix})
		return
	}

	value := intPart
	if hasDot {
		value += "." + fracPart
	}
	if expPart != "" {
		value += "e" + expSign + expPart
	}
	suffix, overflowed := s.scanSuffix(start, value, 10, true)
	if overflowed {
		return
	}
	loc := s.endLoc(start)
	s.tokens = append(s.tokens, token.Token{Kind: token.Float, Location: loc, Value: value, Suffix: suffix})
}

var integerSuffixes = map[string]token.SuffixKind{
	"I8": token.SuffixI8, "I16": token.SuffixI16, "I32": token.SuffixI32, "I64": token.SuffixI64,
	"Iz": token.SuffixIsize,
	"U8": token.SuffixU8, "U16": token.SuffixU16, "U32": token.SuffixU32, "U64": token.SuffixU64,
	"Uz":  token.SuffixUsize,
	"F32": token.SuffixF32, "F64": token.SuffixF64,
}

// scanSuffix reads an optional typed suffix run ([IUF][A-Za-z0-9_]*)
// immediately following a literal's digits, validates it against the
// literal's kind (int vs float) and, for integer suffixes, range-checks
// normalizedValue against the target type in the literal's base. It
// returns (suffix, overflowed); on overflow the diagnostic has already
// been emitted and the caller must not push a token for this literal.
func (s *Scanner) scanSuffix(start token.Location, normalizedValue string, base int, isFloatLiteral bool) (token.SuffixKind, bool) {
	c := s.cursor.Current()
	if c != 'I' && c != 'U' && c != 'F' {
		return token.NoSuffix, false
	}
	begin := s.cursor.Position()
	s.cursor.Advance()
	for !s.cursor.AtEOF() && (isIdentCont(s.cursor.Current())) {
		s.cursor.Advance()
	}
	raw := string(s.file.Content[begin:s.cursor.Position()])

	suffix, known := integerSuffixes[raw]
	if !known {
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.InvalidLiteralSuffix, raw)
		return token.NoSuffix, false
	}

	isFloatSuffix := suffix == token.SuffixF32 || suffix == token.SuffixF64
	if isFloatLiteral && !isFloatSuffix {
		loc := s.endLoc(start)
		s.errorAt(loc, diagnostic.InvalidLiteralSuffix, raw)
		return token.NoSuffix, false
	}
	if isFloatSuffix {
		return suffix, false
	}

	// Integer suffix on an integer literal: range-check.
	v, ok := new(big.Int).SetString(normalizedValue, base)
	if !ok {
		return suffix, false
	}
	if code, overflowed := rangeCheck(v, suffix); overflowed {
		loc := s.endLoc(start)
		s.errorAt(loc, code, "")
		return suffix, true
	}
	return suffix, false
}

func rangeCheck(v *big.Int, suffix token.SuffixKind) (diagnostic.Code, bool) {
	lo, hi, code := bigBoundsFor(suffix)
	if lo != nil && v.Cmp(lo) < 0 {
		return code, true
	}
	if hi != nil && v.Cmp(hi) > 0 {
		return code, true
	}
	return 0, false
}

func bigBoundsFor(suffix token.SuffixKind) (lo, hi *big.Int, code diagnostic.Code) {
	b := func(s string) *big.Int { v, _ := new(big.Int).SetString(s, 10); return v }
	switch suffix {
	case token.SuffixI8:
		return b("-128"), b("127"), diagnostic.Int8OutOfRange
	case token.SuffixI16:
		return b("-32768"), b("32767"), diagnostic.Int16OutOfRange
	case token.SuffixI32:
		return b("-2147483648"), b("2147483647"), diagnostic.Int32OutOfRange
	case token.SuffixI64:
		return b("-9223372036854775808"), b("9223372036854775807"), diagnostic.Int64OutOfRange
	case token.SuffixIsize:
		return b("-9223372036854775808"), b("9223372036854775807"), diagnostic.IsizeOutOfRange
	case token.SuffixU8:
		return b("0"), b("255"), diagnostic.Uint8OutOfRange
	case token.SuffixU16:
		return b("0"), b("65535"), diagnostic.Uint16OutOfRange
	case token.SuffixU32:
		return b("0"), b("4294967295"), diagnostic.Uint32OutOfRange
	case token.SuffixU64:
		return b("0"), b("18446744073709551615"), diagnostic.Uint64OutOfRange
	case token.SuffixUsize:
		return b("0"), b("18446744073709551615"), diagnostic.UsizeOutOfRange
	default:
		return nil, nil, 0
	}
}
