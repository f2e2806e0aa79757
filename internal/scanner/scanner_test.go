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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/source"
	"github.com/thelilylang/lily-sub001/internal/token"
)

func run(t *testing.T, src string) (token.Vector, *diagnostic.Collector) {
	t.Helper()
	f := source.NewFile("test.ly", []byte(src))
	sink := diagnostic.NewCollector()
	toks := New(f, sink).Run(false)
	return toks, sink
}

func kinds(toks token.Vector) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestEmptySourceYieldsOnlyEOF(t *testing.T) {
	toks, sink := run(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
	assert.Equal(t, 0, sink.ErrorCount())
}

func TestSourceEndingMidIdentifier(t *testing.T) {
	toks, sink := run(t, "fo")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Identifier, toks[0].Kind)
	assert.Equal(t, "fo", toks[0].Literal)
	assert.True(t, toks[1].IsEOF())
	assert.Equal(t, 0, sink.ErrorCount())
}

func TestKeywordLookup(t *testing.T) {
	toks, _ := run(t, "fun val if")
	assert.Equal(t, []token.Kind{token.KwFun, token.KwVal, token.KwIf, token.EOF}, kinds(toks))
}

func TestNotEqualAndXorEqualFusion(t *testing.T) {
	toks, _ := run(t, "a not= b xor= c")
	assert.Equal(t, []token.Kind{
		token.Identifier, token.BangEqual, token.Identifier,
		token.Identifier, token.CaretEqual, token.Identifier,
		token.EOF,
	}, kinds(toks))
}

func TestMacroIdentifierFusesBang(t *testing.T) {
	toks, _ := run(t, "println!(x)")
	require.True(t, len(toks) >= 1)
	assert.Equal(t, token.MacroIdentifier, toks[0].Kind)
	assert.Equal(t, "println", toks[0].Literal)
}

func TestZeroLiterals(t *testing.T) {
	for _, src := range []string{"0", "0000", "0x0", "0o0", "0b0"} {
		toks, sink := run(t, src)
		require.Equal(t, 0, sink.ErrorCount(), src)
		require.GreaterOrEqual(t, len(toks), 2, src)
		assert.Equal(t, "0", toks[0].Value, src)
	}
}

func TestFloatForms(t *testing.T) {
	for _, src := range []string{"1.", "1e3", "1E+3", "1.5e-2"} {
		toks, sink := run(t, src)
		require.Equal(t, 0, sink.ErrorCount(), src)
		assert.Equal(t, token.Float, toks[0].Kind, src)
	}
}

func TestDotDotRangeNotFloat(t *testing.T) {
	toks, sink := run(t, "1..2")
	require.Equal(t, 0, sink.ErrorCount())
	assert.Equal(t, []token.Kind{token.IntBase10, token.DotDot, token.IntBase10, token.EOF}, kinds(toks))
}

func TestIntegerSuffixOverflowProducesNoToken(t *testing.T) {
	toks, sink := run(t, "0xFFI8")
	assert.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, diagnostic.Int8OutOfRange, sink.Diagnostics[0].Code)
	require.Len(t, toks, 1) // only the trailing eof
	assert.True(t, toks[0].IsEOF())
}

func TestInvalidSuffixOnFloat(t *testing.T) {
	_, sink := run(t, "1.5I32")
	assert.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, diagnostic.InvalidLiteralSuffix, sink.Diagnostics[0].Code)
}

func TestFloatSuffixOnIntegerAccepted(t *testing.T) {
	toks, sink := run(t, "42F64")
	assert.Equal(t, 0, sink.ErrorCount())
	assert.Equal(t, token.SuffixF64, toks[0].Suffix)
}

func TestUnclosedBlockComment(t *testing.T) {
	_, sink := run(t, "/* never closes")
	require.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, diagnostic.UnclosedCommentBlock, sink.Diagnostics[0].Code)
}

func TestDocComment(t *testing.T) {
	toks, sink := run(t, "/// hello\nfun")
	require.Equal(t, 0, sink.ErrorCount())
	assert.Equal(t, token.CommentDoc, toks[0].Kind)
	assert.Equal(t, " hello", toks[0].Value)
	assert.Equal(t, token.KwFun, toks[1].Kind)
}

func TestLineCommentDiscarded(t *testing.T) {
	toks, _ := run(t, "a // comment\nb")
	assert.Equal(t, []token.Kind{token.Identifier, token.Identifier, token.EOF}, kinds(toks))
}

func TestBracketBalancing(t *testing.T) {
	toks, sink := run(t, "fun add(a, b) = (a + b) end")
	require.Equal(t, 0, sink.ErrorCount())
	depth := 0
	for _, tok := range toks {
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			require.GreaterOrEqual(t, depth, 0)
		}
	}
	assert.Equal(t, 0, depth)
}

func TestMismatchedClosingDelimiterAtEOF(t *testing.T) {
	_, sink := run(t, "fun add(a, b")
	require.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, diagnostic.MismatchedClosingDelimiter, sink.Diagnostics[0].Code)
}

func TestStrayClosingDelimiterNotConsumedTwice(t *testing.T) {
	// Two consecutive stray closers should produce two diagnostics, not a
	// cascade from re-reading the same byte.
	_, sink := run(t, "}}")
	assert.Equal(t, 2, sink.ErrorCount())
}

func TestCharLiteralEscapes(t *testing.T) {
	toks, sink := run(t, `'\n'`)
	require.Equal(t, 0, sink.ErrorCount())
	assert.Equal(t, "\n", toks[0].Value)
}

func TestEmptyCharLiteral(t *testing.T) {
	_, sink := run(t, "''")
	require.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, diagnostic.UnclosedCharLiteral, sink.Diagnostics[0].Code)
}

func TestInvalidEscape(t *testing.T) {
	_, sink := run(t, `'\q'`)
	require.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, diagnostic.InvalidEscape, sink.Diagnostics[0].Code)
}

func TestStringFormIdentifier(t *testing.T) {
	toks, sink := run(t, "`weird name`")
	require.Equal(t, 0, sink.ErrorCount())
	assert.Equal(t, token.StringFormIdentifier, toks[0].Kind)
	assert.Equal(t, "weird name", toks[0].Literal)
}

func TestDollarIdentifier(t *testing.T) {
	toks, _ := run(t, "$x")
	assert.Equal(t, token.DollarIdentifier, toks[0].Kind)
	assert.Equal(t, "x", toks[0].Literal)
}

func TestBitLiterals(t *testing.T) {
	toks, sink := run(t, `b'a' b"bytes"`)
	require.Equal(t, 0, sink.ErrorCount())
	assert.Equal(t, token.BitChar, toks[0].Kind)
	assert.Equal(t, token.BitString, toks[1].Kind)
}
