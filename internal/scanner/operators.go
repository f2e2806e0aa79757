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
	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/token"
)

// operatorTable lists every punctuation/operator lexeme, longest first, so
// that matching it in order performs maximal munch. Brackets are handled
// separately by scanBracketOpen/scanBracketClose.
var operatorTable = []struct {
	text string
	kind token.Kind
}{
	{"++=", token.PlusPlusEqual},
	{"**=", token.StarStarEqual},
	{"<<=", token.LessLessEqual},
	{">>=", token.GreaterGreaterEqual},
	{"---", token.MinusMinusMinus},
	{"...", token.DotDotDot},

	{"++", token.PlusPlus},
	{"+=", token.PlusEqual},
	{"--", token.MinusMinus},
	{"-=", token.MinusEqual},
	{"->", token.Arrow},
	{"<-", token.LeftArrow},
	{"**", token.StarStar},
	{"*=", token.StarEqual},
	{"/=", token.SlashEqual},
	{"%=", token.PercentEqual},
	{"==", token.EqualEqual},
	{"=>", token.FatArrow},
	{"!=", token.BangEqual},
	{"&=", token.AmpEqual},
	{"|=", token.PipeEqual},
	{"|>", token.PipeGreater},
	{"^=", token.CaretEqual},
	{"~=", token.TildeEqual},
	{"<<", token.LessLess},
	{"<=", token.LessEqual},
	{">>", token.GreaterGreater},
	{">=", token.GreaterEqual},
	{"::", token.ColonColon},
	{":=", token.ColonEqual},
	{":>", token.ColonGreater},
	{"..", token.DotDot},
	{".?", token.DotQuestion},
	{".*", token.DotStar},

	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"=", token.Equal},
	{"!", token.Bang},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"<", token.Less},
	{">", token.Greater},
	{"?", token.Question},
	{"@", token.At},
	{"#", token.Hash},
	{",", token.Comma},
	{".", token.Dot},
	{";", token.Semicolon},
	{":", token.Colon},
	{"\\", token.Backslash},
}

// scanOperator performs maximal munch against operatorTable. An unmatched
// byte is reported as UNEXPECTED_CHARACTER and skipped.
func (s *Scanner) scanOperator() {
	start := s.startLoc()
	for _, op := range operatorTable {
		if matchPrefix(s.cursor, op.text) {
			s.cursor.AdvanceN(len(op.text))
			loc := s.endLoc(start)
			s.tokens = append(s.tokens, token.New(op.kind, loc))
			return
		}
	}
	s.cursor.Advance()
	loc := s.endLoc(start)
	s.errorAt(loc, diagnostic.UnexpectedCharacter, "")
}
