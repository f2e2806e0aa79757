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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily-sub001/internal/diagnostic"
	"github.com/thelilylang/lily-sub001/internal/scanner"
	"github.com/thelilylang/lily-sub001/internal/source"
	"github.com/thelilylang/lily-sub001/internal/token"
)

func run(t *testing.T, src string) (PreparserInfo, *diagnostic.Collector) {
	t.Helper()
	f := source.NewFile("test.ly", []byte(src))
	sink := diagnostic.NewCollector()
	toks := scanner.New(f, sink).Run(false)
	info := New(f.Name, toks, sink).Run()
	return info, sink
}

func sliceLiterals(s token.Slice) []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		tok := s.At(i)
		switch {
		case tok.Literal != "":
			out = append(out, tok.Literal)
		case tok.Value != "":
			out = append(out, tok.Value)
		default:
			out = append(out, tok.Kind.String())
		}
	}
	return out
}

// Scenario 1.
func TestSimpleConstantDecl(t *testing.T) {
	info, sink := run(t, "val x I32 := 42;")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	decl, ok := info.Decls[0].(ConstantDecl)
	require.True(t, ok)
	require.NotNil(t, decl.Simple)
	assert.Equal(t, "x", decl.Simple.Name)
	assert.Equal(t, []string{"I32"}, sliceLiterals(decl.Simple.DataTypeTokens))
	assert.Equal(t, []string{"42"}, sliceLiterals(decl.Simple.ExprTokens))
	assert.Equal(t, Private, decl.Simple.Visibility)
}

// Scenario 2.
func TestPublicImportWithAlias(t *testing.T) {
	info, sink := run(t, `pub import "std.io" as io;`)
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.PublicImports, 1)
	require.Empty(t, info.PrivateImports)

	imp := info.PublicImports[0]
	assert.Equal(t, "std.io", imp.Value)
	assert.Equal(t, "io", imp.As)
	assert.True(t, imp.HasAs)
}

// Scenario 3.
func TestFunctionDeclWithReturnAndBody(t *testing.T) {
	info, sink := run(t, "fun add(a I32, b I32) I32 = return a + b; end")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	decl, ok := info.Decls[0].(FunDecl)
	require.True(t, ok)
	fn := decl.Fun
	assert.Equal(t, "add", fn.Name)
	assert.False(t, fn.IsOperator)
	require.True(t, fn.HasParams)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, []string{"I32"}, sliceLiterals(fn.ReturnType))

	require.Len(t, fn.Body, 1)
	item := fn.Body[0]
	require.NotNil(t, item.Return)
	require.True(t, item.Return.HasExpr)
	assert.Equal(t, []string{"a", "+", "b"}, sliceLiterals(item.Return.Expr))
}

// Scenario 4: the scanner itself rejects an out-of-range suffixed literal
// and pushes no token for it.
func TestOutOfRangeLiteralReportedByScanner(t *testing.T) {
	f := source.NewFile("test.ly", []byte("val x I8 := 0xFFI8;"))
	sink := diagnostic.NewCollector()
	toks := scanner.New(f, sink).Run(false)
	assert.Greater(t, sink.ErrorCount(), 0)

	for _, tok := range toks {
		if tok.Kind == token.IntBase16 {
			t.Fatalf("out-of-range literal must not produce a token, got %v", tok)
		}
	}
}

// Scenario 5.
func TestIfElifElseInsideFunctionBody(t *testing.T) {
	info, sink := run(t, "fun f() = if x > 0 do y := 1; elif x < 0 do y := -1; else y := 0; end end")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	fn := info.Decls[0].(FunDecl).Fun
	require.Len(t, fn.Body, 1)
	ifItem := fn.Body[0].If
	require.NotNil(t, ifItem)

	assert.False(t, ifItem.If.HasCapture)
	require.Len(t, ifItem.If.Body, 1)
	require.True(t, ifItem.If.Body[0].HasExprs)
	assert.Equal(t, []string{"y", ":=", "1"}, sliceLiterals(ifItem.If.Body[0].Exprs))

	require.Len(t, ifItem.Elifs, 1)
	assert.False(t, ifItem.Elifs[0].HasCapture)
	require.Len(t, ifItem.Elifs[0].Body, 1)

	require.True(t, ifItem.HasElse)
	require.Len(t, ifItem.Else, 1)
	require.True(t, ifItem.Else[0].HasExprs)
}

// Scenario 6.
func TestMacroDeclWithTrailingEOFBody(t *testing.T) {
	info, sink := run(t, "macro twice(x) = { x + x };")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.PrivateMacros, 1)
	require.Empty(t, info.PublicMacros)

	m := info.PrivateMacros[0]
	assert.Equal(t, "twice", m.Name)
	require.Len(t, m.Params, 1)
	assert.Equal(t, []string{"x"}, sliceLiterals(m.Params[0]))

	require.Len(t, m.Tokens, 4)
	assert.Equal(t, []string{"x", "+", "x"}, sliceLiterals(m.Tokens.Of(0, 3)))
	assert.True(t, m.Tokens[3].IsEOF())
}

func TestPackageAppearsAtMostOnce(t *testing.T) {
	info, sink := run(t, "package = .foo; pub .bar; end package = .baz; end")
	assert.Greater(t, sink.ErrorCount(), 0)
	require.True(t, info.HasPackage)
	require.NotNil(t, info.Package)

	require.Len(t, info.Package.SubPackages, 2)
	assert.Equal(t, "foo", info.Package.SubPackages[0].Name)
	assert.Equal(t, Private, info.Package.SubPackages[0].Visibility)
	assert.Equal(t, "bar", info.Package.SubPackages[1].Name)
	assert.Equal(t, Public, info.Package.SubPackages[1].Visibility)
}

func TestMultipleConstantEqualLengthPadding(t *testing.T) {
	info, sink := run(t, "val (a I32, b I32) := (1);")
	require.Greater(t, sink.ErrorCount(), 0)
	require.Len(t, info.Decls, 1)

	decl := info.Decls[0].(ConstantDecl)
	require.Len(t, decl.Multiple, 2)
	assert.True(t, decl.Multiple[1].ExprTokens.IsEmpty())
	for _, c := range decl.Multiple {
		assert.NotEmpty(t, c.Name)
	}
}

func TestObjectDeclClassWithImplAndMembers(t *testing.T) {
	info, sink := run(t, `
object impl Comparable in Point class =
	pub val x I32;
	pub fun eq(other Point) Bool = return true; end
end`)
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	obj := info.Decls[0].(ObjectDecl).Object
	assert.Equal(t, "Point", obj.Name)
	assert.Equal(t, ObjectClass, obj.Kind)
	assert.True(t, obj.HasImpl)
	assert.False(t, obj.HasInherit)
	require.Len(t, obj.Members, 2)

	require.NotNil(t, obj.Members[0].Attribute)
	assert.Equal(t, "x", obj.Members[0].Attribute.Name)
	assert.Equal(t, Public, obj.Members[0].Attribute.Visibility)

	require.NotNil(t, obj.Members[1].Method)
	assert.Equal(t, "eq", obj.Members[1].Method.Name)
}

func TestCloseObjectSetsCloseFlag(t *testing.T) {
	info, sink := run(t, "close object Point class = end")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	obj := info.Decls[0].(ObjectDecl).Object
	assert.True(t, obj.Close)
}

func TestEnumTypeDecl(t *testing.T) {
	info, sink := run(t, "type Color enum = Red; Green; Blue; end")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	ty := info.Decls[0].(TypeDecl).Type
	assert.Equal(t, TypeEnum, ty.Kind)
	require.Len(t, ty.Variants, 3)
	assert.Equal(t, "Red", ty.Variants[0].Name)
	assert.False(t, ty.Variants[0].HasDataType)
}

func TestRecordTypeDecl(t *testing.T) {
	info, sink := run(t, "type Point record = pub mut x I32; pub y I32 := 0; end")
	require.Equal(t, 0, sink.ErrorCount())

	ty := info.Decls[0].(TypeDecl).Type
	assert.Equal(t, TypeRecord, ty.Kind)
	require.Len(t, ty.Fields, 2)
	assert.Equal(t, "x", ty.Fields[0].Name)
	assert.True(t, ty.Fields[0].IsMut)
	assert.Equal(t, "y", ty.Fields[1].Name)
	assert.True(t, ty.Fields[1].HasDefault)
}

func TestLambdaFunBodyItemWithCallArgs(t *testing.T) {
	info, sink := run(t, `fun f() = fun (x) -> return x; \(1); end`)
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	require.Len(t, fn.Body, 1)
	lam := fn.Body[0].Lambda
	require.NotNil(t, lam)
	assert.True(t, lam.HasParams)
	assert.True(t, lam.HasCallArgs)
	require.Len(t, lam.CallArgs, 1)
}

func TestLibDeclaration(t *testing.T) {
	info, sink := run(t, `lib("C") = val errno I32; fun strlen(s CStr) USize; end`)
	require.Equal(t, 0, sink.ErrorCount())

	decl, ok := info.Decls[0].(LibDecl)
	require.True(t, ok)
	assert.Equal(t, LibCC, decl.From)
	require.Len(t, decl.Body, 2)
	assert.Equal(t, "errno", decl.Body[0].ConstName)
	assert.True(t, decl.Body[1].IsFun)
	assert.Equal(t, "strlen", decl.Body[1].FunName)
}

func TestMacroExpandAsTopLevelDecl(t *testing.T) {
	info, sink := run(t, "generate!(Foo, Bar);")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	decl, ok := info.Decls[0].(MacroExpandDecl)
	require.True(t, ok)
	assert.Equal(t, "generate", decl.Expand.Name)
	require.True(t, decl.Expand.HasArgs)
	assert.Len(t, decl.Expand.Args, 2)
}

func TestDeferWithBlockShapedItemWarnsOnSuperfluousSemicolon(t *testing.T) {
	info, sink := run(t, "fun f() = defer begin x := 1; end; end")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, sink.Warnings(), 1)
	assert.Equal(t, diagnostic.UnusedSemicolon, sink.Warnings()[0].Code)

	fn := info.Decls[0].(FunDecl).Fun
	require.Len(t, fn.Body, 1)
	require.NotNil(t, fn.Body[0].Defer)
}

func TestWhileLoopBody(t *testing.T) {
	info, sink := run(t, "fun f() = while x < 10 do x := x + 1; end end")
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	require.Len(t, fn.Body, 1)
	while := fn.Body[0].While
	require.NotNil(t, while)
	require.Len(t, while.Body, 1)
	require.True(t, while.Body[0].HasExprs)
}

func TestTryCatch(t *testing.T) {
	info, sink := run(t, "fun f() = try do raise e; catch e do x := 0; end end")
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	tryItem := fn.Body[0].Try
	require.NotNil(t, tryItem)
	require.Len(t, tryItem.Body, 1)
	require.NotNil(t, tryItem.Body[0].Raise)
	require.True(t, tryItem.HasCatch)
	require.Len(t, tryItem.CatchBody, 1)
}

func TestMatchWithGuard(t *testing.T) {
	info, sink := run(t, "fun f() = match x do { 1 ? x > 0 => return 1; _ => return 0; } end end")
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	m := fn.Body[0].Match
	require.NotNil(t, m)
	require.Len(t, m.Cases, 2)
	assert.True(t, m.Cases[0].HasCond)
	assert.False(t, m.Cases[1].HasCond)
}

func TestFunctionWithWhenReqClauses(t *testing.T) {
	info, sink := run(t, "fun f<T>(x T) when [T: Eq] req [x != nil] I32 = return 0; end")
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	assert.True(t, fn.HasWhen)
	assert.True(t, fn.HasReq)
	require.Len(t, fn.WhenClauses, 1)
	require.Len(t, fn.ReqClauses, 1)
}

func TestOperatorNamedFunction(t *testing.T) {
	info, sink := run(t, "fun +(a I32, b I32) I32 = return a; end")
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	assert.True(t, fn.IsOperator)
	assert.Equal(t, "+", fn.Name)
}

func TestFunPrototypeHasNoBody(t *testing.T) {
	info, sink := run(t, "fun area() I32;")
	require.Equal(t, 0, sink.ErrorCount())

	fn := info.Decls[0].(FunDecl).Fun
	assert.False(t, fn.HasBody)
	assert.Nil(t, fn.Body)
}

// Boundary case: empty source yields no declarations and no errors.
func TestEmptySourceYieldsNoDecls(t *testing.T) {
	info, sink := run(t, "")
	assert.Equal(t, 0, sink.ErrorCount())
	assert.Empty(t, info.Decls)
	assert.False(t, info.HasPackage)
}

func TestUnexpectedTopLevelTokenRecovers(t *testing.T) {
	info, sink := run(t, ") val x I32 := 1;")
	assert.Greater(t, sink.ErrorCount(), 0)
	require.Len(t, info.Decls, 1)
	_, ok := info.Decls[0].(ConstantDecl)
	assert.True(t, ok)
}

func TestModuleRecursesIntoTopLevelDispatch(t *testing.T) {
	info, sink := run(t, "module foo.bar = val x I32 := 1; end")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	mod := info.Decls[0].(ModuleDecl)
	assert.Equal(t, "foo.bar", mod.Name)
	require.Len(t, mod.Body, 1)
	_, ok := mod.Body[0].(ConstantDecl)
	assert.True(t, ok)
}

func TestUseAndIncludeDecls(t *testing.T) {
	info, sink := run(t, "use foo.bar; include foo.baz;")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 2)

	_, ok := info.Decls[0].(UseDecl)
	assert.True(t, ok)
	_, ok = info.Decls[1].(IncludeDecl)
	assert.True(t, ok)
}

func TestErrorDeclWithDataType(t *testing.T) {
	info, sink := run(t, "error NotFound: String;")
	require.Equal(t, 0, sink.ErrorCount())
	require.Len(t, info.Decls, 1)

	decl := info.Decls[0].(ErrorDecl)
	assert.Equal(t, "NotFound", decl.Name)
	assert.True(t, decl.HasDataType)
	assert.Equal(t, []string{"String"}, sliceLiterals(decl.DataTypeTokens))
}
