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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// scenarioCorpus holds one named source/expectation pair per scenario, kept
// as a single human-readable archive rather than one file per case — the
// same shape the example corpus of compiler-frontend test fixtures favors
// for golden-style input/output pairs.
const scenarioCorpus = `
-- simple_constant.ly --
pub val count I32 := 42;
-- simple_constant.want --
decls=1 errors=0
ConstantDecl
-- public_import_alias.ly --
pub import "foo.bar" as baz;
-- public_import_alias.want --
decls=0 errors=0
-- function_with_body.ly --
fun add(x I32, y I32) I32 = return x + y; end
-- function_with_body.want --
decls=1 errors=0
FunDecl
-- module_and_macro.ly --
module geometry =
  val pi F64 := 3;
end
generate!(Shape);
-- module_and_macro.want --
decls=2 errors=0
ModuleDecl
MacroExpandDecl
-- object_class.ly --
object Point class =
  val x I32;
  val y I32;
end
-- object_class.want --
decls=1 errors=0
ObjectDecl
-- lib_decl.ly --
lib("C") foo =
end
-- lib_decl.want --
decls=1 errors=0
LibDecl
`

// summarize renders a deterministic, compact description of a preparse
// result: decl/error counts followed by each top-level decl's concrete
// variant name in order — enough to catch a dispatch regression without
// asserting on every field a scenario's decl carries.
func summarize(info PreparserInfo, sink interface{ ErrorCount() int }) string {
	var b strings.Builder
	fmt.Fprintf(&b, "decls=%d errors=%d\n", len(info.Decls), sink.ErrorCount())
	for _, d := range info.Decls {
		name := fmt.Sprintf("%T", d)
		_, name, _ = strings.Cut(name, ".")
		fmt.Fprintf(&b, "%s\n", name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func TestScenarioCorpus(t *testing.T) {
	archive := txtar.Parse([]byte(scenarioCorpus))

	cases := map[string]string{}
	for _, f := range archive.Files {
		name, kind, ok := strings.Cut(f.Name, ".")
		require.True(t, ok, "malformed fixture name %q", f.Name)
		switch kind {
		case "ly":
			cases[name] = string(f.Data)
		case "want":
			// paired below once every .ly is known
		}
	}

	for _, f := range archive.Files {
		name, kind, ok := strings.Cut(f.Name, ".")
		require.True(t, ok)
		if kind != "want" {
			continue
		}
		src, ok := cases[name]
		require.True(t, ok, "fixture %q has a .want but no .ly", name)

		t.Run(name, func(t *testing.T) {
			info, sink := run(t, src)
			got := summarize(info, sink)
			want := strings.TrimSpace(string(f.Data))
			assert.Equal(t, want, got)
		})
	}
}
