package lang

import (
	"context"
	"strings"
	"testing"
)

func diagnosticsOf(ast *AST, c Category) []Diagnostic {
	var out []Diagnostic

	for _, d := range ast.Diagnostics() {
		if d.Category == c {
			out = append(out, d)
		}
	}

	return out
}

func TestResolve_UpwardVisibility(t *testing.T) {
	// A children group sees names bound before the enclosing entity, even
	// through multiple nesting levels.
	ast := mustParse(t, `root (n); box (m).[ inner (i).[ root + (deep); ]; ];`)

	if len(ast.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", ast.Diagnostics())
	}

	root := ast.Items[0].(*Entity)
	if !root.Name.Referenced() {
		t.Error("expected root to be marked referenced")
	}
}

func TestResolve_SiblingGroupIsolation(t *testing.T) {
	// A name bound in one children group is invisible to a sibling group.
	ast := mustParse(t, `(n).[ x (a); ].[ (x); ];`)

	diags := diagnosticsOf(ast, ExternalReference)
	if len(diags) != 0 {
		// The second group's x appears only inside an opaque component
		// expression, which resolves lexically without a diagnostic.
		t.Fatalf("expected no explicit reference diagnostics, got %v", diags)
	}

	// An explicit insertion against the sibling's binding does fail.
	ast2, err := ParseString(context.Background(), `(n).[ x (a); ].[ x + (c); ];`)
	if err == nil {
		t.Fatal("expected insertion against sibling binding to fail")
	}

	if len(diagnosticsOf(ast2, InsertionTargetNotLocal)) != 1 {
		t.Errorf("expected InsertionTargetNotLocal, got %v", ast2.Diagnostics())
	}
}

func TestResolve_ForwardReferenceIsExternal(t *testing.T) {
	// Bindings insert after the entity's subtree, so a parent reference to
	// a later sibling is treated as external.
	ast := mustParse(t, `later > (a); later (n);`)

	diags := diagnosticsOf(ast, ExternalReference)
	if len(diags) != 1 {
		t.Fatalf("expected 1 external reference, got %v", ast.Diagnostics())
	}

	if !strings.Contains(diags[0].Msg, "later") {
		t.Errorf("unexpected message: %q", diags[0].Msg)
	}

	// External references are not fatal.
	if err := ast.Err(); err != nil {
		t.Errorf("expected no fatal error, got %v", err)
	}
}

func TestResolve_SelfReferenceIsExternal(t *testing.T) {
	// A name is never visible from inside its own definition: the binding
	// inserts only after the entity's subtree completes.
	ast, err := ParseString(context.Background(), `a (n).[ a + (x); ];`)
	if err == nil {
		t.Fatal("expected self insertion to fail")
	}

	if len(diagnosticsOf(ast, InsertionTargetNotLocal)) != 1 {
		t.Errorf("expected self insertion to fail, got %v", ast.Diagnostics())
	}
}

func TestResolve_DuplicateBindingSameFrame(t *testing.T) {
	ast, err := ParseString(context.Background(), `a (n); a (m);`)
	if err == nil {
		t.Fatal("expected duplicate binding error")
	}

	diags := diagnosticsOf(ast, DuplicateBinding)
	if len(diags) != 1 {
		t.Fatalf("expected 1 duplicate diagnostic, got %v", ast.Diagnostics())
	}

	if !diags[0].Category.Fatal() {
		t.Error("expected DuplicateBinding to be fatal")
	}
}

func TestResolve_ShadowingAcrossFramesAllowed(t *testing.T) {
	ast := mustParse(t, `a (n).[ a (m); ];`)

	if len(ast.Diagnostics()) != 0 {
		t.Errorf("expected shadowing to be permitted, got %v", ast.Diagnostics())
	}
}

func TestResolve_DuplicateSurvivorsStillGenerate(t *testing.T) {
	// The second binding of a fails, but the third construct is intact.
	ast, err := ParseString(context.Background(), `a (n); a (m); b (k);`)
	if err == nil {
		t.Fatal("expected duplicate binding error")
	}

	if len(ast.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(ast.Items))
	}

	src, _ := ast.Generate(context.Background(), GenConfig{})
	if !strings.Contains(src, "b := func() spawn.Handle {") {
		t.Errorf("expected survivor b in generated source:\n%s", src)
	}
}

func TestResolve_FuzzySuggestion(t *testing.T) {
	ast := mustParse(t, `button (n); buton > (x);`)

	diags := diagnosticsOf(ast, ExternalReference)
	if len(diags) != 1 {
		t.Fatalf("expected 1 external reference, got %v", ast.Diagnostics())
	}

	if !strings.Contains(diags[0].Note, "button") {
		t.Errorf("expected close-match note, got %q", diags[0].Note)
	}
}

func TestResolve_SuggestionsDisabled(t *testing.T) {
	ast, err := ParseString(
		context.Background(),
		`button (n); buton > (x);`,
		WithSuggestions(false),
	)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	diags := diagnosticsOf(ast, ExternalReference)
	if len(diags) != 1 {
		t.Fatalf("expected 1 external reference, got %v", ast.Diagnostics())
	}

	if diags[0].Note != "" {
		t.Errorf("expected no note, got %q", diags[0].Note)
	}
}

func TestResolve_MarkUsesSkipsStrings(t *testing.T) {
	// The word inside a string literal must not count as a use.
	ast := mustParse(t, `a (n); ("a");`)

	ent := ast.Items[0].(*Entity)
	if ent.Name.Referenced() {
		t.Error("expected a to be unreferenced")
	}
}

func TestResolve_ComponentUseCountsAsReference(t *testing.T) {
	ast := mustParse(t, `a (n); (wrap(a));`)

	ent := ast.Items[0].(*Entity)
	if !ent.Name.Referenced() {
		t.Error("expected a to be referenced through the component payload")
	}
}

func TestResolve_LoopVariableUses(t *testing.T) {
	used := mustParse(t, `for x in xs { (x); };`)
	if f := used.Items[0].(*Flow); f.varUses == 0 {
		t.Error("expected loop variable use to be counted")
	}

	unused := mustParse(t, `for x in xs { (n); };`)
	if f := unused.Items[0].(*Flow); f.varUses != 0 {
		t.Errorf("expected no loop variable uses, got %d", f.varUses)
	}
}

func TestIdentWords(t *testing.T) {
	for src, want := range map[string][]string{
		`foo bar`:         {"foo", "bar"},
		`f1(x2)`:          {"f1", "x2"},
		`"skip" keep`:     {"keep"},
		`'skip' _under`:   {"_under"},
		`a+"b c"+d`:       {"a", "d"},
		`1abc`:            {"abc"},
		"`raw text` tail": {"tail"},
	} {
		t.Run(src, func(t *testing.T) {
			got := identWords(src)
			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}

			for i := range want {
				if got[i] != want[i] {
					t.Errorf("word %d: expected %q, got %q", i, want[i], got[i])
				}
			}
		})
	}
}
