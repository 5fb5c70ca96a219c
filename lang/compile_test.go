package lang

import (
	"context"
	"strings"
	"testing"
)

func mustGenerate(t *testing.T, src string, cfg GenConfig) string {
	t.Helper()

	ast := mustParse(t, src)

	out, err := ast.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate(%q) failed: %v", src, err)
	}

	return out
}

func TestGenerate_Defaults(t *testing.T) {
	out := mustGenerate(t, `(Node);`, GenConfig{})

	for _, want := range []string{
		"// Code generated from a spawn construct. DO NOT EDIT.",
		"package main",
		`import "github.com/tnthung/bevy-toolbox/spawn"`,
		"func Spawn(sp spawn.Spawner) {",
		"sp.Spawn(Node)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_Config(t *testing.T) {
	out := mustGenerate(t, `(Node);`, GenConfig{Package: "ui", Func: "BuildMenu"})

	if !strings.Contains(out, "package ui") {
		t.Errorf("missing package clause:\n%s", out)
	}

	if !strings.Contains(out, "func BuildMenu(sp spawn.Spawner) {") {
		t.Errorf("missing function clause:\n%s", out)
	}
}

func TestGenerate_TwoAnonymousSiblings(t *testing.T) {
	out := mustGenerate(t, `a (); b ();`, GenConfig{})

	for _, want := range []string{
		"a := func() spawn.Handle {",
		"b := func() spawn.Handle {",
		"entity := sp.Spawn()",
		"this := entity.ID()",
		"return this",
		"_ = a",
		"_ = b",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_ParentedSibling(t *testing.T) {
	out := mustGenerate(t, `p (); p > ();`, GenConfig{})

	if !strings.Contains(out, "entity.SetParent(p)") {
		t.Errorf("missing SetParent in:\n%s", out)
	}

	// p is referenced, so the unused silencer must not appear.
	if strings.Contains(out, "_ = p") {
		t.Errorf("unexpected unused silencer in:\n%s", out)
	}
}

func TestGenerate_Extensions(t *testing.T) {
	out := mustGenerate(t, `(n).color("red").size(1, 2).(onClick);`, GenConfig{})

	for _, want := range []string{
		`entity.Invoke("color", "red")`,
		`entity.Invoke("size", 1, 2)`,
		"entity.Observe(onClick)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_MethodWithoutArgs(t *testing.T) {
	out := mustGenerate(t, `(n).hide();`, GenConfig{})

	if !strings.Contains(out, `entity.Invoke("hide")`) {
		t.Errorf("missing no-arg invoke in:\n%s", out)
	}
}

func TestGenerate_ChildGroup(t *testing.T) {
	out := mustGenerate(t, `(n).[ (a); (b); ];`, GenConfig{})

	if !strings.Contains(out, "entity.Child(a)") ||
		!strings.Contains(out, "entity.Child(b)") {
		t.Errorf("missing child spawns in:\n%s", out)
	}

	// Nothing references the parent handle, so it is never materialized.
	if strings.Contains(out, "parent := this") || strings.Contains(out, "this :=") {
		t.Errorf("unexpected handle materialization in:\n%s", out)
	}
}

func TestGenerate_ParentHandleInGroup(t *testing.T) {
	out := mustGenerate(t, `(n).[ (Anchor(parent)); ];`, GenConfig{})

	for _, want := range []string{
		"this := entity.ID()",
		"parent := this",
		"entity.Child(Anchor(parent))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_NestedGroupRebindsParent(t *testing.T) {
	// The inner group mentions parent, the outer does not: only the inner
	// entity materializes its handle.
	out := mustGenerate(t, `(n).[ (m).[ (Anchor(parent)); ]; ];`, GenConfig{})

	if strings.Count(out, "parent := this") != 1 {
		t.Errorf("expected exactly one parent rebinding in:\n%s", out)
	}
}

func TestGenerate_Insertion(t *testing.T) {
	out := mustGenerate(t, `a (n); a + (extra);`, GenConfig{})

	if !strings.Contains(out, "sp.Entity(a).Insert(extra)") {
		t.Errorf("missing insertion in:\n%s", out)
	}
}

func TestGenerate_InsertionWithExtensions(t *testing.T) {
	out := mustGenerate(t, `a (n); a + (x).refresh(now);`, GenConfig{})

	for _, want := range []string{
		"entity := sp.Entity(a)",
		"entity.Insert(x)",
		`entity.Invoke("refresh", now)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_CodeBlock(t *testing.T) {
	out := mustGenerate(t, `{ setup() };`, GenConfig{})

	if !strings.Contains(out, "setup()") {
		t.Errorf("missing injected statement in:\n%s", out)
	}
}

func TestGenerate_ExtensionBlockSeesThis(t *testing.T) {
	out := mustGenerate(t, `(n).{ register(this) };`, GenConfig{})

	for _, want := range []string{
		"this := entity.ID()",
		"register(this)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_FlowFor(t *testing.T) {
	used := mustGenerate(t, `for x in xs { (x); };`, GenConfig{})
	if !strings.Contains(used, "for _, x := range xs {") {
		t.Errorf("missing ranged loop in:\n%s", used)
	}

	unused := mustGenerate(t, `for x in xs { (n); };`, GenConfig{})
	if !strings.Contains(unused, "for range xs {") {
		t.Errorf("missing bare range loop in:\n%s", unused)
	}
}

func TestGenerate_ParentedInsideFlow(t *testing.T) {
	out := mustGenerate(t, `p (n); if cond { p > (x); };`, GenConfig{})

	for _, want := range []string{
		"if cond {",
		"entity := sp.Spawn(x)",
		"entity.SetParent(p)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	if strings.Contains(out, "_ = p") {
		t.Errorf("parent binding should count as referenced:\n%s", out)
	}
}

func TestGenerate_FlowWhile(t *testing.T) {
	out := mustGenerate(t, `while pending() { (n); };`, GenConfig{})

	if !strings.Contains(out, "for pending() {") {
		t.Errorf("missing condition loop in:\n%s", out)
	}
}

func TestGenerate_FlowIfElseChain(t *testing.T) {
	out := mustGenerate(t, `if a { (x); } else if b { (y); } else { (z); };`, GenConfig{})

	for _, want := range []string{
		"if a {",
		"} else if b {",
		"} else {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_ElseLoopWrapped(t *testing.T) {
	// Go has no "else for": the loop nests inside a plain else block.
	out := mustGenerate(t, `if a { (x); } else for v in vs { (v); };`, GenConfig{})

	if !strings.Contains(out, "} else {") {
		t.Errorf("missing else block in:\n%s", out)
	}

	if !strings.Contains(out, "for _, v := range vs {") {
		t.Errorf("missing wrapped loop in:\n%s", out)
	}
}

func TestGenerate_BreakContinue(t *testing.T) {
	out := mustGenerate(t, `for x in xs { if x { break; } else { continue; }; };`, GenConfig{})

	if !strings.Contains(out, "break") || !strings.Contains(out, "continue") {
		t.Errorf("missing loop control in:\n%s", out)
	}
}

func TestGenerate_NamedChildInGroup(t *testing.T) {
	out := mustGenerate(t, `(n).[ kid (k); kid + (more); ];`, GenConfig{})

	for _, want := range []string{
		"kid := func() spawn.Handle {",
		"entity := entity.Child(k)",
		"sp.Entity(kid).Insert(more)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	// kid is referenced by the insertion.
	if strings.Contains(out, "_ = kid") {
		t.Errorf("unexpected unused silencer in:\n%s", out)
	}
}

func TestGenerate_GofmtShape(t *testing.T) {
	out := mustGenerate(t, `a (n).[ (b); ];`, GenConfig{})

	// format.Source normalizes indentation to tabs.
	if !strings.Contains(out, "\t") {
		t.Errorf("expected tab indentation in:\n%s", out)
	}

	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("expected trailing newline after closing brace:\n%q", out[len(out)-8:])
	}
}
