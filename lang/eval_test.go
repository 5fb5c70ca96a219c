package lang

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tnthung/bevy-toolbox/spawn"
	"github.com/tnthung/bevy-toolbox/value"
)

func mustApply(t *testing.T, src string, external map[string]any) *spawn.World {
	t.Helper()

	world := spawn.NewWorld()

	if err := mustParse(t, src).Apply(context.Background(), world, external); err != nil {
		t.Fatalf("Apply(%q) failed: %v", src, err)
	}

	return world
}

func TestApply_SpawnOrder(t *testing.T) {
	world := mustApply(t, `("Node"); ("Text");`, nil)

	ops := world.Ops()
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}

	for i, want := range []string{"Node", "Text"} {
		if ops[i].Kind != spawn.OpSpawn {
			t.Errorf("op %d kind = %v, want spawn", i, ops[i].Kind)
		}

		if len(ops[i].Args) != 1 || ops[i].Args[0] != want {
			t.Errorf("op %d args = %v, want [%s]", i, ops[i].Args, want)
		}
	}
}

func TestApply_EmptyComponents(t *testing.T) {
	world := mustApply(t, `();`, nil)

	if world.Len() != 1 {
		t.Fatalf("got %d entities, want 1", world.Len())
	}
}

func TestApply_NamedBindingAsParent(t *testing.T) {
	world := mustApply(t, `p ("Root"); p > ("Child");`, nil)

	ops := world.Ops()
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}

	if ops[2].Kind != spawn.OpSetParent {
		t.Fatalf("op 2 kind = %v, want set-parent", ops[2].Kind)
	}

	root, child := ops[0].Entity, ops[1].Entity

	if world.Parent(child) != root {
		t.Errorf("Parent(%d) = %d, want %d", child, world.Parent(child), root)
	}

	if kids := world.Children(root); len(kids) != 1 || kids[0] != child {
		t.Errorf("Children(%d) = %v, want [%d]", root, kids, child)
	}
}

func TestApply_ParentedInsideFlow(t *testing.T) {
	world := mustApply(t, `p ("Root"); if true { p > ("Kid"); };`, nil)

	ops := world.Ops()
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}

	if ops[2].Kind != spawn.OpSetParent {
		t.Fatalf("op 2 kind = %v, want set-parent", ops[2].Kind)
	}

	root, kid := ops[0].Entity, ops[1].Entity

	if world.Parent(kid) != root {
		t.Errorf("Parent(%d) = %d, want %d", kid, world.Parent(kid), root)
	}
}

func TestApply_ChildrenGroup(t *testing.T) {
	world := mustApply(t, `("Root").[ ("A"); ("B"); ];`, nil)

	ops := world.Ops()
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}

	root := ops[0].Entity

	for _, op := range ops[1:] {
		if op.Kind != spawn.OpChild {
			t.Errorf("op kind = %v, want child", op.Kind)
		}

		if op.Parent != root {
			t.Errorf("child parent = %d, want %d", op.Parent, root)
		}
	}

	if kids := world.Children(root); len(kids) != 2 {
		t.Errorf("Children(%d) = %v, want 2 entries", root, kids)
	}
}

func TestApply_ParentVisibleInGroup(t *testing.T) {
	world := mustApply(t, `("Root").[ (parent); ];`, nil)

	ops := world.Ops()
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}

	if got := ops[1].Args[0]; got != ops[0].Entity {
		t.Errorf("child component = %v, want parent handle %d", got, ops[0].Entity)
	}
}

func TestApply_Insertion(t *testing.T) {
	world := mustApply(t, `a ("Node"); a + ("Extra");`, nil)

	ops := world.Ops()
	if len(ops) != 2 || ops[1].Kind != spawn.OpInsert {
		t.Fatalf("ops = %+v, want spawn then insert", ops)
	}

	comps := world.Components(ops[0].Entity)
	if len(comps) != 2 || comps[0] != "Node" || comps[1] != "Extra" {
		t.Errorf("components = %v, want [Node Extra]", comps)
	}
}

func TestApply_Extensions(t *testing.T) {
	world := mustApply(t, `("n").color("red").("cb");`, nil)

	ops := world.Ops()
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}

	if ops[1].Kind != spawn.OpInvoke || ops[1].Method != "color" || ops[1].Args[0] != "red" {
		t.Errorf("invoke op = %+v", ops[1])
	}

	if ops[2].Kind != spawn.OpObserve || ops[2].Args[0] != "cb" {
		t.Errorf("observe op = %+v", ops[2])
	}

	if obs := world.Observers(ops[0].Entity); len(obs) != 1 || obs[0] != "cb" {
		t.Errorf("observers = %v, want [cb]", obs)
	}
}

func TestApply_ExtensionSeesThis(t *testing.T) {
	world := mustApply(t, `("n").tag(this);`, nil)

	ops := world.Ops()
	if ops[1].Args[0] != ops[0].Entity {
		t.Errorf("tag arg = %v, want own handle %d", ops[1].Args[0], ops[0].Entity)
	}
}

func TestApply_ExternalParent(t *testing.T) {
	world := spawn.NewWorld()
	outside := world.Spawn("Host").ID()

	ast := mustParse(t, `outside > ("n");`)

	err := ast.Apply(context.Background(), world, map[string]any{"outside": outside})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	ops := world.Ops()
	if world.Parent(ops[1].Entity) != outside {
		t.Errorf("Parent = %d, want %d", world.Parent(ops[1].Entity), outside)
	}
}

func TestApply_ExternalParentMissing(t *testing.T) {
	ast := mustParse(t, `outside > ("n");`)

	err := ast.Apply(context.Background(), spawn.NewWorld(), nil)
	if err == nil {
		t.Fatal("expected error for unsupplied external handle")
	}

	if !strings.Contains(err.Error(), "fatal diagnostics") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestApply_ExternalParentNotHandle(t *testing.T) {
	ast := mustParse(t, `outside > ("n");`)

	err := ast.Apply(context.Background(), spawn.NewWorld(), map[string]any{"outside": 7})
	if err == nil {
		t.Fatal("expected error for non-handle external")
	}
}

func TestApply_ForLoop(t *testing.T) {
	world := mustApply(t, `for x in [1, 2, 3] { (x); };`, nil)

	ops := world.Ops()
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}

	for i, want := range []int{1, 2, 3} {
		if ops[i].Args[0] != want {
			t.Errorf("op %d spawned %v, want %d", i, ops[i].Args[0], want)
		}
	}
}

func TestApply_ForLoopOverString(t *testing.T) {
	world := mustApply(t, `for c in "ab" { (c); };`, nil)

	ops := world.Ops()
	if len(ops) != 2 || ops[0].Args[0] != "a" || ops[1].Args[0] != "b" {
		t.Errorf("ops = %+v, want spawns of a then b", ops)
	}
}

func TestApply_ForLoopNotIterable(t *testing.T) {
	ast := mustParse(t, `for x in 5 { (x); };`)

	err := ast.Apply(context.Background(), spawn.NewWorld(), nil)
	if err == nil || !strings.Contains(err.Error(), "not iterable") {
		t.Errorf("err = %v, want not-iterable", err)
	}
}

func TestApply_IfElse(t *testing.T) {
	world := mustApply(t, `if false { ("a"); } else { ("b"); };`, nil)

	ops := world.Ops()
	if len(ops) != 1 || ops[0].Args[0] != "b" {
		t.Errorf("ops = %+v, want single spawn of b", ops)
	}
}

func TestApply_IfElseIfChain(t *testing.T) {
	world := mustApply(
		t,
		`for x in [1, 2, 3] { if x == 1 { ("one"); } else if x == 2 { ("two"); } else { ("many"); }; };`,
		nil,
	)

	ops := world.Ops()
	got := make([]any, len(ops))
	for i, op := range ops {
		got[i] = op.Args[0]
	}

	want := []any{"one", "two", "many"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spawn %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApply_CondNotBool(t *testing.T) {
	ast := mustParse(t, `if 1 { ("a"); };`)

	err := ast.Apply(context.Background(), spawn.NewWorld(), nil)
	if err == nil || !strings.Contains(err.Error(), "not a boolean") {
		t.Errorf("err = %v, want not-a-boolean", err)
	}
}

func TestApply_WhileBreak(t *testing.T) {
	world := mustApply(t, `while true { ("x"); break; };`, nil)

	if got := len(world.Ops()); got != 1 {
		t.Errorf("got %d ops, want 1", got)
	}
}

func TestApply_WhileFalseNeverRuns(t *testing.T) {
	world := mustApply(t, `while false { ("x"); };`, nil)

	if got := len(world.Ops()); got != 0 {
		t.Errorf("got %d ops, want 0", got)
	}
}

func TestApply_ForContinue(t *testing.T) {
	world := mustApply(t, `for x in [1, 2, 3] { if x == 2 { continue; }; (x); };`, nil)

	ops := world.Ops()
	if len(ops) != 2 || ops[0].Args[0] != 1 || ops[1].Args[0] != 3 {
		t.Errorf("ops = %+v, want spawns of 1 and 3", ops)
	}
}

func TestApply_ForBreak(t *testing.T) {
	world := mustApply(t, `for x in [1, 2, 3] { if x == 2 { break; }; (x); };`, nil)

	ops := world.Ops()
	if len(ops) != 1 || ops[0].Args[0] != 1 {
		t.Errorf("ops = %+v, want single spawn of 1", ops)
	}
}

func TestApply_Builtins(t *testing.T) {
	world := mustApply(t, `(length("10px"));`, nil)

	want, err := value.Parse("10px")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := world.Ops()[0].Args[0]; got != want {
		t.Errorf("component = %v, want %v", got, want)
	}
}

func TestApply_ExternalValueInExpression(t *testing.T) {
	world := mustApply(t, `("Label(" + title + ")");`, map[string]any{"title": "Hi"})

	if got := world.Ops()[0].Args[0]; got != "Label(Hi)" {
		t.Errorf("component = %v, want Label(Hi)", got)
	}
}

func TestApply_CodeBlockSkipped(t *testing.T) {
	world := mustApply(t, `{ hostSetup() }; ("n");`, nil)

	if got := len(world.Ops()); got != 1 {
		t.Errorf("got %d ops, want 1", got)
	}
}

func TestApply_NilSpawner(t *testing.T) {
	ast := mustParse(t, `("n");`)

	if err := ast.Apply(context.Background(), nil, nil); !errors.Is(err, ErrNoSpawner) {
		t.Errorf("err = %v, want ErrNoSpawner", err)
	}
}

func TestApply_FatalDiagnosticsAbort(t *testing.T) {
	ast, parseErr := ParseString(context.Background(), `a (); a ();`)
	if parseErr == nil {
		t.Fatal("expected parse error for duplicate binding")
	}

	err := ast.Apply(context.Background(), spawn.NewWorld(), nil)
	if err == nil || !strings.Contains(err.Error(), "fatal diagnostics") {
		t.Errorf("err = %v, want apply aborted", err)
	}
}

func TestApply_CanceledContext(t *testing.T) {
	ast := mustParse(t, `("n");`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ast.Apply(ctx, spawn.NewWorld(), nil); err == nil {
		t.Error("expected error for canceled context")
	}
}
