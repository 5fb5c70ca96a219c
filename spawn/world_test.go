package spawn

import (
	"sync"
	"testing"
)

func TestWorld_Spawn(t *testing.T) {
	w := NewWorld()

	a := w.Spawn("Node").ID()
	b := w.Spawn("Text", "Style").ID()

	if a == None || b == None || a == b {
		t.Fatalf("handles a=%d b=%d must be distinct and non-zero", a, b)
	}

	if w.Len() != 2 {
		t.Errorf("Len = %d, want 2", w.Len())
	}

	comps := w.Components(b)
	if len(comps) != 2 || comps[0] != "Text" || comps[1] != "Style" {
		t.Errorf("Components(b) = %v", comps)
	}
}

func TestWorld_Insert(t *testing.T) {
	w := NewWorld()

	h := w.Spawn("Node").ID()
	w.Entity(h).Insert("Extra")

	comps := w.Components(h)
	if len(comps) != 2 || comps[1] != "Extra" {
		t.Errorf("Components = %v, want [Node Extra]", comps)
	}
}

func TestWorld_SetParent(t *testing.T) {
	w := NewWorld()

	root := w.Spawn().ID()

	child := w.Spawn()
	child.SetParent(root)

	if got := w.Parent(child.ID()); got != root {
		t.Errorf("Parent = %d, want %d", got, root)
	}

	if kids := w.Children(root); len(kids) != 1 || kids[0] != child.ID() {
		t.Errorf("Children = %v, want [%d]", kids, child.ID())
	}
}

func TestWorld_Child(t *testing.T) {
	w := NewWorld()

	root := w.Spawn("Root")
	kid := root.Child("Kid")

	if w.Parent(kid.ID()) != root.ID() {
		t.Errorf("Parent = %d, want %d", w.Parent(kid.ID()), root.ID())
	}

	if comps := w.Components(kid.ID()); len(comps) != 1 || comps[0] != "Kid" {
		t.Errorf("Components = %v", comps)
	}

	// Grandchildren chain through the returned builder.
	grand := kid.Child("Grand")
	if w.Parent(grand.ID()) != kid.ID() {
		t.Errorf("grandchild parent = %d, want %d", w.Parent(grand.ID()), kid.ID())
	}
}

func TestWorld_Observe(t *testing.T) {
	w := NewWorld()

	cb := func() {}

	b := w.Spawn()
	b.Observe(cb)

	if obs := w.Observers(b.ID()); len(obs) != 1 {
		t.Errorf("Observers = %v, want one entry", obs)
	}
}

func TestWorld_OpLog(t *testing.T) {
	w := NewWorld()

	root := w.Spawn("Root")
	kid := root.Child("Kid")
	kid.Insert("More")
	kid.Invoke("resize", 2, 3)

	ops := w.Ops()

	want := []OpKind{OpSpawn, OpChild, OpInsert, OpInvoke}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops, want %d", len(ops), len(want))
	}

	for i, k := range want {
		if ops[i].Kind != k {
			t.Errorf("op %d kind = %v, want %v", i, ops[i].Kind, k)
		}
	}

	if ops[3].Method != "resize" || len(ops[3].Args) != 2 {
		t.Errorf("invoke op = %+v", ops[3])
	}

	// The log copy is detached from later operations.
	w.Spawn()

	if len(ops) != len(want) {
		t.Error("Ops result must be a snapshot")
	}
}

func TestWorld_UnknownHandle(t *testing.T) {
	w := NewWorld()

	if w.Components(42) != nil || w.Children(42) != nil || w.Observers(42) != nil {
		t.Error("unknown handle must report empty state")
	}

	if w.Parent(42) != None {
		t.Errorf("Parent(42) = %d, want None", w.Parent(42))
	}
}

func TestWorld_InvokerAlwaysTrue(t *testing.T) {
	w := NewWorld()

	inv, ok := w.Spawn().(Invoker)
	if !ok {
		t.Fatal("World builder should implement Invoker")
	}

	if !inv.CanInvoke("anything") {
		t.Error("World accepts every method")
	}
}

func TestWorld_ConcurrentSpawn(t *testing.T) {
	w := NewWorld()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			w.Spawn("N").Child("C")
		}()
	}

	wg.Wait()

	if w.Len() != 64 {
		t.Errorf("Len = %d, want 64", w.Len())
	}
}
