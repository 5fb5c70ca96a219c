package spawn

import (
	"slices"
	"sync"
)

// World is an in-memory Spawner. It records every entity, component,
// parent edge, observer, and invoked method in the order they occur, so
// tests and the interpreter can assert on the exact operation sequence.
type World struct {
	mu   sync.Mutex
	next Handle
	ents map[Handle]*entry

	// Ops is the flat operation log, one entry per spawner call, in
	// call order.
	ops []Op
}

type entry struct {
	components []Component
	parent     Handle
	children   []Handle
	observers  []any
}

// OpKind discriminates operation log entries.
type OpKind int

const (
	OpSpawn OpKind = iota
	OpInsert
	OpSetParent
	OpChild
	OpObserve
	OpInvoke
)

// Op is one recorded spawner operation.
type Op struct {
	Kind   OpKind
	Entity Handle
	Parent Handle // OpSetParent and OpChild
	Method string // OpInvoke
	Args   []any  // OpSpawn, OpInsert, OpChild components; OpInvoke args
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{ents: map[Handle]*entry{}}
}

func (w *World) Spawn(components ...Component) Builder {
	w.mu.Lock()
	defer w.mu.Unlock()

	h := w.create(components)
	w.log(Op{Kind: OpSpawn, Entity: h, Args: components})

	return &builder{world: w, handle: h}
}

func (w *World) Entity(h Handle) Builder {
	return &builder{world: w, handle: h}
}

// create allocates a handle. Callers hold w.mu.
func (w *World) create(components []Component) Handle {
	w.next++
	w.ents[w.next] = &entry{components: slices.Clone(components)}

	return w.next
}

func (w *World) log(op Op) {
	w.ops = append(w.ops, op)
}

// Ops returns a copy of the operation log.
func (w *World) Ops() []Op {
	w.mu.Lock()
	defer w.mu.Unlock()

	return slices.Clone(w.ops)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.ents)
}

// Components returns the components attached to h, in attachment order.
func (w *World) Components(h Handle) []Component {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.ents[h]
	if !ok {
		return nil
	}

	return slices.Clone(e.components)
}

// Parent returns the parent of h, or None.
func (w *World) Parent(h Handle) Handle {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.ents[h]
	if !ok {
		return None
	}

	return e.parent
}

// Children returns the children of h in creation order.
func (w *World) Children(h Handle) []Handle {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.ents[h]
	if !ok {
		return nil
	}

	return slices.Clone(e.children)
}

// Observers returns the callbacks registered on h.
func (w *World) Observers(h Handle) []any {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.ents[h]
	if !ok {
		return nil
	}

	return slices.Clone(e.observers)
}

// builder drives one entity of a World.
type builder struct {
	world  *World
	handle Handle
}

func (b *builder) ID() Handle { return b.handle }

func (b *builder) Insert(components ...Component) {
	w := b.world

	w.mu.Lock()
	defer w.mu.Unlock()

	if e, ok := w.ents[b.handle]; ok {
		e.components = append(e.components, components...)
	}

	w.log(Op{Kind: OpInsert, Entity: b.handle, Args: components})
}

func (b *builder) SetParent(parent Handle) {
	w := b.world

	w.mu.Lock()
	defer w.mu.Unlock()

	if e, ok := w.ents[b.handle]; ok {
		e.parent = parent
	}

	if p, ok := w.ents[parent]; ok {
		p.children = append(p.children, b.handle)
	}

	w.log(Op{Kind: OpSetParent, Entity: b.handle, Parent: parent})
}

func (b *builder) Child(components ...Component) Builder {
	w := b.world

	w.mu.Lock()
	defer w.mu.Unlock()

	h := w.create(components)
	w.ents[h].parent = b.handle

	if e, ok := w.ents[b.handle]; ok {
		e.children = append(e.children, h)
	}

	w.log(Op{Kind: OpChild, Entity: h, Parent: b.handle, Args: components})

	return &builder{world: w, handle: h}
}

func (b *builder) Observe(callback any) {
	w := b.world

	w.mu.Lock()
	defer w.mu.Unlock()

	if e, ok := w.ents[b.handle]; ok {
		e.observers = append(e.observers, callback)
	}

	w.log(Op{Kind: OpObserve, Entity: b.handle, Args: []any{callback}})
}

func (b *builder) Invoke(method string, args ...any) {
	w := b.world

	w.mu.Lock()
	defer w.mu.Unlock()

	w.log(Op{Kind: OpInvoke, Entity: b.handle, Method: method, Args: args})
}

// CanInvoke reports true for every method: the World records invocations
// rather than interpreting them.
func (b *builder) CanInvoke(string) bool { return true }
