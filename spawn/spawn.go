// Package spawn defines the runtime capability that compiled spawn
// constructs drive: a [Spawner] creates entities and hands back a
// [Builder] for attaching components, parent links, and observers. The
// package also provides [World], an in-memory implementation suitable
// for tests and for interpreting constructs directly.
package spawn

// Handle identifies a spawned entity. Handles are stable for the life of
// the spawner that issued them and are meaningless across spawners.
type Handle uint64

// None is the zero Handle, held by no entity.
const None Handle = 0

// Component is an opaque piece of data attached to an entity. The spawn
// machinery never inspects component values.
type Component = any

// Spawner creates entities. Generated code receives one Spawner and
// threads it through every creation in source order.
type Spawner interface {
	// Spawn creates a new root entity carrying the given components.
	Spawn(components ...Component) Builder

	// Entity reacquires a builder for a previously spawned entity, as
	// used by insertion forms.
	Entity(h Handle) Builder
}

// Builder is the per-entity construction surface. A Builder is only
// valid within the scope that created it; generated code never lets one
// escape the block of its entity form.
type Builder interface {
	// ID returns the handle of the entity under construction.
	ID() Handle

	// Insert attaches further components to the entity.
	Insert(components ...Component)

	// SetParent re-parents the entity under another handle.
	SetParent(parent Handle)

	// Child creates a new entity parented under this one.
	Child(components ...Component) Builder

	// Observe registers a callback on the entity. The callback's type is
	// opaque to the spawn machinery.
	Observe(callback any)

	// Invoke dispatches a named extension method with its arguments.
	// Implementations decide which methods exist; unknown methods are
	// reported through [Invoker] semantics when implemented, and are
	// otherwise ignored.
	Invoke(method string, args ...any)
}

// Invoker is an optional interface for builders that can report whether
// an extension method is known. Interpreters use it to surface unknown
// method names instead of silently dropping them.
type Invoker interface {
	// CanInvoke reports whether the named extension method exists.
	CanInvoke(method string) bool
}
