package lang

import (
	"github.com/expr-lang/expr/vm"

	"github.com/tnthung/bevy-toolbox/lang/token"
	"github.com/tnthung/bevy-toolbox/log"
)

// AST is the parsed and resolved form of one spawn construct: an ordered
// list of top-level items. Emission order is exactly source order.
type AST struct {
	Items []Item

	source string
	opts   optionsKey   // configuration options
	diags  []Diagnostic // accumulated during parse and resolve
	logger log.Logger   // structured logger (outside optionsKey, doesn't affect cache)
}

// Source returns the original source text the AST was parsed from.
func (ast *AST) Source() string { return ast.source }

// Diagnostics returns every diagnostic collected while parsing and
// resolving, in source order.
func (ast *AST) Diagnostics() []Diagnostic { return ast.diags }

// Err returns a single error covering all fatal diagnostics, or nil if
// the AST is clean enough to generate code for every construct.
func (ast *AST) Err() error {
	for _, d := range ast.diags {
		if d.Category.Fatal() {
			return &DiagnosticError{Diags: ast.diags, Source: ast.source}
		}
	}

	return nil
}

// Item is one top-level or child-group entry: an entity form, an injected
// code block, a flow statement, or a loop control keyword.
type Item interface {
	itemSpan() token.Span
}

// Entity is one spawn declaration.
type Entity struct {
	Parent     *Ref        // optional, top level only
	Name       *Name       // optional binding, or insertion target
	Insertion  bool        // name + (…): mutate through an existing binding
	Components []Expr      // opaque, forwarded verbatim to the spawner
	Extensions []Extension // emitted before any children group
	Groups     []Group     // isolated child scopes
	Span       token.Span

	failed bool // a fatal diagnostic suppresses generation for this node
}

func (e *Entity) itemSpan() token.Span { return e.Span }

// Anonymous reports whether the entity binds no name.
func (e *Entity) Anonymous() bool { return e.Name == nil }

// Name is a binding site introduced by a named entity.
type Name struct {
	Text string
	Span token.Span

	refs int // references observed by the resolver
}

// Referenced reports whether the resolver saw any later reference to the
// binding. The generator uses this to silence unused variables.
func (n *Name) Referenced() bool { return n.refs > 0 }

// Ref is a by-name reference to a binding. After resolution, Binding is
// the local binding site, or nil when the name is treated as an opaque
// expression supplied by the surrounding host context.
type Ref struct {
	Text string
	Span token.Span

	Binding *Name
}

// Local reports whether the reference resolved to a local binding.
func (r *Ref) Local() bool { return r != nil && r.Binding != nil }

// Expr is an opaque expression: a component, a method-call argument, or a
// flow condition. The compiler never inspects its meaning; Text is carried
// verbatim into generated code. The interpreter compiles it on demand.
type Expr struct {
	Text string
	Span token.Span

	prog *vm.Program // compiled lazily by Apply
}

// ExtKind discriminates the extension forms.
type ExtKind int

const (
	// ExtMethod is ".name(args)".
	ExtMethod ExtKind = iota

	// ExtObserve is the name-less shortcut ".(callback)".
	ExtObserve

	// ExtBlock is ".{ … }": statements run with the entity under
	// construction in scope.
	ExtBlock
)

// Extension is one post-creation action, emitted in source order.
type Extension struct {
	Kind   ExtKind
	Method string     // ExtMethod only
	Args   []Expr     // ExtMethod and ExtObserve
	Block  *CodeBlock // ExtBlock only
	Span   token.Span
}

// CodeBlock is an opaque statement sequence injected at top level, inside
// a children group, or as an extension body.
type CodeBlock struct {
	Text string // inner statements, braces stripped
	Span token.Span
}

func (b *CodeBlock) itemSpan() token.Span { return b.Span }

// Group is one children group: an isolated, ordered batch of child items
// with its own scope frame.
type Group struct {
	Items []Item
	Span  token.Span
}

// FlowKind discriminates flow statements.
type FlowKind int

const (
	FlowIf FlowKind = iota
	FlowFor
	FlowWhile
)

// Flow is a conditional or loop wrapping nested items. Cond is the opaque
// condition (or iterable for FlowFor). Else chains a following branch for
// FlowIf; an Else with an empty Cond.Text is a bare else.
type Flow struct {
	Kind FlowKind
	Cond Expr
	Var  string // FlowFor loop variable
	Body []Item
	Else *Flow // FlowIf only
	Span token.Span

	varUses int // loop variable references observed by the resolver
}

func (f *Flow) itemSpan() token.Span { return f.Span }

// Break is the loop control keyword inside a flow body.
type Break struct{ Span token.Span }

func (b *Break) itemSpan() token.Span { return b.Span }

// Continue is the loop control keyword inside a flow body.
type Continue struct{ Span token.Span }

func (c *Continue) itemSpan() token.Span { return c.Span }

// optionsKey holds AST configuration options.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	suggestExternal bool
}

// Option configures AST parsing, generation, or application behavior.
type Option func(*AST)

// WithSuggestions enables "did you mean" notes for references that fall
// through to the surrounding host context.
func WithSuggestions(enable bool) Option {
	return func(ast *AST) {
		ast.opts.suggestExternal = enable
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(ast *AST) {
		ast.logger = logger
	}
}

// applyDefaults sets default option values on an AST.
func applyDefaults(ast *AST) {
	ast.opts.suggestExternal = true
}

// applyOptions applies functional options to an AST.
func applyOptions(ast *AST, opts ...Option) {
	for _, opt := range opts {
		opt(ast)
	}
}

// Walk visits every item in emission order, descending into children
// groups and flow bodies. The visit function returns false to stop.
func (ast *AST) Walk(visit func(Item) bool) {
	walkItems(ast.Items, visit)
}

func walkItems(items []Item, visit func(Item) bool) bool {
	for _, item := range items {
		if !visit(item) {
			return false
		}

		switch it := item.(type) {
		case *Entity:
			for _, g := range it.Groups {
				if !walkItems(g.Items, visit) {
					return false
				}
			}

		case *Flow:
			for f := it; f != nil; f = f.Else {
				if !walkItems(f.Body, visit) {
					return false
				}
			}
		}
	}

	return true
}
