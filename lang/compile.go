package lang

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"log/slog"
	"strings"
)

// GenConfig controls the shape of generated Go source.
type GenConfig struct {
	// Package is the generated package name. Defaults to "main".
	Package string

	// Func is the generated function name. Defaults to "Spawn". The
	// function takes one spawn.Spawner and performs every operation of
	// the construct in source order.
	Func string
}

func (cfg *GenConfig) defaults() {
	if cfg.Package == "" {
		cfg.Package = "main"
	}

	if cfg.Func == "" {
		cfg.Func = "Spawn"
	}
}

// Generate emits the construct as formatted Go source. Constructs with
// fatal diagnostics are skipped so that the remaining items still
// generate; in that case the returned source is complete for the
// surviving items and the error carries every diagnostic.
func (ast *AST) Generate(ctx context.Context, cfg GenConfig) (string, error) {
	cfg.defaults()

	g := &generator{ast: ast}

	g.line("// Code generated from a spawn construct. DO NOT EDIT.")
	g.line("")
	g.line("package %s", cfg.Package)
	g.line("")
	g.line("import %q", "github.com/tnthung/bevy-toolbox/spawn")
	g.line("")
	g.line("func %s(sp spawn.Spawner) {", cfg.Func)
	g.indent++

	g.items(ast.Items, spawnRoot)

	g.indent--
	g.line("}")

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		// The emitted shape is fixed; only opaque payloads can break
		// formatting, so the raw output is worth surfacing.
		return g.buf.String(), ErrFormatSource.Wrap(err).With(
			slog.String("source", g.buf.String()),
		)
	}

	ast.logger.TraceContext(
		ctx,
		"generate complete",
		slog.String("package", cfg.Package),
		slog.String("func", cfg.Func),
		slog.Int("source_length", len(src)),
	)

	return string(src), ast.Err()
}

// spawnContext is the creation call available in the current scope:
// the spawner itself at top level, the enclosing builder in a group.
type spawnContext string

const (
	spawnRoot  spawnContext = "sp.Spawn"
	spawnChild spawnContext = "entity.Child"
)

type generator struct {
	ast    *AST
	buf    bytes.Buffer
	indent int
}

func (g *generator) line(f string, args ...any) {
	if f == "" {
		g.buf.WriteByte('\n')

		return
	}

	g.buf.WriteString(strings.Repeat("\t", g.indent))
	fmt.Fprintf(&g.buf, f, args...)
	g.buf.WriteByte('\n')
}

// raw emits opaque statement text verbatim, reindented to the current
// level. The text is never parsed; whoever compiles the output checks it.
func (g *generator) raw(text string) {
	for _, ln := range strings.Split(strings.TrimSpace(text), "\n") {
		g.line("%s", strings.TrimSpace(ln))
	}
}

func (g *generator) items(items []Item, sc spawnContext) {
	for _, item := range items {
		switch it := item.(type) {
		case *Entity:
			if it.failed {
				continue
			}

			g.entity(it, sc)

		case *CodeBlock:
			g.raw(it.Text)

		case *Flow:
			g.flow(it, sc)

		case *Break:
			g.line("break")

		case *Continue:
			g.line("continue")
		}
	}
}

func (g *generator) entity(ent *Entity, sc spawnContext) {
	switch {
	case ent.Insertion:
		g.insertion(ent)

	case ent.Name != nil:
		// A named entity becomes a handle binding through a function
		// literal, so the intermediate builder stays scoped to the
		// entity form and the handle alone escapes.
		g.line("%s := func() spawn.Handle {", ent.Name.Text)
		g.indent++

		g.body(ent, sc)
		g.line("return this")

		g.indent--
		g.line("}()")

		if !ent.Name.Referenced() {
			g.line("_ = %s", ent.Name.Text)
		}

	case g.bare(ent):
		// An anonymous entity with nothing but components is a single
		// creation call.
		g.line("%s(%s)", sc, exprList(ent.Components))

	default:
		g.line("{")
		g.indent++

		g.body(ent, sc)

		g.indent--
		g.line("}")
	}
}

// bare reports whether the entity needs no builder scope of its own.
func (g *generator) bare(ent *Entity) bool {
	return ent.Parent == nil &&
		len(ent.Extensions) == 0 &&
		len(ent.Groups) == 0
}

// body emits the creation sequence shared by every entity shape:
// create, parent, handle, extensions, children groups.
func (g *generator) body(ent *Entity, sc spawnContext) {
	g.line("entity := %s(%s)", sc, exprList(ent.Components))

	if ent.Parent != nil {
		g.line("entity.SetParent(%s)", ent.Parent.Text)
	}

	if g.needsThis(ent) {
		g.line("this := entity.ID()")
	}

	g.extensions(ent)
	g.groups(ent)
}

func (g *generator) insertion(ent *Entity) {
	if len(ent.Extensions) == 0 && len(ent.Groups) == 0 {
		g.line("sp.Entity(%s).Insert(%s)", ent.Name.Text, exprList(ent.Components))

		return
	}

	g.line("{")
	g.indent++

	g.line("entity := sp.Entity(%s)", ent.Name.Text)
	g.line("entity.Insert(%s)", exprList(ent.Components))

	if g.needsThis(ent) {
		g.line("this := entity.ID()")
	}

	g.extensions(ent)
	g.groups(ent)

	g.indent--
	g.line("}")
}

func (g *generator) extensions(ent *Entity) {
	for i := range ent.Extensions {
		ext := &ent.Extensions[i]

		switch ext.Kind {
		case ExtMethod:
			if len(ext.Args) == 0 {
				g.line("entity.Invoke(%q)", ext.Method)
			} else {
				g.line("entity.Invoke(%q, %s)", ext.Method, exprList(ext.Args))
			}

		case ExtObserve:
			g.line("entity.Observe(%s)", exprList(ext.Args))

		case ExtBlock:
			g.line("{")
			g.indent++
			g.raw(ext.Block.Text)
			g.indent--
			g.line("}")
		}
	}
}

func (g *generator) groups(ent *Entity) {
	for i := range ent.Groups {
		grp := &ent.Groups[i]

		g.line("{")
		g.indent++

		if groupUsesParent(grp) {
			g.line("parent := this")
		}

		g.items(grp.Items, spawnChild)

		g.indent--
		g.line("}")
	}
}

func (g *generator) flow(f *Flow, sc spawnContext) {
	switch f.Kind {
	case FlowIf:
		g.line("if %s {", f.Cond.Text)

	case FlowFor:
		if f.varUses > 0 {
			g.line("for _, %s := range %s {", f.Var, f.Cond.Text)
		} else {
			g.line("for range %s {", f.Cond.Text)
		}

	case FlowWhile:
		g.line("for %s {", f.Cond.Text)
	}

	g.indent++
	g.items(f.Body, sc)
	g.indent--

	g.flowElse(f, sc)
	g.line("}")
}

// flowElse chains else branches onto an if. Loop flows after else are
// wrapped in a plain else block since Go has no "else for".
func (g *generator) flowElse(f *Flow, sc spawnContext) {
	for f.Kind == FlowIf && f.Else != nil {
		e := f.Else

		switch {
		case e.Cond.Text == "":
			g.line("} else {")
			g.indent++
			g.items(e.Body, sc)
			g.indent--

			return

		case e.Kind == FlowIf:
			g.line("} else if %s {", e.Cond.Text)
			g.indent++
			g.items(e.Body, sc)
			g.indent--

			f = e

		default:
			g.line("} else {")
			g.indent++
			g.flow(e, sc)
			g.indent--

			return
		}
	}
}

// needsThis reports whether the entity's handle must be materialized:
// named entities return it, extension bodies may reference it, and any
// group that rebinds parent reads it.
func (g *generator) needsThis(ent *Entity) bool {
	if ent.Name != nil && !ent.Insertion {
		return true
	}

	for i := range ent.Extensions {
		ext := &ent.Extensions[i]

		if ext.Block != nil && usesWord(ext.Block.Text, "this") {
			return true
		}

		for _, a := range ext.Args {
			if usesWord(a.Text, "this") {
				return true
			}
		}
	}

	for i := range ent.Groups {
		if groupUsesParent(&ent.Groups[i]) {
			return true
		}
	}

	return false
}

// groupUsesParent reports whether any opaque payload directly in the
// group mentions the parent binding. The scan descends through flow
// bodies but never into nested groups, which rebind parent to their own
// entity.
func groupUsesParent(grp *Group) bool {
	return itemsUseParent(grp.Items)
}

func itemsUseParent(items []Item) bool {
	for _, item := range items {
		switch it := item.(type) {
		case *Entity:
			for _, c := range it.Components {
				if usesWord(c.Text, "parent") {
					return true
				}
			}

			for i := range it.Extensions {
				ext := &it.Extensions[i]

				if ext.Block != nil && usesWord(ext.Block.Text, "parent") {
					return true
				}

				for _, a := range ext.Args {
					if usesWord(a.Text, "parent") {
						return true
					}
				}
			}

		case *CodeBlock:
			if usesWord(it.Text, "parent") {
				return true
			}

		case *Flow:
			for f := it; f != nil; f = f.Else {
				if usesWord(f.Cond.Text, "parent") || itemsUseParent(f.Body) {
					return true
				}
			}
		}
	}

	return false
}

func usesWord(text, word string) bool {
	for _, w := range identWords(text) {
		if w == word {
			return true
		}
	}

	return false
}

func exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i := range exprs {
		parts[i] = exprs[i].Text
	}

	return strings.Join(parts, ", ")
}
