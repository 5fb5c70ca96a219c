package lang

import (
	"context"
	"log/slog"

	"github.com/sahilm/fuzzy"
)

// resolve walks the parsed items depth-first in emission order, linking
// every reference to its binding site or tagging it external, and
// recording scope diagnostics. Traversal order matches Generate exactly
// so that visibility at resolve time equals visibility in the emitted
// code.
func (ast *AST) resolve(ctx context.Context) {
	r := &resolver{ast: ast}
	r.push()

	r.items(ast.Items)

	r.pop()

	ast.logger.TraceContext(
		ctx,
		"resolver complete",
		slog.Int("diagnostic_count", len(ast.diags)),
	)
}

// frame is one scope's ordered name table. Bindings are inserted after
// the named entity's subtree completes, so a name is never visible from
// inside its own definition.
type frame struct {
	names map[string]*Name
	order []string
}

type resolver struct {
	ast    *AST
	frames []*frame
}

func (r *resolver) push() {
	r.frames = append(r.frames, &frame{names: map[string]*Name{}})
}

func (r *resolver) pop() {
	r.frames = r.frames[:len(r.frames)-1]
}

func (r *resolver) top() *frame {
	return r.frames[len(r.frames)-1]
}

// lookup searches the frame stack innermost-first.
func (r *resolver) lookup(name string) *Name {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if n, ok := r.frames[i].names[name]; ok {
			return n
		}
	}

	return nil
}

// visible returns every name reachable from the current position,
// innermost frames last so later suggestions prefer nearer bindings.
func (r *resolver) visible() []string {
	var names []string
	for _, f := range r.frames {
		names = append(names, f.order...)
	}

	return names
}

func (r *resolver) items(items []Item) {
	for _, item := range items {
		switch it := item.(type) {
		case *Entity:
			r.entity(it)

		case *CodeBlock:
			r.markUses(it.Text)

		case *Flow:
			r.flow(it)
		}
	}
}

func (r *resolver) entity(ent *Entity) {
	if ent.Parent != nil {
		r.ref(ent.Parent)
	}

	if ent.Insertion {
		r.insertionTarget(ent)
	}

	for i := range ent.Components {
		r.markUses(ent.Components[i].Text)
	}

	for i := range ent.Extensions {
		ext := &ent.Extensions[i]
		for j := range ext.Args {
			r.markUses(ext.Args[j].Text)
		}

		if ext.Block != nil {
			r.markUses(ext.Block.Text)
		}
	}

	for i := range ent.Groups {
		r.push()
		r.items(ent.Groups[i].Items)
		r.pop()
	}

	if ent.Name != nil && !ent.Insertion && !ent.failed {
		r.bind(ent)
	}
}

func (r *resolver) flow(f *Flow) {
	r.markUses(f.Cond.Text)

	// Loop bodies and branch bodies are their own frames: a binding made
	// under a conditional cannot be relied upon after it.
	r.push()

	var loopVar *Name

	if f.Var != "" {
		loopVar = &Name{Text: f.Var, Span: f.Span}
		r.top().names[f.Var] = loopVar
		r.top().order = append(r.top().order, f.Var)
	}

	r.items(f.Body)
	r.pop()

	if loopVar != nil {
		f.varUses = loopVar.refs
	}

	if f.Else != nil {
		if f.Else.Cond.Text != "" {
			r.flow(f.Else)
		} else {
			r.push()
			r.items(f.Else.Body)
			r.pop()
		}
	}
}

// ref resolves an explicit reference. Unresolved references are tagged
// external rather than failing: the name may belong to the surrounding
// host scope. A fuzzy near-miss against the visible bindings is surfaced
// as a non-fatal note since an external reference and a typo look the
// same from here.
func (r *resolver) ref(ref *Ref) {
	if n := r.lookup(ref.Text); n != nil {
		ref.Binding = n
		n.refs++

		return
	}

	diag := Diagnostic{
		Category: ExternalReference,
		Span:     ref.Span,
		Msg:      "'" + ref.Text + "' is not bound here; treating it as an external handle",
	}

	if r.ast.opts.suggestExternal {
		if match := closest(ref.Text, r.visible()); match != "" {
			diag.Note = "did you mean '" + match + "'?"
		}
	}

	r.ast.diags = append(r.ast.diags, diag)
}

// insertionTarget enforces that '+' targets a locally observed binding.
// External handles cannot be insertion targets.
func (r *resolver) insertionTarget(ent *Entity) {
	if n := r.lookup(ent.Name.Text); n != nil {
		n.refs++

		return
	}

	ent.failed = true

	diag := Diagnostic{
		Category: InsertionTargetNotLocal,
		Span:     ent.Name.Span,
		Msg:      "insertion target '" + ent.Name.Text + "' is not bound in any visible scope",
	}

	if r.ast.opts.suggestExternal {
		if match := closest(ent.Name.Text, r.visible()); match != "" {
			diag.Note = "did you mean '" + match + "'?"
		}
	}

	r.ast.diags = append(r.ast.diags, diag)
}

// bind inserts the entity's name into the current frame. Duplicates
// within one frame are fatal; shadowing an outer frame is permitted and
// mirrors the scoping of the generated code.
func (r *resolver) bind(ent *Entity) {
	f := r.top()

	if _, ok := f.names[ent.Name.Text]; ok {
		ent.failed = true
		r.ast.diags = append(r.ast.diags, Diagnostic{
			Category: DuplicateBinding,
			Span:     ent.Name.Span,
			Msg:      "'" + ent.Name.Text + "' is already bound in this scope",
		})

		return
	}

	f.names[ent.Name.Text] = ent.Name
	f.order = append(f.order, ent.Name.Text)
}

// markUses scans an opaque expression or statement body for identifiers
// matching visible bindings and counts each occurrence as a use. The
// scan is lexical only; it exists so that unreferenced bindings can be
// detected, never to validate the opaque payload.
func (r *resolver) markUses(text string) {
	for _, word := range identWords(text) {
		if n := r.lookup(word); n != nil {
			n.refs++
		}
	}
}

// identWords extracts identifier-shaped words from opaque source text,
// skipping string literals so their contents cannot count as uses.
func identWords(text string) []string {
	var (
		words []string
		start = -1
	)

	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if c == '"' || c == '\'' || c == '`' {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}

			quote := c
			for i++; i < len(runes); i++ {
				if runes[i] == '\\' && quote != '`' {
					i++

					continue
				}

				if runes[i] == quote {
					break
				}
			}

			continue
		}

		isIdent := c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			start >= 0 && c >= '0' && c <= '9'

		switch {
		case isIdent && start < 0:
			start = i

		case !isIdent && start >= 0:
			words = append(words, string(runes[start:i]))
			start = -1
		}
	}

	if start >= 0 {
		words = append(words, string(runes[start:]))
	}

	return words
}

// closest returns the best fuzzy match for name among candidates, or ""
// when nothing ranks close enough to suggest.
func closest(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}

	best := matches[0]
	if best.Score < 0 || best.Str == name {
		return ""
	}

	return best.Str
}
