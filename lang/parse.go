package lang

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tnthung/bevy-toolbox/lang/token"
)

// ParseString parses input and returns the resolved AST.
// Options can be provided to customize behavior. The result is cached for
// efficient repeated parsing of the same content when no options are used.
//
// A non-nil error reports fatal diagnostics; the returned AST is still
// populated so that every diagnostic, including those of sibling
// constructs that parsed cleanly, can be inspected and rendered.
func ParseString(
	ctx context.Context,
	input string,
	opts ...Option,
) (*AST, error) {
	if len(opts) == 0 {
		return parseStringCached(ctx, input)
	}

	return parse(ctx, input, opts...)
}

// parse is the internal parsing implementation: tokenize, parse, resolve.
func parse(ctx context.Context, input string, opts ...Option) (*AST, error) {
	ast := &AST{source: input}

	applyDefaults(ast)
	applyOptions(ast, opts...)

	ast.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	trees, err := token.Tokenize(input)
	if err != nil {
		var te *token.Error
		if errors.As(err, &te) {
			ast.diags = append(ast.diags, Diagnostic{
				Category: SyntaxError,
				Span:     te.Span,
				Msg:      te.Msg,
			})

			return ast, ast.Err()
		}

		return ast, ErrTokenize.Wrap(err)
	}

	p := &parser{src: input, trees: trees, ast: ast}

	ast.Items = p.items(true, false)

	ast.logger.TraceContext(
		ctx,
		"parser complete",
		slog.Int("item_count", len(ast.Items)),
		slog.Int("diagnostic_count", len(ast.diags)),
	)

	ast.resolve(ctx)

	return ast, ast.Err()
}

// parser is a recursive-descent cursor over one level of token trees.
// Nested groups are parsed by constructing a child parser over the group's
// nodes, so delimiter matching is already guaranteed by the tokenizer.
type parser struct {
	src   string
	trees []token.Tree
	pos   int
	ast   *AST
}

// sub returns a parser over a group's contents sharing the same source
// and diagnostic sink.
func (p *parser) sub(g *token.Tree) *parser {
	return &parser{src: p.src, trees: g.Nodes, ast: p.ast}
}

func (p *parser) peek() *token.Tree {
	if p.pos >= len(p.trees) {
		return nil
	}

	return &p.trees[p.pos]
}

func (p *parser) peekAt(n int) *token.Tree {
	if p.pos+n >= len(p.trees) {
		return nil
	}

	return &p.trees[p.pos+n]
}

func (p *parser) next() *token.Tree {
	t := p.peek()
	if t != nil {
		p.pos++
	}

	return t
}

// endSpan is the span reported for errors at end of input.
func (p *parser) endSpan() token.Span {
	if len(p.trees) == 0 {
		return token.Span{Line: 1, Col: 1}
	}

	last := p.trees[len(p.trees)-1].Span

	return token.Span{Start: last.End, End: last.End, Line: last.Line, Col: last.Col}
}

// fail records a fatal syntax diagnostic at the given span.
func (p *parser) fail(span token.Span, msg string) {
	p.ast.diags = append(p.ast.diags, Diagnostic{
		Category: SyntaxError,
		Span:     span,
		Msg:      msg,
	})
}

// recover skips forward past the next top-level ';' so that sibling
// constructs after a malformed one still parse.
func (p *parser) recover() {
	for {
		t := p.next()
		if t == nil || t.IsPunct(';') {
			return
		}
	}
}

// items parses a sequence of items until the trees are exhausted.
// topLevel permits parented forms; inFlow permits break/continue.
func (p *parser) items(topLevel, inFlow bool) []Item {
	var items []Item

	for {
		t := p.peek()
		if t == nil {
			return items
		}

		if t.IsPunct(';') {
			p.next()

			continue
		}

		item, ok := p.item(topLevel, inFlow)
		if !ok {
			p.recover()

			continue
		}

		items = append(items, item)
	}
}

// item parses one top-level or child item.
func (p *parser) item(topLevel, inFlow bool) (Item, bool) {
	t := p.peek()

	switch {
	case t.IsGroup(token.Paren):
		return p.entity(nil)

	case t.IsGroup(token.Brace):
		g := p.next()

		return &CodeBlock{Text: g.Span.Inner(p.src), Span: g.Span}, true

	case t.Kind == token.Ident:
		switch t.Text {
		case "if", "for", "while":
			return p.flow(topLevel)

		case "break":
			if !inFlow {
				p.fail(t.Span, "'break' is only allowed inside a flow body")

				return nil, false
			}

			return &Break{Span: p.next().Span}, true

		case "continue":
			if !inFlow {
				p.fail(t.Span, "'continue' is only allowed inside a flow body")

				return nil, false
			}

			return &Continue{Span: p.next().Span}, true
		}

		return p.namedItem(topLevel)

	default:
		p.fail(t.Span, "expected entity, insertion, flow statement, or code block, found "+t.Describe())

		return nil, false
	}
}

// namedItem parses an item that begins with an identifier: a named
// entity, a parented entity, or an insertion.
func (p *parser) namedItem(topLevel bool) (Item, bool) {
	t := p.peek()
	after := p.peekAt(1)

	if after == nil {
		p.fail(t.Span, "expected '>', '+', or '(…)' after name")
		p.next()

		return nil, false
	}

	switch {
	case after.IsPunct('>'):
		if !topLevel {
			p.fail(t.Span, "parenting is not allowed inside a children group")

			return nil, false
		}

		parent := &Ref{Text: t.Text, Span: t.Span}
		p.next() // name
		p.next() // '>'

		return p.entity(parent)

	case after.IsPunct('+'):
		name := &Name{Text: t.Text, Span: t.Span}
		p.next() // name
		p.next() // '+'

		// The inserted definition is anonymous: only '(…)' may follow.
		if def := p.peek(); def == nil || !def.IsGroup(token.Paren) {
			span := p.endSpan()
			if def != nil {
				span = def.Span
			}

			p.fail(span, "expected '(' for insertion definition")

			return nil, false
		}

		ent, ok := p.entity(nil)
		if !ok {
			return nil, false
		}

		ent.Name = name
		ent.Insertion = true
		ent.Span = name.Span.Join(ent.Span)

		return ent, true

	case after.IsGroup(token.Paren), after.Kind == token.Ident:
		return p.entity(nil)

	default:
		if topLevel {
			p.fail(t.Span, "expected '>' for parented, '+' for inserted, or '(…)' for entity")
		} else {
			p.fail(t.Span, "expected '+' for inserted, or '(…)' for entity")
		}

		p.next()

		return nil, false
	}
}

// entity parses `[name] ( components ) extension* childgroup*`, possibly
// with an explicit parent already consumed by the caller.
func (p *parser) entity(parent *Ref) (*Entity, bool) {
	ent := &Entity{Parent: parent}

	first := p.peek()
	if first == nil {
		p.fail(p.endSpan(), "expected entity definition")

		return nil, false
	}

	ent.Span = first.Span
	if parent != nil {
		ent.Span = parent.Span.Join(ent.Span)
	}

	if first.Kind == token.Ident {
		ent.Name = &Name{Text: first.Text, Span: first.Span}
		p.next()
	}

	comp := p.peek()
	if comp == nil || !comp.IsGroup(token.Paren) {
		span := p.endSpan()
		if comp != nil {
			span = comp.Span
		}

		p.fail(span, "expected '(' for component list")

		return nil, false
	}

	p.next()

	ent.Components = p.commaExprs(comp)
	ent.Span = ent.Span.Join(comp.Span)

	// `name (…)+` also reads as insertion, matching the documented
	// entity-form where '+' trails the component list.
	if t := p.peek(); t != nil && t.IsPunct('+') {
		if ent.Name == nil {
			p.fail(t.Span, "insertion requires an explicit target name")

			return nil, false
		}

		ent.Insertion = true

		p.next()
	}

	if !p.extensions(ent) {
		return nil, false
	}

	if !p.groups(ent) {
		return nil, false
	}

	return ent, true
}

// extensions parses the chain of '.' extensions up to the first children
// group. A '.' followed by '[' belongs to groups.
func (p *parser) extensions(ent *Entity) bool {
	for {
		dot := p.peek()
		if dot == nil || !dot.IsPunct('.') {
			return true
		}

		after := p.peekAt(1)
		if after != nil && after.IsGroup(token.Bracket) {
			return true
		}

		p.next() // '.'

		if after == nil {
			p.fail(dot.Span, "expected method call, callback, or code block after '.'")

			return false
		}

		switch {
		case after.Kind == token.Ident:
			name := p.next()

			args := p.peek()
			if args == nil || !args.IsGroup(token.Paren) {
				p.fail(name.Span, "expected '(' after method name '"+name.Text+"'")

				return false
			}

			p.next()

			ent.Extensions = append(ent.Extensions, Extension{
				Kind:   ExtMethod,
				Method: name.Text,
				Args:   p.commaExprs(args),
				Span:   dot.Span.Join(args.Span),
			})

		case after.IsGroup(token.Paren):
			g := p.next()

			if len(g.Nodes) == 0 {
				p.fail(g.Span, "expected callback argument in '.(…)'")

				return false
			}

			ent.Extensions = append(ent.Extensions, Extension{
				Kind: ExtObserve,
				Args: []Expr{p.exprOf(g.Nodes)},
				Span: dot.Span.Join(g.Span),
			})

		case after.IsGroup(token.Brace):
			g := p.next()

			ent.Extensions = append(ent.Extensions, Extension{
				Kind:  ExtBlock,
				Block: &CodeBlock{Text: g.Span.Inner(p.src), Span: g.Span},
				Span:  dot.Span.Join(g.Span),
			})

		default:
			p.fail(after.Span, "expected method call, callback, or code block after '.', found "+after.Describe())

			return false
		}

		ent.Span = ent.Span.Join(ent.Extensions[len(ent.Extensions)-1].Span)
	}
}

// groups parses the trailing children groups. A children group terminates
// the extension list: any further '.' extension is a structural error.
func (p *parser) groups(ent *Entity) bool {
	for {
		dot := p.peek()
		if dot == nil || !dot.IsPunct('.') {
			return true
		}

		after := p.peekAt(1)
		if after == nil || !after.IsGroup(token.Bracket) {
			p.next()

			span := dot.Span
			if after != nil {
				span = after.Span
			}

			p.fail(span, "extensions cannot be chained after a children group")

			return false
		}

		p.next() // '.'
		g := p.next()

		sub := p.sub(g)

		ent.Groups = append(ent.Groups, Group{
			Items: sub.items(false, false),
			Span:  g.Span,
		})

		ent.Span = ent.Span.Join(g.Span)
	}
}

// flow parses `if`, `for`, or `while` with an opaque head expression and
// a braced body of nested items. topLevel carries the enclosing position
// into the body, so parented forms remain legal under top-level flows.
func (p *parser) flow(topLevel bool) (Item, bool) {
	kw := p.next()

	f := &Flow{Span: kw.Span}

	switch kw.Text {
	case "if":
		f.Kind = FlowIf

	case "for":
		f.Kind = FlowFor

		v := p.peek()
		if v == nil || v.Kind != token.Ident {
			p.fail(kw.Span, "expected loop variable after 'for'")

			return nil, false
		}

		p.next()
		f.Var = v.Text

		in := p.peek()
		if in == nil || in.Kind != token.Ident || in.Text != "in" {
			p.fail(v.Span, "expected 'in' after loop variable")

			return nil, false
		}

		p.next()

	case "while":
		f.Kind = FlowWhile
	}

	cond, body, ok := p.flowHead(kw.Span)
	if !ok {
		return nil, false
	}

	f.Cond = cond

	sub := p.sub(body)
	f.Body = sub.items(topLevel, true)
	f.Span = f.Span.Join(body.Span)

	if f.Kind == FlowIf {
		if !p.flowElse(f, topLevel) {
			return nil, false
		}
	}

	return f, true
}

// flowHead collects the opaque head expression up to the braced body.
func (p *parser) flowHead(at token.Span) (Expr, *token.Tree, bool) {
	var run []token.Tree

	for {
		t := p.peek()
		if t == nil {
			p.fail(at, "expected '{' for flow body")

			return Expr{}, nil, false
		}

		if t.IsGroup(token.Brace) {
			p.next()

			if len(run) == 0 {
				p.fail(t.Span, "expected flow condition before '{'")

				return Expr{}, nil, false
			}

			return p.exprOf(run), t, true
		}

		run = append(run, *p.next())
	}
}

// flowElse parses an optional `else` branch: a chained flow statement or
// a bare braced body.
func (p *parser) flowElse(f *Flow, topLevel bool) bool {
	t := p.peek()
	if t == nil || t.Kind != token.Ident || t.Text != "else" {
		return true
	}

	p.next()

	after := p.peek()
	if after == nil {
		p.fail(t.Span, "expected flow statement or '{' after 'else'")

		return false
	}

	if after.IsGroup(token.Brace) {
		body := p.next()

		sub := p.sub(body)
		f.Else = &Flow{
			Kind: FlowIf,
			Body: sub.items(topLevel, true),
			Span: t.Span.Join(body.Span),
		}
		f.Span = f.Span.Join(body.Span)

		return true
	}

	if after.Kind == token.Ident {
		switch after.Text {
		case "if", "for", "while":
			item, ok := p.flow(topLevel)
			if !ok {
				return false
			}

			chained, isFlow := item.(*Flow)
			if !isFlow {
				return false
			}

			f.Else = chained
			f.Span = f.Span.Join(chained.Span)

			return true
		}
	}

	p.fail(after.Span, "expected flow statement or '{' after 'else'")

	return false
}

// commaExprs splits a group's contents into opaque expressions on
// top-level commas. Trailing commas are permitted.
func (p *parser) commaExprs(g *token.Tree) []Expr {
	var (
		exprs []Expr
		run   []token.Tree
	)

	flush := func() {
		if len(run) == 0 {
			return
		}

		exprs = append(exprs, p.exprOf(run))
		run = nil
	}

	for _, t := range g.Nodes {
		if t.IsPunct(',') {
			flush()

			continue
		}

		run = append(run, t)
	}

	flush()

	return exprs
}

// exprOf recovers the verbatim source text spanning a run of trees.
func (p *parser) exprOf(run []token.Tree) Expr {
	span := run[0].Span
	for _, t := range run[1:] {
		span = span.Join(t.Span)
	}

	return Expr{Text: span.Of(p.src), Span: span}
}
