package lang

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/expr-lang/expr"

	"github.com/tnthung/bevy-toolbox/color"
	"github.com/tnthung/bevy-toolbox/spawn"
	"github.com/tnthung/bevy-toolbox/value"
)

// Apply interprets the construct directly against a live spawner instead
// of generating code, performing every operation in source order.
// Component, argument, and condition expressions are evaluated with the
// expression engine; injected code blocks are host-language payloads and
// are skipped with a trace record.
//
// external supplies handles and values for names the resolver tagged as
// outside the construct; it may be nil.
func (ast *AST) Apply(
	ctx context.Context,
	sp spawn.Spawner,
	external map[string]any,
) error {
	if err := ast.Err(); err != nil {
		return ErrApplyAborted.Wrap(err)
	}

	if sp == nil {
		return ErrNoSpawner
	}

	ev := &evaluator{ast: ast, sp: sp}

	ev.push()

	for name, val := range external {
		ev.define(name, val)
	}

	ctl, err := ev.items(ctx, ast.Items, nil)
	if err != nil {
		return err
	}

	if ctl != ctlNone {
		// Parser only admits break/continue inside flow bodies.
		return ErrApplyAborted.With(slog.String("reason", "loop control escaped all loops"))
	}

	ast.logger.TraceContext(ctx, "apply complete")

	return nil
}

// control propagates break/continue out of nested item sequences up to
// the nearest enclosing loop.
type control int

const (
	ctlNone control = iota
	ctlBreak
	ctlContinue
)

type evaluator struct {
	ast    *AST
	sp     spawn.Spawner
	frames []map[string]any
}

func (ev *evaluator) push() {
	ev.frames = append(ev.frames, map[string]any{})
}

func (ev *evaluator) pop() {
	ev.frames = ev.frames[:len(ev.frames)-1]
}

func (ev *evaluator) define(name string, val any) {
	ev.frames[len(ev.frames)-1][name] = val
}

func (ev *evaluator) lookup(name string) (any, bool) {
	for i := len(ev.frames) - 1; i >= 0; i-- {
		if v, ok := ev.frames[i][name]; ok {
			return v, true
		}
	}

	return nil, false
}

// env flattens the frame stack for one expression evaluation, inner
// frames winning, with the literal builtins always present.
func (ev *evaluator) env(extra map[string]any) map[string]any {
	env := map[string]any{
		"length":  value.Parse,
		"edges":   value.ParseEdges,
		"corners": value.ParseCorners,
		"color":   color.Parse,
	}

	for _, f := range ev.frames {
		for k, v := range f {
			env[k] = v
		}
	}

	for k, v := range extra {
		env[k] = v
	}

	return env
}

// eval compiles (once) and runs one opaque expression.
func (ev *evaluator) eval(e *Expr, extra map[string]any) (any, error) {
	if e.prog == nil {
		prog, err := expr.Compile(e.Text, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, ErrExprCompile.Wrap(err).With(
				slog.String("expr", e.Text),
				slog.String("at", e.Span.String()),
			)
		}

		e.prog = prog
	}

	out, err := expr.Run(e.prog, ev.env(extra))
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).With(
			slog.String("expr", e.Text),
			slog.String("at", e.Span.String()),
		)
	}

	return out, nil
}

func (ev *evaluator) items(ctx context.Context, items []Item, extra map[string]any) (control, error) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return ctlNone, ErrApplyAborted.Wrap(err)
		}

		switch it := item.(type) {
		case *Entity:
			if err := ev.entity(ctx, it, extra); err != nil {
				return ctlNone, err
			}

		case *CodeBlock:
			ev.ast.logger.TraceContext(
				ctx,
				"skipping injected code block",
				slog.String("at", it.Span.String()),
			)

		case *Flow:
			ctl, err := ev.flow(ctx, it, extra)
			if err != nil {
				return ctlNone, err
			}

			if ctl != ctlNone {
				return ctl, nil
			}

		case *Break:
			return ctlBreak, nil

		case *Continue:
			return ctlContinue, nil
		}
	}

	return ctlNone, nil
}

func (ev *evaluator) entity(ctx context.Context, ent *Entity, extra map[string]any) error {
	comps, err := ev.exprs(ent.Components, extra)
	if err != nil {
		return err
	}

	var b spawn.Builder

	switch {
	case ent.Insertion:
		target, ok := ev.lookup(ent.Name.Text)
		if !ok {
			return ErrApplyAborted.With(
				slog.String("target", ent.Name.Text),
				slog.String("at", ent.Name.Span.String()),
			)
		}

		h, ok := target.(spawn.Handle)
		if !ok {
			return ErrApplyAborted.With(
				slog.String("target", ent.Name.Text),
				slog.String("reason", "bound value is not a handle"),
			)
		}

		b = ev.sp.Entity(h)
		b.Insert(comps...)

	case parentBuilder(extra) != nil:
		b = parentBuilder(extra).Child(comps...)

	default:
		b = ev.sp.Spawn(comps...)
	}

	if ent.Parent != nil {
		h, err := ev.parentHandle(ent.Parent)
		if err != nil {
			return err
		}

		b.SetParent(h)
	}

	this := b.ID()

	// this and entity are visible to extension payloads only.
	scope := map[string]any{"this": this, "entity": b}
	for k, v := range extra {
		if _, shadowed := scope[k]; !shadowed {
			scope[k] = v
		}
	}

	if err := ev.extensions(ctx, ent, b, scope); err != nil {
		return err
	}

	for i := range ent.Groups {
		ev.push()

		ctl, err := ev.items(ctx, ent.Groups[i].Items, map[string]any{
			"parent":  this,
			parentKey: b,
		})

		ev.pop()

		if err != nil {
			return err
		}

		if ctl != ctlNone {
			return ErrApplyAborted.With(slog.String("reason", "loop control crossed a children group"))
		}
	}

	if ent.Name != nil && !ent.Insertion {
		ev.define(ent.Name.Text, this)
	}

	return nil
}

// parentKey carries the enclosing builder through a children group. The
// leading space keeps it unreachable from user expressions.
const parentKey = " parent builder"

func parentBuilder(extra map[string]any) spawn.Builder {
	if b, ok := extra[parentKey].(spawn.Builder); ok {
		return b
	}

	return nil
}

func (ev *evaluator) parentHandle(ref *Ref) (spawn.Handle, error) {
	v, ok := ev.lookup(ref.Text)
	if !ok {
		return spawn.None, ErrApplyAborted.With(
			slog.String("parent", ref.Text),
			slog.String("at", ref.Span.String()),
			slog.String("reason", "external handle not supplied"),
		)
	}

	h, ok := v.(spawn.Handle)
	if !ok {
		return spawn.None, ErrApplyAborted.With(
			slog.String("parent", ref.Text),
			slog.String("reason", "bound value is not a handle"),
		)
	}

	return h, nil
}

func (ev *evaluator) extensions(
	ctx context.Context,
	ent *Entity,
	b spawn.Builder,
	scope map[string]any,
) error {
	for i := range ent.Extensions {
		ext := &ent.Extensions[i]

		switch ext.Kind {
		case ExtMethod:
			if inv, ok := b.(spawn.Invoker); ok && !inv.CanInvoke(ext.Method) {
				return ErrMethodUnknown.With(
					slog.String("method", ext.Method),
					slog.String("at", ext.Span.String()),
				)
			}

			args, err := ev.exprs(ext.Args, scope)
			if err != nil {
				return err
			}

			b.Invoke(ext.Method, args...)

		case ExtObserve:
			args, err := ev.exprs(ext.Args, scope)
			if err != nil {
				return err
			}

			for _, a := range args {
				b.Observe(a)
			}

		case ExtBlock:
			ev.ast.logger.TraceContext(
				ctx,
				"skipping extension code block",
				slog.String("at", ext.Span.String()),
			)
		}
	}

	return nil
}

func (ev *evaluator) exprs(list []Expr, extra map[string]any) ([]any, error) {
	if len(list) == 0 {
		return nil, nil
	}

	vals := make([]any, len(list))

	for i := range list {
		v, err := ev.eval(&list[i], extra)
		if err != nil {
			return nil, err
		}

		vals[i] = v
	}

	return vals, nil
}

func (ev *evaluator) flow(ctx context.Context, f *Flow, extra map[string]any) (control, error) {
	switch f.Kind {
	case FlowIf:
		return ev.flowIf(ctx, f, extra)

	case FlowFor:
		return ev.flowFor(ctx, f, extra)

	default:
		return ev.flowWhile(ctx, f, extra)
	}
}

func (ev *evaluator) flowIf(ctx context.Context, f *Flow, extra map[string]any) (control, error) {
	take, err := ev.cond(&f.Cond, extra)
	if err != nil {
		return ctlNone, err
	}

	if take {
		ev.push()
		defer ev.pop()

		return ev.items(ctx, f.Body, extra)
	}

	if f.Else == nil {
		return ctlNone, nil
	}

	if f.Else.Cond.Text == "" {
		ev.push()
		defer ev.pop()

		return ev.items(ctx, f.Else.Body, extra)
	}

	return ev.flow(ctx, f.Else, extra)
}

func (ev *evaluator) flowFor(ctx context.Context, f *Flow, extra map[string]any) (control, error) {
	seq, err := ev.eval(&f.Cond, extra)
	if err != nil {
		return ctlNone, err
	}

	rv := reflect.ValueOf(seq)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			ctl, err := ev.iteration(ctx, f, rv.Index(i).Interface(), extra)
			if err != nil || ctl == ctlBreak {
				return ctlNone, err
			}
		}

	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			ctl, err := ev.iteration(ctx, f, iter.Key().Interface(), extra)
			if err != nil || ctl == ctlBreak {
				return ctlNone, err
			}
		}

	case reflect.String:
		for _, r := range rv.String() {
			ctl, err := ev.iteration(ctx, f, string(r), extra)
			if err != nil || ctl == ctlBreak {
				return ctlNone, err
			}
		}

	default:
		return ctlNone, ErrNotIterable.With(
			slog.String("expr", f.Cond.Text),
			slog.String("at", f.Cond.Span.String()),
		)
	}

	return ctlNone, nil
}

// iteration runs one loop body pass with the loop variable bound.
// A continue from the body resolves here; break propagates up one level.
func (ev *evaluator) iteration(ctx context.Context, f *Flow, val any, extra map[string]any) (control, error) {
	ev.push()
	defer ev.pop()

	if f.Var != "" {
		ev.define(f.Var, val)
	}

	ctl, err := ev.items(ctx, f.Body, extra)
	if err != nil {
		return ctlNone, err
	}

	if ctl == ctlContinue {
		return ctlNone, nil
	}

	return ctl, nil
}

func (ev *evaluator) flowWhile(ctx context.Context, f *Flow, extra map[string]any) (control, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ctlNone, ErrApplyAborted.Wrap(err)
		}

		take, err := ev.cond(&f.Cond, extra)
		if err != nil {
			return ctlNone, err
		}

		if !take {
			return ctlNone, nil
		}

		ctl, err := ev.iteration(ctx, f, nil, extra)
		if err != nil || ctl == ctlBreak {
			return ctlNone, err
		}
	}
}

func (ev *evaluator) cond(e *Expr, extra map[string]any) (bool, error) {
	v, err := ev.eval(e, extra)
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		got := "nil"
		if t := reflect.TypeOf(v); t != nil {
			got = t.String()
		}

		return false, ErrCondNotBool.With(
			slog.String("expr", e.Text),
			slog.String("at", e.Span.String()),
			slog.String("got", got),
		)
	}

	return b, nil
}
