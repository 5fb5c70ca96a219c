package lang

import (
	"strings"
)

// Format renders the construct back to canonical source: one top-level
// item per statement, extensions chained on the entity line, children
// groups indented one level per nesting.
func (ast *AST) Format() string {
	var f formatter

	f.items(ast.Items)

	return f.buf.String()
}

type formatter struct {
	buf    strings.Builder
	indent int
}

func (f *formatter) line(s string) {
	f.buf.WriteString(strings.Repeat("  ", f.indent))
	f.buf.WriteString(s)
	f.buf.WriteByte('\n')
}

func (f *formatter) items(items []Item) {
	for _, item := range items {
		switch it := item.(type) {
		case *Entity:
			f.entity(it)

		case *CodeBlock:
			f.line("{ " + strings.TrimSpace(it.Text) + " };")

		case *Flow:
			f.flow(it)

		case *Break:
			f.line("break;")

		case *Continue:
			f.line("continue;")
		}
	}
}

func (f *formatter) entity(ent *Entity) {
	var b strings.Builder

	if ent.Parent != nil {
		b.WriteString(ent.Parent.Text)
		b.WriteString(" > ")
	}

	if ent.Name != nil {
		b.WriteString(ent.Name.Text)

		if ent.Insertion {
			b.WriteString(" +")
		}

		b.WriteByte(' ')
	}

	b.WriteByte('(')
	b.WriteString(exprList(ent.Components))
	b.WriteByte(')')

	for i := range ent.Extensions {
		ext := &ent.Extensions[i]

		switch ext.Kind {
		case ExtMethod:
			b.WriteString("." + ext.Method + "(" + exprList(ext.Args) + ")")

		case ExtObserve:
			b.WriteString(".(" + exprList(ext.Args) + ")")

		case ExtBlock:
			b.WriteString(".{ " + strings.TrimSpace(ext.Block.Text) + " }")
		}
	}

	if len(ent.Groups) == 0 {
		f.line(b.String() + ";")

		return
	}

	f.line(b.String())

	for i := range ent.Groups {
		f.indent++
		f.line(".[")

		f.indent++
		f.items(ent.Groups[i].Items)
		f.indent--

		f.line("]")
		f.indent--
	}

	f.line(";")
}

func (f *formatter) flow(fl *Flow) {
	switch fl.Kind {
	case FlowIf:
		f.line("if " + fl.Cond.Text + " {")

	case FlowFor:
		f.line("for " + fl.Var + " in " + fl.Cond.Text + " {")

	case FlowWhile:
		f.line("while " + fl.Cond.Text + " {")
	}

	f.indent++
	f.items(fl.Body)
	f.indent--

	for e := fl.Else; e != nil; e = e.Else {
		if e.Cond.Text == "" {
			f.line("} else {")
		} else {
			switch e.Kind {
			case FlowIf:
				f.line("} else if " + e.Cond.Text + " {")

			case FlowFor:
				f.line("} else for " + e.Var + " in " + e.Cond.Text + " {")

			case FlowWhile:
				f.line("} else while " + e.Cond.Text + " {")
			}
		}

		f.indent++
		f.items(e.Body)
		f.indent--

		if e.Cond.Text == "" {
			break
		}
	}

	f.line("}")
}
