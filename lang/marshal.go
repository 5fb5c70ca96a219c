package lang

import (
	"github.com/goccy/go-yaml"
)

// ToTree converts the construct to a plain data tree of maps and slices,
// suitable for structured output formats and for inspection tooling.
func (ast *AST) ToTree() []any {
	return itemsToTree(ast.Items)
}

func itemsToTree(items []Item) []any {
	tree := make([]any, 0, len(items))

	for _, item := range items {
		switch it := item.(type) {
		case *Entity:
			tree = append(tree, entityToTree(it))

		case *CodeBlock:
			tree = append(tree, map[string]any{"code": it.Text})

		case *Flow:
			tree = append(tree, flowToTree(it))

		case *Break:
			tree = append(tree, map[string]any{"control": "break"})

		case *Continue:
			tree = append(tree, map[string]any{"control": "continue"})
		}
	}

	return tree
}

func entityToTree(ent *Entity) map[string]any {
	m := map[string]any{}

	if ent.Parent != nil {
		m["parent"] = ent.Parent.Text
		m["parent_local"] = ent.Parent.Local()
	}

	if ent.Name != nil {
		m["name"] = ent.Name.Text
	}

	if ent.Insertion {
		m["insertion"] = true
	}

	comps := make([]string, len(ent.Components))
	for i, c := range ent.Components {
		comps[i] = c.Text
	}

	m["components"] = comps

	if len(ent.Extensions) > 0 {
		exts := make([]any, len(ent.Extensions))

		for i := range ent.Extensions {
			ext := &ent.Extensions[i]

			switch ext.Kind {
			case ExtMethod:
				args := make([]string, len(ext.Args))
				for j, a := range ext.Args {
					args[j] = a.Text
				}

				exts[i] = map[string]any{"method": ext.Method, "args": args}

			case ExtObserve:
				exts[i] = map[string]any{"observe": exprList(ext.Args)}

			case ExtBlock:
				exts[i] = map[string]any{"code": ext.Block.Text}
			}
		}

		m["extensions"] = exts
	}

	if len(ent.Groups) > 0 {
		groups := make([]any, len(ent.Groups))
		for i := range ent.Groups {
			groups[i] = itemsToTree(ent.Groups[i].Items)
		}

		m["children"] = groups
	}

	return m
}

func flowToTree(f *Flow) map[string]any {
	m := map[string]any{}

	switch f.Kind {
	case FlowIf:
		m["if"] = f.Cond.Text

	case FlowFor:
		m["for"] = f.Var
		m["in"] = f.Cond.Text

	case FlowWhile:
		m["while"] = f.Cond.Text
	}

	m["body"] = itemsToTree(f.Body)

	if f.Else != nil {
		if f.Else.Cond.Text == "" {
			m["else"] = itemsToTree(f.Else.Body)
		} else {
			m["else"] = flowToTree(f.Else)
		}
	}

	return m
}

// MarshalYAML renders the construct as YAML.
func (ast *AST) MarshalYAML() ([]byte, error) {
	out, err := yaml.Marshal(ast.ToTree())
	if err != nil {
		return nil, ErrFormatSource.Wrap(err)
	}

	return out, nil
}

// MarshalJSON renders the construct as JSON by way of the YAML encoder,
// keeping one serializer for both formats.
func (ast *AST) MarshalJSON() ([]byte, error) {
	y, err := ast.MarshalYAML()
	if err != nil {
		return nil, err
	}

	out, err := yaml.YAMLToJSON(y)
	if err != nil {
		return nil, ErrFormatSource.Wrap(err)
	}

	return out, nil
}
