package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tnthung/bevy-toolbox/lang"
	"github.com/tnthung/bevy-toolbox/lang/token"
	"github.com/tnthung/bevy-toolbox/log"
	"github.com/tnthung/bevy-toolbox/spawn"
)

// Apply interprets spawn constructs against an in-memory world and prints
// the resulting operation log.
type Apply struct {
	Define map[string]string `help:"Bind external names to values (name=value)" short:"D"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the apply command.
func (a *Apply) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	file, err := openSource(a.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	ast, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		renderDiagnostics(os.Stderr, ast)

		return lang.WrapError(err).
			With(slog.String("command", "apply"))
	}

	// Unresolved references are not fatal, but surface them before running.
	renderDiagnostics(os.Stderr, ast)

	world := spawn.NewWorld()

	err = ast.Apply(ctx, world, externals(a.Define))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "apply"))
	}

	for _, op := range world.Ops() {
		fmt.Println(formatOp(op))
	}

	log.DebugContext(ctx, "apply complete",
		slog.Int("entities", world.Len()),
		slog.Int("ops", len(world.Ops())),
	)

	return nil
}

// externals converts --define bindings to native values. Numeric and boolean
// literals are converted; a quoted value stays a string with the quotes
// stripped; anything else is passed through as a string.
func externals(defs map[string]string) map[string]any {
	if len(defs) == 0 {
		return nil
	}

	ext := make(map[string]any, len(defs))

	for name, raw := range defs {
		if unq := token.Quote(raw); unq != raw {
			ext[name] = unq

			continue
		}

		switch {
		case raw == "true" || raw == "false":
			ext[name], _ = strconv.ParseBool(raw)

		case !strings.ContainsAny(raw, ".eE"):
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ext[name] = int(n)

				continue
			}

			ext[name] = raw

		default:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				ext[name] = f

				continue
			}

			ext[name] = raw
		}
	}

	return ext
}

// formatOp renders one world operation as a log line.
func formatOp(op spawn.Op) string {
	switch op.Kind {
	case spawn.OpSpawn:
		return fmt.Sprintf("spawn   #%d %s", op.Entity, formatArgs(op.Args))

	case spawn.OpChild:
		return fmt.Sprintf("child   #%d of #%d %s",
			op.Entity, op.Parent, formatArgs(op.Args))

	case spawn.OpInsert:
		return fmt.Sprintf("insert  #%d %s", op.Entity, formatArgs(op.Args))

	case spawn.OpSetParent:
		return fmt.Sprintf("parent  #%d -> #%d", op.Entity, op.Parent)

	case spawn.OpObserve:
		return fmt.Sprintf("observe #%d %s", op.Entity, formatArgs(op.Args))

	case spawn.OpInvoke:
		return fmt.Sprintf("invoke  #%d .%s%s",
			op.Entity, op.Method, formatArgs(op.Args))

	default:
		return fmt.Sprintf("op      #%d %v", op.Entity, op)
	}
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%v", arg)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
