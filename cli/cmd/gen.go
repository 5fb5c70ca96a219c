package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/tnthung/bevy-toolbox/lang"
)

// Gen compiles spawn constructs into Go source code.
type Gen struct {
	Package string `default:"main"  help:"Package name for generated source"    short:"p"`
	Func    string `default:"Spawn" help:"Function name for generated source"`
	Output  string `default:"-"     help:"Output file or '-' for stdout"        short:"o"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	file, err := openSource(g.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	ast, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		renderDiagnostics(os.Stderr, ast)

		return lang.WrapError(err).
			With(slog.String("command", "gen"))
	}

	src, err := ast.Generate(ctx, lang.GenConfig{
		Package: g.Package,
		Func:    g.Func,
	})
	if err != nil {
		renderDiagnostics(os.Stderr, ast)

		return lang.WrapError(err).
			With(slog.String("command", "gen"))
	}

	out := io.Writer(os.Stdout)

	if g.Output != stdinSource {
		file, err := os.Create(g.Output)
		if err != nil {
			return ErrWriteOutput.
				With(slog.String("file", g.Output)).
				Wrap(err)
		}
		defer file.Close()

		out = file
	}

	_, err = io.WriteString(out, src)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
