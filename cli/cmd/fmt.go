package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/tnthung/bevy-toolbox/lang"
)

// Fmt reads spawn constructs, parses them, and prints them in the chosen
// format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical spawn syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native formats input as canonical spawn syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ast, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	_, err = os.Stdout.WriteString(ast.Format())

	return err
}

// JSON formats input as a JSON construct tree.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ast, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	data, err := ast.MarshalJSON()
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "json"))
	}

	var buf bytes.Buffer

	err = json.Indent(&buf, data, "", strings.Repeat(" ", j.Indent))
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(os.Stdout)

	return err
}

// YAML formats input as a YAML construct tree.
type YAML struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ast, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	data, err := ast.MarshalYAML()
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	_, err = os.Stdout.Write(data)

	return err
}

// parseSource opens and parses a source argument, rendering diagnostics to
// stderr on fatal errors.
func parseSource(
	ctx context.Context,
	source, format string,
) (*lang.AST, error) {
	file, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ast, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		renderDiagnostics(os.Stderr, ast)

		return nil, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return ast, nil
}
