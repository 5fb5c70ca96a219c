package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tnthung/bevy-toolbox/lang"
	"github.com/tnthung/bevy-toolbox/log"
)

// Check parses spawn constructs and reports every diagnostic without
// generating output. External references are reported with close-match
// suggestions; only fatal diagnostics cause a non-zero exit.
type Check struct {
	Quiet bool `help:"Suppress diagnostic output, report via exit status only" short:"q"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	file, err := openSource(c.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	ast, parseErr := lang.ParseReader(ctx, bufio.NewReader(file))

	if !c.Quiet {
		renderDiagnostics(os.Stderr, ast)
	}

	fatal := 0

	for _, d := range ast.Diagnostics() {
		if d.Category.Fatal() {
			fatal++
		}
	}

	log.DebugContext(ctx, "check complete",
		slog.String("source", c.Source),
		slog.Int("diagnostics", len(ast.Diagnostics())),
		slog.Int("fatal", fatal),
	)

	if parseErr != nil {
		return ErrCheckFailed.
			With(slog.Int("fatal", fatal)).
			Wrap(parseErr)
	}

	if !c.Quiet && len(ast.Diagnostics()) == 0 {
		fmt.Println("ok")
	}

	return nil
}
