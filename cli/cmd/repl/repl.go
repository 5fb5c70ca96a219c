package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/tnthung/bevy-toolbox/lang"
	"github.com/tnthung/bevy-toolbox/log"
	"github.com/tnthung/bevy-toolbox/spawn"
)

const (
	evalPrompt = "spawn> "
	contPrompt = "  ...> "
)

func helpMessage() string {
	return `
Commands (prefix with ':'):

  :help    Print this cruft
  :list    List bound entity names
  :fmt     Print accumulated constructs in canonical form
  :gen     Print generated Go source for accumulated constructs
  :clear   Discard all accumulated constructs
  :quit    Exit REPL

Usage:
  Type spawn constructs; input is submitted once delimiters balance
  and the construct ends with ';'
  Named entities persist and are visible to later constructs
  Press Tab to complete names and keywords
  Press Ctrl+C to discard the current input, Ctrl+D to exit
`
}

// Command runs an interactive construct evaluation session.
type Command struct {
	History string `default:"${cache}/history" help:"History file path" type:"path"`
}

// Run executes the repl command.
func (c *Command) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := &session{historyPath: c.History}

	return s.run(ctx)
}

// session holds the REPL state. Committed constructs are replayed into a
// fresh world on each submission so that entity handles remain stable and
// names bound earlier stay visible.
type session struct {
	historyPath string
	source      strings.Builder // committed constructs
	pending     strings.Builder // partial multi-line input
	opCount     int             // ops already printed
}

func (s *session) run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return complete(input, s.names())
	})

	s.loadHistory(line)
	defer s.saveHistory(ctx, line)

	fmt.Println(helpMessage())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		prompt := evalPrompt
		if s.pending.Len() > 0 {
			prompt = contPrompt
		}

		input, err := line.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			s.pending.Reset()

			continue

		case errors.Is(err, io.EOF):
			fmt.Println()

			return nil

		case err != nil:
			return err
		}

		if s.pending.Len() == 0 && strings.HasPrefix(input, ":") {
			line.AppendHistory(input)

			if s.command(ctx, input) {
				return nil
			}

			continue
		}

		if strings.TrimSpace(input) == "" && s.pending.Len() == 0 {
			continue
		}

		s.pending.WriteString(input)
		s.pending.WriteByte('\n')

		if !inputComplete(s.pending.String()) {
			continue
		}

		chunk := s.pending.String()
		s.pending.Reset()
		line.AppendHistory(strings.TrimSpace(chunk))

		s.submit(ctx, chunk)
	}
}

// command dispatches a control-mode command. It returns true when the
// session should end.
func (s *session) command(ctx context.Context, input string) bool {
	switch strings.TrimSpace(input) {
	case ":help":
		fmt.Println(helpMessage())

	case ":list":
		names := s.names()
		if len(names) == 0 {
			fmt.Println("no bound names")
		}

		for _, name := range names {
			fmt.Println(name)
		}

	case ":fmt":
		ast, err := lang.ParseString(ctx, s.source.String())
		if err == nil {
			fmt.Print(ast.Format())
		}

	case ":gen":
		ast, err := lang.ParseString(ctx, s.source.String())
		if err == nil {
			src, genErr := ast.Generate(ctx, lang.GenConfig{})
			if genErr == nil {
				fmt.Print(src)
			}
		}

	case ":clear":
		s.source.Reset()
		s.opCount = 0

	case ":quit", ":q", ":exit":
		return true

	default:
		fmt.Printf("unknown command %q (try :help)\n", input)
	}

	return false
}

// submit parses the committed source plus chunk, replays it into a fresh
// world, and on success commits the chunk and prints the new operations.
func (s *session) submit(ctx context.Context, chunk string) {
	tentative := s.source.String() + chunk

	ast, err := lang.ParseString(ctx, tentative)
	if err != nil {
		for _, d := range ast.Diagnostics() {
			fmt.Print(d.Render(ast.Source()))
		}

		return
	}

	world := spawn.NewWorld()

	err = ast.Apply(ctx, world, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	ops := world.Ops()
	for _, op := range ops[s.opCount:] {
		fmt.Printf("%+v\n", op)
	}

	s.opCount = len(ops)
	s.source.Reset()
	s.source.WriteString(tentative)

	log.TraceContext(ctx, "construct committed",
		slog.Int("entities", world.Len()),
		slog.Int("ops", len(ops)),
	)
}

// names returns the entity names bound by committed constructs.
func (s *session) names() []string {
	if s.source.Len() == 0 {
		return nil
	}

	ast, err := lang.ParseString(context.Background(), s.source.String())
	if err != nil {
		return nil
	}

	var names []string

	ast.Walk(func(item lang.Item) bool {
		if ent, ok := item.(*lang.Entity); ok && !ent.Anonymous() {
			names = append(names, ent.Name.Text)
		}

		return true
	})

	return names
}

func (s *session) loadHistory(line *liner.State) {
	file, err := os.Open(s.historyPath)
	if err != nil {
		return
	}
	defer file.Close()

	line.ReadHistory(file) //nolint:errcheck
}

func (s *session) saveHistory(ctx context.Context, line *liner.State) {
	file, err := os.Create(s.historyPath)
	if err != nil {
		log.DebugContext(ctx, "history not saved",
			slog.String("path", s.historyPath),
			slog.Any("error", err),
		)

		return
	}
	defer file.Close()

	line.WriteHistory(file) //nolint:errcheck
}

// inputComplete reports whether input forms one or more whole constructs:
// all delimiters balance and the last significant character is ';'.
func inputComplete(input string) bool {
	depth := 0
	last := byte(0)

	for i := 0; i < len(input); i++ {
		c := input[i]

		switch c {
		case '"', '\'':
			quote := c

			for i++; i < len(input); i++ {
				if input[i] == '\\' {
					i++
				} else if input[i] == quote {
					break
				}
			}

		case '/':
			if i+1 < len(input) && input[i+1] == '/' {
				for i < len(input) && input[i] != '\n' {
					i++
				}

				continue
			}

		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			depth--
		}

		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			last = c
		}
	}

	return depth <= 0 && last == ';'
}
