package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tnthung/bevy-toolbox/lang"
	"github.com/tnthung/bevy-toolbox/spawn"
)

func TestOpenSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "construct.spawn")
	if err := os.WriteFile(path, []byte(`(Node);`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f, err := openSource(path)
	if err != nil {
		t.Fatalf("openSource failed: %v", err)
	}
	defer f.Close()

	ast, err := lang.ParseReader(context.Background(), f)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(ast.Items) != 1 {
		t.Errorf("got %d items, want 1", len(ast.Items))
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := openSource(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	if !strings.Contains(err.Error(), "open source input") {
		t.Errorf("err = %v", err)
	}
}

func TestOpenSource_Stdin(t *testing.T) {
	f, err := openSource("-")
	if err != nil {
		t.Fatalf("openSource(-) failed: %v", err)
	}

	// Closing the stdin wrapper must not close stdin itself.
	if err := f.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestRenderDiagnostics(t *testing.T) {
	ast, err := lang.ParseString(context.Background(), `dup (); dup ();`)
	if err == nil {
		t.Fatal("expected duplicate binding error")
	}

	var buf strings.Builder
	renderDiagnostics(&buf, ast)

	out := buf.String()
	if !strings.Contains(out, "duplicate binding") || !strings.Contains(out, "^") {
		t.Errorf("rendered output missing caret snippet:\n%s", out)
	}
}

func TestExternals(t *testing.T) {
	ext := externals(map[string]string{
		"flag":  "true",
		"off":   "false",
		"count": "3",
		"neg":   "-2",
		"ratio": "1.5",
		"sci":   "1e3",
		"title": "hello",
		"mixed": "12abc",

		// A quoted value stays a string, even when the contents would
		// otherwise coerce.
		"quoted":    `"hello world"`,
		"quotedNum": `"42"`,
		"escaped":   `"a\tb"`,
	})

	want := map[string]any{
		"flag":      true,
		"off":       false,
		"count":     3,
		"neg":       -2,
		"ratio":     1.5,
		"sci":       1000.0,
		"title":     "hello",
		"mixed":     "12abc",
		"quoted":    "hello world",
		"quotedNum": "42",
		"escaped":   "a\tb",
	}

	for name, v := range want {
		if ext[name] != v {
			t.Errorf("externals[%s] = %v (%T), want %v (%T)",
				name, ext[name], ext[name], v, v)
		}
	}
}

func TestExternals_Empty(t *testing.T) {
	if ext := externals(nil); ext != nil {
		t.Errorf("externals(nil) = %v, want nil", ext)
	}
}

func TestFormatOp(t *testing.T) {
	for name, tt := range map[string]struct {
		op   spawn.Op
		want string
	}{
		"spawn": {
			spawn.Op{Kind: spawn.OpSpawn, Entity: 1, Args: []any{"Node"}},
			"spawn   #1 (Node)",
		},
		"child": {
			spawn.Op{Kind: spawn.OpChild, Entity: 2, Parent: 1, Args: []any{"Kid"}},
			"child   #2 of #1 (Kid)",
		},
		"insert": {
			spawn.Op{Kind: spawn.OpInsert, Entity: 1, Args: []any{"A", "B"}},
			"insert  #1 (A, B)",
		},
		"parent": {
			spawn.Op{Kind: spawn.OpSetParent, Entity: 2, Parent: 1},
			"parent  #2 -> #1",
		},
		"observe": {
			spawn.Op{Kind: spawn.OpObserve, Entity: 1, Args: []any{"cb"}},
			"observe #1 (cb)",
		},
		"invoke": {
			spawn.Op{Kind: spawn.OpInvoke, Entity: 1, Method: "resize", Args: []any{2, 3}},
			"invoke  #1 .resize(2, 3)",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := formatOp(tt.op); got != tt.want {
				t.Errorf("formatOp = %q, want %q", got, tt.want)
			}
		})
	}
}
