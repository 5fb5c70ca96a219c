package lang

import (
	"strings"
	"testing"

	"github.com/tnthung/bevy-toolbox/lang/token"
)

func TestDiagnostic_RenderCaretColumn(t *testing.T) {
	d := Diagnostic{
		Category: SyntaxError,
		Span:     token.Span{Line: 1, Col: 5},
		Msg:      "unexpected token",
	}

	out := d.Render("abc (x);")

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, snippet, and caret lines, got %q", out)
	}

	want := strings.Repeat(" ", 6+4) + "^"
	if lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestDiagnostic_RenderTabbedLine(t *testing.T) {
	// The caret line echoes tabs from the source line so the caret lands
	// under the reported column regardless of tab width.
	d := Diagnostic{
		Category: SyntaxError,
		Span:     token.Span{Line: 1, Col: 3},
		Msg:      "unexpected token",
	}

	out := d.Render("\t\tbad (x);")

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, snippet, and caret lines, got %q", out)
	}

	want := strings.Repeat(" ", 6) + "\t\t^"
	if lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestDiagnostic_RenderNote(t *testing.T) {
	d := Diagnostic{
		Category: ExternalReference,
		Span:     token.Span{Line: 1, Col: 1},
		Msg:      "'roo' is not bound here",
		Note:     "did you mean 'root'?",
	}

	out := d.Render("roo > (x);")
	if !strings.Contains(out, "note: did you mean 'root'?") {
		t.Errorf("missing note in %q", out)
	}
}
