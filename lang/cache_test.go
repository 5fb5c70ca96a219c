package lang

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestParseCache_SharedResult(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = `cached (Node);`

	first, err := ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}

	second, err := ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}

	if first != second {
		t.Error("identical source should resolve to one cached result")
	}
}

func TestParseCache_OptionsBypass(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = `bypass (Node);`

	first, err := ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	second, err := ParseString(context.Background(), src, WithSuggestions(false))
	if err != nil {
		t.Fatalf("parse with options failed: %v", err)
	}

	if first == second {
		t.Error("option-bearing parse must not share the cached result")
	}
}

func TestParseCache_Clear(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = `cleared (Node);`

	first, err := ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	ClearCache()

	second, err := ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}

	if first == second {
		t.Error("cleared cache should produce a fresh result")
	}
}

func TestParseCache_Concurrent(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = `concurrent (Node);`

	results := make([]*AST, 16)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			ast, err := ParseString(context.Background(), src)
			if err != nil {
				t.Errorf("parse %d failed: %v", i, err)

				return
			}

			results[i] = ast
		}(i)
	}

	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("parse %d produced a distinct result", i)
		}
	}
}

func TestParseReader(t *testing.T) {
	t.Cleanup(ClearCache)

	ast, err := ParseReader(context.Background(), strings.NewReader(`reader (Node);`))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if len(ast.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(ast.Items))
	}
}

func TestParseReader_FailedRead(t *testing.T) {
	if _, err := ParseReader(context.Background(), failingReader{}); err == nil {
		t.Error("expected error from failing reader")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errReadBroken
}

var errReadBroken = NewError("broken pipe")
