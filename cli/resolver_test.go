package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func mustResolve(t *testing.T, yaml string) config {
	t.Helper()

	r, err := resolve(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	c, ok := r.(config)
	if !ok {
		t.Fatalf("resolver type = %T, want config", r)
	}

	return c
}

func lookup(t *testing.T, c config, flagName string) any {
	t.Helper()

	v, err := c.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: flagName}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", flagName, err)
	}

	return v
}

func TestResolve_FlatKeys(t *testing.T) {
	c := mustResolve(t, "log-level: debug\nlog-format: json\n")

	if got := lookup(t, c, "log-level"); got != "debug" {
		t.Errorf("log-level = %v, want debug", got)
	}

	if got := lookup(t, c, "log-format"); got != "json" {
		t.Errorf("log-format = %v, want json", got)
	}
}

func TestResolve_UnderscoreKeys(t *testing.T) {
	c := mustResolve(t, "log_level: warn\n")

	if got := lookup(t, c, "log-level"); got != "warn" {
		t.Errorf("log-level = %v, want warn", got)
	}
}

func TestResolve_NestedMappingFlattens(t *testing.T) {
	c := mustResolve(t, "log:\n  level: debug\n  time-layout: kitchen\n")

	if got := lookup(t, c, "log-level"); got != "debug" {
		t.Errorf("log-level = %v, want debug", got)
	}

	if got := lookup(t, c, "log-time-layout"); got != "kitchen" {
		t.Errorf("log-time-layout = %v, want kitchen", got)
	}
}

func TestResolve_NumbersBecomeStrings(t *testing.T) {
	c := mustResolve(t, "retries: 3\nratio: 1.5\n")

	if got := lookup(t, c, "retries"); got != "3" {
		t.Errorf("retries = %v (%T), want \"3\"", got, got)
	}

	if got := lookup(t, c, "ratio"); got != "1.5" {
		t.Errorf("ratio = %v (%T), want \"1.5\"", got, got)
	}
}

func TestResolve_MissingFlagFallsThrough(t *testing.T) {
	c := mustResolve(t, "log-level: debug\n")

	if got := lookup(t, c, "absent"); got != nil {
		t.Errorf("absent flag = %v, want nil", got)
	}
}

func TestResolve_MalformedYAMLIgnored(t *testing.T) {
	c := mustResolve(t, "{unclosed: [\n")

	if len(c) != 0 {
		t.Errorf("malformed config = %v, want empty", c)
	}
}

func TestResolve_ValidateIsNoop(t *testing.T) {
	c := mustResolve(t, "log-level: info\n")

	if err := c.Validate(nil); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}
