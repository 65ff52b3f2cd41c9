// README: Tests for the dispatch-api query commands against a seeded config file.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dispatch.yaml")
	body := `
seed:
  locations: [a, b, c, island]
  roads:
    - {from: a, to: b, distance: 2}
    - {from: b, to: c, distance: 3}
    - {from: a, to: c, distance: 100}
  drivers:
    - {id: d1, name: Asha, location: a}
    - {id: d2, name: Ravi, location: c}
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestRouteCommand(t *testing.T) {
	cfg := writeConfig(t)
	out := run(t, "--config", cfg, "route", "a", "c")
	if !strings.Contains(out, "A -> B -> C") || !strings.Contains(out, "distance 5") {
		t.Fatalf("unexpected output %q", out)
	}

	out = run(t, "--config", cfg, "route", "a", "island")
	if !strings.Contains(out, "no route") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCandidatesCommand(t *testing.T) {
	cfg := writeConfig(t)
	out := run(t, "--config", cfg, "candidates", "b")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "driver d1") || !strings.Contains(lines[1], "driver d2") {
		t.Fatalf("unexpected output %q", out)
	}

	out = run(t, "--config", cfg, "candidates", "island")
	if strings.TrimSpace(out) != "no candidates" {
		t.Fatalf("unexpected output %q", out)
	}
}
