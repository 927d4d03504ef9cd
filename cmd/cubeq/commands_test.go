package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cubeq %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestSelftest(t *testing.T) {
	out := execute(t, "selftest")
	for _, want := range []string{"face tables ok", "face moves ok", "sequences ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSolutionsCommand(t *testing.T) {
	out := execute(t, "solutions")
	if !strings.Contains(out, "32 of 64 sequences") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.HasPrefix(out, "U U F\n") {
		t.Errorf("first solution should be U U F:\n%s", out)
	}
}

func TestSearchCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "search.yaml")
	body := "alphabet: [U, R, F, \"U'\"]\ndepth: 1\niterations: 1\n"
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	out := execute(t, "search", "--config", cfg, "--shots", "50", "--seed", "2")
	configPath = ""
	if !strings.Contains(out, "1 iterations, 50 shots") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "    50  01  F *") {
		t.Errorf("expected every shot on F:\n%s", out)
	}
	if !strings.Contains(out, "solution rate 1.000") {
		t.Errorf("missing solution rate:\n%s", out)
	}
}

func TestQASMCommand(t *testing.T) {
	out := execute(t, "qasm")
	if !strings.Contains(out, "OPENQASM 3.0;") || !strings.Contains(out, "bit[6] out;") {
		t.Fatalf("unexpected search circuit:\n%s", out)
	}
	out = execute(t, "qasm", "--oracle")
	oracleOnly = false
	if !strings.Contains(out, "qubit[1] flag;") || strings.Contains(out, "measure") {
		t.Fatalf("unexpected oracle fragment:\n%s", out)
	}
}
