package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args in a temp directory, so no
// church.yaml from the working tree is picked up.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalArgs(t *testing.T) {
	out, err := run(t, "", "eval", "add(one, two)", "mult(two, three)", "exp(two, three)", "exp(3, 5)")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	want := "add(one, two) = 3\nmult(two, three) = 6\nexp(two, three) = 8\nexp(3, 5) = 243\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestEvalStdin(t *testing.T) {
	stdin := "# comment\n1 + 2\n\n  2 * 2  \n"
	out, err := run(t, stdin, "eval", "--workers", "2")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if want := "1 + 2 = 3\n2 * 2 = 4\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestEvalFormatAndTree(t *testing.T) {
	out, err := run(t, "", "eval", "--format", "lambda", "--tree", "succ(one)")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	want := "succ(one) = λf.λx.f (f x)\n  succ\n    one\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestEvalFailure(t *testing.T) {
	out, err := run(t, "", "eval", "1", "pow(2, 2)")
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v, want %v", err, errFailed)
	}
	if !strings.Contains(out, "1 = 1\n") || !strings.Contains(out, "pow(2, 2): error: ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEvalNoInput(t *testing.T) {
	if _, err := run(t, "", "eval"); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestEvalBadFormat(t *testing.T) {
	if _, err := run(t, "", "eval", "--format", "roman", "1"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestEvalConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("format: tally\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "--config", path, "eval", "three")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if want := "three = |||\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if want := "church version " + version + "\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("a\n#b\n\n c \n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "c" {
		t.Errorf("readLines = %q", lines)
	}
}
