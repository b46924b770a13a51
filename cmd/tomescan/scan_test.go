package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func runCommand(t *testing.T, fs afero.Fs, stdin string, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		// A nil arg slice would make cobra fall back to os.Args.
		args = []string{}
	}
	out := &bytes.Buffer{}
	cmd := newRootCommand(fs, out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func litFs(t *testing.T, name, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return fs
}

func TestScanFileTextOutput(t *testing.T) {
	fs := litFs(t, "lit.tome", `"a#{x}b"`)

	out, err := runCommand(t, fs, "", "lit.tome")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("output lines = %d, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "string_content") {
		t.Errorf("output missing string_content line:\n%s", out)
	}
	if !strings.Contains(out, "#{") {
		t.Errorf("output missing interpolation start line:\n%s", out)
	}
}

func TestScanReadsStdinWithoutArgs(t *testing.T) {
	out, err := runCommand(t, afero.NewMemMapFs(), `"hi"`)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "string_content") || !strings.Contains(out, `"hi"`) {
		t.Errorf("stdin scan output unexpected:\n%s", out)
	}
}

func TestScanJSONOutput(t *testing.T) {
	fs := litFs(t, "lit.tome", `"a#{x}b"`)

	out, err := runCommand(t, fs, "", "--json", "lit.tome")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var toks []tokenJSON
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	wantTypes := []string{`"`, "string_content", "#{", "}", "string_content", `"`}
	if len(toks) != len(wantTypes) {
		t.Fatalf("token count = %d, want %d", len(toks), len(wantTypes))
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("token %d type = %q, want %q", i, toks[i].Type, want)
		}
	}
	if toks[2].Text != "#{" || toks[2].StartByte != 2 || toks[2].EndByte != 4 {
		t.Errorf("interpolation start token = %+v, want #{ at [2,4)", toks[2])
	}
}

func TestScanMissingFile(t *testing.T) {
	_, err := runCommand(t, afero.NewMemMapFs(), "", "absent.tome")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read absent.tome") {
		t.Errorf("error = %q, want read failure mention", err)
	}
}

// An unterminated literal is reported as a warning, not a failure: the
// tokens up to the end of input are still printed and the command
// exits zero.
func TestScanUnterminatedSucceeds(t *testing.T) {
	fs := litFs(t, "lit.tome", `"abc`)

	out, err := runCommand(t, fs, "", "lit.tome")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "string_content") || !strings.Contains(out, `"abc"`) {
		t.Errorf("unterminated scan output unexpected:\n%s", out)
	}
}

func TestCheckReportsHybridBackend(t *testing.T) {
	out, err := runCommand(t, afero.NewMemMapFs(), "", "--check")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "language: tome") {
		t.Errorf("check output missing language line:\n%s", out)
	}
	if !strings.Contains(out, "backend:  hybrid") {
		t.Errorf("check output missing hybrid backend:\n%s", out)
	}
}

func TestRejectsExtraArgs(t *testing.T) {
	if _, err := runCommand(t, afero.NewMemMapFs(), "", "a.tome", "b.tome"); err == nil {
		t.Fatal("expected error for extra positional arguments")
	}
}
