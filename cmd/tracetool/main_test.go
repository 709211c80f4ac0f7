package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracetool/internal/backend"
	"tracetool/internal/diag"
	"tracetool/internal/driver"
)

const events = `# sample events
my_event(int a, const char *b) "a=%d b=%s"
disable quiet(int x) "x %d"
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateFromStdin(t *testing.T) {
	out, _, err := execute(t, events, "--simple", "-h")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "#ifndef TRACE_H\n") || !strings.HasSuffix(out, "#endif /* TRACE_H */\n") {
		t.Fatalf("missing header guard:\n%s", out)
	}
	if !strings.Contains(out, "trace2(0, (uint64_t)(uintptr_t)a, (uint64_t)(uintptr_t)b);") {
		t.Fatalf("missing simple trace call:\n%s", out)
	}
	if !strings.Contains(out, "static inline void trace_quiet(int x)\n{\n}\n") {
		t.Fatalf("disabled event must be a nop:\n%s", out)
	}
}

func TestGenerateFromFileToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "trace-events", events)
	target := filepath.Join(dir, "trace.c")

	out, _, err := execute(t, "", "--backend", "stderr", "-c", "-o", target, in)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Fatalf("stdout must stay empty with -o, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `{.tp_name = "my_event", .state=0},`) {
		t.Fatalf("unexpected source:\n%s", data)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"two backends", []string{"--simple", "--ust", "-h"}, errConflictingFlags},
		{"two outputs", []string{"--simple", "-h", "-c"}, errConflictingFlags},
		{"no output", []string{"--simple"}, backend.ErrUnknownOutput},
		{"unknown backend", []string{"--backend", "lttng", "-h"}, backend.ErrUnknownBackend},
		{"descriptor needs dtrace", []string{"--ust", "-d"}, backend.ErrNotApplicable},
		{"tapset needs binary", []string{"--dtrace", "--stap", "--target-type", "system", "--target-arch", "arm"}, driver.ErrMissingBinary},
		{"tapset needs target", []string{"--dtrace", "--stap", "--binary", "/usr/bin/qemu"}, driver.ErrMissingTargetType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, events, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if out != "" {
				t.Fatalf("failed run must not write output, got %q", out)
			}
		})
	}
}

func TestTapsetWithProbePrefix(t *testing.T) {
	out, _, err := execute(t, events, "--dtrace", "--stap", "--binary", "/usr/bin/qemu", "--probe-prefix", "custom")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `probe custom.my_event = process("/usr/bin/qemu").mark("my_event")`) {
		t.Fatalf("unexpected tapset:\n%s", out)
	}
}

func TestCheckBackend(t *testing.T) {
	out, _, err := execute(t, "", "--ust", "--check-backend")
	if err != nil || out != "" {
		t.Fatalf("check-backend = %q, %v", out, err)
	}
	if _, _, err := execute(t, "", "--backend", "lttng", "--check-backend"); !errors.Is(err, backend.ErrUnknownBackend) {
		t.Fatalf("error = %v, want ErrUnknownBackend", err)
	}
}

func TestListBackends(t *testing.T) {
	out, _, err := execute(t, "", "--list-backends")
	if err != nil {
		t.Fatal(err)
	}
	if out != "nop\nsimple\nstderr\nust\ndtrace\n" {
		t.Fatalf("unexpected listing %q", out)
	}
}

func TestBackendsVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := printBackends(&buf, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "nop     ") {
		t.Errorf("names must be padded to a common width: %q", lines[0])
	}
	if !strings.HasSuffix(lines[4], "[header, source, descriptor, tapset]") {
		t.Errorf("dtrace must list every output: %q", lines[4])
	}
}

func TestDeclarationWarnings(t *testing.T) {
	_, stderr, err := execute(t, "broken(int a\n", "--nop", "-h", "--color", "off")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "<stdin>:1: WARNING DECL1002") {
		t.Fatalf("missing warning:\n%s", stderr)
	}

	_, stderr, err = execute(t, "broken(int a\n", "--nop", "-h", "--quiet")
	if err != nil {
		t.Fatal(err)
	}
	if stderr != "" {
		t.Fatalf("--quiet must suppress warnings, got %q", stderr)
	}
}

func TestStrictFailsWithoutOutput(t *testing.T) {
	out, stderr, err := execute(t, "broken(int a\n", "--nop", "-h", "--strict", "--color", "off")
	if !errors.Is(err, errStrict) {
		t.Fatalf("error = %v, want errStrict", err)
	}
	if out != "" {
		t.Fatalf("strict failure must not write output, got %q", out)
	}
	if !strings.Contains(stderr, "DECL1002") {
		t.Fatalf("warnings must still be printed:\n%s", stderr)
	}

	if _, _, err := execute(t, events, "--nop", "-h", "--strict"); err != nil {
		t.Fatalf("clean input must pass --strict: %v", err)
	}
}

func TestAllStrictWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "a(int x) \"%d\"\na(int y) \"%d\"\n", "all", "--stderr", "--strict", "--out-dir", dir)
	if !errors.Is(err, errStrict) {
		t.Fatalf("error = %v, want errStrict", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("strict failure wrote %d files", len(entries))
	}
}

func TestTraceOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.trace")
	if _, _, err := execute(t, events, "--nop", "-h", "--trace", path, "--trace-format", "ndjson"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"scope":"pass"`) || !strings.Contains(string(data), `"name":"header"`) {
		t.Fatalf("missing pass span in trace:\n%s", data)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "tracetool.toml", `
[generate]
backend = "dtrace"
output = "descriptor"

[output]
provider = "myapp"
`)
	out, _, err := execute(t, events, "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "provider myapp {") {
		t.Fatalf("config not applied:\n%s", out)
	}

	out, _, err = execute(t, events, "--config", cfg, "--provider", "other")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "provider other {") {
		t.Fatalf("flag must override config:\n%s", out)
	}
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "tracetool.toml", "[generate]\nbackedn = \"ust\"\n")
	if _, _, err := execute(t, events, "--config", cfg, "-h"); !errors.Is(err, errBadConfig) {
		t.Fatalf("error = %v, want errBadConfig", err)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeFile(t, root, configFileName, "")
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig = %q, %v, %v", got, ok, err)
	}
	if got != want {
		t.Fatalf("findConfig = %q, want %q", got, want)
	}
}

func TestAllCommand(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, events, "all", "--simple", "--out-dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"trace.h", "trace.c"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
		if !strings.Contains(out, filepath.Join(dir, name)) {
			t.Errorf("%s not listed in %q", name, out)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"tool": "tracetool"`) {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want diag.Code
	}{
		{backend.ErrUnknownBackend, diag.CfgUnknownBackend},
		{backend.ErrNotApplicable, diag.CfgNotApplicable},
		{driver.ErrMissingBinary, diag.CfgMissingBinary},
		{errConflictingFlags, diag.CfgConflictingFlags},
		{errBadConfig, diag.CfgBadConfigFile},
		{errStrict, diag.CfgStrictWarnings},
		{errRead, diag.IOReadFailed},
		{errWrite, diag.IOWriteFailed},
		{errors.New("other"), diag.UnknownCode},
	}
	for _, tt := range tests {
		if got := codeFor(tt.err); got != tt.want {
			t.Errorf("codeFor(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
