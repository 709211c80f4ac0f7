package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Errorf("ParseLevel(%q).String() = %q", s, l.String())
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeEvent) {
		t.Errorf("phase level must not emit event scope")
	}
	if !LevelDetail.ShouldEmit(ScopeEvent) || LevelDetail.ShouldEmit(ScopeLine) {
		t.Errorf("detail level emits events but not lines")
	}
	if !LevelDebug.ShouldEmit(ScopeLine) {
		t.Errorf("debug level emits everything")
	}
}

func TestStreamTracerSpan(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopePass, "header", 0)
	Point(tr, ScopeEvent, "event:vm_start", "index 0", span.ID())
	Point(tr, ScopeLine, "skipped", "", span.ID())
	span.WithExtra("events", "1").End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ header") {
		t.Errorf("line 0 = %q, want span begin", lines[0])
	}
	if !strings.Contains(lines[1], "• event:vm_start (index 0)") {
		t.Errorf("line 1 = %q, want event point", lines[1])
	}
	if !strings.Contains(lines[2], "← header {events=1}") {
		t.Errorf("line 2 = %q, want span end", lines[2])
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeEvent, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestRingTracerErrorLevelKeepsEverything(t *testing.T) {
	tr := NewRingTracer(8, LevelError)
	Begin(tr, ScopePass, "source", 0).End("failed")
	if got := len(tr.Snapshot()); got != 2 {
		t.Fatalf("snapshot has %d events, want 2", got)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
	if span := Begin(tr, ScopeDriver, "x", 0); span.ID() != 0 {
		t.Fatalf("nop span must have id 0")
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	tr := NewRingTracer(4, LevelPhase)
	ctx = WithTracer(ctx, tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
	span := Begin(tr, ScopeDriver, "generate", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("span not propagated")
	}
}

func TestNewStreamWritesNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.out")
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Path: path})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "tracetool", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records:\n%s", len(lines), data)
	}
	for _, l := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(l), &rec); err != nil {
			t.Fatalf("record %q is not JSON: %v", l, err)
		}
		if rec["name"] != "tracetool" || rec["scope"] != "driver" {
			t.Errorf("unexpected record %v", rec)
		}
	}
}

func TestNewModes(t *testing.T) {
	if tr, _ := New(Config{Level: LevelOff, Mode: ModeStream}); tr != Nop {
		t.Errorf("LevelOff must yield Nop")
	}
	if tr, _ := New(Config{Level: LevelError, Mode: ModeRing}); !isRing(tr) {
		t.Errorf("ring mode must yield a RingTracer")
	}
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Path: filepath.Join(t.TempDir(), "t")})
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := tr.(*MultiTracer); !ok || m.Ring() == nil {
		t.Errorf("both mode must keep a ring")
	}
	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestParseModeAndFormat(t *testing.T) {
	for _, s := range []string{"stream", "ring", "both"} {
		m, err := ParseMode(s)
		if err != nil || m.String() != s {
			t.Errorf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParseMode("file"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func isRing(t Tracer) bool {
	_, ok := t.(*RingTracer)
	return ok
}
