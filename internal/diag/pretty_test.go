package diag

import (
	"bytes"
	"testing"
)

func TestPrettyWithoutColor(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, DeclNoCloseParen, Pos{Path: "events", Line: 7}, "unterminated argument list").
		WithNote(Pos{Path: "events", Line: 7}, "rendered with an empty argument list"))

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{Color: false})

	want := "events:7: WARNING DECL1002: unterminated argument list\n" +
		"  events:7: note: rendered with an empty argument list\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\nwant:\n%q\ngot:\n%q", want, buf.String())
	}
}
