package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/abcnote/abc"
)

func parse(t *testing.T, notation string) []abc.Note {
	t.Helper()
	notes, err := abc.Collect(abc.NewString(notation, abc.WithFile("t.abc")))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return notes
}

func encodeAll(t *testing.T, enc Encoder, notes []abc.Note) {
	t.Helper()
	for _, n := range notes {
		if err := enc.Encode(n); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestLineEncoder(t *testing.T) {
	var sb strings.Builder
	encodeAll(t, NewLineEncoder(&sb), parse(t, "C z2 A/"))

	want := "262\t250\n0\t500\n440\t125\n"
	if got := sb.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var sb strings.Builder
	encodeAll(t, NewJSONEncoder(&sb), parse(t, "C\n z2"))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), sb.String())
	}

	tests := []jsonNote{
		{Kind: "note", FrequencyHz: 262, DurationMs: 250, Text: "C", File: "t.abc", Line: 1, Column: 1},
		{Kind: "rest", FrequencyHz: 0, DurationMs: 500, Text: "z2", File: "t.abc", Line: 2, Column: 2},
	}
	for i, want := range tests {
		var got jsonNote
		if err := json.Unmarshal([]byte(lines[i]), &got); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if got != want {
			t.Errorf("line %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestCEncoder(t *testing.T) {
	var sb strings.Builder
	enc := NewCEncoder(&sb)
	enc.SetName("tune")
	encodeAll(t, enc, parse(t, "CD"))

	want := "const int tune[][2] = {\n" +
		"\t{262, 250},\n" +
		"\t{294, 250},\n" +
		"};\n" +
		"const int tune_len = 2;\n"
	if got := sb.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestCEncoderEmpty(t *testing.T) {
	var sb strings.Builder
	encodeAll(t, NewCEncoder(&sb), nil)

	want := "const int melody[][2] = {\n};\nconst int melody_len = 0;\n"
	if got := sb.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		enc, err := New(name, &strings.Builder{})
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
		if enc == nil {
			t.Errorf("New(%q) returned nil", name)
		}
	}
	if _, err := New("midi", &strings.Builder{}); err == nil {
		t.Errorf("New(midi) should fail")
	}
	if got := strings.Join(Names(), ","); got != "c,json,line" {
		t.Errorf("Names = %s", got)
	}
}

func TestMarshalTextLastNote(t *testing.T) {
	enc := NewLineEncoder(&strings.Builder{})
	for _, n := range parse(t, "CA") {
		enc.Encode(n)
	}
	text, err := enc.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "440\t250\n" {
		t.Errorf("MarshalText = %q", text)
	}
}
