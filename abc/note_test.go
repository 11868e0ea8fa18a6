package abc

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/dhamidi/abcnote/freq"
)

func scannerAt(input string) *Scanner {
	s := NewScanner(strings.NewReader(input), "")
	s.Advance()
	return s
}

func TestDecodePitchLetters(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"C", 262}, {"D", 294}, {"E", 330}, {"F", 349}, {"G", 392}, {"A", 440}, {"B", 494},
		{"c", 523}, {"d", 587}, {"e", 659}, {"f", 698}, {"g", 784}, {"a", 880}, {"b", 988},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := DecodePitch(scannerAt(tt.input), freq.Default)
			if err != nil {
				t.Fatalf("DecodePitch: %v", err)
			}
			if p.Kind != Pitched {
				t.Errorf("Kind = %v, want %v", p.Kind, Pitched)
			}
			if p.FrequencyHz != tt.want {
				t.Errorf("FrequencyHz = %d, want %d", p.FrequencyHz, tt.want)
			}
		})
	}
}

func TestDecodePitchModifiers(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"^C", 277},
		{"_D", 277},
		{"^^C", 294},
		{"__E", 294},
		{"^_C", 262},
		{"_^C", 262},
		{"=C", 262},
		{"^=C", 262},
		{"C'", 523},
		{"C''", 1047},
		{"c'", 1047},
		{"C,", 131},
		{"C'',", 523},
		{"C,'", 262},
		{"c,", 262},
		{"A,,", 110},
		{"^f'", 1480},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := scannerAt(tt.input)
			p, err := DecodePitch(s, freq.Default)
			if err != nil {
				t.Fatalf("DecodePitch: %v", err)
			}
			if p.FrequencyHz != tt.want {
				t.Errorf("FrequencyHz = %d, want %d", p.FrequencyHz, tt.want)
			}
			if s.Peek() != EOF {
				t.Errorf("DecodePitch left %q unconsumed", rune(s.Peek()))
			}
		})
	}
}

func TestDecodePitchOctaveMarksAccumulate(t *testing.T) {
	two, err := DecodePitch(scannerAt("C''"), freq.Default)
	if err != nil {
		t.Fatal(err)
	}
	base, _ := DecodePitch(scannerAt("C"), freq.Default)
	if two.Octave != base.Octave+2 {
		t.Errorf("Octave = %d, want %d", two.Octave, base.Octave+2)
	}
	mixed, _ := DecodePitch(scannerAt("C','"), freq.Default)
	if mixed.Octave != base.Octave+1 {
		t.Errorf("C',' Octave = %d, want %d", mixed.Octave, base.Octave+1)
	}
}

func TestDecodePitchRest(t *testing.T) {
	for _, input := range []string{"z", "^z", "__z", "=z"} {
		t.Run(input, func(t *testing.T) {
			s := scannerAt(input + "'")
			p, err := DecodePitch(s, freq.Default)
			if err != nil {
				t.Fatalf("DecodePitch: %v", err)
			}
			if p.Kind != Rest || p.FrequencyHz != 0 {
				t.Errorf("got %+v, want a silent rest", p)
			}
			if s.Peek() != '\'' {
				t.Errorf("rest consumed octave marks, Peek = %q", rune(s.Peek()))
			}
		})
	}
}

func TestDecodePitchNotANote(t *testing.T) {
	for _, input := range []string{"#", "H", "h", "1", "^#", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := DecodePitch(scannerAt(input), freq.Default)
			if !errors.Is(err, ErrNotANote) {
				t.Errorf("err = %v, want ErrNotANote", err)
			}
		})
	}

	s := scannerAt("#C")
	DecodePitch(s, freq.Default)
	if s.Peek() != '#' {
		t.Errorf("offending byte consumed, Peek = %q", rune(s.Peek()))
	}
}

func TestDecodePitchOutOfRange(t *testing.T) {
	tests := []string{"C,,,,,", "_C,,,,", "b''''''", "^b'''''"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			s := scannerAt(input + "2")
			_, err := DecodePitch(s, freq.Default)
			if !errors.Is(err, freq.ErrOutOfRange) {
				t.Fatalf("err = %v, want ErrOutOfRange", err)
			}
			if s.Peek() != '2' {
				t.Errorf("note not consumed, Peek = %q", rune(s.Peek()))
			}
		})
	}

	if _, err := DecodePitch(scannerAt("C,,,,"), freq.Default); err != nil {
		t.Errorf("C0 should be in range: %v", err)
	}
}

func TestDecodeDuration(t *testing.T) {
	const base = 200.0
	tests := []struct {
		input string
		want  float64
	}{
		{"", 200},
		{"2", 400},
		{"0", 200},
		{"/", 100},
		{"//", 50},
		{"/4", 50},
		{"/0", 100},
		{"3/2", 300},
		{">", 300},
		{">>", 450},
		{"2/2>", 300},
		{"2>", 600},
		{"/>", 150},
		{"12", 2400},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := scannerAt(tt.input + " ")
			got := DecodeDuration(s, base)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DecodeDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if s.Peek() != ' ' {
				t.Errorf("left %q unconsumed", rune(s.Peek()))
			}
		})
	}
}

func TestDecodeDurationOrder(t *testing.T) {
	got := DecodeDuration(scannerAt("2/2>"), 250)
	if got != 1.5*250 {
		t.Errorf("2/2> = %v, want %v", got, 1.5*250)
	}
}

func TestNoteString(t *testing.T) {
	n := Note{Kind: Pitched, FrequencyHz: 440, DurationMs: 250}
	if got := n.String(); got != "440Hz 250ms" {
		t.Errorf("String = %q", got)
	}
	r := Note{Kind: Rest, DurationMs: 500}
	if got := r.String(); got != "rest 500ms" {
		t.Errorf("String = %q", got)
	}
	if got := r.Duration().Milliseconds(); got != 500 {
		t.Errorf("Duration = %dms, want 500ms", got)
	}
}
