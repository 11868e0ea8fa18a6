package abc

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestScannerStartsOnSpace(t *testing.T) {
	s := NewScanner(strings.NewReader("ab"), "t.abc")
	if s.Peek() != ' ' {
		t.Fatalf("Peek = %q, want ' '", rune(s.Peek()))
	}
	if got := s.Advance(); got != 'a' {
		t.Errorf("Advance = %q, want 'a'", rune(got))
	}
	pos := s.Pos()
	if pos.File != "t.abc" || pos.Line != 1 || pos.Column != 1 || pos.Offset != 0 {
		t.Errorf("Pos = %+v, want t.abc:1:1 offset 0", pos)
	}
}

func TestScannerPositions(t *testing.T) {
	s := NewScanner(strings.NewReader("ab\ncd"), "")
	want := []struct {
		ch           byte
		line, column int
	}{
		{'a', 1, 1},
		{'b', 1, 2},
		{'\n', 1, 3},
		{'c', 2, 1},
		{'d', 2, 2},
	}
	for _, w := range want {
		s.Advance()
		if s.Peek() != int(w.ch) {
			t.Fatalf("Peek = %q, want %q", rune(s.Peek()), w.ch)
		}
		pos := s.Pos()
		if pos.Line != w.line || pos.Column != w.column {
			t.Errorf("%q at %d:%d, want %d:%d", w.ch, pos.Line, pos.Column, w.line, w.column)
		}
	}
	if s.Advance() != EOF {
		t.Fatalf("expected EOF")
	}
	if s.Advance() != EOF {
		t.Errorf("Advance past EOF should stay at EOF")
	}
	if s.Err() != nil {
		t.Errorf("Err = %v, want nil", s.Err())
	}
}

func TestScannerInt(t *testing.T) {
	tests := []struct {
		input string
		n     int
		ok    bool
		rest  int
	}{
		{"123x", 123, true, 'x'},
		{"0/", 0, true, '/'},
		{"x1", 0, false, 'x'},
		{"42", 42, true, EOF},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewScanner(strings.NewReader(tt.input), "")
			s.Advance()
			n, ok := s.Int()
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if n != tt.n {
				t.Errorf("n = %d, want %d", n, tt.n)
			}
			if s.Peek() != tt.rest {
				t.Errorf("Peek = %q, want %q", rune(s.Peek()), rune(tt.rest))
			}
		})
	}
}

func TestScannerIntSaturates(t *testing.T) {
	s := NewScanner(strings.NewReader("99999999999999999999999z"), "")
	s.Advance()
	n, ok := s.Int()
	if !ok || n <= 0 {
		t.Fatalf("Int = %d, %v, want a positive saturated value", n, ok)
	}
	if s.Peek() != 'z' {
		t.Errorf("Peek = %q, want 'z'", rune(s.Peek()))
	}
}

func TestScannerSkip(t *testing.T) {
	s := NewScanner(strings.NewReader("  :: value\nnext"), "")
	s.SkipWhile(" :")
	if s.Peek() != 'v' {
		t.Fatalf("after SkipWhile Peek = %q, want 'v'", rune(s.Peek()))
	}
	s.SkipUntil("\n")
	if s.Peek() != '\n' {
		t.Fatalf("after SkipUntil Peek = %q, want newline", rune(s.Peek()))
	}
	s.SkipUntil("]")
	if s.Peek() != EOF {
		t.Errorf("SkipUntil without a match should stop at EOF, got %q", rune(s.Peek()))
	}
}

func TestScannerCapture(t *testing.T) {
	s := NewScanner(strings.NewReader("^c'2 d"), "")
	s.Advance()
	s.Mark()
	for s.Peek() != ' ' {
		s.Advance()
	}
	if got := s.Text(); got != "^c'2" {
		t.Errorf("Text = %q, want %q", got, "^c'2")
	}
	s.Advance()
	s.Advance()
	if got := s.Text(); got != "" {
		t.Errorf("Text after stop = %q, want empty", got)
	}
}

type failingSource struct {
	data string
	err  error
}

func (f *failingSource) ReadByte() (byte, error) {
	if f.data == "" {
		return 0, f.err
	}
	b := f.data[0]
	f.data = f.data[1:]
	return b, nil
}

func TestScannerReadError(t *testing.T) {
	boom := errors.New("boom")
	s := NewScanner(&failingSource{data: "a", err: boom}, "")
	s.Advance()
	if s.Advance() != EOF {
		t.Fatalf("expected EOF after read error")
	}
	if !errors.Is(s.Err(), boom) {
		t.Errorf("Err = %v, want %v", s.Err(), boom)
	}

	s = NewScanner(&failingSource{err: io.EOF}, "")
	s.Advance()
	if s.Err() != nil {
		t.Errorf("io.EOF should not be reported, got %v", s.Err())
	}
}
