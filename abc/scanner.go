package abc

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// EOF is the lookahead value once the source is exhausted.
const EOF = -1

// Source yields the notation one byte at a time. io.EOF marks the end of the
// stream; any other error is reported by the parser and ends the stream.
type Source interface {
	ReadByte() (byte, error)
}

// Position locates a byte in the notation stream. Line and Column start at 1.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Scanner holds the one-byte lookahead over a Source. Every decoding step
// works on the lookahead and advances it; nothing is ever pushed back.
type Scanner struct {
	src  Source
	ch   int
	pos  Position
	next Position
	err  error

	capturing bool
	text      []byte
}

// NewScanner returns a scanner whose lookahead is a synthetic space, so the
// first skip of spaces pulls the first real byte.
func NewScanner(src Source, file string) *Scanner {
	start := Position{File: file, Line: 1, Column: 1}
	return &Scanner{
		src:  src,
		ch:   ' ',
		pos:  Position{File: file, Line: 1},
		next: start,
	}
}

// Peek returns the lookahead byte, or EOF.
func (s *Scanner) Peek() int {
	return s.ch
}

// Pos returns the position of the lookahead byte.
func (s *Scanner) Pos() Position {
	return s.pos
}

// Err returns the first read error other than io.EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Advance consumes the lookahead and reads the next byte. It never reads
// past the end of the source.
func (s *Scanner) Advance() int {
	if s.ch == EOF {
		return EOF
	}
	if s.capturing {
		s.text = append(s.text, byte(s.ch))
	}
	b, err := s.src.ReadByte()
	s.pos = s.next
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		s.ch = EOF
		return EOF
	}
	s.ch = int(b)
	s.next.Offset++
	if b == '\n' {
		s.next.Line++
		s.next.Column = 1
	} else {
		s.next.Column++
	}
	return s.ch
}

// SkipWhile advances past every byte contained in set.
func (s *Scanner) SkipWhile(set string) {
	for s.ch != EOF && strings.IndexByte(set, byte(s.ch)) >= 0 {
		s.Advance()
	}
}

// SkipUntil advances until the lookahead is a byte contained in set or the
// stream ends. The stopping byte is not consumed.
func (s *Scanner) SkipUntil(set string) {
	for s.ch != EOF && strings.IndexByte(set, byte(s.ch)) < 0 {
		s.Advance()
	}
}

// Int consumes a run of decimal digits. ok is false when the lookahead is not
// a digit, in which case nothing is consumed. Values saturate instead of
// overflowing.
func (s *Scanner) Int() (n int, ok bool) {
	const limit = 1 << 30
	for s.ch != EOF && '0' <= s.ch && s.ch <= '9' {
		if n < limit {
			n = n*10 + (s.ch - '0')
		}
		ok = true
		s.Advance()
	}
	return n, ok
}

// Mark starts recording consumed bytes; Text returns them.
func (s *Scanner) Mark() {
	s.capturing = true
	s.text = s.text[:0]
}

// Text stops recording and returns the bytes consumed since Mark.
func (s *Scanner) Text() string {
	s.capturing = false
	text := string(s.text)
	s.text = s.text[:0]
	return text
}
