// Package abc turns a stream of ABC music notation into notes, one note per
// call, without materializing the score.
//
// The parser understands a subset of ABC: the M (meter), L (unit note
// length), Q (tempo) and K (key, default only) header fields, notes A-G and
// a-g with accidentals and octave marks, rests, duration modifiers and broken
// rhythm. Chords collapse to their first note. Everything else is skipped.
//
//	p := abc.New(bufio.NewReader(f), abc.WithFile("tune.abc"))
//	for {
//		n, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		var derr *abc.DecodeError
//		if errors.As(err, &derr) {
//			continue
//		}
//		if err != nil {
//			return err
//		}
//		play(n.FrequencyHz, n.DurationMs)
//	}
package abc

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/abcnote/freq"
)

// MaxDurationMs caps the length of a single note.
const MaxDurationMs = math.MaxInt32

// Parser decodes notes from a Source. A Parser owns all of its state and is
// not safe for concurrent use; parse independent streams with independent
// parsers.
type Parser struct {
	scanner *Scanner
	state   State
	table   *freq.Table
	file    string
	log     commonlog.Logger
	diags   []Diagnostic
}

type Option func(*Parser)

// WithFile names the stream in positions and diagnostics.
func WithFile(name string) Option {
	return func(p *Parser) {
		p.file = name
	}
}

// WithTable selects the frequency table. The default is freq.Default.
func WithTable(t *freq.Table) Option {
	return func(p *Parser) {
		if t != nil {
			p.table = t
		}
	}
}

// WithLogger replaces the "abcnote.abc" logger.
func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// New returns a parser reading from src with default state.
func New(src Source, opts ...Option) *Parser {
	p := &Parser{
		table: freq.Default,
		log:   commonlog.GetLogger("abcnote.abc"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset(src)
	return p
}

// NewString is New over an in-memory notation.
func NewString(notation string, opts ...Option) *Parser {
	return New(strings.NewReader(notation), opts...)
}

// Reset restores the default state and starts reading src.
func (p *Parser) Reset(src Source) {
	p.scanner = NewScanner(src, p.file)
	p.state.Reset()
	p.diags = nil
}

// State returns a copy of the current parsing defaults.
func (p *Parser) State() State {
	return p.state
}

// Diagnostics returns what the parser has skipped so far.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diags
}

// Next returns the next note. At the end of the stream it returns io.EOF,
// and keeps returning it. A *DecodeError means one note was consumed but
// cannot be played; the caller may skip it and call Next again. Any other
// error comes from the source and ends the stream.
func (p *Parser) Next() (Note, error) {
	s := p.scanner
	for {
		s.SkipWhile(" ")

		ch := s.Peek()
		if ch == EOF {
			if err := s.Err(); err != nil {
				return Note{}, fmt.Errorf("read notation: %w", err)
			}
			return Note{}, io.EOF
		}

		switch ch {
		case '"', '+':
			// Chord names, annotations and legacy decorations.
			s.Advance()
			s.SkipUntil(string(rune(ch)))
			s.Advance()
			continue
		case '!':
			// Decorations never span lines.
			s.Advance()
			s.SkipUntil("!\n")
			if s.Peek() == '!' {
				s.Advance()
			}
			continue
		}

		switch {
		case isIgnoredTag(ch):
			s.SkipUntil("\n")
		case ch == 'K':
			p.key()
		case ch == 'M':
			p.meter()
		case ch == 'Q':
			p.tempo()
		case ch == 'L':
			p.noteLength()
		case ch == '[':
			p.state.InChord = true
			s.Advance()
		case ch == ']' || ch == '|':
			// '|' also ends chord mode so that "[|" reads as a bar line.
			p.state.InChord = false
			s.Advance()
		default:
			n, err := p.note()
			if errors.Is(err, ErrNotANote) {
				continue
			}
			return n, err
		}
	}
}

func (p *Parser) note() (Note, error) {
	s := p.scanner
	start := s.Pos()

	s.Mark()
	pitch, err := DecodePitch(s, p.table)
	if errors.Is(err, ErrNotANote) {
		s.Text()
		p.skip()
		return Note{}, err
	}
	duration := DecodeDuration(s, p.state.DefaultDurationMs)
	text := s.Text()

	if p.state.InChord {
		// Only the first note of a chord sounds; the chord's own length
		// modifiers follow the closing bracket.
		s.SkipUntil("]")
		if s.Peek() == ']' {
			s.Advance()
			p.state.InChord = false
			duration = DecodeDuration(s, duration)
		}
	}

	if err != nil {
		p.diags = append(p.diags, Diagnostic{
			Kind:    DiagOutOfRange,
			Pos:     start,
			Text:    text,
			Message: fmt.Sprintf("note %q is outside the playable range", text),
		})
		p.log.Debugf("%s: skipping note %q: %s", start, text, err)
		return Note{}, &DecodeError{Pos: start, Text: text, Err: err}
	}

	ms := MaxDurationMs
	if duration < MaxDurationMs {
		ms = int(math.Round(duration))
	}
	if ms < 1 && duration > 0 {
		ms = 1
	}
	return Note{
		Kind:        pitch.Kind,
		FrequencyHz: pitch.FrequencyHz,
		DurationMs:  ms,
		Pos:         start,
		Text:        text,
	}, nil
}

// skip drops the lookahead byte, recording a diagnostic unless it is
// notation the parser deliberately ignores.
func (p *Parser) skip() {
	s := p.scanner
	ch := s.Peek()
	if ch == EOF {
		return
	}
	if !isQuiet(ch) {
		text := string(rune(ch))
		if ch >= 0x80 {
			text = fmt.Sprintf("\\x%02x", ch)
		}
		p.diags = append(p.diags, Diagnostic{
			Kind:    DiagUnrecognized,
			Pos:     s.Pos(),
			Text:    text,
			Message: fmt.Sprintf("unexpected %q, skipped", text),
		})
		p.log.Debugf("%s: skipping %q", s.Pos(), text)
	}
	s.Advance()
}

// Collect reads every note until the end of the stream, skipping notes that
// fail to decode. The error is nil at a clean end of stream.
func Collect(p *Parser) ([]Note, error) {
	var notes []Note
	for {
		n, err := p.Next()
		if err == io.EOF {
			return notes, nil
		}
		var derr *DecodeError
		if errors.As(err, &derr) {
			continue
		}
		if err != nil {
			return notes, err
		}
		notes = append(notes, n)
	}
}
