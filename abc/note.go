package abc

import (
	"errors"
	"fmt"
	"time"

	"github.com/dhamidi/abcnote/freq"
)

// ErrNotANote reports that the lookahead cannot start a note. It is
// recoverable: the parser skips the byte and keeps scanning.
var ErrNotANote = errors.New("not a note")

// NoteKind tells pitched notes from rests.
type NoteKind int

const (
	Pitched NoteKind = iota
	Rest
)

func (k NoteKind) String() string {
	switch k {
	case Pitched:
		return "note"
	case Rest:
		return "rest"
	}
	return fmt.Sprintf("NoteKind(%d)", int(k))
}

// Note is one playable event. Rests carry a zero frequency.
type Note struct {
	Kind        NoteKind
	FrequencyHz int
	DurationMs  int

	// Pos is where the note starts in the notation.
	Pos Position
	// Text is the notation the note was decoded from, e.g. "^c'2>".
	Text string
}

// Duration returns DurationMs as a time.Duration.
func (n Note) Duration() time.Duration {
	return time.Duration(n.DurationMs) * time.Millisecond
}

func (n Note) String() string {
	if n.Kind == Rest {
		return fmt.Sprintf("rest %dms", n.DurationMs)
	}
	return fmt.Sprintf("%dHz %dms", n.FrequencyHz, n.DurationMs)
}

// Pitch is the decoded pitch part of a note.
type Pitch struct {
	Kind       NoteKind
	Octave     int
	Step       int
	Accidental int
	// FrequencyHz is 0 for rests.
	FrequencyHz int
}

// Index returns the absolute semitone index of a pitched note.
func (p Pitch) Index() int {
	return freq.Index(p.Octave, p.Step, p.Accidental)
}

// DecodePitch decodes accidentals, the note letter and octave marks starting
// at the lookahead. It returns ErrNotANote without consuming the offending
// byte when no note starts there, and an error wrapping freq.ErrOutOfRange
// when the note falls outside table; in that case the note has been
// consumed.
func DecodePitch(s *Scanner, table *freq.Table) (Pitch, error) {
	accidental := 0
accidentals:
	for {
		switch s.Peek() {
		case '^':
			accidental++
		case '_':
			accidental--
		case '=':
			accidental = 0
		default:
			break accidentals
		}
		s.Advance()
	}

	ch := s.Peek()
	if ch == 'z' {
		s.Advance()
		return Pitch{Kind: Rest}, nil
	}
	if ch == EOF {
		return Pitch{}, ErrNotANote
	}
	step, ok := freq.Step(byte(ch))
	if !ok {
		return Pitch{}, ErrNotANote
	}
	octave := freq.ReferenceOctave
	if 'a' <= ch && ch <= 'g' {
		octave++
	}
	s.Advance()

octaves:
	for {
		switch s.Peek() {
		case '\'':
			octave++
		case ',':
			octave--
		default:
			break octaves
		}
		s.Advance()
	}

	p := Pitch{Kind: Pitched, Octave: octave, Step: step, Accidental: accidental}
	hz, err := table.Hz(octave, step, accidental)
	if err != nil {
		return p, err
	}
	p.FrequencyHz = hz
	return p, nil
}

// DecodeDuration applies the duration modifiers at the lookahead to base, in
// this order: a multiplier, any number of '/divisor' (a bare '/' halves),
// then any number of '>' (each multiplies by 1.5).
func DecodeDuration(s *Scanner, base float64) float64 {
	d := base
	if n, ok := s.Int(); ok && n > 0 {
		d *= float64(n)
	}
	for s.Peek() == '/' {
		s.Advance()
		if n, ok := s.Int(); ok && n > 0 {
			d /= float64(n)
		} else {
			d /= 2
		}
	}
	for s.Peek() == '>' {
		d *= 1.5
		s.Advance()
	}
	return d
}
