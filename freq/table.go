// Package freq maps notes to equal-tempered frequencies.
//
// A Table covers octaves 0 through 10 and is indexed by absolute semitone
// number counted from C0:
//
//	index = 12*octave + step + accidental
//
// where step is the pitch-class offset of the note letter (C=0 ... B=11) and
// accidental is the net count of sharps (positive) and flats (negative).
package freq

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Octaves is the number of octaves a Table covers, starting at octave 0.
	Octaves = 11

	// ReferenceOctave is the octave of the uppercase note letters in ABC
	// notation. Uppercase C is middle C (C4).
	ReferenceOctave = 4

	// DefaultA4 is the concert pitch used by Default.
	DefaultA4 = 440.0

	a4Index = 12*4 + 9
)

// ErrOutOfRange is returned when an octave and accidental combination
// falls outside the table.
var ErrOutOfRange = errors.New("frequency index out of range")

// Default is the table tuned to A4 = 440 Hz.
var Default = New(DefaultA4)

var steps = [7]int{
	'A' - 'A': 9,
	'B' - 'A': 11,
	'C' - 'A': 0,
	'D' - 'A': 2,
	'E' - 'A': 4,
	'F' - 'A': 5,
	'G' - 'A': 7,
}

// Table is an immutable frequency table. The zero value is empty; use New.
type Table struct {
	a4 float64
	hz []float64
}

// New builds a table tuned so that A4 sounds at a4 Hz. A non-positive a4
// falls back to DefaultA4.
func New(a4 float64) *Table {
	if a4 <= 0 || math.IsNaN(a4) || math.IsInf(a4, 0) {
		a4 = DefaultA4
	}
	hz := make([]float64, Octaves*12)
	for i := range hz {
		hz[i] = a4 * math.Pow(2, float64(i-a4Index)/12)
	}
	return &Table{a4: a4, hz: hz}
}

// A4 returns the concert pitch the table was built with.
func (t *Table) A4() float64 {
	return t.a4
}

// Len returns the number of semitones in the table.
func (t *Table) Len() int {
	return len(t.hz)
}

// At returns the frequency stored at an absolute semitone index.
func (t *Table) At(index int) (float64, bool) {
	if index < 0 || index >= len(t.hz) {
		return 0, false
	}
	return t.hz[index], true
}

// Lookup returns the frequency of the note with the given octave, pitch-class
// step and accidental offset.
func (t *Table) Lookup(octave, step, accidental int) (float64, error) {
	i := Index(octave, step, accidental)
	hz, ok := t.At(i)
	if !ok {
		return 0, fmt.Errorf("octave %d step %d accidental %+d (index %d): %w",
			octave, step, accidental, i, ErrOutOfRange)
	}
	return hz, nil
}

// Hz is Lookup rounded to the nearest whole hertz, the resolution tone
// generators on small devices accept.
func (t *Table) Hz(octave, step, accidental int) (int, error) {
	hz, err := t.Lookup(octave, step, accidental)
	if err != nil {
		return 0, err
	}
	return int(math.Round(hz)), nil
}

// Index computes the absolute semitone index of a note.
func Index(octave, step, accidental int) int {
	return 12*octave + step + accidental
}

// Step returns the pitch-class offset of a note letter. Both cases are
// accepted; the octave implied by the case is the caller's concern.
func Step(letter byte) (int, bool) {
	switch {
	case 'A' <= letter && letter <= 'G':
		return steps[letter-'A'], true
	case 'a' <= letter && letter <= 'g':
		return steps[letter-'a'], true
	}
	return 0, false
}

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name returns the scientific pitch name of an absolute index, e.g. "A4".
func Name(index int) string {
	if index < 0 {
		return fmt.Sprintf("?%d", index)
	}
	return fmt.Sprintf("%s%d", names[index%12], index/12)
}
