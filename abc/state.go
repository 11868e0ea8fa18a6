package abc

const (
	// DefaultMeter is the meter before any M: header (4/4).
	DefaultMeter = 1.0
	// DefaultNoteLength is the unit note length before any L: or M: header.
	DefaultNoteLength = 1.0 / 8
	// DefaultBPM is the tempo before any Q: header.
	DefaultBPM = 120

	shortNoteLength = 1.0 / 16
	msPerWholeBeat  = 240000
)

// State holds the parsing defaults that header directives change. Every
// setter recomputes DefaultDurationMs before returning.
type State struct {
	// InChord is true between an unmatched '[' and its closing ']' or a '|'.
	InChord bool
	// Meter is the time signature collapsed to a fraction (6/8 = 0.75).
	Meter float64
	// NoteLength is the unit note length as a fraction of a whole note.
	NoteLength float64
	// BPM is the tempo in beats per minute.
	BPM int
	// DefaultDurationMs is the length of one unit note in milliseconds.
	DefaultDurationMs float64
}

// NewState returns a State holding the defaults.
func NewState() State {
	var st State
	st.Reset()
	return st
}

// Reset restores the defaults.
func (st *State) Reset() {
	*st = State{
		Meter:      DefaultMeter,
		NoteLength: DefaultNoteLength,
		BPM:        DefaultBPM,
	}
	st.DefaultDurationMs = DurationMs(st.NoteLength, st.BPM)
}

// SetMeter applies an M: header. Meters below 3/4 use sixteenth unit notes,
// everything else eighth notes.
func (st *State) SetMeter(meter float64) {
	if meter <= 0 {
		return
	}
	st.Meter = meter
	if meter < 0.75 {
		st.NoteLength = shortNoteLength
	} else {
		st.NoteLength = DefaultNoteLength
	}
	st.DefaultDurationMs = DurationMs(st.NoteLength, st.BPM)
}

// SetNoteLength applies an L: header.
func (st *State) SetNoteLength(length float64) {
	if length <= 0 {
		return
	}
	st.NoteLength = length
	st.DefaultDurationMs = DurationMs(st.NoteLength, st.BPM)
}

// SetTempo applies a Q: header. unit is the note length the tempo is
// counted in (the 1/4 of Q:1/4=120); when it is zero the unit note length is
// used instead. A non-positive bpm leaves the state unchanged.
func (st *State) SetTempo(bpm int, unit float64) {
	if bpm <= 0 {
		return
	}
	st.BPM = bpm
	if unit <= 0 {
		unit = st.NoteLength
	}
	st.DefaultDurationMs = DurationMs(unit, bpm)
}

// DurationMs converts a note length (fraction of a whole note) at a tempo to
// milliseconds: 240000 * length / bpm.
func DurationMs(length float64, bpm int) float64 {
	if bpm <= 0 {
		return 0
	}
	return msPerWholeBeat * length / float64(bpm)
}
