package abc

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies what the parser skipped.
type DiagnosticKind int

const (
	// DiagUnrecognized is a byte that starts neither a note nor a directive.
	DiagUnrecognized DiagnosticKind = iota
	// DiagOutOfRange is a note whose octave and accidentals fall outside
	// the frequency table.
	DiagOutOfRange
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnrecognized:
		return "unrecognized"
	case DiagOutOfRange:
		return "out-of-range"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic records input the parser skipped.
type Diagnostic struct {
	Kind    DiagnosticKind
	Pos     Position
	Text    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// DecodeError is returned by Next for a note that was consumed but cannot
// be played. The stream itself is intact; call Next again to continue.
type DecodeError struct {
	Pos  Position
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode note %q: %v", e.Pos, e.Text, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ABC marks the parser does not play but that are valid notation: bar-line
// decorations, repeats, ties, slurs, tuplets, broken rhythm, line breaks.
// Skipping them is not worth a diagnostic.
const quietMarks = "\t\r\n0123456789/:()-~.{}<>=,'^_`\\&$*;@"

func isQuiet(ch int) bool {
	return ch >= 0 && ch < 0x80 && strings.IndexByte(quietMarks, byte(ch)) >= 0
}
