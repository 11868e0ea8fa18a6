package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/abcnote/abc"
)

// LineEncoder writes "<frequency>\t<duration>" per note, the form a
// microcontroller reads off a serial line. Rests have frequency 0.
type LineEncoder struct {
	w    io.Writer
	note abc.Note
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(n abc.Note) error {
	e.note = n
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%d\t%d\n", e.note.FrequencyHz, e.note.DurationMs), nil
}

func (e *LineEncoder) Flush() error {
	return nil
}
