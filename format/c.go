package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/abcnote/abc"
)

// CEncoder writes the notes as a C array initializer that firmware can
// compile in:
//
//	const int melody[][2] = {
//		{262, 250},
//		{0, 500},
//	};
//	const int melody_len = 2;
type CEncoder struct {
	w     io.Writer
	name  string
	note  abc.Note
	count int
	err   error
}

func NewCEncoder(w io.Writer) *CEncoder {
	return &CEncoder{w: w, name: "melody"}
}

// SetName changes the C identifier of the array. It has no effect once a
// note has been written.
func (e *CEncoder) SetName(name string) {
	if e.count == 0 && name != "" {
		e.name = name
	}
}

func (e *CEncoder) Encode(n abc.Note) error {
	if e.err != nil {
		return e.err
	}
	if e.count == 0 {
		if _, e.err = fmt.Fprintf(e.w, "const int %s[][2] = {\n", e.name); e.err != nil {
			return e.err
		}
	}
	e.note = n
	text, _ := e.MarshalText()
	if _, e.err = e.w.Write(text); e.err != nil {
		return e.err
	}
	e.count++
	return nil
}

func (e *CEncoder) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "\t{%d, %d},\n", e.note.FrequencyHz, e.note.DurationMs), nil
}

// Flush closes the array. An empty melody still produces a valid, empty
// initializer.
func (e *CEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if e.count == 0 {
		_, e.err = fmt.Fprintf(e.w, "const int %s[][2] = {\n", e.name)
		if e.err != nil {
			return e.err
		}
	}
	_, e.err = fmt.Fprintf(e.w, "};\nconst int %s_len = %d;\n", e.name, e.count)
	return e.err
}
