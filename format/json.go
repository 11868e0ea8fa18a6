package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/abcnote/abc"
)

// JSONEncoder writes one JSON object per line.
type JSONEncoder struct {
	w    io.Writer
	note abc.Note
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

type jsonNote struct {
	Kind        string `json:"kind"`
	FrequencyHz int    `json:"frequencyHz"`
	DurationMs  int    `json:"durationMs"`
	Text        string `json:"text,omitempty"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
}

func (e *JSONEncoder) Encode(n abc.Note) error {
	e.note = n
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	n := e.note
	return json.Marshal(jsonNote{
		Kind:        n.Kind.String(),
		FrequencyHz: n.FrequencyHz,
		DurationMs:  n.DurationMs,
		Text:        n.Text,
		File:        n.Pos.File,
		Line:        n.Pos.Line,
		Column:      n.Pos.Column,
	})
}

func (e *JSONEncoder) Flush() error {
	return nil
}
