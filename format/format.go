// Package format writes decoded notes in the forms tone generators and
// tooling consume.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/abcnote/abc"
)

// Encoder writes notes one at a time. MarshalText renders the most
// recently encoded note; Flush writes whatever framing the format needs
// after the last note.
type Encoder interface {
	encoding.TextMarshaler
	Encode(n abc.Note) error
	Flush() error
}

var encoders = map[string]func(io.Writer) Encoder{
	"line": func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"c":    func(w io.Writer) Encoder { return NewCEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, Names())
	}
	return mk(w), nil
}

// Names lists the registered formats.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
