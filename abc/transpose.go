package abc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineLength = 16 * 1024 * 1024

// TransposeOctaves moves every note of a line of tune body by octaves
// (negative values move down). Accidentals are kept. Rests, bar lines,
// "!decorations!", "+decorations+", "annotations", inline fields like [K:G]
// and comments are copied unchanged.
func TransposeOctaves(line string, octaves int) string {
	var sb strings.Builder
	sb.Grow(len(line) + 8)

	copyThrough := func(i int, end byte) int {
		j := strings.IndexByte(line[i+1:], end)
		if j < 0 {
			sb.WriteString(line[i:])
			return len(line)
		}
		sb.WriteString(line[i : i+j+2])
		return i + j + 2
	}

	for i := 0; i < len(line); {
		ch := line[i]
		switch {
		case ch == '%':
			sb.WriteString(line[i:])
			return sb.String()
		case ch == '!' || ch == '+' || ch == '"':
			i = copyThrough(i, ch)
		case ch == '[' && i+2 < len(line) && isFieldTag(line[i+1]) && line[i+2] == ':':
			i = copyThrough(i, ']')
		case isNoteLetter(ch):
			octave := 0
			if ch >= 'a' {
				octave = 1
			}
			j := i + 1
			for ; j < len(line); j++ {
				if line[j] == '\'' {
					octave++
				} else if line[j] == ',' {
					octave--
				} else {
					break
				}
			}
			writeNoteLetter(&sb, ch, octave+octaves)
			i = j
		default:
			sb.WriteByte(ch)
			i++
		}
	}
	return sb.String()
}

func isNoteLetter(ch byte) bool {
	return ('A' <= ch && ch <= 'G') || ('a' <= ch && ch <= 'g')
}

func isFieldTag(ch byte) bool {
	return ('A' <= ch && ch <= 'Z') || ('a' <= ch && ch <= 'z')
}

// writeNoteLetter renders a letter at octave, counted from the uppercase
// octave: 0 is "C", 1 is "c", 2 is "c'", -1 is "C,".
func writeNoteLetter(sb *strings.Builder, letter byte, octave int) {
	upper := letter &^ 0x20
	if octave >= 1 {
		sb.WriteByte(upper | 0x20)
		sb.WriteString(strings.Repeat("'", octave-1))
		return
	}
	sb.WriteByte(upper)
	sb.WriteString(strings.Repeat(",", -octave))
}

// Transpose copies a tune from r to w, moving the notes of every body line
// by octaves. Header lines ("T:Title") pass through untouched. When voice is
// not empty only lines starting with "[V:<voice>]" are moved. Lines may be
// up to maxLineLength bytes long.
func Transpose(r io.Reader, w io.Writer, octaves int, voice string) error {
	prefix := ""
	if voice != "" {
		prefix = "[V:" + voice + "]"
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	bw := bufio.NewWriter(w)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case isHeaderLine(line):
		case prefix != "" && !strings.HasPrefix(strings.TrimLeft(line, " \t"), prefix):
		default:
			line = TransposeOctaves(line, octaves)
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read tune: %w", err)
	}
	return bw.Flush()
}

func isHeaderLine(line string) bool {
	return len(line) >= 2 && isFieldTag(line[0]) && line[1] == ':'
}
