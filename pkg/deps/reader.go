package deps

import (
	"bufio"
	"io"
	"strings"
)

// isCommentMarker reports whether c starts a trailing comment.
func isCommentMarker(c byte) bool {
	return c == '<' || c == '>' || c == '"' || c == '|'
}

// Reader decodes declaration file lines.
//
// Decoding rules:
//   - '\r' bytes are dropped wherever they appear
//   - blank lines are skipped
//   - a comment marker discards itself and the rest of the line
//
// A comment marker seen before any content on a line keeps discarding input
// until a line with content ends, which never happens once the line buffer
// is empty. A comment-only line therefore ends the usable content of the
// file, and ReadLine reports io.EOF.
type Reader struct {
	br *bufio.Reader
}

// NewReader returns a Reader decoding lines from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next decoded line without its terminator.
//
// It returns io.EOF once no further content exists. Other read errors are
// returned together with whatever was decoded before the failure.
func (r *Reader) ReadLine() (string, error) {
	var line strings.Builder
	comment := false
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}

		switch {
		case c == '\r':
			continue
		case c == '\n':
			if line.Len() == 0 {
				continue
			}
			return line.String(), nil
		case isCommentMarker(c):
			comment = true
		}

		if comment {
			continue
		}
		line.WriteByte(c)
	}
}
