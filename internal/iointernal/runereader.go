package iointernal

import (
	"io"
	"unicode/utf8"

	"github.com/srlehn/fbsplash/internal/errors"
)

type RuneReader interface {
	ReadRune() (r rune, size int, err error)
}

// NewRuneReader decodes runes from rdr one byte at a time, nothing past the
// current rune is consumed. Readers that already decode runes are used as is.
func NewRuneReader(rdr io.Reader) RuneReader {
	if rdr == nil {
		return nil
	}
	var readRuneFunc func() (rn rune, size int, err error)
	if rnRdr, ok := rdr.(RuneReader); ok {
		readRuneFunc = rnRdr.ReadRune
	}
	return &runeReader{
		reader:       rdr,
		readRuneFunc: readRuneFunc,
	}
}

var _ RuneReader = (*runeReader)(nil)

type runeReader struct {
	reader       io.Reader
	pending      []byte // read but not yet decoded
	readRuneFunc func() (rn rune, size int, err error)
}

// ReadRune returns utf8.RuneError for invalid or truncated sequences.
// io.EOF is returned unwrapped.
func (r *runeReader) ReadRune() (rn rune, size int, err error) {
	if r == nil || r.reader == nil {
		return utf8.RuneError, 0, errors.NilReceiver()
	}
	if r.readRuneFunc != nil {
		return r.readRuneFunc()
	}
	buf := append(make([]byte, 0, utf8.UTFMax), r.pending...)
	r.pending = nil
	for !utf8.FullRune(buf) {
		var b [1]byte
		if _, err := io.ReadFull(r.reader, b[:]); err != nil {
			if len(buf) > 0 {
				return utf8.RuneError, len(buf), nil
			}
			return utf8.RuneError, 0, err
		}
		buf = append(buf, b[0])
	}
	rn, size = utf8.DecodeRune(buf)
	if size < len(buf) {
		r.pending = append(r.pending, buf[size:]...)
	}
	return rn, size, nil
}
