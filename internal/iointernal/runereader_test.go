package iointernal_test

import (
	"io"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbsplash/internal/iointernal"
)

// byteReader hides ReadRune of the underlying reader.
type byteReader struct {
	b   []byte
	pos int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}

func readAll(t *testing.T, rdr iointernal.RuneReader) []rune {
	t.Helper()
	var repl []rune
	for {
		r, _, err := rdr.ReadRune()
		if err == io.EOF {
			return repl
		}
		require.NoError(t, err)
		repl = append(repl, r)
	}
}

func TestRuneReader(t *testing.T) {
	s := []rune("7ä⌘🤘🌵\r")
	src := &byteReader{b: []byte(string(s))}
	rdr := iointernal.NewRuneReader(src)
	assert.Equal(t, s, readAll(t, rdr))
}

func TestRuneReaderStopsAtRune(t *testing.T) {
	src := &byteReader{b: []byte("ä\rrest")}
	rdr := iointernal.NewRuneReader(src)
	r, size, err := rdr.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'ä', r)
	assert.Equal(t, 2, size)
	r, _, err = rdr.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, '\r', r)
	assert.Equal(t, 3, src.pos)
}

func TestRuneReaderInvalid(t *testing.T) {
	// a lead byte followed by ASCII keeps the ASCII rune
	rdr := iointernal.NewRuneReader(&byteReader{b: []byte{0xc3, 'a', 0xe2, 0x8c}})
	assert.Equal(t, []rune{utf8.RuneError, 'a', utf8.RuneError}, readAll(t, rdr))
}
