package key

import (
	"io"

	"github.com/srlehn/fbsplash/internal/parser"
)

// Decoder turns the runes of a raw terminal into keys. Escape sequences
// such as arrow keys (ESC [ D) or SS3 function keys (ESC O P) become a
// single Other key carrying the final rune. A lone ESC is only reported
// once the following rune shows that no sequence started.
type Decoder struct {
	rr         io.RuneReader
	pending    rune
	hasPending bool
	err        error
}

func NewDecoder(rr io.RuneReader) *Decoder { return &Decoder{rr: rr} }

// Next returns the next key or the read error.
func (d *Decoder) Next() (Key, error) {
	r, err := d.read()
	if err != nil {
		return Key{}, err
	}
	if r != esc {
		return FromRune(r), nil
	}
	next, err := d.read()
	if err != nil {
		d.err = err
		return EscapeKey, nil
	}
	if next != '[' && next != 'O' {
		d.unread(next)
		return EscapeKey, nil
	}
	p := parser.NewParser()
	p.Parse(r)
	p.Parse(next)
	for {
		c, err := d.read()
		if err != nil {
			d.err = err
			return Key{Kind: Other}, nil
		}
		if c < 0x20 || c > 0x7e {
			// not part of a sequence, e.g. Enter after a stray ESC [
			d.unread(c)
			return Key{Kind: Other}, nil
		}
		if p.Parse(c) {
			return Key{Kind: Other, Rune: c}, nil
		}
	}
}

func (d *Decoder) read() (rune, error) {
	if d.hasPending {
		d.hasPending = false
		return d.pending, nil
	}
	if d.err != nil {
		return 0, d.err
	}
	r, _, err := d.rr.ReadRune()
	return r, err
}

func (d *Decoder) unread(r rune) { d.pending, d.hasPending = r, true }
