// Package parser recognizes terminal escape sequences rune by rune.
package parser

// Parser.Parse returns true when the end of the sequence is reached.
type Parser interface {
	Parse(rune) bool
}

const (
	esc = '\033'

	csi    = `CSI`
	ss3    = `SS3`
	nF     = `nF`
	stTerm = `ST-terminated`
)

type parser struct {
	last  rune
	state string
}

// NewParser returns a parser for a single sequence, it is fed the leading
// ESC first. Key presses arrive as CSI (ESC [ ... final) or SS3 (ESC O x).
func NewParser() Parser { return &parser{} }

func (p *parser) Parse(r rune) bool {
	if p == nil {
		return true // don't hang
	}
	var ret bool
	switch p.state {
	case nF: // [0x20-0x2F]+[0x30-0x7E]
		if r < 0x20 || r > 0x2F {
			p.state = ``
			ret = true
		}
	case csi: // parameters and intermediates, terminated by [0x40-0x7E]
		switch {
		case r == '[' && p.last == '[':
			// linux console function keys: ESC [ [ A
			p.state = ss3
		case r >= 0x40 && r <= 0x7E:
			p.state = ``
			ret = true
		}
	case ss3: // one character
		p.state = ``
		ret = true
	case stTerm:
		if r == '\a' || (r == '\\' && p.last == esc) {
			p.state = ``
			ret = true
		}
	case ``:
		if p.last == esc {
			switch {
			case r >= 0x20 && r <= 0x2F:
				p.state = nF
			case r == '[':
				p.state = csi
			case r == 'O':
				p.state = ss3
			// DCS, OSC, SOS, PM, APC
			case r == 'P' || r == ']' || r == 'X' || r == '^' || r == '_':
				p.state = stTerm
			// Fp, Fe, Fs
			case r >= 0x30 && r <= 0x7E:
				ret = true
			}
		}
	}
	p.last = r
	return ret
}
