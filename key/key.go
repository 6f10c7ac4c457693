// Package key is the key vocabulary shared by the password reader and the
// render loop.
package key

import "unicode"

type Kind int

const (
	Other Kind = iota
	Enter
	Escape
	Backspace
	Char
)

const esc = 0x1b

type Key struct {
	Kind Kind
	Rune rune // Char: the character, Other: the raw rune or the final rune of a sequence
}

var (
	EnterKey     = Key{Kind: Enter}
	EscapeKey    = Key{Kind: Escape}
	BackspaceKey = Key{Kind: Backspace}
)

func CharKey(r rune) Key { return Key{Kind: Char, Rune: r} }

// FromRune decodes a rune read from a terminal in raw mode.
func FromRune(r rune) Key {
	switch r {
	case '\r', '\n':
		return EnterKey
	case esc:
		return EscapeKey
	case 0x7f, 0x08:
		return BackspaceKey
	}
	if unicode.IsPrint(r) {
		return CharKey(r)
	}
	return Key{Kind: Other, Rune: r}
}

// String never reveals the typed character.
func (k Key) String() string {
	switch k.Kind {
	case Enter:
		return `Enter`
	case Escape:
		return `Escape`
	case Backspace:
		return `Backspace`
	case Char:
		return `Char`
	}
	return `Other`
}
