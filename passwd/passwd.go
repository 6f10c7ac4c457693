// Package passwd reads a password from the console key by key.
package passwd

import (
	"io"
	"os"
	"strings"

	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
	"github.com/srlehn/fbsplash/internal/iointernal"
	"github.com/srlehn/fbsplash/key"
)

var (
	ErrInputClosed   = consts.ErrInputClosed
	ErrEmptyPassword = consts.ErrEmptyPassword
)

// Read collects keys from r until Enter. Every decoded key is passed to
// onKey before it is applied: Backspace removes the last rune, Escape
// discards the input so far, escape sequences and control keys are
// ignored. An error from onKey aborts reading and is returned.
func Read(r io.Reader, onKey func(key.Key) error) (string, error) {
	if r == nil {
		return ``, errors.NilParam()
	}
	dec := key.NewDecoder(iointernal.NewRuneReader(r))
	var pass []rune
	for {
		k, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ``, errors.New(ErrInputClosed)
			}
			return ``, errors.New(err)
		}
		if onKey != nil {
			if err := onKey(k); err != nil {
				return ``, err
			}
		}
		switch k.Kind {
		case key.Enter:
			return string(pass), nil
		case key.Escape:
			pass = pass[:0]
		case key.Backspace:
			if len(pass) > 0 {
				pass = pass[:len(pass)-1]
			}
		case key.Char:
			pass = append(pass, k.Rune)
		}
	}
}

// Validate rejects an empty password.
func Validate(pass string) (string, error) {
	if len(strings.TrimSpace(pass)) == 0 {
		return ``, errors.New(ErrEmptyPassword)
	}
	return pass, nil
}

// Write stores pass in path with owner-only permissions, or prints it to
// stdout for an empty path.
func Write(path, pass string) error {
	if len(path) == 0 {
		_, err := io.WriteString(os.Stdout, pass+"\n")
		if err != nil {
			return errors.New(err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(pass), 0o600); err != nil {
		return errors.New(err)
	}
	return nil
}
