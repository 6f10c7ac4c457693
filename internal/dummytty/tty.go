// Package dummytty is a scripted console for tests of code that reads keys.
package dummytty

import (
	"io"
	"strings"

	"github.com/srlehn/fbsplash/internal"
	"github.com/srlehn/fbsplash/internal/errors"
)

type TTYDummy struct {
	rdr      *strings.Reader
	fileName string
	closed   bool
}

var _ internal.TTY = (*TTYDummy)(nil)

func New(input string) (*TTYDummy, error) {
	return &TTYDummy{
		rdr:      strings.NewReader(input),
		fileName: internal.DefaultConsoleDevice(),
	}, nil
}

func (t *TTYDummy) Write(b []byte) (n int, err error) { return io.Discard.Write(b) }

func (t *TTYDummy) Read(p []byte) (n int, err error) {
	if t == nil || t.rdr == nil {
		return 0, errors.NilReceiver()
	}
	if t.closed {
		return 0, io.EOF
	}
	return t.rdr.Read(p)
}

func (t *TTYDummy) TTYDevName() string {
	if t == nil {
		return internal.DefaultConsoleDevice()
	}
	return t.fileName
}

func (t *TTYDummy) Closed() bool { return t != nil && t.closed }

func (t *TTYDummy) Close() error {
	if t != nil {
		t.closed = true
	}
	return nil
}
