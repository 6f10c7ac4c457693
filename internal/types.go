package internal

import "io"

// TTY is the console keys are read from.
type TTY interface {
	TTYDevName() string
	io.Reader
	io.Closer
}
