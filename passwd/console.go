package passwd

import (
	"os"

	"github.com/containerd/console"

	"github.com/srlehn/fbsplash/internal"
	"github.com/srlehn/fbsplash/internal/errors"
)

// ConsoleTTY is a raw console backed by containerd/console.
type ConsoleTTY struct {
	console.Console
	fileName string
}

var _ internal.TTY = (*ConsoleTTY)(nil)

func OpenConsole(ttyFile string) (_ *ConsoleTTY, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(r)
		}
	}()
	if internal.IsDefaultConsole(ttyFile) {
		ttyFile = internal.DefaultConsoleDevice()
	}
	f, err := os.OpenFile(ttyFile, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.New(err)
	}
	c, err := console.ConsoleFromFile(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.New(err)
	}
	if err := c.SetRaw(); err != nil {
		_ = c.Close()
		return nil, errors.New(err)
	}
	return &ConsoleTTY{
		Console:  c,
		fileName: ttyFile,
	}, nil
}

func (t *ConsoleTTY) Read(p []byte) (n int, err error) {
	if t == nil || t.Console == nil {
		return 0, errors.NilReceiver()
	}
	return t.Console.Read(p)
}

func (t *ConsoleTTY) TTYDevName() string {
	if t == nil {
		return internal.DefaultConsoleDevice()
	}
	return t.fileName
}

func (t *ConsoleTTY) Close() error {
	if t == nil || t.Console == nil {
		return nil
	}
	defer func() { t.Console = nil }()
	errReset := t.Console.Reset()
	errClose := t.Console.Close()
	return errors.Join(errReset, errClose)
}

// TTY backends for Open.
const (
	BackendTermios = `termios`
	BackendConsole = `console`
)

// Open puts ttyFile into raw mode with the named backend, empty selects
// BackendTermios.
func Open(backend, ttyFile string) (internal.TTY, error) {
	var (
		tty internal.TTY
		err error
	)
	switch backend {
	case ``, BackendTermios:
		tty, err = OpenTTY(ttyFile)
	case BackendConsole:
		tty, err = OpenConsole(ttyFile)
	default:
		return nil, errors.Errorf(`unknown tty backend %q`, backend)
	}
	if err != nil {
		return nil, err
	}
	return tty, nil
}
