package passwd

import (
	"os"

	"github.com/u-root/u-root/pkg/termios"

	"github.com/srlehn/fbsplash/internal"
	"github.com/srlehn/fbsplash/internal/errors"
)

// TTY is a console in raw mode, keys arrive unbuffered and unechoed.
type TTY struct {
	*os.File
	restore  *termios.Termios
	fileName string
}

var _ internal.TTY = (*TTY)(nil)

// OpenTTY switches ttyFile to raw mode until Close.
func OpenTTY(ttyFile string) (*TTY, error) {
	if internal.IsDefaultConsole(ttyFile) {
		ttyFile = internal.DefaultConsoleDevice()
	}
	f, err := os.OpenFile(ttyFile, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.New(err)
	}
	restore, err := termios.GetTermios(f.Fd())
	if err != nil {
		_ = f.Close()
		return nil, errors.Errorf(`%s: %w`, ttyFile, err)
	}
	if err := termios.SetTermios(f.Fd(), termios.MakeRaw(restore)); err != nil {
		_ = f.Close()
		return nil, errors.Errorf(`%s: %w`, ttyFile, err)
	}
	return &TTY{
		File:     f,
		restore:  restore,
		fileName: ttyFile,
	}, nil
}

func (t *TTY) Read(p []byte) (n int, err error) {
	if t == nil || t.File == nil {
		return 0, errors.NilReceiver()
	}
	return t.File.Read(p)
}

func (t *TTY) TTYDevName() string {
	if t == nil {
		return internal.DefaultConsoleDevice()
	}
	return t.fileName
}

// Close restores the terminal settings found by OpenTTY and closes the
// device.
func (t *TTY) Close() error {
	if t == nil || t.File == nil {
		return nil
	}
	defer func() { t.restore = nil; t.File = nil }()
	var errRestore error
	if t.restore != nil {
		errRestore = termios.SetTermios(t.File.Fd(), t.restore)
	}
	return errors.Join(errRestore, t.File.Close())
}
