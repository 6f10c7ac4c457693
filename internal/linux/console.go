//go:build linux

package linux

import (
	"golang.org/x/sys/unix"

	"github.com/srlehn/fbsplash/internal/errors"
)

// <linux/kd.h>
const (
	kdSetMode uint = 0x4b3a
	kdGetMode uint = 0x4b3b
)

func KDGetMode(fd uintptr) (mode KDMode, isLinuxConsole bool, _ error) {
	m, err := unix.IoctlGetInt(int(fd), kdGetMode)
	if err == nil {
		return KDMode(m), true, nil
	}
	if errors.Is(err, unix.ENOTTY) {
		return -1, false, nil
	}
	return -1, false, errors.New(err)
}

// KDSetMode switches the virtual console behind fd between text and graphics.
func KDSetMode(fd uintptr, mode KDMode) error {
	// KDSETMODE takes the mode by value, not by pointer
	if err := unix.IoctlSetInt(int(fd), kdSetMode, int(mode)); err != nil {
		return errors.New(err)
	}
	return nil
}
