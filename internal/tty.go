package internal

import (
	"os"

	"github.com/srlehn/fbsplash/internal/consts"
)

// DefaultFramebufferDevice honours $FRAMEBUFFER like fbset and the kernel docs do.
func DefaultFramebufferDevice() string {
	if dev, ok := os.LookupEnv(consts.EnvFramebuffer); ok && len(dev) > 0 {
		return dev
	}
	return consts.DefaultFramebuffer
}

func DefaultConsoleDevice() string { return consts.DefaultConsole }

// IsDefaultConsole reports names that stand for the controlling terminal.
// /dev/console is a device of its own and is kept as given.
func IsDefaultConsole(devName string) bool {
	return len(devName) == 0 || devName == `/dev/tty` || devName == `/dev/stdin`
}
