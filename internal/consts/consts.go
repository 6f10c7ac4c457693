package consts

import (
	"errors"
)

var (
	ErrNilReceiver          = errors.New(`nil receiver`)
	ErrNilParam             = errors.New(`nil parameter`)
	ErrNilImage             = errors.New(`nil image`)
	ErrPlatformNotSupported = errors.New(`platform not supported`)

	ErrDeviceUnavailable = errors.New(`frame buffer device unavailable`)
	ErrModeSwitch        = errors.New(`console mode switch failed`)
	ErrSizeMismatch      = errors.New(`buffer size does not match device`)
	ErrImageDecode       = errors.New(`image decode failed`)
	ErrOutOfBounds       = errors.New(`out of bounds write`)
	ErrBadGeometry       = errors.New(`invalid surface geometry`)
	ErrUnexpectedClose   = errors.New(`command channel closed without stop`)
	ErrSenderClosed      = errors.New(`command channel closed`)
	ErrInputClosed       = errors.New(`input closed before enter`)
	ErrEmptyPassword     = errors.New(`empty password`)
)

const (
	LibraryName = `fbsplash`

	DefaultFramebuffer = `/dev/fb0`
	DefaultConsole     = `/dev/tty`
	DefaultTTYBackend  = `termios`
	DefaultImage       = `/usr/share/fbsplash/splash.bmp`

	// ACPI boot graphics resource table, firmware logo placement
	DefaultXOffsetFile = `/sys/firmware/acpi/bgrt/xoffset`
	DefaultYOffsetFile = `/sys/firmware/acpi/bgrt/yoffset`

	EnvFramebuffer = `FRAMEBUFFER`
)
