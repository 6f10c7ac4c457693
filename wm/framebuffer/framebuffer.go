// Package framebuffer binds a Linux frame buffer device (/dev/fb0) and the
// virtual console it is shown on.
//
// The geometry is queried once when the device is opened. Drawing happens
// elsewhere, the binding only copies finished frames into the memory
// mapping and toggles the console between text and graphics mode. Keep
// all calls on one goroutine.
package framebuffer

import (
	"fmt"

	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/linux"
)

var (
	ErrDeviceUnavailable = consts.ErrDeviceUnavailable
	ErrModeSwitch        = consts.ErrModeSwitch
	ErrSizeMismatch      = consts.ErrSizeMismatch
)

// Geometry of the visible screen.
type Geometry struct {
	Width         int // pixels
	Height        int // pixels
	Stride        int // bytes per row
	BytesPerPixel int
}

// Size is the byte length of one frame.
func (g Geometry) Size() int { return g.Stride * g.Height }

func (g Geometry) String() string {
	return fmt.Sprintf(`%dx%d, stride %d, %d bytes/pixel`, g.Width, g.Height, g.Stride, g.BytesPerPixel)
}

// Mode is the console display mode.
type Mode int

const (
	ModeText     = Mode(linux.KDText)
	ModeGraphics = Mode(linux.KDGraphics)
)

func (m Mode) String() string { return linux.KDMode(m).String() }
