//go:build !linux

package framebuffer

import (
	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
)

type Framebuffer struct{}

func Open(dev, console string) (*Framebuffer, error) {
	return nil, errors.Kind(ErrDeviceUnavailable, consts.ErrPlatformNotSupported)
}

func (fb *Framebuffer) Geometry() Geometry { return Geometry{} }
func (fb *Framebuffer) Name() string       { return `` }
func (fb *Framebuffer) Mode() Mode         { return ModeText }
func (fb *Framebuffer) SetMode(m Mode) error {
	return errors.Kind(ErrModeSwitch, consts.ErrPlatformNotSupported)
}
func (fb *Framebuffer) Present(b []byte) error {
	return errors.New(consts.ErrPlatformNotSupported)
}
func (fb *Framebuffer) Close() error { return nil }
