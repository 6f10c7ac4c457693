// Copyright 2013 Konstantin Kulikov. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package framebuffer

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/srlehn/fbsplash/internal"
	"github.com/srlehn/fbsplash/internal/errors"
	"github.com/srlehn/fbsplash/internal/linux"
)

// Framebuffer is an opened, memory mapped frame buffer device.
type Framebuffer struct {
	dev      *os.File
	console  *os.File
	finfo    fixedScreenInfo
	vinfo    variableScreenInfo
	geometry Geometry
	mapping  []byte // as returned by mmap
	data     []byte // video memory, starts at smem_start
	mode     Mode
	devName  string
}

// Open maps the frame buffer dev and opens the console whose mode is
// switched. Empty names select $FRAMEBUFFER or /dev/fb0 and /dev/tty.
func Open(dev, console string) (_ *Framebuffer, err error) {
	if len(dev) == 0 {
		dev = internal.DefaultFramebufferDevice()
	}
	if internal.IsDefaultConsole(console) {
		console = internal.DefaultConsoleDevice()
	}
	fb := &Framebuffer{devName: dev, mode: ModeText}
	defer func() {
		if err != nil {
			_ = fb.release()
		}
	}()

	fb.dev, err = os.OpenFile(dev, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, errors.Kind(ErrDeviceUnavailable, err)
	}
	if err = ioctl(fb.dev.Fd(), getFixedScreenInfo, unsafe.Pointer(&fb.finfo)); err != nil {
		return nil, errors.Kind(ErrDeviceUnavailable, errors.Errorf(`%s: FBIOGET_FSCREENINFO: %w`, dev, err))
	}
	if err = ioctl(fb.dev.Fd(), getVariableScreenInfo, unsafe.Pointer(&fb.vinfo)); err != nil {
		return nil, errors.Kind(ErrDeviceUnavailable, errors.Errorf(`%s: FBIOGET_VSCREENINFO: %w`, dev, err))
	}
	fb.geometry = geometryOf(&fb.finfo, &fb.vinfo)
	if fb.geometry.BytesPerPixel < 3 {
		return nil, errors.Kindf(ErrDeviceUnavailable, `%s: unsupported depth of %d bits`, dev, fb.vinfo.BitsPerPixel)
	}

	off, length := mmapWindow(fb.finfo.SmemStart, fb.finfo.SmemLen, unix.Getpagesize())
	fb.mapping, err = unix.Mmap(int(fb.dev.Fd()), 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Kind(ErrDeviceUnavailable, errors.Errorf(`%s: mmap: %w`, dev, err))
	}
	fb.data = fb.mapping[off:]

	fb.console, err = os.OpenFile(console, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Kind(ErrDeviceUnavailable, err)
	}
	if m, isConsole, errMode := linux.KDGetMode(fb.console.Fd()); errMode == nil && isConsole {
		fb.mode = Mode(m)
	}
	return fb, nil
}

// mmapWindow returns the mapping length covering the whole video memory
// and where it starts inside the mapping. The kernel maps from the page
// holding smem_start.
func mmapWindow(smemStart uintptr, smemLen uint32, pageSize int) (offset, length int) {
	offset = int(smemStart & uintptr(pageSize-1))
	return offset, int(smemLen) + offset
}

func geometryOf(finfo *fixedScreenInfo, vinfo *variableScreenInfo) Geometry {
	return Geometry{
		Width:         int(vinfo.XRes),
		Height:        int(vinfo.YRes),
		Stride:        int(finfo.LineLength),
		BytesPerPixel: int(vinfo.BitsPerPixel) / 8,
	}
}

func (fb *Framebuffer) Geometry() Geometry {
	if fb == nil {
		return Geometry{}
	}
	return fb.geometry
}

func (fb *Framebuffer) Name() string {
	if fb == nil {
		return ``
	}
	return fb.devName
}

// Mode is the console mode last set through this binding.
func (fb *Framebuffer) Mode() Mode {
	if fb == nil {
		return ModeText
	}
	return fb.mode
}

// SetMode switches the console. Graphics must be set before presenting and
// text restored before the process exits.
func (fb *Framebuffer) SetMode(m Mode) error {
	if fb == nil || fb.console == nil {
		return errors.Kind(ErrModeSwitch, errors.NilReceiver())
	}
	if err := linux.KDSetMode(fb.console.Fd(), linux.KDMode(m)); err != nil {
		return errors.Kind(ErrModeSwitch, errors.Errorf(`%s to %s: %w`, fb.console.Name(), m, err))
	}
	fb.mode = m
	return nil
}

// Present copies one frame into the visible part of the mapping. b must be
// exactly Geometry().Size() bytes long.
func (fb *Framebuffer) Present(b []byte) error {
	if fb == nil || fb.data == nil {
		return errors.NilReceiver()
	}
	if len(b) != fb.geometry.Size() {
		return errors.Kindf(ErrSizeMismatch, `got %d bytes, device frame is %d (%s)`, len(b), fb.geometry.Size(), fb.geometry)
	}
	start := int(fb.vinfo.YOffset) * fb.geometry.Stride
	if start+len(b) > len(fb.data) {
		return errors.Kindf(ErrSizeMismatch, `frame at byte %d exceeds %d byte mapping`, start, len(fb.data))
	}
	copy(fb.data[start:], b)
	return nil
}

// Close leaves the console in text mode and releases the device.
func (fb *Framebuffer) Close() error {
	if fb == nil {
		return nil
	}
	var errMode error
	if fb.console != nil && fb.mode != ModeText {
		errMode = fb.SetMode(ModeText)
	}
	return errors.Join(errMode, fb.release())
}

func (fb *Framebuffer) release() error {
	var errs []error
	if fb.mapping != nil {
		errs = append(errs, unix.Munmap(fb.mapping))
		fb.mapping, fb.data = nil, nil
	}
	if fb.dev != nil {
		errs = append(errs, fb.dev.Close())
		fb.dev = nil
	}
	if fb.console != nil {
		errs = append(errs, fb.console.Close())
		fb.console = nil
	}
	return errors.Join(errs...)
}

func ioctl(fd uintptr, cmd uintptr, data unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, uintptr(data))
	if errno != 0 {
		return os.NewSyscallError(`ioctl`, errno)
	}
	return nil
}
