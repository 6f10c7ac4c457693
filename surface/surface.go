// Package surface is an in-memory pixel buffer laid out like the frame
// buffer device it is later copied to.
//
// Pixels are addressed linearly:
//
//	index = (y + yOffset) * stride + (x + xOffset) * bytesPerPixel
//
// and stored blue, green, red. A fourth byte per pixel (padding or alpha)
// is never written.
package surface

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/bmp"

	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
)

var (
	ErrOutOfBounds = consts.ErrOutOfBounds
	ErrImageDecode = consts.ErrImageDecode
	ErrBadGeometry = consts.ErrBadGeometry
)

// blue, green, red
const minBytesPerPixel = 3

type Coordinate struct{ X, Y int }

// Color is a plain RGB triple, the channel order in memory is decided by
// the surface.
type Color struct{ R, G, B uint8 }

type Pixel struct {
	Coordinate
	Color
}

// Shape is a set of pixels applied as one unit.
type Shape struct{ Pixels []Pixel }

// Surface is one frame in device layout.
type Surface struct {
	buf     []byte
	width   int // visible pixels per row
	height  int
	stride  int // bytes per row
	bpp     int
	xOffset *int // explicit placement, nil centers
	yOffset *int
	xEff    int // placement of the last blit
	yEff    int
}

type Option func(*Surface)

// WithOffset sets an explicit placement. A nil coordinate is centered.
func WithOffset(x, y *int) Option {
	return func(s *Surface) {
		s.xOffset = x
		s.yOffset = y
		if x != nil {
			s.xEff = *x
		}
		if y != nil {
			s.yEff = *y
		}
	}
}

// New allocates a zero-filled surface of stride*height bytes.
func New(width, height, stride, bytesPerPixel int, opts ...Option) (*Surface, error) {
	if width < 1 || height < 1 || bytesPerPixel < minBytesPerPixel || stride < width*bytesPerPixel {
		return nil, errors.Kindf(ErrBadGeometry, `%dx%d, stride %d, %d bytes per pixel`, width, height, stride, bytesPerPixel)
	}
	s := &Surface{
		buf:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		bpp:    bytesPerPixel,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Surface) Bytes() []byte      { return s.buf }
func (s *Surface) Width() int         { return s.width }
func (s *Surface) Height() int        { return s.height }
func (s *Surface) Stride() int        { return s.stride }
func (s *Surface) BytesPerPixel() int { return s.bpp }

// Offset is the placement shared by BlitImage and Draw.
func (s *Surface) Offset() (x, y int) { return s.xEff, s.yEff }

// columns is the number of addressable pixels per row, padding included.
func (s *Surface) columns() int { return s.stride / s.bpp }

// Index is the byte position of (x, y) relative to the current offset.
func (s *Surface) Index(x, y int) int {
	return (y+s.yEff)*s.stride + (x+s.xEff)*s.bpp
}

func (s *Surface) inBounds(x, y int) bool {
	px, py := x+s.xEff, y+s.yEff
	return px >= 0 && py >= 0 && px < s.columns() && py < s.height
}

func (s *Surface) put(idx int, c Color) {
	s.buf[idx] = c.B
	s.buf[idx+1] = c.G
	s.buf[idx+2] = c.R
}

// At reads back the color at (x, y), the zero Color outside the surface.
func (s *Surface) At(x, y int) Color {
	if !s.inBounds(x, y) {
		return Color{}
	}
	idx := s.Index(x, y)
	return Color{R: s.buf[idx+2], G: s.buf[idx+1], B: s.buf[idx]}
}

// CenterOffset places a w*h image in the middle of a surface whose rows are
// stride bytes wide. Integer division biases odd remainders to the top left.
func CenterOffset(stride, height, bytesPerPixel, w, h int) (x, y int) {
	return (stride/bytesPerPixel)/2 - w/2, height/2 - h/2
}

// BlitImage copies img into the surface at the explicit offset or centered.
// Nothing is written if any part of img would fall outside.
func (s *Surface) BlitImage(img image.Image) error {
	if img == nil {
		return errors.New(consts.ErrNilImage)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := CenterOffset(s.stride, s.height, s.bpp, w, h)
	xOff, yOff := cx, cy
	if s.xOffset != nil {
		xOff = *s.xOffset
	}
	if s.yOffset != nil {
		yOff = *s.yOffset
	}
	if xOff < 0 || yOff < 0 || xOff+w > s.columns() || yOff+h > s.height {
		return errors.Kindf(ErrOutOfBounds, `image %dx%d at (%d,%d) on %dx%d surface`, w, h, xOff, yOff, s.columns(), s.height)
	}
	s.xEff, s.yEff = xOff, yOff

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.put(s.Index(x, y), rgb(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return nil
}

// BlitFile decodes the bitmap at path and blits it.
func (s *Surface) BlitFile(path string) error {
	img, err := DecodeFile(path)
	if err != nil {
		return err
	}
	return s.BlitImage(img)
}

// DecodeFile reads an uncompressed bitmap.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Kind(ErrImageDecode, err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return nil, errors.Kind(ErrImageDecode, errors.Errorf(`%s: %w`, path, err))
	}
	return img, nil
}

// Draw sets every pixel of shape using the same addressing as BlitImage.
// The shape is checked as a whole first so it is applied entirely or not
// at all.
func (s *Surface) Draw(shape Shape) error {
	for _, px := range shape.Pixels {
		if !s.inBounds(px.X, px.Y) {
			return errors.Kindf(ErrOutOfBounds, `pixel (%d,%d) with offset (%d,%d)`, px.X, px.Y, s.xEff, s.yEff)
		}
	}
	for _, px := range shape.Pixels {
		s.put(s.Index(px.X, px.Y), px.Color)
	}
	return nil
}

func rgb(c color.Color) Color {
	// non-premultiplied, the device has no alpha channel to blend against
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}
