package render_test

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/srlehn/fbsplash/internal/errors"
	"github.com/srlehn/fbsplash/key"
	"github.com/srlehn/fbsplash/render"
	"github.com/srlehn/fbsplash/surface"
	"github.com/srlehn/fbsplash/wm/framebuffer"
)

// fakeDevice is only touched by the loop goroutine, tests inspect it after
// Run returned.
type fakeDevice struct {
	geometry     framebuffer.Geometry
	mode         framebuffer.Mode
	modes        []framebuffer.Mode
	presented    [][]byte
	errMode      error
	errPresent   error
	panicPresent bool
}

var _ render.Device = (*fakeDevice)(nil)

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		geometry: framebuffer.Geometry{Width: 200, Height: 600, Stride: 800, BytesPerPixel: 4},
		mode:     framebuffer.ModeText,
	}
}

func (d *fakeDevice) Geometry() framebuffer.Geometry { return d.geometry }

func (d *fakeDevice) SetMode(m framebuffer.Mode) error {
	if d.errMode != nil && m == framebuffer.ModeGraphics {
		return d.errMode
	}
	d.mode = m
	d.modes = append(d.modes, m)
	return nil
}

func (d *fakeDevice) Present(b []byte) error {
	if d.panicPresent {
		panic(`device gone`)
	}
	if d.errPresent != nil {
		return d.errPresent
	}
	if len(b) != d.geometry.Size() {
		return errors.New(framebuffer.ErrSizeMismatch)
	}
	d.presented = append(d.presented, bytes.Clone(b))
	return nil
}

func splash(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xc0, G: 0x80, B: 0x40, A: 0xff})
		}
	}
	return img
}

func run(t *testing.T, l *render.Loop, cmds ...render.Command) error {
	t.Helper()
	done := l.Go()
	snd := l.Sender()
	for _, cmd := range cmds {
		require.NoError(t, snd.Send(cmd))
	}
	require.NoError(t, snd.Close())
	return <-done
}

func TestStartStopScenario(t *testing.T) {
	dev := newFakeDevice()
	var modeAfterStart framebuffer.Mode
	var surfAfterStart []byte
	l := render.New(dev, ``, render.WithImage(splash(100, 100)),
		render.WithTransitionHook(func(l *render.Loop, cmd render.Command) {
			if _, ok := cmd.(render.Start); ok {
				modeAfterStart = dev.mode
				surfAfterStart = bytes.Clone(l.Surface().Bytes())
				assert.Equal(t, render.StateShowing, l.State())
			}
		}))
	require.NoError(t, run(t, l, render.Start{}, render.Stop{}))

	assert.Equal(t, framebuffer.ModeGraphics, modeAfterStart)
	require.Len(t, dev.presented, 1)
	assert.Equal(t, surfAfterStart, dev.presented[0])
	// centered: x = (800/4)/2 - 50, y = 600/2 - 50
	idx := 250*800 + 50*4
	assert.Equal(t, []byte{0x40, 0x80, 0xc0, 0}, dev.presented[0][idx:idx+4])
	assert.Equal(t, []byte{0, 0, 0, 0}, dev.presented[0][idx-4:idx])

	assert.Equal(t, []framebuffer.Mode{framebuffer.ModeGraphics, framebuffer.ModeText}, dev.modes)
	assert.Equal(t, framebuffer.ModeText, dev.mode)
	assert.Equal(t, render.StateIdle, l.State())
	assert.False(t, l.Graphics())
}

func TestStartFromBitmapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), `splash.bmp`)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, splash(10, 10)))
	require.NoError(t, f.Close())

	dev := newFakeDevice()
	x, y := 3, 7
	l := render.New(dev, path, render.WithOffset(&x, &y))
	require.NoError(t, run(t, l, render.Start{}, render.Stop{}))
	require.Len(t, dev.presented, 1)
	idx := 7*800 + 3*4
	assert.Equal(t, []byte{0x40, 0x80, 0xc0}, dev.presented[0][idx:idx+3])
}

// every variant of the command set in state Showing
func TestTransitions(t *testing.T) {
	tests := []struct {
		cmd   render.Command
		state render.State
		sub   render.SubState
	}{
		{render.KeyPressed{Key: key.EnterKey}, render.StateShowing, render.SubValidating},
		{render.KeyPressed{Key: key.CharKey('x')}, render.StateShowing, render.SubTyping},
		{render.KeyPressed{Key: key.EscapeKey}, render.StateShowing, render.SubCleared},
		{render.KeyPressed{Key: key.BackspaceKey}, render.StateShowing, render.SubNone},
		{render.KeyPressed{Key: key.Key{Kind: key.Other, Rune: 0x01}}, render.StateShowing, render.SubNone},
		{render.Success{}, render.StateShowing, render.SubSucceeded},
		{render.Fail{}, render.StateShowing, render.SubFailed},
		{render.Start{}, render.StateShowing, render.SubNone},
		{render.Stop{}, render.StateIdle, render.SubNone},
	}
	for _, tc := range tests {
		t.Run(`state_after_`+tc.cmd.String(), func(t *testing.T) {
			dev := newFakeDevice()
			var states []render.State
			var subs []render.SubState
			l := render.New(dev, ``, render.WithImage(splash(10, 10)),
				render.WithTransitionHook(func(l *render.Loop, cmd render.Command) {
					states = append(states, l.State())
					subs = append(subs, l.SubState())
				}))
			require.NoError(t, run(t, l, render.Start{}, tc.cmd, render.Stop{}))
			require.Len(t, states, 3)
			assert.Equal(t, tc.state, states[1])
			assert.Equal(t, tc.sub, subs[1])
			// a second Start while showing must not draw again
			assert.Len(t, dev.presented, 1)
		})
	}
}

func TestCommandsWhileIdleAreIgnored(t *testing.T) {
	dev := newFakeDevice()
	var states []render.State
	l := render.New(dev, ``, render.WithImage(splash(10, 10)),
		render.WithTransitionHook(func(l *render.Loop, cmd render.Command) {
			states = append(states, l.State())
		}))
	err := run(t, l,
		render.KeyPressed{Key: key.EnterKey},
		render.KeyPressed{Key: key.CharKey('a')},
		render.Success{},
		render.Fail{},
	)
	require.NoError(t, err)
	assert.Equal(t, []render.State{render.StateIdle, render.StateIdle, render.StateIdle, render.StateIdle}, states)
	assert.Empty(t, dev.presented)
	assert.Empty(t, dev.modes)
}

func TestNoOpKeyLeavesSurfaceUntouched(t *testing.T) {
	dev := newFakeDevice()
	var before, after []byte
	l := render.New(dev, ``, render.WithImage(splash(20, 20)),
		render.WithTransitionHook(func(l *render.Loop, cmd render.Command) {
			switch cmd.(type) {
			case render.Start:
				before = bytes.Clone(l.Surface().Bytes())
			case render.KeyPressed:
				after = bytes.Clone(l.Surface().Bytes())
			}
		}))
	require.NoError(t, run(t, l,
		render.Start{},
		render.KeyPressed{Key: key.Key{Kind: key.Other, Rune: '\t'}},
		render.Stop{},
	))
	require.NotNil(t, before)
	assert.True(t, bytes.Equal(before, after))
	assert.Len(t, dev.presented, 1)
	assert.Equal(t, []framebuffer.Mode{framebuffer.ModeGraphics, framebuffer.ModeText}, dev.modes)
}

// counterFeedback paints pixel (n, 0) for the n-th command it handles,
// red 1 for a typed key and red 2 for Fail.
type counterFeedback struct {
	render.NopFeedback
	n int
}

func (c *counterFeedback) mark(s *surface.Surface, r uint8) (bool, error) {
	px := surface.Pixel{Coordinate: surface.Coordinate{X: c.n}, Color: surface.Color{R: r}}
	c.n++
	return true, s.Draw(surface.Shape{Pixels: []surface.Pixel{px}})
}

func (c *counterFeedback) Typing(s *surface.Surface) (bool, error) { return c.mark(s, 1) }
func (c *counterFeedback) Failed(s *surface.Surface) (bool, error) { return c.mark(s, 2) }

func TestOrderingAcrossProducers(t *testing.T) {
	dev := newFakeDevice()
	fb := &counterFeedback{}
	l := render.New(dev, ``, render.WithImage(splash(10, 10)), render.WithFeedback(fb))

	done := l.Go()
	snd := l.Sender()
	require.NoError(t, snd.Send(render.Start{}))

	aSent := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, snd.Send(render.KeyPressed{Key: key.CharKey('a')}))
		close(aSent)
	}()
	go func() {
		defer wg.Done()
		<-aSent
		assert.NoError(t, snd.Send(render.Fail{}))
	}()
	wg.Wait()
	require.NoError(t, snd.Send(render.Stop{}))
	require.NoError(t, snd.Close())
	require.NoError(t, <-done)

	assert.Equal(t, 2, fb.n)
	// Start plus one redraw per command
	require.Len(t, dev.presented, 3)
	x0, y0 := surface.CenterOffset(800, 600, 4, 10, 10)
	idxA := y0*800 + x0*4
	idxB := y0*800 + (x0+1)*4
	assert.Equal(t, byte(1), dev.presented[1][idxA+2])
	assert.Equal(t, byte(0xc0), dev.presented[1][idxB+2])
	assert.Equal(t, byte(1), dev.presented[2][idxA+2])
	assert.Equal(t, byte(2), dev.presented[2][idxB+2])
}

func TestManyProducersKeepPerProducerOrder(t *testing.T) {
	const producers, perProducer = 4, 50
	dev := newFakeDevice()
	var seen []rune
	l := render.New(dev, ``, render.WithImage(splash(10, 10)),
		render.WithTransitionHook(func(l *render.Loop, cmd render.Command) {
			if kp, ok := cmd.(render.KeyPressed); ok {
				seen = append(seen, kp.Key.Rune)
			}
		}))
	done := l.Go()
	snd := l.Sender()
	require.NoError(t, snd.Send(render.Start{}))
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, snd.Send(render.KeyPressed{Key: key.CharKey(rune(p*1000 + i))}))
			}
		}(p)
	}
	wg.Wait()
	require.NoError(t, snd.Send(render.Stop{}))
	require.NoError(t, snd.Close())
	require.NoError(t, <-done)

	require.Len(t, seen, producers*perProducer)
	next := make([]int, producers)
	for _, r := range seen {
		p, i := int(r)/1000, int(r)%1000
		require.Equal(t, next[p], i, `producer %d out of order`, p)
		next[p]++
	}
}

func TestFatalPresentRestoresText(t *testing.T) {
	dev := newFakeDevice()
	errBroken := errors.New(`broken`)
	dev.errPresent = errBroken
	l := render.New(dev, ``, render.WithImage(splash(10, 10)))
	err := run(t, l, render.Start{})
	assert.True(t, errors.Is(err, errBroken), `%v`, err)
	assert.Equal(t, []framebuffer.Mode{framebuffer.ModeGraphics, framebuffer.ModeText}, dev.modes)
	assert.Equal(t, framebuffer.ModeText, dev.mode)
	assert.False(t, l.Graphics())

	// the loop is gone, producers learn about it
	err = l.Sender().Send(render.Stop{})
	assert.True(t, errors.Is(err, render.ErrClosed), `%v`, err)
}

func TestPanicInCommandRestoresText(t *testing.T) {
	dev := newFakeDevice()
	dev.panicPresent = true
	l := render.New(dev, ``, render.WithImage(splash(10, 10)))
	err := run(t, l, render.Start{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `device gone`)
	assert.Equal(t, []framebuffer.Mode{framebuffer.ModeGraphics, framebuffer.ModeText}, dev.modes)
}

func TestModeSwitchFailureIsFatal(t *testing.T) {
	dev := newFakeDevice()
	dev.errMode = errors.New(framebuffer.ErrModeSwitch)
	l := render.New(dev, ``, render.WithImage(splash(10, 10)))
	err := run(t, l, render.Start{})
	assert.True(t, errors.Is(err, framebuffer.ErrModeSwitch), `%v`, err)
	assert.Empty(t, dev.modes)
	assert.Empty(t, dev.presented)
}

func TestImageOutOfBoundsIsFatal(t *testing.T) {
	dev := newFakeDevice()
	l := render.New(dev, ``, render.WithImage(splash(201, 10)))
	err := run(t, l, render.Start{})
	assert.True(t, errors.Is(err, surface.ErrOutOfBounds), `%v`, err)
	assert.Empty(t, dev.modes)
}

func TestMissingImageIsFatal(t *testing.T) {
	dev := newFakeDevice()
	l := render.New(dev, filepath.Join(t.TempDir(), `missing.bmp`))
	err := run(t, l, render.Start{})
	assert.True(t, errors.Is(err, surface.ErrImageDecode), `%v`, err)
	assert.Empty(t, dev.modes)
}

func TestCloseWithoutStop(t *testing.T) {
	dev := newFakeDevice()
	l := render.New(dev, ``, render.WithImage(splash(10, 10)))
	err := run(t, l, render.Start{})
	assert.True(t, errors.Is(err, render.ErrUnexpectedClose), `%v`, err)
	assert.Equal(t, framebuffer.ModeText, dev.mode)

	// closing while idle is a regular shutdown
	l = render.New(newFakeDevice(), ``)
	assert.NoError(t, run(t, l))
}

func TestFeedbackErrorIsNotFatal(t *testing.T) {
	dev := newFakeDevice()
	l := render.New(dev, ``, render.WithImage(splash(10, 10)), render.WithFeedback(outOfBoundsFeedback{}))
	require.NoError(t, run(t, l,
		render.Start{},
		render.Fail{},
		render.KeyPressed{Key: key.EnterKey},
		render.Stop{},
	))
	assert.Len(t, dev.presented, 1)
	assert.Equal(t, []framebuffer.Mode{framebuffer.ModeGraphics, framebuffer.ModeText}, dev.modes)
}

type outOfBoundsFeedback struct{ render.NopFeedback }

func (outOfBoundsFeedback) Failed(s *surface.Surface) (bool, error) {
	return true, s.Draw(surface.Rect{Max: surface.Coordinate{X: 1000, Y: 1}}.Shape())
}

func TestSenderRejectsNil(t *testing.T) {
	l := render.New(newFakeDevice(), ``)
	assert.Error(t, l.Sender().Send(nil))
	var snd *render.Sender
	assert.Error(t, snd.Send(render.Start{}))
}

func TestFlushWaitsForApply(t *testing.T) {
	dev := newFakeDevice()
	l := render.New(dev, ``, render.WithImage(splash(10, 10)))
	done := l.Go()
	snd := l.Sender()
	require.NoError(t, snd.Send(render.Start{}))
	require.NoError(t, snd.Flush())
	// the loop is parked in its queue, Start is fully applied
	assert.Len(t, dev.presented, 1)
	assert.Equal(t, []framebuffer.Mode{framebuffer.ModeGraphics}, dev.modes)

	require.NoError(t, snd.Send(render.Stop{}))
	require.NoError(t, snd.Flush())
	require.NoError(t, snd.Close())
	require.NoError(t, <-done)
	assert.True(t, errors.Is(snd.Flush(), render.ErrClosed))
}
