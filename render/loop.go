// Package render owns the frame buffer for the lifetime of the process and
// applies drawing commands one at a time.
//
// Any number of goroutines send commands through a Sender. A single
// goroutine running Loop.Run dequeues them in FIFO order and runs each to
// completion, so no two drawing operations ever interleave and neither the
// device nor the surface needs a lock.
//
//	Idle --Start--> Showing --Stop--> Idle
//
// While Showing, KeyPressed, Success and Fail invoke the Feedback handler
// of the matching sub-state.
package render

import (
	"image"
	"log/slog"

	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
	"github.com/srlehn/fbsplash/internal/logx"
	"github.com/srlehn/fbsplash/key"
	"github.com/srlehn/fbsplash/surface"
	"github.com/srlehn/fbsplash/wm/framebuffer"
)

var (
	ErrUnexpectedClose = consts.ErrUnexpectedClose
	ErrClosed          = consts.ErrSenderClosed
)

// Device is the display the loop draws on, implemented by
// *framebuffer.Framebuffer.
type Device interface {
	Geometry() framebuffer.Geometry
	SetMode(framebuffer.Mode) error
	Present([]byte) error
}

var _ Device = (*framebuffer.Framebuffer)(nil)

// TransitionHook is called on the loop goroutine after every command.
type TransitionHook func(l *Loop, cmd Command)

type Loop struct {
	dev       Device
	imagePath string
	img       image.Image
	xOffset   *int
	yOffset   *int
	feedback  Feedback
	logger    *slog.Logger
	hook      TransitionHook
	q         *queue

	// owned by the Run goroutine
	state    State
	sub      SubState
	surf     *surface.Surface
	graphics bool
}

var _ logx.LoggerProvider = (*Loop)(nil)

type Option func(*Loop)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithFeedback(fb Feedback) Option {
	return func(l *Loop) {
		if fb != nil {
			l.feedback = fb
		}
	}
}

// WithOffset places the splash explicitly, a nil coordinate is centered.
func WithOffset(x, y *int) Option {
	return func(l *Loop) { l.xOffset, l.yOffset = x, y }
}

// WithImage uses an already decoded image instead of the image path.
func WithImage(img image.Image) Option {
	return func(l *Loop) { l.img = img }
}

func WithTransitionHook(hook TransitionHook) Option {
	return func(l *Loop) { l.hook = hook }
}

// New prepares a loop for dev. Nothing is drawn before Start is received.
func New(dev Device, imagePath string, opts ...Option) *Loop {
	l := &Loop{
		dev:       dev,
		imagePath: imagePath,
		feedback:  NopFeedback{},
		logger:    logx.New(nil, false),
		q:         newQueue(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *Loop) Logger() *slog.Logger { return l.logger }

// Sender returns a handle for producers.
func (l *Loop) Sender() *Sender { return &Sender{q: l.q} }

// State, SubState and Surface may only be read on the loop goroutine,
// e.g. from a TransitionHook, or after Run returned.
func (l *Loop) State() State              { return l.state }
func (l *Loop) SubState() SubState        { return l.sub }
func (l *Loop) Surface() *surface.Surface { return l.surf }
func (l *Loop) Graphics() bool            { return l.graphics }

// Go runs the loop on its own goroutine. The channel receives the result
// of Run.
func (l *Loop) Go() <-chan error {
	done := make(chan error, 1)
	go func() { done <- l.Run() }()
	return done
}

// Run applies commands until the sender is closed. Device failures end the
// loop. On every return path the console is switched back to text mode if
// the loop had switched it to graphics.
func (l *Loop) Run() (err error) {
	if l == nil || l.dev == nil {
		return errors.NilReceiver()
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, errors.Errorf(`render: panic: %v`, r))
		}
		l.q.close()
		if l.graphics {
			if errText := l.dev.SetMode(framebuffer.ModeText); errText != nil {
				logx.IsErr(errText, l, slog.LevelError)
				err = errors.Join(err, errText)
			} else {
				l.graphics = false
			}
		}
		l.state, l.sub, l.surf = StateIdle, SubNone, nil
		for _, c := range l.q.drain() {
			if f, ok := c.(flush); ok {
				f.ack <- errors.Kind(ErrClosed, err)
			}
		}
	}()

	for {
		cmd, ok := l.q.pop()
		if !ok {
			if l.state == StateShowing {
				logx.Error(`command channel closed without Stop`, l)
				return errors.New(ErrUnexpectedClose)
			}
			return nil
		}
		if f, ok := cmd.(flush); ok {
			f.ack <- nil
			continue
		}
		if err := l.apply(cmd); err != nil {
			logx.IsErr(err, l, slog.LevelError, `command`, cmd.String(), `state`, l.state.String())
			return err
		}
		if l.hook != nil {
			l.hook(l, cmd)
		}
	}
}

func (l *Loop) apply(cmd Command) error {
	switch c := cmd.(type) {
	case Start:
		return l.start()
	case Stop:
		return l.stop()
	case KeyPressed:
		return l.keyPressed(c.Key)
	case Success:
		return l.showing(cmd, SubSucceeded, l.feedback.Succeeded)
	case Fail:
		return l.showing(cmd, SubFailed, l.feedback.Failed)
	}
	return errors.Errorf(`render: unknown command %T`, cmd)
}

func (l *Loop) start() error {
	if l.state == StateShowing {
		logx.Warn(`ignoring Start, splash already showing`, l)
		return nil
	}
	return logx.TimeIt(func() error {
		g := l.dev.Geometry()
		surf, err := surface.New(g.Width, g.Height, g.Stride, g.BytesPerPixel, surface.WithOffset(l.xOffset, l.yOffset))
		if err != nil {
			return err
		}
		if l.img != nil {
			err = surf.BlitImage(l.img)
		} else {
			err = surf.BlitFile(l.imagePath)
		}
		if err != nil {
			return err
		}
		if err := l.dev.SetMode(framebuffer.ModeGraphics); err != nil {
			return err
		}
		l.graphics = true
		if err := l.dev.Present(surf.Bytes()); err != nil {
			return err
		}
		x, y := surf.Offset()
		logx.Debug(`splash shown`, l, `geometry`, g.String(), `x`, x, `y`, y)
		l.surf, l.state, l.sub = surf, StateShowing, SubNone
		return nil
	}, `start`, l)
}

func (l *Loop) stop() error {
	if err := l.dev.SetMode(framebuffer.ModeText); err != nil {
		return err
	}
	l.graphics = false
	l.state, l.sub, l.surf = StateIdle, SubNone, nil
	return nil
}

func (l *Loop) keyPressed(k key.Key) error {
	cmd := KeyPressed{Key: k}
	switch k.Kind {
	case key.Enter:
		return l.showing(cmd, SubValidating, l.feedback.Validating)
	case key.Char:
		return l.showing(cmd, SubTyping, l.feedback.Typing)
	case key.Escape:
		return l.showing(cmd, SubCleared, l.feedback.Cleared)
	}
	if l.state != StateShowing {
		logx.Warn(`ignoring command while idle`, l, `command`, cmd.String())
	}
	return nil
}

// showing runs a feedback handler. Handler errors are logged and the loop
// carries on, a failed Present ends it.
func (l *Loop) showing(cmd Command, sub SubState, handler func(*surface.Surface) (bool, error)) error {
	if l.state != StateShowing {
		logx.Warn(`ignoring command while idle`, l, `command`, cmd.String())
		return nil
	}
	l.sub = sub
	redraw, err := handler(l.surf)
	if err != nil {
		logx.IsErr(err, l, slog.LevelWarn, `command`, cmd.String(), `substate`, sub.String())
		return nil
	}
	if !redraw {
		return nil
	}
	return l.dev.Present(l.surf.Bytes())
}
