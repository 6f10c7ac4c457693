package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/srlehn/fbsplash/config"
	"github.com/srlehn/fbsplash/internal"
	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
	"github.com/srlehn/fbsplash/internal/exc"
	"github.com/srlehn/fbsplash/internal/logx"
	"github.com/srlehn/fbsplash/passwd"
	"github.com/srlehn/fbsplash/render"
	"github.com/srlehn/fbsplash/wm/framebuffer"
)

const exitInterrupted = 130

// env is everything a run owns. Resources are released by closer in
// reverse order of acquisition.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	closer internal.Closer
	loop   *render.Loop
	sender *render.Sender
	tty    internal.TTY

	shutdownOnce sync.Once
	done         <-chan error
	loopErr      error
}

func (e *env) Logger() *slog.Logger { return e.logger }

// shutdown sends Stop, waits for the loop to restore the console and
// releases everything. Safe to call from several goroutines.
func (e *env) shutdown() error {
	e.shutdownOnce.Do(func() {
		if e.sender != nil {
			_ = e.sender.Send(render.Stop{})
			e.sender.Close()
		}
		if e.done != nil {
			e.loopErr = <-e.done
		}
		if err := e.closer.Close(); err != nil {
			e.loopErr = errors.Join(e.loopErr, err)
		}
	})
	return e.loopErr
}

type action func(e *env) error

func run(fn action) {
	var err error
	if fn == nil {
		err = errors.NilParam()
	}
	e := &env{
		logger: logx.New(nil, false),
		closer: internal.NewCloser(),
	}
	var exitCode int
	defer func() {
		// catch panics to ascertain the console is reset
		if r := recover(); r != nil {
			exitCode = 1
			if !silentFlag {
				if stackFramer, ok := r.(interface{ ErrorStack() string }); ok {
					fmt.Fprintln(os.Stderr, "\n"+stackFramer.ErrorStack())
				} else {
					debug.PrintStack()
				}
			}
		}
		if err := e.shutdown(); err != nil {
			logx.IsErr(err, e, slog.LevelError)
			exitCode = 1
			printErr(err)
		}
		os.Exit(exitCode)
	}()
	if err != nil {
		printErr(err)
		exitCode = 1
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		logx.Warn(`interrupted`, e, `signal`, sig.String())
		if err := e.shutdown(); err != nil {
			printErr(err)
		}
		os.Exit(exitInterrupted)
	}()

	if err = setup(e); err == nil {
		err = fn(e)
	}
	if err != nil {
		logx.IsErr(err, e, slog.LevelError)
		exitCode = 1
		printErr(err)
	}
}

func printErr(err error) {
	if err == nil || silentFlag {
		return
	}
	if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
		fmt.Fprintln(os.Stderr, "\n"+stackFramer.ErrorStack())
	} else {
		fmt.Fprintln(os.Stderr, "\n"+err.Error())
	}
}

// setup reads the settings, opens the log file, the frame buffer and the
// console and starts the render loop.
func setup(e *env) error {
	if len(logFileFlag) > 0 {
		f, err := os.OpenFile(logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.New(err)
		}
		e.closer.AddClosers(f)
		e.logger = logx.New(f, debugFlag).With(`app`, consts.LibraryName)
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	overrideString(&cfg.Device, deviceFlag)
	overrideString(&cfg.Console, consoleFlag)
	overrideString(&cfg.Image, imageFlag)
	overrideString(&cfg.WriteTo, writeFlag)
	overrideString(&cfg.TTYBackend, ttyBackendFlag)
	e.cfg = cfg

	fb, err := framebuffer.Open(cfg.Device, cfg.Console)
	if err != nil {
		return err
	}
	e.closer.AddClosers(fb)
	logx.Info(`frame buffer opened`, e, `device`, fb.Name(), `geometry`, fb.Geometry().String())

	tty, err := passwd.Open(cfg.TTYBackend, cfg.Console)
	if err != nil {
		return err
	}
	e.closer.OnClose(func() error {
		if err := tty.Close(); err != nil {
			// fallback
			if sttyAbs, errLook := exc.LookSystemDirs(`stty`); errLook == nil {
				_ = exec.Command(sttyAbs, `sane`).Run()
			}
			return err
		}
		return nil
	})
	e.tty = tty

	x, y := cfg.Offsets()
	e.loop = render.New(fb, cfg.Image,
		render.WithLogger(e.logger),
		render.WithOffset(x, y),
	)
	e.sender = e.loop.Sender()
	e.done = e.loop.Go()
	return nil
}

func overrideString(dst *string, flag string) {
	if len(flag) > 0 {
		*dst = flag
	}
}
