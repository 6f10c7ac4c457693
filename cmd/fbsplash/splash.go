package main

import (
	"io"
	"log/slog"

	"github.com/srlehn/fbsplash/internal/errors"
	"github.com/srlehn/fbsplash/internal/logx"
	"github.com/srlehn/fbsplash/key"
	"github.com/srlehn/fbsplash/passwd"
	"github.com/srlehn/fbsplash/render"
)

func splash(e *env) error {
	if e == nil || e.tty == nil {
		return errors.NilParam()
	}
	return prompt(e.sender, e.tty, e.cfg.WriteTo, e)
}

// prompt shows the splash, reads one password from input and hands it to
// passwd.Write once the loop confirmed Success. Stop is always sent. If the
// loop has ended, reading stops at the next key and nothing is written.
func prompt(snd *render.Sender, input io.Reader, writeTo string, prov logx.LoggerProvider) (err error) {
	if snd == nil || input == nil {
		return errors.NilParam()
	}
	defer func() {
		if errStop := snd.Send(render.Stop{}); errStop != nil && !errors.Is(err, render.ErrClosed) {
			err = errors.Join(err, errStop)
		}
	}()
	if err := snd.Send(render.Start{}); err != nil {
		return err
	}
	pass, err := passwd.Read(input, func(k key.Key) error {
		return snd.Send(render.KeyPressed{Key: k})
	})
	if err == nil {
		pass, err = passwd.Validate(pass)
	}
	if err != nil {
		if !errors.Is(err, render.ErrClosed) {
			logx.IsErr(snd.Send(render.Fail{}), prov, slog.LevelWarn)
		}
		return err
	}
	if err := snd.Send(render.Success{}); err != nil {
		return err
	}
	if err := snd.Flush(); err != nil {
		return err
	}
	return passwd.Write(writeTo, pass)
}
