package render

import (
	"github.com/srlehn/fbsplash/key"
)

// Command is one of Start, Stop, KeyPressed, Success or Fail.
// The set is closed, other packages cannot add variants.
type Command interface {
	command()
	String() string
}

var (
	_ Command = Start{}
	_ Command = Stop{}
	_ Command = KeyPressed{}
	_ Command = Success{}
	_ Command = Fail{}
)

// Start renders the splash image and switches the console to graphics.
type Start struct{}

// Stop switches the console back to text.
type Stop struct{}

// KeyPressed forwards a key typed at the password prompt.
type KeyPressed struct{ Key key.Key }

// Success reports an accepted password.
type Success struct{}

// Fail reports a rejected or aborted password entry.
type Fail struct{}

func (Start) command()      {}
func (Stop) command()       {}
func (KeyPressed) command() {}
func (Success) command()    {}
func (Fail) command()       {}

func (Start) String() string        { return `Start` }
func (Stop) String() string         { return `Stop` }
func (c KeyPressed) String() string { return `KeyPressed(` + c.Key.String() + `)` }
func (Success) String() string      { return `Success` }
func (Fail) String() string         { return `Fail` }

// flush is queued by Sender.Flush and acknowledged by the loop once every
// command before it was applied.
type flush struct{ ack chan error }

func (flush) command()       {}
func (flush) String() string { return `Flush` }
