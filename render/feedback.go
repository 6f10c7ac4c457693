package render

import (
	"github.com/srlehn/fbsplash/surface"
)

// Feedback draws the visual response to the password prompt while the
// splash is showing. A handler may mutate the surface and returns true to
// have it presented again.
type Feedback interface {
	Validating(s *surface.Surface) (redraw bool, err error)
	Typing(s *surface.Surface) (redraw bool, err error)
	Cleared(s *surface.Surface) (redraw bool, err error)
	Succeeded(s *surface.Surface) (redraw bool, err error)
	Failed(s *surface.Surface) (redraw bool, err error)
}

// NopFeedback leaves the splash untouched in every state.
type NopFeedback struct{}

var _ Feedback = NopFeedback{}

func (NopFeedback) Validating(*surface.Surface) (bool, error) { return false, nil }
func (NopFeedback) Typing(*surface.Surface) (bool, error)     { return false, nil }
func (NopFeedback) Cleared(*surface.Surface) (bool, error)    { return false, nil }
func (NopFeedback) Succeeded(*surface.Surface) (bool, error)  { return false, nil }
func (NopFeedback) Failed(*surface.Surface) (bool, error)     { return false, nil }
