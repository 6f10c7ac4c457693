package render

type State int

const (
	StateIdle State = iota
	StateShowing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return `Idle`
	case StateShowing:
		return `Showing`
	}
	return `unknown`
}

// SubState is the feedback state while the splash is showing.
type SubState int

const (
	SubNone SubState = iota
	SubValidating
	SubTyping
	SubCleared
	SubSucceeded
	SubFailed
)

func (s SubState) String() string {
	switch s {
	case SubNone:
		return `None`
	case SubValidating:
		return `Validating`
	case SubTyping:
		return `Typing`
	case SubCleared:
		return `Cleared`
	case SubSucceeded:
		return `Succeeded`
	case SubFailed:
		return `Failed`
	}
	return `unknown`
}
