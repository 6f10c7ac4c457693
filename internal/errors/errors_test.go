package errors_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
)

type thing struct{}

func (t *thing) do() error {
	if t == nil {
		return errors.NilReceiver()
	}
	return nil
}

func TestNilReceiver(t *testing.T) {
	var th *thing
	err := th.do()
	require.Error(t, err)
	assert.True(t, errors.Is(err, consts.ErrNilReceiver), `%v`, err)
	assert.Contains(t, err.Error(), `do()`)
	assert.NoError(t, (&thing{}).do())
}

func TestNilParam(t *testing.T) {
	assert.True(t, errors.Is(errors.NilParam(), consts.ErrNilParam))
	assert.True(t, errors.Is(errors.NilParam(1, nil), consts.ErrNilParam))
	assert.NoError(t, errors.NilParam(1, `a`))
}

func TestKind(t *testing.T) {
	err := errors.Kind(consts.ErrModeSwitch, io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(err, consts.ErrModeSwitch))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	err = errors.Kindf(consts.ErrOutOfBounds, `pixel (%d,%d)`, 3, 4)
	assert.True(t, errors.Is(err, consts.ErrOutOfBounds))
	assert.Contains(t, err.Error(), `pixel (3,4)`)

	assert.Nil(t, errors.New(nil))
	assert.NoError(t, errors.Join(nil, nil))
}
