package errors

import (
	"errors"
	"fmt"
	"runtime"

	errorsGo "github.com/go-errors/errors"

	"github.com/srlehn/fbsplash/internal/consts"
)

func Is(err, target error) bool { return errorsGo.Is(err, target) }

func Join(errs ...error) error {
	// not implemented by github.com/go-errors/errors
	if err := errors.Join(errs...); err != nil {
		return errorsGo.Wrap(err, 1)
	}
	return nil
}

func New(obj any) *Error {
	// return nil for nil unlike github.com/go-errors/errors.New()
	if obj == nil {
		return nil
	}
	if err, ok := obj.(error); ok && err == nil {
		return nil
	}
	// don't overwrite origin of failure
	if errGo, okErrGo := obj.(*errorsGo.Error); okErrGo {
		return errGo
	}
	return errorsGo.Wrap(obj, 1)
}

// Kind tags err with the sentinel kind so that Is(err, kind) holds,
// the stack is recorded at the caller.
func Kind(kind, err error) *Error {
	if kind == nil {
		return New(err)
	}
	if err == nil {
		return errorsGo.Wrap(kind, 1)
	}
	return errorsGo.Wrap(fmt.Errorf("%w: %w", kind, err), 1)
}

// Kindf is Kind with a formatted cause.
func Kindf(kind error, format string, a ...any) *Error {
	return errorsGo.Wrap(fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, a...)), 1)
}

// remaining "github.com/go-errors/errors" symbols

type Error = errorsGo.Error

func Errorf(format string, a ...interface{}) *Error { return errorsGo.Errorf(format, a...) }

// NilReceiver returns an error matching consts.ErrNilReceiver with the
// function name if any of the arguments are nil or none are given.
func NilReceiver(args ...any) error {
	return errNilTester(consts.ErrNilReceiver, 3, args...)
}

// NilParam returns an error matching consts.ErrNilParam with the function
// name if any of the arguments are nil or none are given.
func NilParam(args ...any) error {
	return errNilTester(consts.ErrNilParam, 3, args...)
}

func errNilTester(kind error, skip int, args ...any) error {
	if len(args) == 0 {
		return errKind(kind, skip)
	}
	for i := range args {
		if args[i] == nil {
			return errKind(kind, skip)
		}
	}
	return nil
}

func errKind(kind error, skip int) error {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return errorsGo.Wrap(kind, skip)
	}
	return errorsGo.Wrap(fmt.Errorf(`%w: %s()`, kind, runtime.FuncForPC(pc).Name()), skip)
}
