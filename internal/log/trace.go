package log

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Trace returns the full diagnostic text of err: its message followed by
// the stack recorded by go-errors, if any wrapped error carries one.
// It returns "" for a nil error.
func Trace(err error) string {
	if err == nil {
		return ""
	}
	stack := stackOf(err)
	if stack == "" {
		return fmt.Sprintf("%+v", err)
	}
	return err.Error() + "\n" + stack
}

// stackOf returns the go-errors stack carried by err, or "".
func stackOf(err error) string {
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		return string(ge.Stack())
	}
	return ""
}
