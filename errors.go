package svstim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by all Config validation failures
var ErrInvalidConfig = errors.New("invalid config")

// DecodeError is returned when the source image is missing, unreadable or
// not in a format the Loader can decode
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IOError is returned when the stimulus file could not be created, written
// or moved into place
type IOError struct {
	// Op is the file operation that failed, eg: create, write, rename
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("error on %s of %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
