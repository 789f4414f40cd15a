package svstim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Loader decodes an image file, converts it to RGB and resizes it to the
// requested dimensions
type Loader interface {
	Load(path string, width, height int) (*Frame, error)
}

// Encoder writes Frames as stimulus lines
type Encoder struct {
	signal string
	delay  string
}

// NewEncoder returns an Encoder using the given signal name and delay
// literal
func NewEncoder(signal, delay string) *Encoder {
	return &Encoder{
		signal: signal,
		delay:  delay,
	}
}

// Encode writes one newline terminated line per pixel of f to w in
// row-major order and returns the number of lines written
func (e *Encoder) Encode(w io.Writer, f *Frame) (int, error) {

	if len(f.Pix) != f.Width*f.Height {
		return 0, fmt.Errorf("frame holds %d pixels, expected %dx%d",
			len(f.Pix), f.Width, f.Height)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	for i, p := range f.Pix {
		buf = AppendLine(buf[:0], p, e.signal, e.delay)
		buf = append(buf, '\n')

		if _, err := bw.Write(buf); err != nil {
			return i, err
		}
	}

	if err := bw.Flush(); err != nil {
		return len(f.Pix), err
	}

	return len(f.Pix), nil
}

// Result summarises a completed conversion
type Result struct {
	OutputPath string
	Lines      int
	Frame      *Frame
}

// Convert runs the full pipeline described by cfg: the source image is
// loaded through l and its pixels are written to cfg.OutputPath.  The
// image is fully decoded before the output is touched, and the output is
// only replaced once every line has been written, so a failure leaves
// any existing file as it was.
func Convert(cfg Config, l Loader) (*Result, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	frame, err := l.Load(cfg.InputPath, cfg.Width, cfg.Height)

	if err != nil {
		var decErr *DecodeError
		if errors.As(err, &decErr) {
			return nil, err
		}
		return nil, &DecodeError{Path: cfg.InputPath, Err: err}
	}

	if frame.Width != cfg.Width || frame.Height != cfg.Height {
		return nil, &DecodeError{
			Path: cfg.InputPath,
			Err: fmt.Errorf("loader returned %dx%d frame, expected %dx%d",
				frame.Width, frame.Height, cfg.Width, cfg.Height),
		}
	}

	enc := NewEncoder(cfg.Signal, cfg.Delay)
	var lines int

	err = WriteFileAtomic(cfg.OutputPath, func(w io.Writer) error {
		var err error
		lines, err = enc.Encode(w, frame)
		return err
	})

	if err != nil {
		return nil, err
	}

	return &Result{
		OutputPath: cfg.OutputPath,
		Lines:      lines,
		Frame:      frame,
	}, nil
}

// WriteFileAtomic creates a temporary file next to path, passes it to fn
// and renames it over path once fn, sync and close have all succeeded.
// On failure the temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, fn func(w io.Writer) error) (err error) {

	dir, base := filepath.Split(path)

	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")

	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	// remove the temporary file on any failure below
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if err = tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: path, Err: err}
	}

	if err = tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}

	// CreateTemp uses 0600, give the stimulus file normal permissions
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return &IOError{Op: "chmod", Path: path, Err: err}
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	return nil
}
