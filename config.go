package svstim

import (
	"fmt"
	"strings"
)

const (
	// DefaultWidth and DefaultHeight are the input dimensions of the image
	// pipeline the stimulus is generated for
	DefaultWidth  = 96
	DefaultHeight = 96
)

// Config defines the source image, destination stimulus file and the
// format of the lines written to it
type Config struct {
	// InputPath is the image to convert
	InputPath string
	// OutputPath is the stimulus file to create or replace
	OutputPath string
	// Signal is the testbench signal assigned on each line
	Signal string
	// Delay is the literal placed after each assignment, eg: #10000
	Delay string
	// Width and Height the image is resized to before encoding
	Width  int
	Height int
}

// DefaultConfig returns a Config with the default line format and
// dimensions.  Input and output paths must still be set.
func DefaultConfig() Config {
	return Config{
		Signal: DefaultSignal,
		Delay:  DefaultDelay,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Validate checks the Config is usable before any file is touched
func (c Config) Validate() error {

	if c.InputPath == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalidConfig)
	}

	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	}

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfig,
			c.Width, c.Height)
	}

	if err := checkToken("signal", c.Signal); err != nil {
		return err
	}

	return checkToken("delay", c.Delay)
}

// checkToken rejects values that would break the line structure
func checkToken(name, val string) error {

	if strings.TrimSpace(val) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
	}

	if strings.ContainsAny(val, ";\r\n") {
		return fmt.Errorf("%w: %s %q must not contain ';' or line breaks",
			ErrInvalidConfig, name, val)
	}

	if strings.Contains(val, " <= ") {
		return fmt.Errorf("%w: %s %q must not contain an assignment",
			ErrInvalidConfig, name, val)
	}

	return nil
}
