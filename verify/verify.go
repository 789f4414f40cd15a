// Package verify reads stimulus files back into frames so a generated
// file can be checked against the image it was made from.
package verify

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/swdee/go-svstim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"io"
	"os"
)

var (
	// ErrLineCount is returned when the file does not hold one line per pixel
	ErrLineCount = errors.New("unexpected number of stimulus lines")
	// ErrInconsistent is returned when lines use differing signal or delay
	ErrInconsistent = errors.New("inconsistent stimulus lines")
)

// Format is the signal name and delay literal shared by every line
type Format struct {
	Signal string
	Delay  string
}

// Read parses stimulus lines from r into a width x height frame
func Read(r io.Reader, width, height int) (*svstim.Frame, Format, error) {

	f := svstim.NewFrame(width, height)
	var format Format

	scanner := bufio.NewScanner(r)
	n := 0

	for scanner.Scan() {
		pix, signal, delay, err := svstim.ParseLine(scanner.Text())

		if err != nil {
			return nil, format, fmt.Errorf("line %d: %w", n+1, err)
		}

		if n == 0 {
			format = Format{Signal: signal, Delay: delay}
		} else if signal != format.Signal || delay != format.Delay {
			return nil, format, fmt.Errorf("%w: line %d has %q/%q, line 1 has %q/%q",
				ErrInconsistent, n+1, signal, delay, format.Signal, format.Delay)
		}

		if n >= len(f.Pix) {
			return nil, format, fmt.Errorf("%w: more than %d", ErrLineCount, len(f.Pix))
		}

		f.Pix[n] = pix
		n++
	}

	if err := scanner.Err(); err != nil {
		return nil, format, fmt.Errorf("error reading stimulus: %w", err)
	}

	if n != len(f.Pix) {
		return nil, format, fmt.Errorf("%w: got %d, expected %d", ErrLineCount, n, len(f.Pix))
	}

	return f, format, nil
}

// ReadFile parses the stimulus file at path into a width x height frame
func ReadFile(path string, width, height int) (*svstim.Frame, Format, error) {

	file, err := os.Open(path)

	if err != nil {
		return nil, Format{}, fmt.Errorf("error opening file: %w", err)
	}

	defer file.Close()

	return Read(file, width, height)
}

// Mismatch records the first pixel that differs between two frames
type Mismatch struct {
	Index    int
	Expected svstim.Pixel
	Got      svstim.Pixel
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("pixel %d mismatch, expected %v, got %v", m.Index, m.Expected, m.Got)
}

// Compare checks got holds the same pixels as expected, returning a
// *Mismatch for the first differing pixel
func Compare(expected, got *svstim.Frame) error {

	if expected.Width != got.Width || expected.Height != got.Height {
		return fmt.Errorf("frame size mismatch, expected %dx%d, got %dx%d",
			expected.Width, expected.Height, got.Width, got.Height)
	}

	for i := range expected.Pix {
		if expected.Pix[i] != got.Pix[i] {
			return &Mismatch{Index: i, Expected: expected.Pix[i], Got: got.Pix[i]}
		}
	}

	return nil
}

// ChannelStats summarises the values of one color channel
type ChannelStats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (c ChannelStats) String() string {
	return fmt.Sprintf("%-5s mean=%6.2f stddev=%6.2f min=%3.0f max=%3.0f",
		c.Name, c.Mean, c.StdDev, c.Min, c.Max)
}

// Stats returns statistics for the blue, green and red channels, in the
// order they appear in a stimulus word
func Stats(f *svstim.Frame) []ChannelStats {

	if len(f.Pix) == 0 {
		return nil
	}

	blue := make([]float64, len(f.Pix))
	green := make([]float64, len(f.Pix))
	red := make([]float64, len(f.Pix))

	for i, p := range f.Pix {
		blue[i] = float64(p.B)
		green[i] = float64(p.G)
		red[i] = float64(p.R)
	}

	return []ChannelStats{
		channelStats("blue", blue),
		channelStats("green", green),
		channelStats("red", red),
	}
}

func channelStats(name string, vals []float64) ChannelStats {
	mean, std := stat.MeanStdDev(vals, nil)

	return ChannelStats{
		Name:   name,
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
	}
}
