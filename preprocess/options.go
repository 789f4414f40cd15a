package preprocess

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Resample selects the interpolation used when resizing
type Resample int

const (
	Nearest  Resample = 1
	Bilinear Resample = 2
	Bicubic  Resample = 3
	Area     Resample = 4
	Lanczos  Resample = 5
)

var resampleNames = map[Resample]string{
	Nearest:  "nearest",
	Bilinear: "bilinear",
	Bicubic:  "bicubic",
	Area:     "area",
	Lanczos:  "lanczos",
}

func (r Resample) String() string {
	if name, ok := resampleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Resample(%d)", int(r))
}

// ParseResample returns the Resample for the given name
func ParseResample(name string) (Resample, error) {
	for r, n := range resampleNames {
		if strings.EqualFold(n, name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resample method %q", name)
}

// Fit selects how the source aspect ratio is mapped onto the destination
type Fit int

const (
	// Stretch scales each axis independently to fill the destination
	Stretch Fit = 1
	// Letterbox keeps the source aspect ratio and pads the remainder
	Letterbox Fit = 2
)

func (f Fit) String() string {
	switch f {
	case Stretch:
		return "stretch"
	case Letterbox:
		return "letterbox"
	}
	return fmt.Sprintf("Fit(%d)", int(f))
}

// ParseFit returns the Fit for the given name
func ParseFit(name string) (Fit, error) {
	switch strings.ToLower(name) {
	case "stretch":
		return Stretch, nil
	case "letterbox":
		return Letterbox, nil
	}
	return 0, fmt.Errorf("unknown fit %q", name)
}

// Options defines how a Loader resizes the decoded image
type Options struct {
	Resample Resample
	Fit      Fit
	// PadColor fills the letterbox border
	PadColor color.RGBA
}

// DefaultOptions returns bicubic stretch resizing with a black pad color
func DefaultOptions() Options {
	return Options{
		Resample: Bicubic,
		Fit:      Stretch,
		PadColor: color.RGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// ParseColor parses an "r,g,b" triple of 0-255 values
func ParseColor(s string) (color.RGBA, error) {

	parts := strings.Split(s, ",")

	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color %q must be of the form r,g,b", s)
	}

	var vals [3]uint8

	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)

		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}

		vals[i] = uint8(v)
	}

	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}, nil
}
