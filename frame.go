package svstim

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is a single RGB sample with 8 bits per channel
type Pixel struct {
	R, G, B uint8
}

// Frame is a decoded image held as RGB pixels in row-major order, pixel 0
// being the top-left corner of the image
type Frame struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewFrame returns a black frame of the given dimensions
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// FrameFromRGB builds a Frame from packed RGB bytes as produced by an
// OpenCV Mat of type CV_8UC3 after BGR to RGB conversion
func FrameFromRGB(width, height int, data []byte) (*Frame, error) {

	if len(data) != width*height*3 {
		return nil, fmt.Errorf("expected %d bytes of RGB data for %dx%d, got %d",
			width*height*3, width, height, len(data))
	}

	f := NewFrame(width, height)

	for i := range f.Pix {
		f.Pix[i] = Pixel{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
	}

	return f, nil
}

// FrameFromImage copies img into a Frame, discarding alpha.  Colors are
// un-premultiplied first so a translucent pixel keeps its stored RGB value.
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			f.Pix[i] = Pixel{R: c.R, G: c.G, B: c.B}
			i++
		}
	}

	return f
}

// At returns the pixel at column x, row y
func (f *Frame) At(x, y int) Pixel {
	return f.Pix[y*f.Width+x]
}

// Set stores the pixel at column x, row y
func (f *Frame) Set(x, y int, p Pixel) {
	f.Pix[y*f.Width+x] = p
}

// RGBBytes returns the frame as packed RGB bytes
func (f *Frame) RGBBytes() []byte {
	out := make([]byte, 0, len(f.Pix)*3)

	for _, p := range f.Pix {
		out = append(out, p.R, p.G, p.B)
	}

	return out
}

// Image returns the frame as an opaque *image.RGBA
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))

	for i, p := range f.Pix {
		img.Pix[i*4] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = 0xff
	}

	return img
}
