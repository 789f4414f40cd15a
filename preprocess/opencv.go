package preprocess

import (
	"errors"
	"fmt"
	"github.com/swdee/go-svstim"
	"gocv.io/x/gocv"
	"image/color"
	"os"
)

// ErrEmptyImage is returned when OpenCV could not decode the source file
var ErrEmptyImage = errors.New("image could not be decoded")

// OpenCVLoader decodes and resizes images with OpenCV via GoCV
type OpenCVLoader struct {
	opts Options
}

// NewOpenCVLoader returns a Loader backed by OpenCV
func NewOpenCVLoader(opts Options) *OpenCVLoader {
	return &OpenCVLoader{opts: opts}
}

// interpolation maps a Resample to the OpenCV flag
func interpolation(r Resample) (gocv.InterpolationFlags, error) {
	switch r {
	case Nearest:
		return gocv.InterpolationNearestNeighbor, nil
	case Bilinear:
		return gocv.InterpolationLinear, nil
	case Bicubic:
		return gocv.InterpolationCubic, nil
	case Area:
		return gocv.InterpolationArea, nil
	case Lanczos:
		return gocv.InterpolationLanczos4, nil
	}
	return 0, fmt.Errorf("unsupported resample method %s", r)
}

// Load reads the image at path, resizes it to width x height and returns
// it as an RGB Frame
func (o *OpenCVLoader) Load(path string, width, height int) (*svstim.Frame, error) {

	interp, err := interpolation(o.opts.Resample)

	if err != nil {
		return nil, err
	}

	// IMRead gives no reason for failure so check the file is there first
	if _, err := os.Stat(path); err != nil {
		return nil, &svstim.DecodeError{Path: path, Err: err}
	}

	// IMReadColor drops any alpha channel and loads as BGR
	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		return nil, &svstim.DecodeError{Path: path, Err: ErrEmptyImage}
	}

	resizer := NewResizer(img.Cols(), img.Rows(), width, height, o.opts.Fit)
	defer resizer.Close()

	// resize while still in BGR so the pad color lands in the right channels
	resized := gocv.NewMat()
	defer resized.Close()

	pad := color.RGBA{R: o.opts.PadColor.R, G: o.opts.PadColor.G, B: o.opts.PadColor.B, A: 255}
	resizer.ResizeMat(img, &resized, interp, pad)

	rgbImg := gocv.NewMat()
	defer rgbImg.Close()

	gocv.CvtColor(resized, &rgbImg, gocv.ColorBGRToRGB)

	if rgbImg.Cols() != width || rgbImg.Rows() != height || rgbImg.Channels() != 3 {
		return nil, fmt.Errorf("resize produced %dx%dx%d, expected %dx%dx3",
			rgbImg.Cols(), rgbImg.Rows(), rgbImg.Channels(), width, height)
	}

	return svstim.FrameFromRGB(width, height, rgbImg.ToBytes())
}
