package render

import (
	"errors"
	"fmt"
	"github.com/swdee/go-svstim"
	"gocv.io/x/gocv"
	"image"
)

// ErrWriteFailed is returned when OpenCV could not encode the preview file
var ErrWriteFailed = errors.New("preview image could not be written")

// PreviewMat converts the frame to a BGR Mat enlarged by scale using
// nearest neighbour so each stimulus pixel stays a solid block.  The
// caller must Close the returned Mat.
func PreviewMat(f *svstim.Frame, scale int) (gocv.Mat, error) {

	if scale < 1 {
		scale = 1
	}

	rgbImg, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.RGBBytes())

	if err != nil {
		return gocv.NewMat(), fmt.Errorf("error creating mat from frame: %w", err)
	}

	defer rgbImg.Close()

	bgrImg := gocv.NewMat()
	gocv.CvtColor(rgbImg, &bgrImg, gocv.ColorRGBToBGR)

	if scale == 1 {
		return bgrImg, nil
	}

	defer bgrImg.Close()

	bigImg := gocv.NewMat()
	gocv.Resize(bgrImg, &bigImg, image.Pt(f.Width*scale, f.Height*scale), 0, 0,
		gocv.InterpolationNearestNeighbor)

	return bigImg, nil
}

// SavePreview writes the resized frame to path, the format being chosen
// by OpenCV from the file extension
func SavePreview(f *svstim.Frame, path string, scale int) error {

	img, err := PreviewMat(f, scale)

	if err != nil {
		return err
	}

	defer img.Close()

	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("%w: %s", ErrWriteFailed, path)
	}

	return nil
}
