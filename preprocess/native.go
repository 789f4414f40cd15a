package preprocess

import (
	"fmt"
	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
	"github.com/swdee/go-svstim"
	"golang.org/x/image/draw"
	"image"
	"os"

	// decoders available to image.Decode
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// NativeLoader decodes and resizes images in pure Go.  It reads JPEG, PNG,
// GIF, TIFF, BMP and WebP.
type NativeLoader struct {
	opts Options
}

// NewNativeLoader returns a pure Go Loader
func NewNativeLoader(opts Options) *NativeLoader {
	return &NativeLoader{opts: opts}
}

// Load reads the image at path, resizes it to width x height and returns
// it as an RGB Frame
func (n *NativeLoader) Load(path string, width, height int) (*svstim.Frame, error) {

	src, err := Decode(path)

	if err != nil {
		return nil, err
	}

	dst, err := n.Resize(src, width, height)

	if err != nil {
		return nil, err
	}

	return svstim.FrameFromImage(dst), nil
}

// Decode opens and decodes the image file at path and converts it to
// opaque RGB, dropping any alpha channel
func Decode(path string) (*image.RGBA, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, &svstim.DecodeError{Path: path, Err: err}
	}

	defer f.Close()

	img, _, err := image.Decode(f)

	if err != nil {
		return nil, &svstim.DecodeError{Path: path, Err: err}
	}

	return svstim.FrameFromImage(img).Image(), nil
}

// Resize scales src onto a width x height RGBA image according to the
// loader Options
func (n *NativeLoader) Resize(src image.Image, width, height int) (*image.RGBA, error) {

	sb := src.Bounds()

	if sb.Empty() {
		return nil, fmt.Errorf("source image has no pixels")
	}

	resizer := NewResizer(sb.Dx(), sb.Dy(), width, height, n.opts.Fit)
	defer resizer.Close()

	dst := image.NewRGBA(resizer.Bounds())

	if n.opts.Fit == Letterbox {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(n.opts.PadColor), image.Point{}, draw.Src)
	}

	rect := resizer.Rect()

	switch n.opts.Resample {
	case Nearest:
		draw.NearestNeighbor.Scale(dst, rect, src, sb, draw.Src, nil)

	case Bilinear:
		draw.BiLinear.Scale(dst, rect, src, sb, draw.Src, nil)

	case Bicubic:
		draw.CatmullRom.Scale(dst, rect, src, sb, draw.Src, nil)

	case Lanczos:
		scaled := resize.Resize(uint(rect.Dx()), uint(rect.Dy()), src, resize.Lanczos3)
		draw.Draw(dst, rect, scaled, scaled.Bounds().Min, draw.Src)

	case Area:
		g := gift.New(gift.Resize(rect.Dx(), rect.Dy(), gift.BoxResampling))
		scaled := image.NewRGBA(g.Bounds(sb))
		g.Draw(scaled, src)
		draw.Draw(dst, rect, scaled, scaled.Bounds().Min, draw.Src)

	default:
		return nil, fmt.Errorf("unsupported resample method %s", n.opts.Resample)
	}

	return dst, nil
}
