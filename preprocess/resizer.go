package preprocess

import (
	"gocv.io/x/gocv"
	"image"
	"image/color"
)

// Resizer defines the struct used for mapping a source image onto the
// destination grid
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the width to scale to
	destWidth int
	// destHeight is the height to scale to
	destHeight int
	// fit is the aspect mode used
	fit Fit
	// tempMat is a Mat used during the letterbox resize process, created
	// on first use
	tempMat *gocv.Mat
	// letterbox parameters used in scaling
	xPad  int
	yPad  int
	scale float32
	// resize dimensions
	resizeW int
	resizeH int
}

// NewResizer returns a resizer used for scaling an image of the source
// dimensions to the destination grid
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int, fit Fit) *Resizer {
	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		fit:        fit,
	}

	// precalculate scaling dimensions
	r.preCalc()

	return r
}

// Close frees memory allocated during resize process
func (r *Resizer) Close() error {
	if r.tempMat == nil {
		return nil
	}
	err := r.tempMat.Close()
	r.tempMat = nil
	return err
}

// preCalc the scaling factors for source and destination
func (r *Resizer) preCalc() {

	r.resizeW = r.destWidth
	r.resizeH = r.destHeight

	scaleW := float32(r.destWidth) / float32(r.srcWidth)
	scaleH := float32(r.destHeight) / float32(r.srcHeight)
	r.scale = scaleH

	if r.fit != Letterbox {
		// each axis scaled independently, no padding
		if scaleW < scaleH {
			r.scale = scaleW
		}
		return
	}

	if scaleW < scaleH {
		r.scale = scaleW
		r.resizeH = int(float32(r.srcHeight) * r.scale)
	} else {
		r.resizeW = int(float32(r.srcWidth) * r.scale)
	}

	// very narrow sources must still cover at least one pixel
	if r.resizeW < 1 {
		r.resizeW = 1
	}
	if r.resizeH < 1 {
		r.resizeH = 1
	}

	r.yPad = (r.destHeight - r.resizeH) / 2 // padding height / 2
	r.xPad = (r.destWidth - r.resizeW) / 2  // padding width / 2
}

// Rect returns the area of the destination the source is scaled into
func (r *Resizer) Rect() image.Rectangle {
	return image.Rect(r.xPad, r.yPad, r.xPad+r.resizeW, r.yPad+r.resizeH)
}

// Bounds returns the full destination area
func (r *Resizer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.destWidth, r.destHeight)
}

// ResizeMat scales src into dest using the given interpolation.  For a
// letterbox fit the border is filled with color.  GoCV passes color to
// OpenCV as a BGR scalar so src is expected to be a BGR Mat.
func (r *Resizer) ResizeMat(src gocv.Mat, dest *gocv.Mat, interp gocv.InterpolationFlags, color color.RGBA) {

	if r.fit != Letterbox {
		gocv.Resize(src, dest, image.Pt(r.destWidth, r.destHeight), 0, 0, interp)
		return
	}

	if r.tempMat == nil {
		m := gocv.NewMat()
		r.tempMat = &m
	}

	gocv.Resize(src, r.tempMat, image.Pt(r.resizeW, r.resizeH), 0, 0, interp)

	gocv.CopyMakeBorder(*r.tempMat, dest, r.yPad, r.destHeight-r.resizeH-r.yPad,
		r.xPad, r.destWidth-r.resizeW-r.xPad, gocv.BorderConstant, color)
}

// ScaleFactor returns the smaller of the two axis scale factors, which for
// a letterbox fit is the factor applied to both axes
func (r *Resizer) ScaleFactor() float32 {
	return r.scale
}

// XPad returns the x padding used in letterbox resize
func (r *Resizer) XPad() int {
	return r.xPad
}

// YPad returns the y padding used in letterbox resize
func (r *Resizer) YPad() int {
	return r.yPad
}

// SrcWidth returns the width of the source image
func (r *Resizer) SrcWidth() int {
	return r.srcWidth
}

// SrcHeight returns the height of the source image
func (r *Resizer) SrcHeight() int {
	return r.srcHeight
}
