package media

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Fit returns img scaled so its longer edge is at most maxDimension,
// keeping the aspect ratio. Images already within bounds are returned as is.
func Fit(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return img
	}

	nw, nh := FitSize(w, h, maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FitSize computes the bounded dimensions for a w x h image
func FitSize(w, h, maxDimension int) (int, int) {
	if w <= maxDimension && h <= maxDimension {
		return w, h
	}
	if w >= h {
		return maxDimension, max(1, int(math.Round(float64(h)*float64(maxDimension)/float64(w))))
	}
	return max(1, int(math.Round(float64(w)*float64(maxDimension)/float64(h)))), maxDimension
}
