package analyzer

import (
	"image"
	"image/color"
)

// DarkThreshold is the mean luma below which footage counts as dark.
// Mid-gray minus a margin: captions over slightly dim footage still read
// better with the light-on-dark style.
const DarkThreshold = 112.0

// CaptionBand returns the middle third of the frame, the region where
// centered captions are painted.
func CaptionBand(bounds image.Rectangle) image.Rectangle {
	third := bounds.Dy() / 3
	return image.Rect(bounds.Min.X, bounds.Min.Y+third, bounds.Max.X, bounds.Max.Y-third)
}

// MeanLuma computes the average grayscale value of the region. The region is
// clipped to the image bounds; an empty intersection yields 0.
func MeanLuma(img image.Image, region image.Rectangle) float64 {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return 0
	}

	// Sample a coarse grid instead of every pixel; the probe runs once per
	// video and a 1-in-4 stride is accurate enough for a binary decision.
	const stride = 4
	sum := 0.0
	count := 0
	for y := region.Min.Y; y < region.Max.Y; y += stride {
		for x := region.Min.X; x < region.Max.X; x += stride {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			sum += float64(g.Y)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// IsDark reports whether the caption band of the frame is dark footage.
func IsDark(img image.Image) bool {
	return MeanLuma(img, CaptionBand(img.Bounds())) < DarkThreshold
}
