package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// basePointSize is the glyph size at FontScale 1.0.
const basePointSize = 32.0

// FaceRenderer implements TextRenderer on top of an opentype face from the
// bundled Go fonts. Stroke thickness is emulated by stamping the glyph pass
// over a disc of pixel offsets with radius (thickness-1)/2, which widens the
// outline pass beyond the fill pass the same way a thicker pen would.
type FaceRenderer struct {
	face font.Face
}

// NewFaceRenderer builds a renderer at the given scale factor. The bold
// variant is used for scales of 2 and up, where thin strokes start to look
// washed out after encoding.
func NewFaceRenderer(scale float64) (*FaceRenderer, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("overlay: invalid font scale %f", scale)
	}

	src := goregular.TTF
	if scale >= 2 {
		src = gobold.TTF
	}

	parsed, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("overlay: parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    basePointSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: build face: %w", err)
	}

	return &FaceRenderer{face: face}, nil
}

func (r *FaceRenderer) Measure(line string) (int, int) {
	width := font.MeasureString(r.face, line).Ceil()
	metrics := r.face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	return width, height
}

func (r *FaceRenderer) Draw(dst *image.RGBA, line string, x, y int, col color.Color, thickness int) {
	radius := (thickness - 1) / 2
	if radius < 0 {
		radius = 0
	}

	src := image.NewUniform(col)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			d := font.Drawer{
				Dst:  dst,
				Src:  src,
				Face: r.face,
				Dot:  fixed.P(x+dx, y+dy),
			}
			d.DrawString(line)
		}
	}
}
