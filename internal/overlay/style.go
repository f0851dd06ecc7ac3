package overlay

import "image/color"

// Style describes how caption text is painted onto a frame.
type Style struct {
	FontScale   float64
	Fill        color.Color
	Outline     color.Color
	Thickness   int
	LineSpacing int
}

// OutlineThickness returns the stroke width of the outline pass. The outline
// is always four units wider than the fill stroke so the border stays visible
// at any configured thickness.
func (s Style) OutlineThickness() int {
	return s.Thickness + 4
}

// DefaultStyle returns white text with a black outline, the combination that
// stays readable over arbitrary footage.
func DefaultStyle() Style {
	return Style{
		FontScale:   1.25,
		Fill:        color.White,
		Outline:     color.Black,
		Thickness:   3,
		LineSpacing: 20,
	}
}

// Inverted swaps fill and outline colors, used over bright footage.
func (s Style) Inverted() Style {
	s.Fill, s.Outline = s.Outline, s.Fill
	return s
}
