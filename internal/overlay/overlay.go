package overlay

import (
	"image"
	"image/color"
	"strings"
)

// TextRenderer measures and draws a single line of text. (x, y) in Draw is
// the baseline-left corner of the line. Implementations must not retain dst.
type TextRenderer interface {
	Measure(line string) (width, height int)
	Draw(dst *image.RGBA, line string, x, y int, col color.Color, thickness int)
}

// Annotate burns text into the frame as a vertically centered block of
// horizontally centered lines. Each line is painted twice: an outline pass
// with the wider stroke first, then the fill pass on top. The frame is
// mutated and returned. Empty text is the caller's responsibility to avoid.
func Annotate(frame *image.RGBA, text string, frameWidth, frameHeight int, style Style, tr TextRenderer) *image.RGBA {
	lines := strings.Split(text, "\n")

	widths := make([]int, len(lines))
	heights := make([]int, len(lines))
	sumHeights := 0
	for i, line := range lines {
		widths[i], heights[i] = tr.Measure(line)
		sumHeights += heights[i]
	}

	// Starting baseline so the whole block sits centered in the frame.
	// Integer (floor) arithmetic throughout.
	yPosition := (frameHeight+sumHeights)/2 - (heights[0]+style.LineSpacing)*len(lines)/2

	for i, line := range lines {
		xPosition := (frameWidth - widths[i]) / 2

		tr.Draw(frame, line, xPosition, yPosition, style.Outline, style.OutlineThickness())
		tr.Draw(frame, line, xPosition, yPosition, style.Fill, style.Thickness)

		yPosition += heights[i] + style.LineSpacing
	}

	return frame
}
