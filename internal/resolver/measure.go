package resolver

import (
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Auto-sized text is measured with a fixed deterministic face and scaled to
// the element's font size. Both render paths share this measurement, so an
// auto-sized box resolves to the same logical geometry in the editor and in
// the exported markup.

const (
	baseFaceSize = 13.0 // basicfont.Face7x13 nominal size
	lineSpacing  = 1.4
	textPadding  = 8.0 // logical units on each side of measured text
)

var measureFace font.Face = basicfont.Face7x13

// MeasureText returns the logical width and height of a text block at the
// given font size. Multi-line content measures as the widest line by the
// line count. Values round to whole logical units.
func MeasureText(content, fontSize string) (w, h float64) {
	px := float64(FontSizePixels(fontSize))
	scale := px / baseFaceSize

	lines := strings.Split(content, "\n")
	widest := 0.0
	for _, line := range lines {
		adv := font.MeasureString(measureFace, line)
		lw := float64(adv) / 64.0 * scale
		if lw > widest {
			widest = lw
		}
	}

	w = math.Round(widest + 2*textPadding)
	h = math.Round(float64(len(lines))*px*lineSpacing + 2*textPadding)
	return w, h
}
