package processor

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// Measure returns the box Composite covers when drawing text with face: from
// the top of the line to the right and bottom edges of the inked glyphs.
// The box starts at the pen position, so a glyph with a negative left side
// bearing (a leading "j") inks a pixel or two left of it.
func Measure(face font.Face, text string) models.TextMetrics {
	bounds := inkBounds(face, text, fixed.Point26_6{})
	return models.TextMetrics{
		Width:  max(0, bounds.Max.X.Ceil()),
		Height: max(0, bounds.Max.Y.Ceil()),
	}
}

// inkBounds lays text out on a single line whose top-left corner is at origin
// and returns the bounds of the inked glyphs.
func inkBounds(face font.Face, text string, origin fixed.Point26_6) fixed.Rectangle26_6 {
	bounds, _ := font.BoundString(face, text)
	return bounds.Add(baseline(face, origin))
}

func baseline(face font.Face, origin fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: origin.X, Y: origin.Y + face.Metrics().Ascent}
}
