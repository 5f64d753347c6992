package processor

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return f
}

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	face, err := testFont(t).Face(size)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func testConfig(text string, anchor models.Anchor, c models.Color) models.WatermarkConfig {
	return models.WatermarkConfig{
		Text:     text,
		FontPath: BuiltinFontPath,
		FontSize: 24,
		Position: anchor,
		Color:    c,
	}
}

// changedPixels returns the points whose RGBA differs between a and b.
func changedPixels(a, b *image.NRGBA) []image.Point {
	var pts []image.Point
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}
