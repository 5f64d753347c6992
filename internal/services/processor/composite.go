package processor

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// Composite draws text onto dst with the top-left of its line box at origin,
// blending c source-over with the antialiased glyph coverage. Glyph pixels
// that fall outside dst are skipped, so origin may be negative.
func Composite(dst *image.NRGBA, face font.Face, text string, origin image.Point, c models.Color) {
	if c.A == 0 || text == "" {
		return
	}

	top := fixed.P(origin.X, origin.Y)
	ink := inkBounds(face, text, top)

	area := image.Rect(ink.Min.X.Floor(), ink.Min.Y.Floor(), ink.Max.X.Ceil(), ink.Max.Y.Ceil()).
		Inset(-1).
		Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	coverage := image.NewAlpha(area)
	drawer := &font.Drawer{
		Dst:  coverage,
		Src:  image.Opaque,
		Face: face,
		Dot:  baseline(face, top),
	}
	drawer.DrawString(text)

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			cov := coverage.Pix[coverage.PixOffset(x, y)]
			if cov == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			blendPixel(dst.Pix[i:i+4:i+4], cov, c)
		}
	}
}

// blendPixel applies c over the straight-alpha pixel px with the given glyph
// coverage. The pixel becomes opaque once anything is blended into it.
func blendPixel(px []uint8, coverage uint8, c models.Color) {
	alpha := float64(coverage) / 255 * float64(c.A) / 255
	if alpha == 0 {
		return
	}
	px[0] = mix(px[0], c.R, alpha)
	px[1] = mix(px[1], c.G, alpha)
	px[2] = mix(px[2], c.B, alpha)
	px[3] = 0xff
}

func mix(dst, src uint8, alpha float64) uint8 {
	return uint8(math.Round(float64(dst)*(1-alpha) + float64(src)*alpha))
}
