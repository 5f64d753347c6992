package processor

import (
	"image"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// ResolvePosition returns the top-left pixel at which text of the given size
// is drawn for anchor. The two axes are resolved independently. Centering
// truncates toward zero and no clamping is applied, so text larger than the
// image yields negative coordinates.
func ResolvePosition(imageWidth, imageHeight int, text models.TextMetrics, anchor models.Anchor) image.Point {
	return image.Point{
		X: horizontalOffset(imageWidth, text.Width, anchor.Horizontal()),
		Y: verticalOffset(imageHeight, text.Height, anchor.Vertical()),
	}
}

func horizontalOffset(imageWidth, textWidth int, align models.HAlign) int {
	switch align {
	case models.AlignCenter:
		return (imageWidth - textWidth) / 2
	case models.AlignRight:
		return imageWidth - textWidth - models.Margin
	default:
		return models.Margin
	}
}

func verticalOffset(imageHeight, textHeight int, align models.VAlign) int {
	switch align {
	case models.AlignMiddle:
		return (imageHeight - textHeight) / 2
	case models.AlignBottom:
		return imageHeight - textHeight - models.Margin
	default:
		return models.Margin
	}
}
