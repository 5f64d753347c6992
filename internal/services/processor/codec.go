package processor

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	// Decoders are selected by content, not by file extension.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// DecodeImage sniffs the format from the data and decodes it, returning the
// image and the registered format name ("jpeg", "png", "gif", "bmp", "webp").
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", models.ErrDecode, err)
	}
	return img, format, nil
}

const formatWebP = "webp"

// EncodeImage writes img using the encoder named by format, which may be a
// format name or a file extension. WebP is written lossless; formats nothing
// can encode fall back to PNG.
func (p *ImageProcessor) EncodeImage(w io.Writer, img image.Image, format string) error {
	if isWebP(format) {
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("%w: encode webp: %w", models.ErrWrite, err)
		}
		return nil
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("%w: encode png: %w", models.ErrWrite, err)
		}
		return nil
	}

	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(p.quality)); err != nil {
		return fmt.Errorf("%w: encode %s: %w", models.ErrWrite, strings.ToLower(f.String()), err)
	}
	return nil
}

// OutputFormat reports the format name EncodeImage will produce for format.
func OutputFormat(format string) string {
	if isWebP(format) {
		return formatWebP
	}
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return "png"
	}
	return strings.ToLower(f.String())
}

func isWebP(format string) bool {
	return strings.EqualFold(strings.TrimPrefix(format, "."), formatWebP)
}

// FormatFromPath returns the extension of path without the leading dot.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
