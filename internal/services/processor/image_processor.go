package processor

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/copyright-stamp/internal/models"
)

const DefaultQuality = 85

// ImageProcessor stamps one watermark configuration onto images. It holds
// only read-only state and may be used from several goroutines.
type ImageProcessor struct {
	config  models.WatermarkConfig
	font    *Font
	quality int
}

func NewImageProcessor(cfg models.WatermarkConfig, f *Font, quality int) *ImageProcessor {
	if quality <= 0 {
		quality = DefaultQuality
	}
	return &ImageProcessor{
		config:  cfg,
		font:    f,
		quality: min(100, quality),
	}
}

func (p *ImageProcessor) Config() models.WatermarkConfig {
	return p.config
}

// FontName identifies the loaded font for cache keys.
func (p *ImageProcessor) FontName() string {
	return p.font.Name()
}

// Stamp returns an NRGBA copy of img with the watermark text composited at
// the configured anchor. img itself is not modified.
func (p *ImageProcessor) Stamp(img image.Image) (*image.NRGBA, error) {
	face, err := p.font.Face(p.config.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	canvas := imaging.Clone(img)
	bounds := canvas.Bounds()

	metrics := Measure(face, p.config.Text)
	origin := ResolvePosition(bounds.Dx(), bounds.Dy(), metrics, p.config.Position)
	Composite(canvas, face, p.config.Text, origin, p.config.Color)

	return canvas, nil
}

// ProcessImage runs the in-memory pipeline: decode, stamp and encode back to
// the source format. It returns the encoded bytes, the output format name and
// the stamped image.
func (p *ImageProcessor) ProcessImage(r io.Reader) (*bytes.Buffer, string, image.Image, error) {
	img, format, err := DecodeImage(r)
	if err != nil {
		return nil, "", nil, err
	}

	stamped, err := p.Stamp(img)
	if err != nil {
		return nil, "", nil, fmt.Errorf("stamp image: %w", err)
	}

	buffer := &bytes.Buffer{}
	if err := p.EncodeImage(buffer, stamped, format); err != nil {
		return nil, "", nil, err
	}

	return buffer, OutputFormat(format), stamped, nil
}
