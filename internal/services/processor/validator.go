package processor

import (
	"fmt"
	"image"
	"io"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// ValidateImage checks the upload size and that the header describes a
// decodable image, then rewinds file for further processing.
func (p *ImageProcessor) ValidateImage(file io.ReadSeeker, maxSize int64) error {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek upload: %w", err)
	}

	if size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed size %d", size, maxSize)
	}

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("%w: invalid image format: %w", models.ErrDecode, err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek upload: %w", err)
	}
	return nil
}
