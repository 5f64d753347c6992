package processor

import (
	"fmt"
	"os"

	"github.com/phambaophuc/copyright-stamp/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// BuiltinFontPath selects the Go regular font compiled into the binary.
const BuiltinFontPath = "builtin:goregular"

// Font is a parsed TrueType/OpenType font. It is safe to share between
// goroutines; faces created from it are not.
type Font struct {
	name string
	sfnt *opentype.Font
}

// LoadFont reads and parses the font at path.
func LoadFont(path string) (*Font, error) {
	if path == BuiltinFontPath {
		f, err := ParseFont(goregular.TTF)
		if err != nil {
			return nil, err
		}
		f.name = path
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", models.ErrFontLoad, path, err)
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	f.name = path
	return f, nil
}

func ParseFont(data []byte) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %w", models.ErrFontLoad, err)
	}
	return &Font{sfnt: parsed}, nil
}

func (f *Font) Name() string {
	return f.name
}

// Face returns a new face rendering at size pixels per em. The caller must
// close it and must not use it from more than one goroutine.
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create font face: %w", models.ErrFontLoad, err)
	}
	return face, nil
}
