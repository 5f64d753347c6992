package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImageFile reports whether path names a regular file with a supported
// image extension. The extension match is case-insensitive.
func IsImageFile(path string) bool {
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Collect expands input into the list of files to stamp. A single image file
// yields itself with single set; a directory yields its image files, one
// level deep, in name order.
func Collect(input string) (files []string, single bool, err error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", models.ErrInvalidInputPath, err)
	}

	if !info.IsDir() {
		if !IsImageFile(input) {
			return nil, false, fmt.Errorf("%w: %q is not a supported image file", models.ErrInvalidInputPath, input)
		}
		return []string{input}, true, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, false, fmt.Errorf("%w: read directory %q: %w", models.ErrInvalidInputPath, input, err)
	}

	for _, entry := range entries {
		path := filepath.Join(input, entry.Name())
		if IsImageFile(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)

	return files, false, nil
}
