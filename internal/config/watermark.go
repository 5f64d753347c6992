package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// LoadWatermark reads the TOML watermark document at path. Every field the
// document omits keeps its value from models.DefaultWatermarkConfig.
func LoadWatermark(path string) (models.WatermarkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.WatermarkConfig{}, fmt.Errorf("%w: read %q: %w", models.ErrConfigParse, path, err)
	}

	cfg, err := ParseWatermark(data)
	if err != nil {
		return models.WatermarkConfig{}, fmt.Errorf("%q: %w", path, err)
	}
	return cfg, nil
}

// ParseWatermark decodes a TOML watermark document.
func ParseWatermark(data []byte) (models.WatermarkConfig, error) {
	cfg := models.DefaultWatermarkConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return models.WatermarkConfig{}, fmt.Errorf("%w: %w", models.ErrConfigParse, err)
	}
	if err := validateWatermark(cfg); err != nil {
		return models.WatermarkConfig{}, fmt.Errorf("%w: %w", models.ErrConfigParse, err)
	}
	return cfg, nil
}

func validateWatermark(cfg models.WatermarkConfig) error {
	if cfg.Text == "" {
		return fmt.Errorf("text must not be empty")
	}
	if !utf8.ValidString(cfg.Text) {
		return fmt.Errorf("text must be valid UTF-8")
	}
	if strings.TrimSpace(cfg.FontPath) == "" {
		return fmt.Errorf("font_path must not be empty")
	}
	if !(cfg.FontSize > 0) {
		return fmt.Errorf("font_size must be positive, got %v", cfg.FontSize)
	}
	if !cfg.Position.Valid() {
		return fmt.Errorf("invalid position %v", cfg.Position)
	}
	return nil
}
