package models

import (
	"fmt"
	"image/color"
	"strings"
)

// Margin is the inset, in pixels, kept between the watermark text and the image edges.
const Margin = 10

// Anchor names one of the nine positions the watermark text can be placed at.
type Anchor int

const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

// HAlign is the horizontal component of an Anchor.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical component of an Anchor.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

var anchorNames = [...]string{
	TopLeft:      "top_left",
	TopCenter:    "top_center",
	TopRight:     "top_right",
	MiddleLeft:   "middle_left",
	MiddleCenter: "middle_center",
	MiddleRight:  "middle_right",
	BottomLeft:   "bottom_left",
	BottomCenter: "bottom_center",
	BottomRight:  "bottom_right",
}

// Anchors lists every valid anchor in row-major order.
func Anchors() []Anchor {
	all := make([]Anchor, len(anchorNames))
	for i := range anchorNames {
		all[i] = Anchor(i)
	}
	return all
}

// ParseAnchor converts a configuration token such as "bottom_right" into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for i, name := range anchorNames {
		if name == token {
			return Anchor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

func (a Anchor) Valid() bool {
	return a >= TopLeft && a <= BottomRight
}

func (a Anchor) Horizontal() HAlign {
	return HAlign(a % 3)
}

func (a Anchor) Vertical() VAlign {
	return VAlign(a / 3)
}

func (a Anchor) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

func (a Anchor) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid anchor %d", int(a))
	}
	return []byte(anchorNames[a]), nil
}

func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Color is the straight-alpha RGBA color of the watermark text.
type Color struct {
	R uint8 `toml:"r" json:"r"`
	G uint8 `toml:"g" json:"g"`
	B uint8 `toml:"b" json:"b"`
	A uint8 `toml:"a" json:"a"`
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WatermarkConfig describes the text stamped onto every image of a run.
// A loaded value is never mutated and is shared by all workers.
type WatermarkConfig struct {
	Text     string  `toml:"text" json:"text"`
	FontPath string  `toml:"font_path" json:"font_path"`
	FontSize float64 `toml:"font_size" json:"font_size"`
	Position Anchor  `toml:"position" json:"position"`
	Color    Color   `toml:"color" json:"color"`
}

const (
	DefaultText     = "© Copyright"
	DefaultFontPath = "/path/to/default/font.ttf"
	DefaultFontSize = 20.0
	DefaultPosition = BottomRight
)

var DefaultColor = Color{R: 255, G: 255, B: 255, A: 128}

// DefaultWatermarkConfig returns the configuration used for every field the
// document leaves out. The font path is a placeholder that must be overridden.
func DefaultWatermarkConfig() WatermarkConfig {
	return WatermarkConfig{
		Text:     DefaultText,
		FontPath: DefaultFontPath,
		FontSize: DefaultFontSize,
		Position: DefaultPosition,
		Color:    DefaultColor,
	}
}

// TextMetrics is the pixel bounding box of rendered text.
type TextMetrics struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
