package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/circlemark/circlemark/internal/region"
)

// Config holds every tunable of the editor. Values a file leaves out keep
// their defaults; values out of range are clamped by Validate rather than
// rejected, so a sloppy config never prevents a labeling session.
type Config struct {
	Zoom    ZoomConfig    `yaml:"zoom"`
	Effects EffectsConfig `yaml:"effects"`
	Display DisplayConfig `yaml:"display"`

	// MinRadius is the smallest committed circle radius; tinier drags are
	// clamped up to it.
	MinRadius int `yaml:"min_radius"`

	// MinImageSize rejects degenerate inputs at batch discovery: images
	// with either dimension below it are skipped.
	MinImageSize int `yaml:"min_image_size"`

	// LabelEditTarget picks what a bare "edit" addresses: "last" for the
	// newest region, "id" to require an explicit region id.
	LabelEditTarget string `yaml:"label_edit_target"`

	// ShowLabels is the initial visibility of label chips.
	ShowLabels bool `yaml:"show_labels"`

	// MarkerColors maps effect kind names to "#RRGGBB" overlay colors.
	MarkerColors map[string]string `yaml:"marker_colors"`
}

// ZoomConfig bounds the view zoom and sets the wheel step factor.
type ZoomConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// EffectsConfig carries the compositor strengths.
type EffectsConfig struct {
	HighlightStrength float64 `yaml:"highlight_strength"`
	DarkenStrength    float64 `yaml:"darken_strength"`
	BlurRadiusRatio   float64 `yaml:"blur_radius_ratio"`
	PixelateBlock     int     `yaml:"pixelate_block"`
	OutlineThickness  int     `yaml:"outline_thickness"`
	RingWidth         float64 `yaml:"ring_width"`
}

// DisplayConfig is the display budget used for fit zoom and snapshots.
type DisplayConfig struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// DefaultConfig returns the editor's built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Zoom: ZoomConfig{
			Min:  0.5,
			Max:  5.0,
			Step: 1.1,
		},
		Effects: EffectsConfig{
			HighlightStrength: 0.4,
			DarkenStrength:    0.5,
			BlurRadiusRatio:   0.5,
			PixelateBlock:     10,
			OutlineThickness:  3,
			RingWidth:         2,
		},
		Display: DisplayConfig{
			MaxWidth:  1400,
			MaxHeight: 900,
		},
		MinRadius:       5,
		MinImageSize:    50,
		LabelEditTarget: "last",
		ShowLabels:      true,
		MarkerColors: map[string]string{
			"highlight": "#00FF00",
			"blur":      "#0000FF",
			"pixelate":  "#FF0000",
			"darken":    "#808080",
			"grayscale": "#C8C8C8",
			"invert":    "#00FFFF",
			"outline":   "#FFFF00",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; you just get the defaults. The result is always validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Validate()
	return cfg, nil
}

// Validate clamps out-of-range values back to usable ones. It never
// rejects a config.
func (c *Config) Validate() {
	def := DefaultConfig()

	if c.Zoom.Min <= 0 {
		c.Zoom.Min = def.Zoom.Min
	}
	if c.Zoom.Max < c.Zoom.Min {
		c.Zoom.Max = c.Zoom.Min
	}
	if c.Zoom.Step <= 1 {
		c.Zoom.Step = def.Zoom.Step
	}

	if c.Effects.HighlightStrength <= 0 || c.Effects.HighlightStrength >= 1 {
		c.Effects.HighlightStrength = def.Effects.HighlightStrength
	}
	if c.Effects.DarkenStrength <= 0 || c.Effects.DarkenStrength >= 1 {
		c.Effects.DarkenStrength = def.Effects.DarkenStrength
	}
	if c.Effects.BlurRadiusRatio <= 0 {
		c.Effects.BlurRadiusRatio = def.Effects.BlurRadiusRatio
	}
	if c.Effects.PixelateBlock < 2 {
		c.Effects.PixelateBlock = def.Effects.PixelateBlock
	}
	if c.Effects.OutlineThickness < 1 {
		c.Effects.OutlineThickness = def.Effects.OutlineThickness
	}
	if c.Effects.RingWidth <= 0 {
		c.Effects.RingWidth = def.Effects.RingWidth
	}

	if c.Display.MaxWidth < 100 {
		c.Display.MaxWidth = def.Display.MaxWidth
	}
	if c.Display.MaxHeight < 100 {
		c.Display.MaxHeight = def.Display.MaxHeight
	}

	if c.MinRadius < 1 {
		c.MinRadius = 1
	}
	if c.MinImageSize < 1 {
		c.MinImageSize = 1
	}

	switch c.LabelEditTarget {
	case "last", "id":
	default:
		c.LabelEditTarget = def.LabelEditTarget
	}

	if c.MarkerColors == nil {
		c.MarkerColors = map[string]string{}
	}
	for _, kind := range region.Kinds() {
		hex, ok := c.MarkerColors[string(kind)]
		if !ok {
			c.MarkerColors[string(kind)] = def.MarkerColors[string(kind)]
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			c.MarkerColors[string(kind)] = def.MarkerColors[string(kind)]
		}
	}
}

// MarkerColor returns the overlay color configured for kind.
func (c *Config) MarkerColor(kind region.Kind) color.NRGBA {
	col, err := colorful.Hex(c.MarkerColors[string(kind)])
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// MarkerPalette returns the full kind-to-color overlay map.
func (c *Config) MarkerPalette() map[region.Kind]color.NRGBA {
	palette := make(map[region.Kind]color.NRGBA, len(region.Kinds()))
	for _, kind := range region.Kinds() {
		palette[kind] = c.MarkerColor(kind)
	}
	return palette
}
