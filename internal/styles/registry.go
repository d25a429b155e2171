// Package styles holds the prompt presets used for marketing-content
// generation. Presets live in an embedded YAML file so prompt tuning never
// requires touching Go code.
package styles

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed config/styles.yaml
var configFiles embed.FS

type styleConfig struct {
	BaseImagePrompt     string            `yaml:"base_image_prompt"`
	CaptionSuffix       string            `yaml:"caption_suffix"`
	DefaultImageStyle   string            `yaml:"default_image_style"`
	DefaultCaptionStyle string            `yaml:"default_caption_style"`
	ImageStyles         map[string]string `yaml:"image_styles"`
	CaptionStyles       map[string]string `yaml:"caption_styles"`
}

// Registry resolves style ids into full generation prompts. Read-only after
// load.
type Registry struct {
	cfg styleConfig
}

// NewRegistry loads the embedded style presets.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/styles.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read style presets: %w", err)
	}

	var cfg styleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal style presets: %w", err)
	}

	if _, ok := cfg.ImageStyles[cfg.DefaultImageStyle]; !ok {
		return nil, fmt.Errorf("default image style %q not defined", cfg.DefaultImageStyle)
	}
	if _, ok := cfg.CaptionStyles[cfg.DefaultCaptionStyle]; !ok {
		return nil, fmt.Errorf("default caption style %q not defined", cfg.DefaultCaptionStyle)
	}

	return &Registry{cfg: cfg}, nil
}

// ImagePrompt composes the full image prompt for a style id. Unknown ids
// fall back to the default style.
func (r *Registry) ImagePrompt(styleID string) string {
	style, ok := r.cfg.ImageStyles[styleID]
	if !ok {
		style = r.cfg.ImageStyles[r.cfg.DefaultImageStyle]
	}
	return r.cfg.BaseImagePrompt + " " + style
}

// CaptionPrompt composes the full caption prompt for a style id. Unknown ids
// fall back to the default style.
func (r *Registry) CaptionPrompt(styleID string) string {
	style, ok := r.cfg.CaptionStyles[styleID]
	if !ok {
		style = r.cfg.CaptionStyles[r.cfg.DefaultCaptionStyle]
	}
	return style + " " + r.cfg.CaptionSuffix
}

// ImageStyleIDs returns the available image style ids, sorted.
func (r *Registry) ImageStyleIDs() []string {
	return sortedKeys(r.cfg.ImageStyles)
}

// CaptionStyleIDs returns the available caption style ids, sorted.
func (r *Registry) CaptionStyleIDs() []string {
	return sortedKeys(r.cfg.CaptionStyles)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
