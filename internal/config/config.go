package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount      = 62
	DefaultFormat     = "png"
	DefaultDPI        = 100
	DefaultLineWidth  = 0.2
	DefaultFPS        = 240
	DefaultAnimDPI    = 100
	DefaultDegreeSkip = 1
	DefaultAnimFormat = "mp4"
	DefaultOutDir     = "."
)

var validate = validator.New()

type Config struct {
	Count     int        `yaml:"count" validate:"gte=0"`
	Start     int        `yaml:"start" validate:"gte=0"`
	Plot      PlotConfig `yaml:"plot"`
	Animation AnimConfig `yaml:"animation"`
	OutDir    string     `yaml:"out_dir" validate:"required"`
}

type PlotConfig struct {
	Format    string  `yaml:"format" validate:"oneof=png svg"`
	DPI       int     `yaml:"dpi" validate:"gt=0,lte=2400"`
	LineWidth float64 `yaml:"line_width" validate:"gt=0"`
}

type AnimConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format" validate:"oneof=mp4 gif"`
	FPS        int    `yaml:"fps" validate:"gt=0"`
	DPI        int    `yaml:"dpi" validate:"gt=0,lte=2400"`
	DegreeSkip int    `yaml:"degree_skip" validate:"gte=1,lte=180"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:  DefaultCount,
		OutDir: DefaultOutDir,
		Plot: PlotConfig{
			Format:    DefaultFormat,
			DPI:       DefaultDPI,
			LineWidth: DefaultLineWidth,
		},
		Animation: AnimConfig{
			Format:     DefaultAnimFormat,
			FPS:        DefaultFPS,
			DPI:        DefaultAnimDPI,
			DegreeSkip: DefaultDegreeSkip,
		},
	}
}

// Load reads a YAML config on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field against its bounds and joins the failures
// into one readable error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Namespace())
	field = strings.TrimPrefix(field, "config.")

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// PlotFile returns the file name of the static plot.
func (c *Config) PlotFile() string {
	return fmt.Sprintf("recaman_%d_start_%d.%s", c.Count, c.Start, c.Plot.Format)
}

// AnimationFile returns the file name of the animation.
func (c *Config) AnimationFile() string {
	return fmt.Sprintf("recaman_%d_start_%d.%s", c.Count, c.Start, c.Animation.Format)
}
