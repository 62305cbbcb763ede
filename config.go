package batticon

import (
	"fmt"
	"os"
	"time"

	"github.com/esimov/batticon/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Font source names accepted in the configuration.
const (
	FontEmbedded = "embedded"
	FontSystem   = "system"
	FontFileName = "file"
	FontAuto     = "auto"
)

// DefaultInterval is the battery polling period of the tray driver.
const DefaultInterval = 30 * time.Second

// Config holds the user tunable settings, usually read from a YAML file.
type Config struct {
	Font         string        `yaml:"font"`
	FontPath     string        `yaml:"font_path"`
	FontPaths    []string      `yaml:"font_paths"`
	TemplateFill string        `yaml:"template_fill"`
	Cutout       Cutout        `yaml:"cutout"`
	Interval     time.Duration `yaml:"interval"`
	Battery      string        `yaml:"battery"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Font:     FontEmbedded,
		Cutout:   CutoutHard,
		Interval: DefaultInterval,
	}
}

// LoadConfig reads the YAML configuration at path. Missing keys keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks the enumerated fields and the colors.
func (c *Config) Validate() error {
	if c.Font != "" && !utils.Contains([]string{FontEmbedded, FontSystem, FontFileName, FontAuto}, c.Font) {
		return fmt.Errorf("unknown font source %q", c.Font)
	}
	if c.Font == FontFileName && c.FontPath == "" {
		return errors.New("font source \"file\" requires font_path")
	}
	if c.Cutout != "" && !utils.Contains([]Cutout{CutoutHard, CutoutSoft}, c.Cutout) {
		return fmt.Errorf("unknown cutout %q", c.Cutout)
	}
	if c.TemplateFill != "" {
		fill, err := utils.HexToRGBA(c.TemplateFill)
		if err != nil {
			return err
		}
		if fill.A != 0xff {
			return fmt.Errorf("template fill %q must be opaque", c.TemplateFill)
		}
	}
	if c.Interval < 0 {
		return fmt.Errorf("negative interval %s", c.Interval)
	}
	return nil
}

// FontSource builds the font sourcing strategy named by the configuration.
func (c *Config) FontSource() FontSource {
	system := SystemFonts{}
	if len(c.FontPaths) > 0 {
		system.Paths = c.FontPaths
	}

	switch c.Font {
	case FontSystem:
		return system
	case FontFileName:
		return FontFile(c.FontPath)
	case FontAuto:
		return FontChain{system, EmbeddedFont{}}
	default:
		return EmbeddedFont{}
	}
}

// Renderer builds a Renderer from the configuration.
func (c *Config) Renderer() (*Renderer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := NewRenderer(c.FontSource())
	if c.TemplateFill != "" {
		fill, err := utils.HexToRGBA(c.TemplateFill)
		if err != nil {
			return nil, err
		}
		r.TemplateFill = fill
	}
	if c.Cutout != "" {
		r.Cutout = c.Cutout
	}
	return r, nil
}
