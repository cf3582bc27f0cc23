// Package config manages the viewer configuration file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/frizinak/zoomfit/geom"
)

var ErrInvalid = errors.New("invalid config")

// Config represents the viewer configuration.
type Config struct {
	// MaxZoom is the maximum zoom as a factor of the fitted size.
	MaxZoom      float64       `yaml:"max_zoom"`
	ZoomStep     float64       `yaml:"zoom_step"`
	PanStep      float64       `yaml:"pan_step"`
	PollInterval time.Duration `yaml:"poll_interval"`
	CacheDir     string        `yaml:"cache_dir,omitempty"`
	Background   string        `yaml:"background"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxZoom:      geom.DefaultMaxZoom,
		ZoomStep:     1.25,
		PanStep:      40,
		PollInterval: 200 * time.Millisecond,
		Background:   "#000000",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.MaxZoom < 1:
		return fmt.Errorf("%w: max_zoom must be at least 1, got %v", ErrInvalid, c.MaxZoom)
	case c.ZoomStep <= 1:
		return fmt.Errorf("%w: zoom_step must be greater than 1, got %v", ErrInvalid, c.ZoomStep)
	case c.PanStep <= 0:
		return fmt.Errorf("%w: pan_step must be positive, got %v", ErrInvalid, c.PanStep)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll_interval must be positive, got %v", ErrInvalid, c.PollInterval)
	}

	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background as #rrggbb.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	var r, g, b uint8
	if len(c.Background) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: background must be #rrggbb, got '%s'", ErrInvalid, c.Background)
	}
	if _, err := fmt.Sscanf(c.Background, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("%w: background must be #rrggbb, got '%s'", ErrInvalid, c.Background)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
