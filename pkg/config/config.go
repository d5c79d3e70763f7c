// Package config loads ink.yaml, the optional file that tunes the ripple
// surface and gesture tracker used by the ink tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	inkerrors "github.com/go-drift/ink/pkg/errors"
	"github.com/go-drift/ink/pkg/gestures"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
)

// FileName is the config file looked up by LoadOptional.
const FileName = "ink.yaml"

// SchemaVersion is the config version written by Default.
const SchemaVersion = "v1.0.0"

// Config represents the optional ink.yaml configuration.
type Config struct {
	Version string        `yaml:"version,omitempty"`
	Ink     InkConfig     `yaml:"ink"`
	Gesture GestureConfig `yaml:"gesture"`
	Surface SurfaceConfig `yaml:"surface"`
}

// InkConfig contains ripple appearance settings.
type InkConfig struct {
	Color     string  `yaml:"color,omitempty"`
	Style     string  `yaml:"style,omitempty"`
	MaxRadius float64 `yaml:"max_radius,omitempty"`
}

// GestureConfig contains touch tracking settings. Nil fields keep the
// tracker defaults.
type GestureConfig struct {
	CancelOnDragOut    *bool    `yaml:"cancel_on_drag_out,omitempty"`
	DragCancelDistance *float64 `yaml:"drag_cancel_distance,omitempty"`
}

// SurfaceConfig contains the surface size used by the tools.
type SurfaceConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Resolved contains validated configuration values.
type Resolved struct {
	Color              graphics.Color
	Style              ripple.Style
	MaxRadius          float64
	CancelOnDragOut    bool
	DragCancelDistance float64
	Size               graphics.Size
}

// Default returns the configuration used when no ink.yaml exists.
func Default() *Config {
	return &Config{Version: SchemaVersion}
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return Parse(data)
}

// LoadOptional reads ink.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF and means "all defaults".
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, configError("config.Parse", fmt.Errorf("failed to parse %s: %w", FileName, err))
	}
	return &cfg, nil
}

// Resolve validates the config and fills in defaults.
func (c *Config) Resolve() (*Resolved, error) {
	const op = "config.Resolve"

	if err := checkVersion(c.Version); err != nil {
		return nil, configError(op, err)
	}

	r := &Resolved{
		Color:              graphics.DefaultInkColor,
		Style:              ripple.StyleBounded,
		CancelOnDragOut:    true,
		DragCancelDistance: gestures.DefaultDragCancelDistance,
		Size:               graphics.Size{Width: 100, Height: 100},
	}

	if s := strings.TrimSpace(c.Ink.Color); s != "" {
		col, err := graphics.ParseHexColor(s)
		if err != nil {
			return nil, configError(op, fmt.Errorf("ink.color: %w", err))
		}
		r.Color = col
	}

	style, err := ParseStyle(c.Ink.Style)
	if err != nil {
		return nil, configError(op, err)
	}
	r.Style = style

	if math.IsNaN(c.Ink.MaxRadius) || math.IsInf(c.Ink.MaxRadius, 0) {
		return nil, configError(op, fmt.Errorf("ink.max_radius must be finite"))
	}
	r.MaxRadius = c.Ink.MaxRadius

	if v := c.Gesture.CancelOnDragOut; v != nil {
		r.CancelOnDragOut = *v
	}
	if v := c.Gesture.DragCancelDistance; v != nil {
		if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return nil, configError(op, fmt.Errorf("gesture.drag_cancel_distance must be a non-negative number (got %v)", *v))
		}
		r.DragCancelDistance = *v
	}

	if c.Surface.Width != 0 || c.Surface.Height != 0 {
		size := graphics.Size{Width: c.Surface.Width, Height: c.Surface.Height}
		if !(size.Width > 0) || !(size.Height > 0) || math.IsInf(size.Width, 0) || math.IsInf(size.Height, 0) {
			return nil, configError(op, fmt.Errorf("surface size must be positive (got %vx%v)", size.Width, size.Height))
		}
		r.Size = size
	}
	return r, nil
}

// Apply configures a surface and its tracker. The tracker may be nil.
func (r *Resolved) Apply(s *ripple.Surface, t *gestures.TouchTracker) error {
	if err := s.SetSize(r.Size); err != nil {
		return err
	}
	s.SetInkColor(r.Color)
	s.SetStyle(r.Style)
	s.SetMaxRippleRadius(r.MaxRadius)
	if t != nil {
		t.CancelOnDragOut = r.CancelOnDragOut
		t.DragCancelDistance = r.DragCancelDistance
	}
	return nil
}

// ParseStyle maps "bounded" or "unbounded" to a ripple style. An empty
// string is bounded.
func ParseStyle(s string) (ripple.Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bounded":
		return ripple.StyleBounded, nil
	case "unbounded":
		return ripple.StyleUnbounded, nil
	default:
		return 0, fmt.Errorf("ink.style must be bounded or unbounded (got %q)", s)
	}
}

// checkVersion accepts an empty version or any v1 semantic version.
func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a semantic version", v)
	}
	if major := semver.Major(v); major != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported config version %s (want %s.x.x)", v, semver.Major(SchemaVersion))
	}
	return nil
}

func configError(op string, err error) *inkerrors.InkError {
	return &inkerrors.InkError{Op: op, Kind: inkerrors.KindConfig, Err: err}
}
