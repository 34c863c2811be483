// Package config loads table settings from defaults, an optional YAML file and the environment
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/input"
	"github.com/lixenwraith/tabletop/vmath"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "TABLETOP_"

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	FPS                 int     `yaml:"fps" env:"FPS"`
	Debug               bool    `yaml:"debug" env:"DEBUG"`
	Audio               bool    `yaml:"audio" env:"AUDIO"`
	BillboardEnemyCards bool    `yaml:"billboard_enemy_cards" env:"BILLBOARD_ENEMY_CARDS"`
	CellAspect          float64 `yaml:"cell_aspect" env:"CELL_ASPECT"`
	HoverLift           float64 `yaml:"hover_lift" env:"HOVER_LIFT"`
	DragPlaneY          float64 `yaml:"drag_plane_y" env:"DRAG_PLANE_Y"`

	Camera CameraConfig `yaml:"camera" envPrefix:"CAMERA_"`
}

// CameraConfig positions the single scene camera
type CameraConfig struct {
	Position   []float64 `yaml:"position" env:"POSITION" envSeparator:","`
	Target     []float64 `yaml:"target" env:"TARGET" envSeparator:","`
	FovDegrees float64   `yaml:"fov_degrees" env:"FOV_DEGREES"`
}

// Default returns the stock table: camera behind the player's hand, audio on
func Default() *Config {
	return &Config{
		FPS:        constant.DefaultFPS,
		Audio:      true,
		CellAspect: input.DefaultCellAspect,
		HoverLift:  constant.HoverLift,
		DragPlaneY: vmath.DragPlaneY,
		Camera: CameraConfig{
			Position:   []float64{0, 12, 8},
			Target:     []float64{0, 0, 0},
			FovDegrees: 45,
		},
	}
}

// Load applies the YAML file at path (skipped when empty) and then the environment over Default
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the frame loop or projection cannot run with
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.CellAspect <= 0 {
		return fmt.Errorf("%w: cell aspect must be positive, got %g", ErrInvalidConfig, c.CellAspect)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("%w: fov must be in (0, 180), got %g", ErrInvalidConfig, c.Camera.FovDegrees)
	}
	if c.HoverLift <= 0 || c.DragPlaneY <= 0 {
		return fmt.Errorf("%w: hover lift and drag plane must be above the board, got %g and %g", ErrInvalidConfig, c.HoverLift, c.DragPlaneY)
	}
	if c.HoverLift != c.DragPlaneY {
		return fmt.Errorf("%w: hover lift %g must equal drag plane height %g", ErrInvalidConfig, c.HoverLift, c.DragPlaneY)
	}
	if len(c.Camera.Position) != 3 {
		return fmt.Errorf("%w: camera position needs 3 components, got %d", ErrInvalidConfig, len(c.Camera.Position))
	}
	if len(c.Camera.Target) != 3 {
		return fmt.Errorf("%w: camera target needs 3 components, got %d", ErrInvalidConfig, len(c.Camera.Target))
	}
	if c.CameraPosition().Sub(c.CameraTarget()).Len() < vmath.Epsilon {
		return fmt.Errorf("%w: camera position equals target", ErrInvalidConfig)
	}
	return nil
}

// CameraPosition returns the configured camera position, call after Validate
func (c *Config) CameraPosition() mgl64.Vec3 {
	return toVec3(c.Camera.Position)
}

// CameraTarget returns the point the camera looks at, call after Validate
func (c *Config) CameraTarget() mgl64.Vec3 {
	return toVec3(c.Camera.Target)
}

// FovY returns the vertical field of view in radians
func (c *Config) FovY() float64 {
	return c.Camera.FovDegrees * math.Pi / 180
}

func toVec3(v []float64) mgl64.Vec3 {
	var out mgl64.Vec3
	copy(out[:], v)
	return out
}
