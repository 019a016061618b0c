package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxGridSize is the largest terrain.grid_size whose mesh still fits one draw call.
// It mirrors terrain.MaxGridSize, which cannot be imported here.
const MaxGridSize = 16384

// Validate checks the settings the viewer cannot recover from at runtime.
func (c *Config) Validate() error {
	var errs []error

	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", g.Width, g.Height))
	}
	if g.FOVDegrees <= 0 || g.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("fov_degrees %v must be in (0, 180)", g.FOVDegrees))
	}
	if g.Near <= 0 || g.Far <= g.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v: need 0 < near < far", g.Near, g.Far))
	}

	t := c.Terrain
	if t.ElevationFile == "" {
		errs = append(errs, errors.New("terrain.elevation_file is empty"))
	}
	if t.GridSize < 2 || t.GridSize > MaxGridSize {
		errs = append(errs, fmt.Errorf("terrain.grid_size %d must be in [2, %d]", t.GridSize, MaxGridSize))
	}
	if t.HeaderSize < 0 {
		errs = append(errs, fmt.Errorf("terrain.header_size %d must not be negative", t.HeaderSize))
	}
	if t.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("terrain.spacing %v must be positive", t.Spacing))
	}

	cam := c.Camera
	if cam.Radius <= 0 {
		errs = append(errs, fmt.Errorf("camera.radius %v must be positive", cam.Radius))
	}
	if cam.MinPolar < 0 || cam.MaxPolar > 180 || cam.MinPolar >= cam.MaxPolar {
		errs = append(errs, fmt.Errorf("camera polar limits [%v, %v] must satisfy 0 <= min < max <= 180", cam.MinPolar, cam.MaxPolar))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
