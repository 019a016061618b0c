// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Shaders  ShaderConfig   `yaml:"shaders"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOVDegrees float32 `yaml:"fov_degrees"` // Vertical field of view
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// TerrainConfig describes the elevation source and mesh spacing.
type TerrainConfig struct {
	ElevationFile string  `yaml:"elevation_file"`
	GridSize      int     `yaml:"grid_size"`   // Samples per side
	HeaderSize    int64   `yaml:"header_size"` // Bytes skipped before the first sample
	Spacing       float32 `yaml:"spacing"`     // World units between neighbouring samples
}

// CameraConfig holds the initial orbit and its polar limits. Angles are in degrees.
type CameraConfig struct {
	Radius   float32    `yaml:"radius"`
	Azimuth  float32    `yaml:"azimuth"`
	Polar    float32    `yaml:"polar"`
	Target   [3]float32 `yaml:"target,flow"`
	MinPolar float32    `yaml:"min_polar"`
	MaxPolar float32    `yaml:"max_polar"`
}

// ShaderConfig points at GLSL sources on disk. Empty paths select the built-in shaders.
type ShaderConfig struct {
	VertexFile   string `yaml:"vertex_file"`
	FragmentFile string `yaml:"fragment_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config matching the Elevation.ddc dataset.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			FOVDegrees: 45,
			Near:       1,
			Far:        10000,
		},
		Terrain: TerrainConfig{
			ElevationFile: "Elevation.ddc",
			GridSize:      1024,
			HeaderSize:    60,
			Spacing:       2.5,
		},
		Camera: CameraConfig{
			Radius:   2000,
			Azimuth:  -200,
			Polar:    70,
			MinPolar: 1,
			MaxPolar: 179,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
