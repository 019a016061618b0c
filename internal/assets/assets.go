// Package assets locates and reads the viewer's runtime assets.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/lockhart/internal/config"
	"github.com/Faultbox/lockhart/internal/logger"
)

// BuiltinOrigin marks a shader stage that came from the embedded sources.
const BuiltinOrigin = "built-in"

// Asset loading errors.
var (
	ErrAssetUnavailable = errors.New("asset unavailable")
	ErrEmptyShader      = errors.New("shader source is empty")
)

//go:embed shaders/terrain.vert
var terrainVertexShader string

//go:embed shaders/terrain.frag
var terrainFragmentShader string

// ShaderSources holds GLSL source for both pipeline stages.
type ShaderSources struct {
	Vertex   string
	Fragment string

	// Where each stage was read from: a file path or BuiltinOrigin
	VertexOrigin   string
	FragmentOrigin string
}

// BuiltinShaders returns the embedded terrain shaders.
func BuiltinShaders() ShaderSources {
	return ShaderSources{
		Vertex:         terrainVertexShader,
		Fragment:       terrainFragmentShader,
		VertexOrigin:   BuiltinOrigin,
		FragmentOrigin: BuiltinOrigin,
	}
}

// LoadShaders reads the configured shader files. A stage with no configured
// path uses the built-in source. A configured file that is missing, unreadable
// or empty is an error.
func LoadShaders(cfg config.ShaderConfig) (ShaderSources, error) {
	src := BuiltinShaders()

	if cfg.VertexFile != "" {
		text, err := readShader(cfg.VertexFile)
		if err != nil {
			return ShaderSources{}, fmt.Errorf("vertex shader: %w", err)
		}
		src.Vertex, src.VertexOrigin = text, cfg.VertexFile
	}

	if cfg.FragmentFile != "" {
		text, err := readShader(cfg.FragmentFile)
		if err != nil {
			return ShaderSources{}, fmt.Errorf("fragment shader: %w", err)
		}
		src.Fragment, src.FragmentOrigin = text, cfg.FragmentFile
	}

	logger.Named("assets").Debug("shader sources loaded",
		zap.String("vertex", src.VertexOrigin),
		zap.String("fragment", src.FragmentOrigin),
	)
	return src, nil
}

func readShader(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyShader, path)
	}
	return string(data), nil
}
