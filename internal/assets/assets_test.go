package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/lockhart/internal/config"
)

func TestBuiltinShaders(t *testing.T) {
	src := BuiltinShaders()

	for name, text := range map[string]string{"vertex": src.Vertex, "fragment": src.Fragment} {
		if !strings.HasPrefix(text, "#version 410 core") {
			t.Errorf("%s shader should start with #version 410 core", name)
		}
	}

	// The renderer binds these names and attribute locations
	for _, want := range []string{"uMVP", "uView", "location = 0", "location = 1"} {
		if !strings.Contains(src.Vertex, want) {
			t.Errorf("vertex shader missing %q", want)
		}
	}

	if src.VertexOrigin != BuiltinOrigin || src.FragmentOrigin != BuiltinOrigin {
		t.Errorf("unexpected origins %q, %q", src.VertexOrigin, src.FragmentOrigin)
	}
}

func TestLoadShaders_Defaults(t *testing.T) {
	src, err := LoadShaders(config.ShaderConfig{})
	if err != nil {
		t.Fatalf("LoadShaders failed: %v", err)
	}
	if src != BuiltinShaders() {
		t.Error("expected built-in shaders when no files are configured")
	}
}

func TestLoadShaders_Files(t *testing.T) {
	dir := t.TempDir()
	vertPath := filepath.Join(dir, "shader.vs")
	fragPath := filepath.Join(dir, "shader.fs")

	if err := os.WriteFile(vertPath, []byte("#version 410 core\nvoid main() {}\n"), 0644); err != nil {
		t.Fatalf("failed to write vertex shader: %v", err)
	}
	if err := os.WriteFile(fragPath, []byte("#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n"), 0644); err != nil {
		t.Fatalf("failed to write fragment shader: %v", err)
	}

	src, err := LoadShaders(config.ShaderConfig{VertexFile: vertPath, FragmentFile: fragPath})
	if err != nil {
		t.Fatalf("LoadShaders failed: %v", err)
	}

	if !strings.Contains(src.Vertex, "void main() {}") {
		t.Errorf("vertex source not read from file: %q", src.Vertex)
	}
	if !strings.Contains(src.Fragment, "vec4(1)") {
		t.Errorf("fragment source not read from file: %q", src.Fragment)
	}
	if src.VertexOrigin != vertPath || src.FragmentOrigin != fragPath {
		t.Errorf("unexpected origins %q, %q", src.VertexOrigin, src.FragmentOrigin)
	}
}

func TestLoadShaders_MixedOrigins(t *testing.T) {
	fragPath := filepath.Join(t.TempDir(), "shader.fs")
	if err := os.WriteFile(fragPath, []byte("#version 410 core\n"), 0644); err != nil {
		t.Fatalf("failed to write fragment shader: %v", err)
	}

	src, err := LoadShaders(config.ShaderConfig{FragmentFile: fragPath})
	if err != nil {
		t.Fatalf("LoadShaders failed: %v", err)
	}
	if src.VertexOrigin != BuiltinOrigin {
		t.Errorf("expected built-in vertex stage, got %q", src.VertexOrigin)
	}
	if src.FragmentOrigin != fragPath {
		t.Errorf("expected fragment from %s, got %q", fragPath, src.FragmentOrigin)
	}
}

func TestLoadShaders_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.vs")

	_, err := LoadShaders(config.ShaderConfig{VertexFile: missing})
	if !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), "vertex shader") {
		t.Errorf("error should name the stage: %v", err)
	}
}

func TestLoadShaders_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.fs")
	if err := os.WriteFile(path, []byte("  \n\t\n"), 0644); err != nil {
		t.Fatalf("failed to write shader: %v", err)
	}

	_, err := LoadShaders(config.ShaderConfig{FragmentFile: path})
	if !errors.Is(err, ErrEmptyShader) {
		t.Errorf("expected ErrEmptyShader, got %v", err)
	}
}
