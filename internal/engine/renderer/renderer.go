// Package renderer provides OpenGL rendering of the terrain mesh.
package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lockhart/internal/assets"
	"github.com/Faultbox/lockhart/internal/engine/shader"
	"github.com/Faultbox/lockhart/internal/engine/terrain"
	"github.com/Faultbox/lockhart/internal/logger"
)

// Terrain upload errors.
var (
	ErrEmptyMesh    = errors.New("terrain mesh has no vertices")
	ErrMeshTooLarge = errors.New("terrain mesh exceeds the draw call vertex limit")
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	FOVDegrees float32
	Near       float32
	Far        float32
}

// Renderer draws the static terrain mesh with the terrain shader program.
type Renderer struct {
	config     Config
	projection mgl32.Mat4

	program uint32
	locMVP  int32
	locView int32

	terrainVAO  uint32
	terrainVBO  uint32
	vertexCount int32
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config, sources assets.ShaderSources) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log := logger.Named("renderer")
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := shader.CompileProgram(sources.Vertex, sources.Fragment)
	if err != nil {
		return nil, fmt.Errorf("terrain shader (%s, %s): %w", sources.VertexOrigin, sources.FragmentOrigin, err)
	}
	r.program = program

	if r.locMVP, err = shader.RequireUniform(program, "uMVP"); err != nil {
		r.Close()
		return nil, err
	}
	// uView may be optimized out by a custom shader that ignores normals
	r.locView = shader.GetUniform(program, "uView")

	log.Debug("shader program created", zap.Uint32("program", program))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Named("renderer").Info("closing renderer")
	if r.terrainVAO != 0 {
		gl.DeleteVertexArrays(1, &r.terrainVAO)
		r.terrainVAO = 0
	}
	if r.terrainVBO != 0 {
		gl.DeleteBuffers(1, &r.terrainVBO)
		r.terrainVBO = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize updates the viewport and the projection aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized windows report a zero size; keep the last projection
		return
	}

	r.config.Width = width
	r.config.Height = height
	r.projection = Projection(r.config)
	gl.Viewport(0, 0, int32(width), int32(height))

	logger.Named("renderer").Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective projection for the configured size and clip planes.
func Projection(cfg Config) mgl32.Mat4 {
	aspect := float32(cfg.Width) / float32(cfg.Height)
	return mgl32.Perspective(mgl32.DegToRad(cfg.FOVDegrees), aspect, cfg.Near, cfg.Far)
}

// UploadTerrain copies the mesh into a static vertex buffer, replacing any previous terrain.
func (r *Renderer) UploadTerrain(mesh *terrain.Mesh) error {
	if len(mesh.Vertices) == 0 {
		return ErrEmptyMesh
	}
	if len(mesh.Vertices) > math.MaxInt32 {
		return fmt.Errorf("%w: %d vertices", ErrMeshTooLarge, len(mesh.Vertices))
	}

	if r.terrainVAO != 0 {
		gl.DeleteVertexArrays(1, &r.terrainVAO)
		gl.DeleteBuffers(1, &r.terrainVBO)
	}

	gl.GenVertexArrays(1, &r.terrainVAO)
	gl.BindVertexArray(r.terrainVAO)

	gl.GenBuffers(1, &r.terrainVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.terrainVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*terrain.VertexStride, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, terrain.VertexStride, terrain.PositionOffset)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, terrain.VertexStride, terrain.NormalOffset)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.vertexCount = int32(len(mesh.Vertices))

	logger.Named("renderer").Info("terrain uploaded",
		zap.Int32("vertices", r.vertexCount),
		zap.Int("bytes", len(mesh.Vertices)*terrain.VertexStride),
		zap.Uint32("vao", r.terrainVAO),
		zap.Uint32("vbo", r.terrainVBO),
	)
	return nil
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawTerrain draws the uploaded terrain as seen through the view matrix.
func (r *Renderer) DrawTerrain(view mgl32.Mat4) {
	if r.terrainVAO == 0 {
		return
	}

	// The terrain sits at the origin, so the model matrix is identity
	mvp := r.projection.Mul4(view)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
	if r.locView >= 0 {
		gl.UniformMatrix4fv(r.locView, 1, false, &view[0])
	}

	gl.BindVertexArray(r.terrainVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)
}
