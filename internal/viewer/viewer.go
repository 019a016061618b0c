// Package viewer implements the terrain viewer main loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lockhart/internal/assets"
	"github.com/Faultbox/lockhart/internal/config"
	"github.com/Faultbox/lockhart/internal/engine/camera"
	"github.com/Faultbox/lockhart/internal/engine/input"
	"github.com/Faultbox/lockhart/internal/engine/renderer"
	"github.com/Faultbox/lockhart/internal/engine/terrain"
	"github.com/Faultbox/lockhart/internal/engine/window"
	"github.com/Faultbox/lockhart/internal/logger"
)

// Title is the window title; the frame rate is appended while running.
const Title = "Lockhart Terrain Viewer"

// Viewer owns the window, the uploaded terrain and the orbit camera.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	bounds   terrain.Bounds
}

// New loads the elevation data, builds the mesh and opens the window.
// A missing elevation file is fatal: rendering a flat zero grid would hide the problem.
func New(cfg *config.Config) (*Viewer, error) {
	log := logger.Named("viewer")
	log.Info("initializing viewer",
		zap.String("elevation", cfg.Terrain.ElevationFile),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	grid, err := terrain.LoadElevation(cfg.Terrain.ElevationFile, terrain.LoadOptions{
		Size:       cfg.Terrain.GridSize,
		HeaderSize: cfg.Terrain.HeaderSize,
	})
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}
	if !grid.Complete() {
		log.Warn("elevation data incomplete, missing samples are flat",
			zap.Int("loaded", grid.Loaded),
			zap.Int("expected", len(grid.Samples)),
		)
	}

	start := time.Now()
	mesh := terrain.BuildMesh(grid, cfg.Terrain.Spacing)
	log.Info("terrain mesh built",
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	shaders, err := assets.LoadShaders(cfg.Shaders)
	if err != nil {
		return nil, fmt.Errorf("loading shaders: %w", err)
	}

	v := &Viewer{
		config: cfg,
		camera: camera.FromConfig(cfg.Camera),
		bounds: mesh.Bounds,
		input:  input.New(),
	}

	// Create window (this also creates the OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The drawable can differ from the requested size on HiDPI displays
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		FOVDegrees: cfg.Graphics.FOVDegrees,
		Near:       cfg.Graphics.Near,
		Far:        cfg.Graphics.Far,
	}, shaders)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.renderer.UploadTerrain(mesh); err != nil {
		v.Close()
		return nil, fmt.Errorf("uploading terrain: %w", err)
	}

	v.checkFarPlane()

	log.Info("viewer initialized")
	return v, nil
}

// checkFarPlane warns when part of the terrain lies beyond the far clip plane
// at the starting orbit.
func (v *Viewer) checkFarPlane() {
	far := v.config.Graphics.Far
	if d := v.bounds.FarthestFrom(v.camera.Position()); d > far {
		logger.Named("viewer").Warn("terrain extends past the far plane",
			zap.Float32("distance", d),
			zap.Float32("far", far),
		)
	}
}

// Run executes the frame loop until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	if v.renderer == nil {
		return errors.New("viewer not initialized")
	}
	v.running = true

	log := logger.Named("viewer")
	frameCount := 0
	fpsTimer := time.Now()

	log.Info("starting render loop")

	for v.running {
		// 1. Process input
		if v.input.Update() {
			log.Info("quit requested")
			break
		}

		for _, event := range v.input.Events() {
			if event.Type == input.EventWindowResize {
				width, height := v.window.Size()
				logResize(log, event, width, height)
				v.renderer.Resize(width, height)
			}
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			v.running = false
		}

		// 2. Orbit while the primary button is held
		p := v.input.Pointer()
		v.camera.Update(p.Left, p.X, p.Y)

		// 3. Render
		v.renderer.Begin()
		v.renderer.DrawTerrain(v.camera.ViewMatrix())

		// 4. Present
		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			v.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", Title, fps))
			log.Debug("fps",
				zap.Float64("fps", fps),
				zap.Float32("azimuth", v.camera.Azimuth),
				zap.Float32("polar", v.camera.Polar),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	v.running = false
	return nil
}

// logResize reports a window resize with both the window and drawable sizes.
func logResize(log *zap.Logger, event input.Event, width, height int) {
	log.Info("window resized",
		zap.Int("width", event.Width),
		zap.Int("height", event.Height),
		zap.Int("drawableWidth", width),
		zap.Int("drawableHeight", height),
	)
}

// Close releases the renderer and the window.
func (v *Viewer) Close() {
	logger.Named("viewer").Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
