package terrain

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lockhart/internal/logger"
)

// Elevation file layout.
const (
	DefaultGridSize   = 1024
	DefaultHeaderSize = 60 // Opaque header preceding the samples

	// MaxGridSize keeps the mesh's 6*(N-1)^2 vertex count within an int32 draw count.
	MaxGridSize = 16384
	sampleSize        = 4  // little-endian float32
)

// Elevation loading errors.
var (
	ErrElevationUnavailable = errors.New("elevation file unavailable")
	ErrInvalidGridSize      = errors.New("invalid elevation grid size")
	ErrInvalidHeaderSize    = errors.New("invalid elevation header size")
)

// LoadOptions describes the layout of a raw elevation file.
type LoadOptions struct {
	Size       int   // Samples per side
	HeaderSize int64 // Bytes to skip before the first sample
}

// DefaultLoadOptions returns the layout of the Elevation.ddc dataset.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Size:       DefaultGridSize,
		HeaderSize: DefaultHeaderSize,
	}
}

func (o LoadOptions) validate() error {
	if o.Size < 2 || o.Size > MaxGridSize {
		return fmt.Errorf("%w: %d not in [2, %d]", ErrInvalidGridSize, o.Size, MaxGridSize)
	}
	if o.HeaderSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHeaderSize, o.HeaderSize)
	}
	return nil
}

// ElevationGrid is a square, row-major field of height samples.
type ElevationGrid struct {
	Size    int       // Samples per side
	Samples []float32 // Size*Size heights, index row*Size + col
	Loaded  int       // Samples actually read from the source; the rest are zero
}

// NewElevationGrid returns a zero-filled grid of size×size samples.
func NewElevationGrid(size int) *ElevationGrid {
	return &ElevationGrid{
		Size:    size,
		Samples: make([]float32, size*size),
	}
}

// At returns the height at (row, col).
func (g *ElevationGrid) At(row, col int) float32 {
	return g.Samples[row*g.Size+col]
}

// Set stores the height at (row, col).
func (g *ElevationGrid) Set(row, col int, h float32) {
	g.Samples[row*g.Size+col] = h
}

// Complete reports whether every sample came from the source.
func (g *ElevationGrid) Complete() bool {
	return g.Loaded == len(g.Samples)
}

// HeightRange returns the minimum and maximum sample.
func (g *ElevationGrid) HeightRange() (lo, hi float32) {
	if len(g.Samples) == 0 {
		return 0, 0
	}

	lo, hi = g.Samples[0], g.Samples[0]
	for _, h := range g.Samples[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return lo, hi
}

// LoadElevation reads an elevation grid from disk.
//
// If the file cannot be opened the returned grid is fully zero-filled and the
// error wraps ErrElevationUnavailable. A file shorter than the expected sample
// count is not an error: the missing samples stay zero and a warning is logged.
func LoadElevation(path string, opts LoadOptions) (*ElevationGrid, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return NewElevationGrid(opts.Size), fmt.Errorf("%w: %w", ErrElevationUnavailable, err)
	}
	defer f.Close()

	grid, err := DecodeElevation(bufio.NewReader(f), opts)
	if err != nil {
		return grid, fmt.Errorf("reading %s: %w", path, err)
	}

	logger.Named("terrain").Info("elevation loaded",
		zap.String("path", path),
		zap.Int("size", grid.Size),
		zap.Int("samples", grid.Loaded),
	)
	return grid, nil
}

// DecodeElevation skips the header and decodes Size*Size little-endian float32
// samples from r, row-major.
func DecodeElevation(r io.Reader, opts LoadOptions) (*ElevationGrid, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	grid := NewElevationGrid(opts.Size)

	skipped, err := io.CopyN(io.Discard, r, opts.HeaderSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return grid, fmt.Errorf("skipping header: %w", err)
	}
	if skipped < opts.HeaderSize {
		warnTruncated(grid)
		return grid, nil
	}

	buf := make([]byte, len(grid.Samples)*sampleSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return grid, fmt.Errorf("reading samples: %w", err)
	}

	grid.Loaded = n / sampleSize
	for k := 0; k < grid.Loaded; k++ {
		grid.Samples[k] = math.Float32frombits(binary.LittleEndian.Uint32(buf[k*sampleSize:]))
	}

	if !grid.Complete() {
		warnTruncated(grid)
	}
	return grid, nil
}

func warnTruncated(grid *ElevationGrid) {
	logger.Named("terrain").Warn("elevation data truncated, missing samples left at zero",
		zap.Int("expected", len(grid.Samples)),
		zap.Int("loaded", grid.Loaded),
	)
}
