package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/lockhart/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
)

// VerticesPerCell is the number of vertices emitted for each grid cell (two triangles).
const VerticesPerCell = 6

// GridPosition returns the world position of grid point (i, j).
// Height goes to Y; X and Z are centred on the grid midpoint.
func GridPosition(grid *ElevationGrid, i, j int, spacing float32) mgl32.Vec3 {
	half := grid.Size / 2
	return mgl32.Vec3{
		spacing * float32(i-half),
		grid.At(i, j),
		spacing * float32(j-half),
	}
}

// FaceNormal returns the unnormalized normal (p2-p1) × (p3-p1).
func FaceNormal(p1, p2, p3 mgl32.Vec3) mgl32.Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p1))
}

// BuildMesh tessellates the grid into a flat-shaded triangle list.
//
// Each cell (i, j) with i, j < Size-1 contributes two triangles, in row-major
// cell order:
//
//	A: (i,j)   -> (i,j+1)   -> (i+1,j)
//	B: (i+1,j) -> (i+1,j+1) -> (i,j+1)
//
// The triangles share the (i,j+1)-(i+1,j) diagonal. B is wound opposite to A,
// so its normal is taken with the edge operands swapped; with spacing > 0 both
// normals point into the +Y half-space.
func BuildMesh(grid *ElevationGrid, spacing float32) *Mesh {
	n := grid.Size
	cells := (n - 1) * (n - 1)
	vertices := make([]Vertex, 0, cells*VerticesPerCell)

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			p00 := GridPosition(grid, i, j, spacing)
			p01 := GridPosition(grid, i, j+1, spacing)
			p10 := GridPosition(grid, i+1, j, spacing)
			p11 := GridPosition(grid, i+1, j+1, spacing)

			na := FaceNormal(p00, p01, p10)
			nb := FaceNormal(p10, p01, p11)

			vertices = append(vertices,
				Vertex{Position: p00, Normal: na},
				Vertex{Position: p01, Normal: na},
				Vertex{Position: p10, Normal: na},
				Vertex{Position: p10, Normal: nb},
				Vertex{Position: p11, Normal: nb},
				Vertex{Position: p01, Normal: nb},
			)
		}
	}

	mesh := &Mesh{
		Vertices: vertices,
		Bounds:   gridBounds(grid, spacing),
	}

	logger.Named("terrain").Debug("mesh built",
		zap.Int("grid", n),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32s("min", mesh.Bounds.Min[:]),
		zap.Float32s("max", mesh.Bounds.Max[:]),
	)
	return mesh
}

// gridBounds computes the box spanned by every grid point.
func gridBounds(grid *ElevationGrid, spacing float32) Bounds {
	lo := GridPosition(grid, 0, 0, spacing)
	hi := GridPosition(grid, grid.Size-1, grid.Size-1, spacing)
	minH, maxH := grid.HeightRange()

	return Bounds{
		Min: mgl32.Vec3{lo.X(), minH, lo.Z()},
		Max: mgl32.Vec3{hi.X(), maxH, hi.Z()},
	}
}
