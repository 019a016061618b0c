// Package terrain decodes raw elevation grids and builds flat-shaded terrain meshes from them.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// GPU layout of Vertex: two tightly packed vec3 attributes.
const (
	VertexStride   = 24 // bytes per Vertex
	PositionOffset = 0
	NormalOffset   = 12
)

// Vertex is one corner of a triangle. Vertices are never shared between
// triangles, so every vertex carries its own triangle's face normal.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3 // Unnormalized face normal
}

// Mesh is a non-indexed triangle list: every three consecutive vertices form one triangle.
type Mesh struct {
	Vertices []Vertex
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Triangle returns the three vertices of triangle k.
func (m *Mesh) Triangle(k int) [3]Vertex {
	return [3]Vertex{m.Vertices[3*k], m.Vertices[3*k+1], m.Vertices[3*k+2]}
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// FarthestFrom returns the distance from p to the farthest corner of the box.
func (b Bounds) FarthestFrom(p mgl32.Vec3) float32 {
	var d mgl32.Vec3
	for k := 0; k < 3; k++ {
		d[k] = max(mgl32.Abs(p[k]-b.Min[k]), mgl32.Abs(p[k]-b.Max[k]))
	}
	return d.Len()
}
