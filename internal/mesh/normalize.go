package mesh

import (
	"fmt"

	"obj-mesh-loader/internal/mathutil"
)

// ComputeBounds returns the component-wise min and max of vertex positions.
// Both are zero for an empty slice.
func ComputeBounds(verts []Vertex) (min, max mathutil.Vec3) {
	if len(verts) == 0 {
		return
	}
	min, max = verts[0].Position, verts[0].Position
	for i := 1; i < len(verts); i++ {
		min = min.Min(verts[i].Position)
		max = max.Max(verts[i].Position)
	}
	return min, max
}

// Bounds returns the current bounding box of the mesh.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	return ComputeBounds(m.Vertices)
}

// Normalize moves the mesh center to the origin and divides positions by the
// largest bounding-box side, so the mesh fits a unit cube. Center and Extent
// record the box before the rewrite. A mesh that collapses to a single point
// is only translated. Normals and texcoords are left untouched.
func Normalize(m *Mesh) error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh: normalize %s: %w", m.Name, ErrEmptyMesh)
	}

	minPos, maxPos := ComputeBounds(m.Vertices)
	center := minPos.Add(maxPos).Scale(0.5)
	extent := maxPos.Sub(minPos)
	scale := extent.MaxComponent()

	for i := range m.Vertices {
		p := m.Vertices[i].Position.Sub(center)
		if scale > 0 {
			p = p.Scale(1 / scale)
		}
		m.Vertices[i].Position = p
	}

	m.Center = center
	m.Extent = extent
	m.Normalized = true
	return nil
}
