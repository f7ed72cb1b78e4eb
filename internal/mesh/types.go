package mesh

import (
	"fmt"
	"strings"

	"obj-mesh-loader/internal/mathutil"
	"obj-mesh-loader/internal/mtl"
)

// Vertex is the attribute triple materialized for one face corner.
// Vertices are never shared between faces.
type Vertex struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	Texcoord mathutil.Vec2
}

// SubMesh is a run of triangles drawn with one material.
// Material names an entry of the owning Mesh's Materials.
type SubMesh struct {
	Material string
	Indices  []uint32 // triples into Mesh.Vertices

	mat *mtl.Material // definition in effect at usemtl time
}

// TriangleCount returns the number of triangles in the submesh.
func (s *SubMesh) TriangleCount() int {
	return len(s.Indices) / 3
}

// Mesh holds the parsed geometry of one model file.
type Mesh struct {
	Name      string // model file stem
	Vertices  []Vertex
	SubMeshes []SubMesh
	Materials *mtl.Library

	NumVertices  int
	NumTriangles int

	// Set by Normalize; zero otherwise.
	Center     mathutil.Vec3
	Extent     mathutil.Vec3
	Normalized bool
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return m.NumVertices
}

// TriangleCount returns the number of triangles across all submeshes.
func (m *Mesh) TriangleCount() int {
	return m.NumTriangles
}

// IndexCount returns the total number of triangle indices.
func (m *Mesh) IndexCount() int {
	n := 0
	for i := range m.SubMeshes {
		n += len(m.SubMeshes[i].Indices)
	}
	return n
}

// Material returns the material a submesh is drawn with. For submeshes built
// by this package that is the definition current when usemtl selected it, even
// if a later mtllib redefined the name.
func (m *Mesh) Material(s *SubMesh) (*mtl.Material, bool) {
	if s.mat != nil {
		return s.mat, true
	}
	if m.Materials == nil {
		return nil, false
	}
	return m.Materials.Get(s.Material)
}

// Info returns a short human-readable summary of the mesh.
func (m *Mesh) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mesh: %s\n", m.Name)
	fmt.Fprintf(&b, "  Vertices:  %d\n", m.NumVertices)
	fmt.Fprintf(&b, "  Triangles: %d\n", m.NumTriangles)
	fmt.Fprintf(&b, "  SubMeshes: %d\n", len(m.SubMeshes))
	fmt.Fprintf(&b, "  Center: (%g, %g, %g)\n", m.Center[0], m.Center[1], m.Center[2])
	return b.String()
}
