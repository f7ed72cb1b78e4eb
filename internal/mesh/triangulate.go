package mesh

// Triangulate returns the fan triangulation of an n-corner polygon whose
// corners are stored at consecutive vertex offsets starting at base.
// Polygons are assumed convex and planar; concave input still triangulates
// but the triangles may overlap.
func Triangulate(base uint32, n int) []uint32 {
	if n < 3 {
		return nil
	}
	return AppendFan(make([]uint32, 0, (n-2)*3), base, n)
}

// AppendFan appends the fan triangles (base, base+i-1, base+i) for i in [2, n) to dst.
func AppendFan(dst []uint32, base uint32, n int) []uint32 {
	for i := 2; i < n; i++ {
		dst = append(dst, base, base+uint32(i-1), base+uint32(i))
	}
	return dst
}
