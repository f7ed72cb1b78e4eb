// Package mesh turns Wavefront OBJ files into flat, material-partitioned
// triangle meshes. Every face corner becomes its own vertex; faces are fan
// triangulated into the submesh of the last usemtl.
package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"obj-mesh-loader/internal/mathutil"
	"obj-mesh-loader/internal/mtl"
)

// maxLineLen bounds a single OBJ line; long face lists exceed bufio's default.
const maxLineLen = 1 << 20

// Build reads an OBJ file and returns its mesh. Material libraries named by
// mtllib are resolved relative to the model's directory. With normalize set,
// the mesh is recentered and rescaled into a unit volume.
func Build(modelPath string, normalize bool) (*Mesh, error) {
	f, err := os.Open(modelPath)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w: %w", modelPath, ErrFileNotFound, err)
	}
	defer f.Close()

	b := NewBuilder(modelPath)
	if err := b.Parse(f); err != nil {
		return nil, err
	}
	return b.Finish(normalize)
}

// Builder accumulates one model. A Builder is not safe for concurrent use,
// but independent Builders share nothing.
type Builder struct {
	path      string
	dir       string
	pool      *AttributePool
	materials *mtl.Library
	mesh      *Mesh
	cur       *SubMesh // open submesh, nil before the first usemtl
	lineNo    int
}

// NewBuilder returns a builder for the model at path. The path names the mesh
// and anchors relative mtllib references; it is not opened.
func NewBuilder(path string) *Builder {
	base := filepath.Base(path)
	return &Builder{
		path:      path,
		dir:       filepath.Dir(path),
		pool:      NewAttributePool(),
		materials: mtl.NewLibrary(),
		mesh:      &Mesh{Name: strings.TrimSuffix(base, filepath.Ext(base))},
	}
}

// Parse consumes OBJ directives from r. It may be called more than once to
// continue the same model; line numbers keep counting.
func (b *Builder) Parse(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	for sc.Scan() {
		b.lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v mathutil.Vec3
			if v, err = parseVec3(fields[1:]); err == nil {
				b.pool.AddPosition(v)
			}
		case "vn":
			var v mathutil.Vec3
			if v, err = parseVec3(fields[1:]); err == nil {
				b.pool.AddNormal(v)
			}
		case "vt":
			var v mathutil.Vec2
			if v, err = parseVec2(fields[1:]); err == nil {
				b.pool.AddTexcoord(v)
			}
		case "mtllib":
			err = b.loadLibraries(fields[1:])
		case "usemtl":
			err = b.useMaterial(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "usemtl")))
		case "f":
			err = b.addFace(fields[1:])
		}
		if err != nil {
			return &ParseError{Path: b.path, Line: b.lineNo, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &ParseError{Path: b.path, Line: b.lineNo + 1, Err: fmt.Errorf("%w: %w", ErrMalformedLine, err)}
		}
		return fmt.Errorf("mesh: read %s: %w", b.path, err)
	}
	return nil
}

// Finish closes the open submesh and returns the mesh, normalized if asked.
// A mesh without vertices is returned as is.
func (b *Builder) Finish(normalize bool) (*Mesh, error) {
	b.closeSubMesh()
	m := b.mesh
	m.Materials = b.materials

	if normalize && len(m.Vertices) > 0 {
		if err := Normalize(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (b *Builder) loadLibraries(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: mtllib without a file", ErrMalformedLine)
	}
	for _, name := range names {
		p := filepath.FromSlash(strings.ReplaceAll(name, "\\", "/"))
		if !filepath.IsAbs(p) {
			p = filepath.Join(b.dir, p)
		}
		lib, err := mtl.Load(p)
		if err != nil {
			return err
		}
		b.materials.Merge(lib)
	}
	return nil
}

func (b *Builder) useMaterial(name string) error {
	if name == "" {
		return fmt.Errorf("%w: usemtl without a name", ErrMalformedLine)
	}
	mat, ok := b.materials.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	b.closeSubMesh()
	b.cur = &SubMesh{Material: name, mat: mat}
	return nil
}

// closeSubMesh records the open submesh unless it is empty.
func (b *Builder) closeSubMesh() {
	if b.cur != nil && len(b.cur.Indices) > 0 {
		b.mesh.SubMeshes = append(b.mesh.SubMeshes, *b.cur)
	}
	b.cur = nil
}

// corner holds the resolved ordinals of one face corner; 0 means absent.
type corner struct {
	p, t, n int
}

func (b *Builder) addFace(tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: face needs at least 3 corners, got %d", ErrMalformedLine, len(tokens))
	}
	if b.cur == nil {
		return ErrNoActiveMaterial
	}

	corners := make([]corner, len(tokens))
	for i, tok := range tokens {
		c, err := b.parseCorner(tok)
		if err != nil {
			return err
		}
		if i > 0 && !sameLayout(c, corners[0]) {
			return fmt.Errorf("%w: corner %q does not match layout of %q", ErrMalformedLine, tok, tokens[0])
		}
		corners[i] = c
	}

	verts := make([]Vertex, len(corners))
	for i, c := range corners {
		pos, err := b.pool.ResolvePosition(c.p)
		if err != nil {
			return err
		}
		verts[i].Position = pos
		if c.t != 0 {
			if verts[i].Texcoord, err = b.pool.ResolveTexcoord(c.t); err != nil {
				return err
			}
		}
		if c.n != 0 {
			if verts[i].Normal, err = b.pool.ResolveNormal(c.n); err != nil {
				return err
			}
		}
	}

	// Faces without vn references get the polygon's flat normal.
	if corners[0].n == 0 {
		flat := faceNormal(verts)
		for i := range verts {
			verts[i].Normal = flat
		}
	}

	base := uint32(len(b.mesh.Vertices))
	b.mesh.Vertices = append(b.mesh.Vertices, verts...)
	b.cur.Indices = AppendFan(b.cur.Indices, base, len(verts))

	b.mesh.NumVertices += len(verts)
	b.mesh.NumTriangles += len(verts) - 2
	return nil
}

// faceNormal returns the unit normal of a polygon by Newell's method, so
// collinear leading corners do not zero it. Degenerate polygons yield zero.
func faceNormal(verts []Vertex) mathutil.Vec3 {
	var n mathutil.Vec3
	for i := range verts {
		a := verts[i].Position
		b := verts[(i+1)%len(verts)].Position
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	return n.Normalize()
}

// sameLayout reports whether a and b reference the same attribute kinds.
func sameLayout(a, b corner) bool {
	return (a.t == 0) == (b.t == 0) && (a.n == 0) == (b.n == 0)
}

// parseCorner splits "p", "p/t", "p//n" or "p/t/n" and turns negative
// (relative) ordinals into absolute ones against the attributes seen so far.
func (b *Builder) parseCorner(tok string) (corner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return corner{}, fmt.Errorf("%w: bad corner %q", ErrMalformedLine, tok)
	}

	var c corner
	var err error
	if c.p, err = parseOrdinal(parts[0], b.pool.Positions()); err != nil {
		return corner{}, fmt.Errorf("corner %q: %w", tok, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.t, err = parseOrdinal(parts[1], b.pool.Texcoords()); err != nil {
			return corner{}, fmt.Errorf("corner %q: %w", tok, err)
		}
	}
	if len(parts) > 2 {
		if parts[2] == "" {
			return corner{}, fmt.Errorf("%w: empty normal in corner %q", ErrMalformedLine, tok)
		}
		if c.n, err = parseOrdinal(parts[2], b.pool.Normals()); err != nil {
			return corner{}, fmt.Errorf("corner %q: %w", tok, err)
		}
	}
	return c, nil
}

// parseOrdinal parses a 1-based ordinal. Negative values count back from
// the end (-1 is the latest of n entries). Zero and anything that falls
// before the first entry is reported as out of range.
func parseOrdinal(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: ordinal %q", ErrMalformedLine, s)
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: ordinal 0", ErrIndexOutOfRange)
	}
	if i < 0 {
		i = n + i + 1
		if i < 1 {
			return 0, fmt.Errorf("%w: relative ordinal %s (have %d)", ErrIndexOutOfRange, s, n)
		}
	}
	return i, nil
}

func parseVec3(fields []string) (mathutil.Vec3, error) {
	var v mathutil.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("%w: need 3 values, got %d", ErrMalformedLine, len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func parseVec2(fields []string) (mathutil.Vec2, error) {
	var v mathutil.Vec2
	if len(fields) < 2 {
		return v, fmt.Errorf("%w: need 2 values, got %d", ErrMalformedLine, len(fields))
	}
	for i := 0; i < 2; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// parseFloat parses one coordinate. NaN and infinities are rejected.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", ErrMalformedLine, s)
	}
	return f, nil
}
