package mesh

import (
	"fmt"

	"obj-mesh-loader/internal/mathutil"
)

// AttributePool collects v/vn/vt declarations in file order.
// Lookups use 1-based ordinals as written in face directives.
type AttributePool struct {
	positions []mathutil.Vec3
	normals   []mathutil.Vec3
	texcoords []mathutil.Vec2
}

// NewAttributePool returns an empty pool.
func NewAttributePool() *AttributePool {
	return &AttributePool{}
}

func (p *AttributePool) AddPosition(v mathutil.Vec3) { p.positions = append(p.positions, v) }
func (p *AttributePool) AddNormal(v mathutil.Vec3)   { p.normals = append(p.normals, v) }
func (p *AttributePool) AddTexcoord(v mathutil.Vec2) { p.texcoords = append(p.texcoords, v) }

func (p *AttributePool) Positions() int { return len(p.positions) }
func (p *AttributePool) Normals() int   { return len(p.normals) }
func (p *AttributePool) Texcoords() int { return len(p.texcoords) }

// ResolvePosition returns the position with ordinal i (1-based).
func (p *AttributePool) ResolvePosition(i int) (mathutil.Vec3, error) {
	if err := checkOrdinal("position", i, len(p.positions)); err != nil {
		return mathutil.Vec3{}, err
	}
	return p.positions[i-1], nil
}

// ResolveNormal returns the normal with ordinal i (1-based).
func (p *AttributePool) ResolveNormal(i int) (mathutil.Vec3, error) {
	if err := checkOrdinal("normal", i, len(p.normals)); err != nil {
		return mathutil.Vec3{}, err
	}
	return p.normals[i-1], nil
}

// ResolveTexcoord returns the texture coordinate with ordinal i (1-based).
func (p *AttributePool) ResolveTexcoord(i int) (mathutil.Vec2, error) {
	if err := checkOrdinal("texcoord", i, len(p.texcoords)); err != nil {
		return mathutil.Vec2{}, err
	}
	return p.texcoords[i-1], nil
}

func checkOrdinal(kind string, i, n int) error {
	if i < 1 || i > n {
		return fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, kind, i, n)
	}
	return nil
}
