// Package mtl parses Wavefront material libraries.
package mtl

import "obj-mesh-loader/internal/mathutil"

// Material holds the Phong parameters of one newmtl block.
type Material struct {
	Name  string
	Ka    mathutil.Vec3 // ambient color
	Kd    mathutil.Vec3 // diffuse color
	Ks    mathutil.Vec3 // specular color
	Ns    float64       // shininess exponent
	MapKd string        // diffuse texture path, relative to Dir (may be empty)
	Dir   string        // directory of the defining MTL file; empty for Parse
}

// Library maps material names to materials, remembering definition order.
type Library struct {
	byName map[string]*Material
	order  []string
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{byName: make(map[string]*Material)}
}

// Get returns the material registered under name.
func (l *Library) Get(name string) (*Material, bool) {
	m, ok := l.byName[name]
	return m, ok
}

// Names returns material names in the order they were first defined.
func (l *Library) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of materials.
func (l *Library) Len() int {
	return len(l.order)
}

// add registers m. A redefinition replaces the earlier material but keeps its position.
func (l *Library) add(m *Material) {
	if _, exists := l.byName[m.Name]; !exists {
		l.order = append(l.order, m.Name)
	}
	l.byName[m.Name] = m
}

// Merge copies every material of other into l. Materials in other win on name clashes.
func (l *Library) Merge(other *Library) {
	if other == nil {
		return
	}
	for _, name := range other.order {
		l.add(other.byName[name])
	}
}
