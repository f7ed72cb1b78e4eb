package mesh

import (
	"errors"

	"obj-mesh-loader/internal/mtl"
)

// Error kinds returned by Build, matched with errors.Is.
// FileNotFound and MalformedLine are shared with the mtl package.
var (
	ErrFileNotFound     = mtl.ErrFileNotFound
	ErrMalformedLine    = mtl.ErrMalformedLine
	ErrUnknownMaterial  = errors.New("unknown material")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNoActiveMaterial = errors.New("face before any usemtl")
	ErrEmptyMesh        = errors.New("mesh has no vertices")
)

// ParseError locates a failure at a line of a model or material file.
type ParseError = mtl.ParseError
