package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"obj-mesh-loader/internal/mesh"
	"obj-mesh-loader/internal/texture"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: texinfo model.obj [texture-dir...]")
		os.Exit(2)
	}
	path := os.Args[1]

	m, err := mesh.Build(path, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Search the model directory plus any extra dirs for moved textures.
	dirs := append([]string{filepath.Dir(path)}, os.Args[2:]...)
	cache := texture.NewCache(texture.BuildIndex(dirs...))

	missing := 0
	for _, name := range m.Materials.Names() {
		mat, _ := m.Materials.Get(name)
		if mat.MapKd == "" {
			fmt.Printf("%s: no map_Kd\n", name)
			continue
		}
		tex, err := cache.Load(mat.Dir, mat.MapKd)
		if err != nil {
			if errors.Is(err, texture.ErrNotFound) {
				fmt.Printf("%s: %s NOT FOUND\n", name, mat.MapKd)
			} else {
				fmt.Printf("%s: %s FAILED: %v\n", name, mat.MapKd, err)
			}
			missing++
			continue
		}
		s := texture.AlphaStats(tex)
		fmt.Printf("%s: %s %dx%d, alpha: min=%d max=%d opaque=%d/%d (%.0f%%)\n",
			name, mat.MapKd, s.Width, s.Height, s.MinAlpha, s.MaxAlpha,
			s.Opaque, s.Width*s.Height, 100*s.OpaqueRatio())
	}

	if missing > 0 {
		fmt.Printf("\n%d texture(s) missing or unreadable.\n", missing)
		os.Exit(1)
	}
}
