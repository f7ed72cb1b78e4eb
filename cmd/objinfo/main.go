package main

import (
	"flag"
	"fmt"
	"os"

	"obj-mesh-loader/internal/mesh"
)

func main() {
	raw := flag.Bool("raw", false, "Keep source coordinates (skip normalization)")
	materials := flag.Bool("materials", false, "Print material parameters")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: objinfo [flags] model.obj...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := inspect(path, !*raw, *materials); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path string, normalize, showMaterials bool) error {
	m, err := mesh.Build(path, normalize)
	if err != nil {
		return err
	}

	fmt.Print(m.Info())
	if m.Normalized {
		fmt.Printf("  Extent: %.3f x %.3f x %.3f\n", m.Extent[0], m.Extent[1], m.Extent[2])
	}
	min, max := m.Bounds()
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", min[0], max[0], min[1], max[1], min[2], max[2])

	for i := range m.SubMeshes {
		s := &m.SubMeshes[i]
		fmt.Printf("  SubMesh[%d]: material=%q, tris=%d\n", i, s.Material, s.TriangleCount())
	}

	if showMaterials {
		for _, name := range m.Materials.Names() {
			mat, _ := m.Materials.Get(name)
			fmt.Printf("  Material %q\n", name)
			fmt.Printf("    Ka %v  Kd %v  Ks %v  Ns %g\n", mat.Ka, mat.Kd, mat.Ks, mat.Ns)
			if mat.MapKd != "" {
				fmt.Printf("    map_Kd %s\n", mat.MapKd)
			}
		}
	}
	return nil
}
