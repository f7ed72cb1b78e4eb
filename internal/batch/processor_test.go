package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"obj-mesh-loader/internal/catalog"
	"obj-mesh-loader/internal/texture"
)

const crateOBJ = `mtllib crate.mtl
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
v 0 0 2
usemtl wood
f 1 2 3 4
usemtl plain
f 1 2 5
usemtl wood
f 2 3 5
`

const crateMTL = `newmtl wood
Kd 0.6 0.4 0.2
map_Kd tex/wood.png
newmtl plain
Kd 1 1 1
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 150, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (modelDir, outDir string, models []catalog.ModelDef) {
	t.Helper()
	root := t.TempDir()
	modelDir = filepath.Join(root, "models")
	outDir = filepath.Join(root, "out")

	writeFile(t, filepath.Join(modelDir, "props", "crate.obj"), crateOBJ)
	writeFile(t, filepath.Join(modelDir, "props", "crate.mtl"), crateMTL)
	writePNG(t, filepath.Join(modelDir, "props", "tex", "wood.png"), 64, 32)
	writeFile(t, filepath.Join(modelDir, "broken.obj"), "v 0 0 0\nusemtl missing\n")

	models = []catalog.ModelDef{
		{Group: "props", Name: "crate", File: "props/crate.obj"},
		{Name: "broken", File: "broken.obj"},
		{Name: "absent", File: "absent.obj"},
	}
	return modelDir, outDir, models
}

func TestRun(t *testing.T) {
	modelDir, outDir, models := setup(t)

	results := Run(Config{
		ModelDir:    modelDir,
		OutputDir:   outDir,
		TexResolver: texture.NewCache(nil),
		Normalize:   true,
		Previews:    true,
		PreviewSize: 16,
		Workers:     3,
		Quiet:       true,
	}, models)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	crate := results[0]
	if !crate.Success || crate.Name != "crate" {
		t.Fatalf("crate = %+v", crate)
	}
	if crate.Vertices != 10 || crate.Triangles != 4 {
		t.Errorf("crate counts = %d verts / %d tris, want 10 / 4", crate.Vertices, crate.Triangles)
	}
	if len(crate.SubMeshes) != 3 {
		t.Fatalf("crate submeshes = %+v", crate.SubMeshes)
	}
	if crate.Center != [3]float64{1, 1, 1} || crate.Extent != [3]float64{2, 2, 2} {
		t.Errorf("crate bounds = %v / %v", crate.Center, crate.Extent)
	}

	wood := crate.SubMeshes[0]
	if wood.Material != "wood" || wood.Triangles != 2 || wood.Preview != "props/crate/wood.webp" {
		t.Errorf("wood = %+v", wood)
	}
	if crate.SubMeshes[2].Preview != wood.Preview {
		t.Errorf("second wood submesh preview = %q, want shared %q", crate.SubMeshes[2].Preview, wood.Preview)
	}
	if crate.SubMeshes[1].Preview != "" {
		t.Errorf("plain material has preview %q", crate.SubMeshes[1].Preview)
	}

	img, err := texture.LoadTexture(filepath.Join(outDir, "props", "crate", "wood.webp"))
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("preview size = %v, want 16x8", img.Bounds())
	}

	if results[1].Success || !strings.Contains(results[1].Error, "unknown material") {
		t.Errorf("broken = %+v", results[1])
	}
	if results[2].Success || !strings.Contains(results[2].Error, "file not found") {
		t.Errorf("absent = %+v", results[2])
	}
}

func TestRunRawCoordinates(t *testing.T) {
	modelDir, outDir, models := setup(t)

	results := Run(Config{ModelDir: modelDir, OutputDir: outDir, Workers: 1, Quiet: true}, models[:1])
	if !results[0].Success {
		t.Fatalf("crate = %+v", results[0])
	}
	if results[0].Center != [3]float64{1, 1, 1} || results[0].Extent != [3]float64{2, 2, 2} {
		t.Errorf("raw bounds = %v / %v", results[0].Center, results[0].Extent)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("output dir created without previews")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	modelDir, outDir, models := setup(t)
	results := Run(Config{ModelDir: modelDir, OutputDir: outDir, Normalize: true, Workers: 2, Quiet: true}, models)

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if len(got) != len(results) || got[0].Triangles != results[0].Triangles || got[1].Error != results[1].Error {
		t.Errorf("manifest = %+v", got)
	}
}

func TestSafeName(t *testing.T) {
	if got := safeName(`Mat 01/a:b`); got != "Mat_01_a_b" {
		t.Errorf("safeName = %q", got)
	}
}
