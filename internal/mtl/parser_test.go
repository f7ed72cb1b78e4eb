package mtl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"obj-mesh-loader/internal/mathutil"
)

func TestLoadSingleMaterial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.mtl")
	src := "newmtl M\nKa 0.1 0.1 0.1\nKd 0.5 0.5 0.5\nKs 0.2 0.2 0.2\nNs 32\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, ok := lib.Get("M")
	if !ok {
		t.Fatal("material M not found")
	}
	if m.Ka != (mathutil.Vec3{0.1, 0.1, 0.1}) {
		t.Errorf("Ka = %v", m.Ka)
	}
	if m.Kd != (mathutil.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("Kd = %v", m.Kd)
	}
	if m.Ks != (mathutil.Vec3{0.2, 0.2, 0.2}) {
		t.Errorf("Ks = %v", m.Ks)
	}
	if m.Ns != 32 {
		t.Errorf("Ns = %v, want 32", m.Ns)
	}
	if m.Dir != dir {
		t.Errorf("Dir = %q, want %q", m.Dir, dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.mtl"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestParseIgnoresDirectivesBeforeNewmtl(t *testing.T) {
	src := `Ka 1 1 1
Kd 1 1 1
Ns 99
map_Kd stray.png
newmtl first
Kd 0.3 0.4 0.5
`
	lib, err := Parse(strings.NewReader(src), "test.mtl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", lib.Len())
	}
	m, _ := lib.Get("first")
	if m.Ka != (mathutil.Vec3{}) {
		t.Errorf("Ka = %v, want zero (leading Ka must be ignored)", m.Ka)
	}
	if m.Ns != 0 {
		t.Errorf("Ns = %v, want 0", m.Ns)
	}
	if m.MapKd != "" {
		t.Errorf("MapKd = %q, want empty", m.MapKd)
	}
	if m.Kd != (mathutil.Vec3{0.3, 0.4, 0.5}) {
		t.Errorf("Kd = %v", m.Kd)
	}
}

func TestParseSkipsUnknownAndComments(t *testing.T) {
	src := `# exported by some tool
newmtl shiny
illum 2
Ni 1.45
d 1.0
Ks 1 1 1 # trailing comment
map_Kd -s 1 1 1 textures\shiny.tga
`
	lib, err := Parse(strings.NewReader(src), "test.mtl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, ok := lib.Get("shiny")
	if !ok {
		t.Fatal("material shiny not found")
	}
	if m.Ks != (mathutil.Vec3{1, 1, 1}) {
		t.Errorf("Ks = %v", m.Ks)
	}
	if m.MapKd != "textures/shiny.tga" {
		t.Errorf("MapKd = %q, want textures/shiny.tga", m.MapKd)
	}
}

func TestParseOrderAndRedefinition(t *testing.T) {
	src := `newmtl b
Ns 1
newmtl a
Ns 2
newmtl b
Ns 3
`
	lib, err := Parse(strings.NewReader(src), "test.mtl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := lib.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("Names() = %v, want [b a]", names)
	}
	if m, _ := lib.Get("b"); m.Ns != 3 {
		t.Errorf("b.Ns = %v, want 3 (last definition wins)", m.Ns)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"short color", "newmtl m\nKd 0.1 0.2\n", 2},
		{"bad float", "newmtl m\nKa x y z\n", 2},
		{"missing Ns", "newmtl m\nNs\n", 2},
		{"unnamed newmtl", "# c\nnewmtl\n", 2},
		{"empty map_Kd", "newmtl m\n\nmap_Kd\n", 3},
		{"nan color", "newmtl m\nKd nan 0 0\n", 2},
		{"infinite Ns", "newmtl m\nNs inf\n", 2},
		{"overlong line", "newmtl m\n# " + strings.Repeat("x", maxLineLen) + "\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src), "bad.mtl")
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("err = %v, want ErrMalformedLine", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *ParseError", err)
			}
			if pe.Line != tt.line {
				t.Errorf("Line = %d, want %d", pe.Line, tt.line)
			}
		})
	}
}

func TestParseSkipsSpectralAndXYZColors(t *testing.T) {
	src := "newmtl m\nKd 0.5 0.5 0.5\nKd spectral red.rfl 1.0\nKa xyz 0.2 0.3 0.4\nNs 8\n"
	lib, err := Parse(strings.NewReader(src), "s.mtl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, _ := lib.Get("m")
	if m.Kd != (mathutil.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("Kd = %v, want previous value kept", m.Kd)
	}
	if m.Ka != (mathutil.Vec3{}) {
		t.Errorf("Ka = %v, want zero", m.Ka)
	}
	if m.Ns != 8 {
		t.Errorf("Ns = %v, want 8", m.Ns)
	}
}

func TestParseSingleValueColor(t *testing.T) {
	lib, err := Parse(strings.NewReader("newmtl g\nKd 0.25\n"), "g.mtl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, _ := lib.Get("g")
	if m.Kd != (mathutil.Vec3{0.25, 0.25, 0.25}) {
		t.Errorf("Kd = %v, want grey 0.25", m.Kd)
	}
}

func TestLibraryMerge(t *testing.T) {
	a, _ := Parse(strings.NewReader("newmtl x\nNs 1\nnewmtl y\nNs 2\n"), "a.mtl")
	b, _ := Parse(strings.NewReader("newmtl y\nNs 20\nnewmtl z\nNs 30\n"), "b.mtl")

	a.Merge(b)
	a.Merge(nil)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if m, _ := a.Get("y"); m.Ns != 20 {
		t.Errorf("y.Ns = %v, want 20", m.Ns)
	}
	names := a.Names()
	want := []string{"x", "y", "z"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}
