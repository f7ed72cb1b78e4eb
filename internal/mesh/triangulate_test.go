package mesh

import (
	"slices"
	"testing"
)

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		base uint32
		n    int
		want []uint32
	}{
		{"degenerate", 0, 2, nil},
		{"triangle", 0, 3, []uint32{0, 1, 2}},
		{"quad", 0, 4, []uint32{0, 1, 2, 0, 2, 3}},
		{"quad with base", 10, 4, []uint32{10, 11, 12, 10, 12, 13}},
		{"pentagon", 5, 5, []uint32{5, 6, 7, 5, 7, 8, 5, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Triangulate(tt.base, tt.n)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Triangulate(%d, %d) = %v, want %v", tt.base, tt.n, got, tt.want)
			}
		})
	}
}

func TestTriangulateCount(t *testing.T) {
	for n := 3; n < 12; n++ {
		if got := len(Triangulate(0, n)) / 3; got != n-2 {
			t.Errorf("n=%d: %d triangles, want %d", n, got, n-2)
		}
	}
}

func TestAppendFanKeepsPrefix(t *testing.T) {
	dst := []uint32{7, 8, 9}
	got := AppendFan(dst, 3, 3)
	want := []uint32{7, 8, 9, 3, 4, 5}
	if !slices.Equal(got, want) {
		t.Errorf("AppendFan = %v, want %v", got, want)
	}
}
