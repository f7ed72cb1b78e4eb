package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"obj-mesh-loader/internal/catalog"
	"obj-mesh-loader/internal/mathutil"
	"obj-mesh-loader/internal/mesh"
	"obj-mesh-loader/internal/postprocess"
	"obj-mesh-loader/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	ModelDir    string
	OutputDir   string
	TexResolver texture.Resolver // required when Previews is set
	Normalize   bool
	Previews    bool
	PreviewSize int
	Workers     int
	Quiet       bool // suppress progress lines
}

// SubMeshStat summarizes one submesh of a processed model.
type SubMeshStat struct {
	Material  string `json:"material"`
	Triangles int    `json:"triangles"`
	Preview   string `json:"preview,omitempty"` // relative to OutputDir
}

// Result holds the outcome of processing one model.
type Result struct {
	Group     string        `json:"group,omitempty"`
	Name      string        `json:"name"`
	File      string        `json:"file"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Vertices  int           `json:"vertices"`
	Triangles int           `json:"triangles"`
	SubMeshes []SubMeshStat `json:"submeshes,omitempty"`
	Center    mathutil.Vec3 `json:"center"`
	Extent    mathutil.Vec3 `json:"extent"`
}

// Run builds all models using a worker pool. Every model is parsed
// independently; results keep the order of models.
func Run(cfg Config, models []catalog.ModelDef) []Result {
	total := len(models)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && !cfg.Quiet {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	modelChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range modelChan {
				results[idx] = processModel(cfg, models[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range models {
		modelChan <- i
	}
	close(modelChan)

	wg.Wait()
	close(done)

	return results
}

func processModel(cfg Config, model catalog.ModelDef) Result {
	res := Result{Group: model.Group, Name: model.Name, File: model.File}

	objPath := filepath.Join(cfg.ModelDir, filepath.FromSlash(model.File))
	m, err := mesh.Build(objPath, cfg.Normalize)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Vertices = m.VertexCount()
	res.Triangles = m.TriangleCount()
	res.Center = m.Center
	res.Extent = m.Extent
	if !m.Normalized {
		min, max := m.Bounds()
		res.Center = min.Add(max).Scale(0.5)
		res.Extent = max.Sub(min)
	}

	written := make(map[string]string) // material → preview already encoded for this model
	for i := range m.SubMeshes {
		s := &m.SubMeshes[i]
		stat := SubMeshStat{Material: s.Material, Triangles: s.TriangleCount()}

		if cfg.Previews {
			if p, ok := written[s.Material]; ok {
				stat.Preview = p
			} else {
				p, err := writePreview(cfg, model, m, s)
				if err != nil {
					res.SubMeshes = append(res.SubMeshes, stat)
					res.Error = err.Error()
					return res
				}
				written[s.Material] = p
				stat.Preview = p
			}
		}
		res.SubMeshes = append(res.SubMeshes, stat)
	}

	res.Success = true
	return res
}

// writePreview encodes a WebP thumbnail of the submesh's diffuse map.
// Materials without a resolvable map_Kd produce no preview and no error.
func writePreview(cfg Config, model catalog.ModelDef, m *mesh.Mesh, s *mesh.SubMesh) (string, error) {
	mat, ok := m.Material(s)
	if !ok || mat.MapKd == "" || cfg.TexResolver == nil {
		return "", nil
	}
	img := cfg.TexResolver.Resolve(mat.Dir, mat.MapKd)
	if img == nil {
		return "", nil
	}
	img = postprocess.Thumbnail(img, cfg.PreviewSize)

	rel := filepath.ToSlash(filepath.Join(strings.TrimSuffix(model.File, filepath.Ext(model.File)), safeName(mat.Name)+".webp"))
	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return "", fmt.Errorf("WebP encode: %w", err)
	}
	return rel, nil
}

// safeName maps a material name to a file name component.
func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
